package defi

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Ledger persists transactions and cycle reports to SQLite.
type Ledger struct {
	db *sql.DB
	mu sync.Mutex
}

// NewLedger opens (or creates) the ledger database.
func NewLedger(dbPath string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return l, nil
}

func (l *Ledger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		cycle INTEGER NOT NULL,
		kind TEXT NOT NULL,
		description TEXT NOT NULL,
		amount_usd REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		reason TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cycle_reports (
		cycle INTEGER PRIMARY KEY,
		capital_usd REAL NOT NULL,
		portfolio_value REAL NOT NULL,
		portfolio_risk REAL NOT NULL,
		open_positions INTEGER NOT NULL,
		pnl_delta REAL NOT NULL,
		executed INTEGER NOT NULL,
		deferred INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_cycle ON transactions(cycle);
	CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// RecordTransaction appends a transaction record.
func (l *Ledger) RecordTransaction(ctx context.Context, rec TransactionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO transactions (id, cycle, kind, description, amount_usd, status, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Cycle, rec.Kind, rec.Description, rec.AmountUSD, rec.Status, rec.Reason, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// RecordReport stores a completed cycle's report.
func (l *Ledger) RecordReport(ctx context.Context, report *PerformanceReport) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO cycle_reports
			(cycle, capital_usd, portfolio_value, portfolio_risk, open_positions,
			 pnl_delta, executed, deferred, skipped, errors, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.Cycle, report.CapitalUSD, report.PortfolioValue, report.PortfolioRisk,
		report.OpenPositions, report.PnLDelta, report.Execution.Executed,
		report.Execution.Deferred, report.Execution.Skipped, report.Execution.Errors,
		report.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to record cycle report: %w", err)
	}
	return nil
}

// Transactions returns the most recent transactions, newest first.
func (l *Ledger) Transactions(ctx context.Context, limit int) ([]TransactionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, cycle, kind, description, amount_usd, status, reason, created_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var records []TransactionRecord
	for rows.Next() {
		var rec TransactionRecord
		var createdAtStr string
		if err := rows.Scan(&rec.ID, &rec.Cycle, &rec.Kind, &rec.Description,
			&rec.AmountUSD, &rec.Status, &rec.Reason, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
