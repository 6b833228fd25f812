package l0

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Ledger persists executed control actions to SQLite.
type Ledger struct {
	db *sql.DB
	mu sync.Mutex
}

// NewLedger opens (or creates) the action ledger.
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
	CREATE TABLE IF NOT EXISTS control_actions (
		id TEXT PRIMARY KEY,
		cycle INTEGER NOT NULL,
		kind TEXT NOT NULL,
		description TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_control_actions_cycle ON control_actions(cycle);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// RecordAction appends an action record.
func (l *Ledger) RecordAction(ctx context.Context, rec ActionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO control_actions (id, cycle, kind, description, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Cycle, rec.Kind, rec.Description, rec.Status, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}
	return nil
}

// Actions returns the most recent actions, newest first.
func (l *Ledger) Actions(ctx context.Context, limit int) ([]ActionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, cycle, kind, description, status, created_at
		FROM control_actions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	var records []ActionRecord
	for rows.Next() {
		var rec ActionRecord
		var createdAtStr string
		if err := rows.Scan(&rec.ID, &rec.Cycle, &rec.Kind, &rec.Description, &rec.Status, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
