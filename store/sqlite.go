package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConversations implements Conversations with SQLite persistence.
type SQLiteConversations struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteConversations opens (or creates) a SQLite conversation store.
func NewSQLiteConversations(dbPath string) (*SQLiteConversations, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteConversations{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the necessary tables
func (s *SQLiteConversations) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		blocks_json TEXT,
		tools_json TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_conversations_user_id ON conversations(user_id);
	CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id);
	CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteConversations) Close() error {
	return s.db.Close()
}

// Create creates a new conversation
func (s *SQLiteConversations) Create(ctx context.Context, userID string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, '', ?, ?)
	`, id, userID, now, now)

	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return &Conversation{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Get retrieves a conversation with all its messages
func (s *SQLiteConversations) Get(ctx context.Context, id string) (*ConversationWithMessages, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conv Conversation
	var createdAtStr, updatedAtStr string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM conversations WHERE id = ?
	`, id).Scan(&conv.ID, &conv.UserID, &conv.Title, &createdAtStr, &updatedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	conv.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
	conv.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAtStr)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, content, blocks_json, tools_json, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	var messages []StoredMessage
	for rows.Next() {
		var msg StoredMessage
		var blocksJSON, toolsJSON sql.NullString
		var createdAtStr string

		err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &blocksJSON, &toolsJSON, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		msg.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)

		if blocksJSON.Valid && blocksJSON.String != "" {
			json.Unmarshal([]byte(blocksJSON.String), &msg.Blocks)
		}
		if toolsJSON.Valid && toolsJSON.String != "" {
			json.Unmarshal([]byte(toolsJSON.String), &msg.Tools)
		}

		messages = append(messages, msg)
	}

	return &ConversationWithMessages{
		Conversation: conv,
		Messages:     messages,
	}, nil
}

// Append adds a message to a conversation
func (s *SQLiteConversations) Append(ctx context.Context, msg *AppendMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocksJSON, _ := json.Marshal(msg.Blocks)
	toolsJSON, _ := json.Marshal(msg.Tools)

	msgID := uuid.New().String()
	createdAt := time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, blocks_json, tools_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, msgID, msg.ConversationID, msg.Role, msg.Content, string(blocksJSON), string(toolsJSON), createdAt)

	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE conversations SET updated_at = ? WHERE id = ?
	`, time.Now(), msg.ConversationID)

	return err
}

// List returns all conversations for a user
func (s *SQLiteConversations) List(ctx context.Context, userID string, limit int) ([]*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM conversations
		WHERE user_id = ?
		ORDER BY updated_at DESC
		LIMIT ?
	`, userID, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*Conversation
	for rows.Next() {
		conv := &Conversation{}
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conv.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
		conv.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAtStr)
		conversations = append(conversations, conv)
	}

	return conversations, nil
}

// Delete removes a conversation and its messages
func (s *SQLiteConversations) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE conversation_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
