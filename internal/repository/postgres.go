package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"core/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresRepository backs the conversation and settings stores. Both are
// opaque key-value persistence with no business logic: the chat core never
// depends on them within a request.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection (used by tests)
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// CreateConversation stores a new conversation for a user
func (r *PostgresRepository) CreateConversation(ctx context.Context, userID, title string, messages json.RawMessage) (*model.Conversation, error) {
	if messages == nil {
		messages = json.RawMessage("[]")
	}
	conv := model.Conversation{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    title,
		Messages: messages,
	}
	query := `
		INSERT INTO conversations (id, user_id, title, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, conv.ID, conv.UserID, conv.Title, conv.Messages).
		Scan(&conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, nil
}

// ListConversations returns a user's conversations, most recent first
func (r *PostgresRepository) ListConversations(ctx context.Context, userID string) ([]model.Conversation, error) {
	var conversations []model.Conversation
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	if err := r.db.SelectContext(ctx, &conversations, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// GetConversation returns one conversation, or nil when not found
func (r *PostgresRepository) GetConversation(ctx context.Context, userID, id string) (*model.Conversation, error) {
	var conv model.Conversation
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM conversations
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.GetContext(ctx, &conv, query, userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

// UpdateConversation replaces a conversation's title and message payload
func (r *PostgresRepository) UpdateConversation(ctx context.Context, userID, id, title string, messages json.RawMessage) error {
	if messages == nil {
		messages = json.RawMessage("[]")
	}
	query := `
		UPDATE conversations
		SET title = $3, messages = $4, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, id, title, messages)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteConversation removes a conversation
func (r *PostgresRepository) DeleteConversation(ctx context.Context, userID, id string) error {
	query := `DELETE FROM conversations WHERE user_id = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// GetSetting returns a per-user setting value, or "" when unset
func (r *PostgresRepository) GetSetting(ctx context.Context, userID, key string) (string, error) {
	var value string
	query := `SELECT value FROM settings WHERE user_id = $1 AND key = $2`
	err := r.db.GetContext(ctx, &value, query, userID, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

// PutSetting upserts a per-user setting
func (r *PostgresRepository) PutSetting(ctx context.Context, userID, key, value string) error {
	query := `
		INSERT INTO settings (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, key, value); err != nil {
		return fmt.Errorf("failed to put setting: %w", err)
	}
	return nil
}
