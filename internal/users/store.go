// Package users tracks every Telegram user who ever started the bot,
// for the audience count and the broadcast recipient list.
package users

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shopbot/core/logger"
	"log/slog"
)

// Store persists known user ids.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an open sqlx connection.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Register records a user id; already-known ids are a no-op.
func (s *Store) Register(ctx context.Context, userID int64) error {
	var query string
	if s.db.DriverName() == "postgres" {
		query = `INSERT INTO users (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING`
	} else {
		query = `INSERT OR IGNORE INTO users (user_id) VALUES (?)`
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), userID); err != nil {
		return fmt.Errorf("users: register %d: %w", userID, err)
	}
	if logger.SVCUsers != nil {
		logger.SVCUsers.DebugContext(ctx, "user registered",
			slog.String("event", "register"),
			slog.Int64("user_id", userID),
		)
	}
	return nil
}

// Count returns how many users have started the bot.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("users: count: %w", err)
	}
	return n, nil
}

// ListIDs returns every known user id in registration order.
func (s *Store) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT user_id FROM users ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	return ids, nil
}
