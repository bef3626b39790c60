package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/sportshub/internal/models"
)

// Well-known local storage keys for the persisted session.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// LocalStorage is a string key/value store in the local_storage table.
//
// It implements session.Persistence: token and user are written and cleared in one transaction.
type LocalStorage struct {
	db *sql.DB
}

// NewLocalStorage creates a new [LocalStorage] with the given database connection
func NewLocalStorage(db *sql.DB) *LocalStorage {
	return &LocalStorage{db: db}
}

// Get returns the value stored under key.
func (s *LocalStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any existing value.
func (s *LocalStorage) Set(ctx context.Context, key, value string) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		return setKey(ctx, tx, key, value)
	})
}

// Remove deletes key.
func (s *LocalStorage) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM local_storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in order.
func (s *LocalStorage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM local_storage ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Load returns the stored session, or nil unless both token and user are present.
func (s *LocalStorage) Load(ctx context.Context) (*models.Session, error) {
	token, ok, err := s.Get(ctx, KeyToken)
	if err != nil || !ok || token == "" {
		return nil, err
	}
	raw, ok, err := s.Get(ctx, KeyUser)
	if err != nil || !ok {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode stored user: %w", err)
	}
	return &models.Session{User: &user, Token: token}, nil
}

// Save writes token and user together.
func (s *LocalStorage) Save(ctx context.Context, session models.Session) error {
	if !session.Authenticated() {
		return fmt.Errorf("refusing to save incomplete session")
	}
	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := setKey(ctx, tx, KeyToken, session.Token); err != nil {
			return err
		}
		return setKey(ctx, tx, KeyUser, string(user))
	})
}

// Clear removes token and user together.
func (s *LocalStorage) Clear(ctx context.Context) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM local_storage WHERE key IN (?, ?)", KeyToken, KeyUser); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	})
}

func setKey(ctx context.Context, tx *sql.Tx, key, value string) error {
	query := `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
