package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-coach/internal/session"
)

// SessionStore implements session.Store on the ats_sessions table.
type SessionStore struct {
	db  *DB
	ttl time.Duration
}

var _ session.Store = (*SessionStore)(nil)

// NewSessionStore creates a store whose rows expire ttl after their last save.
func NewSessionStore(db *DB, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, ttl: ttl}
}

// Get loads an unexpired session.
func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	var data []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT data FROM ats_sessions WHERE id = $1 AND expires_at > NOW()`,
		id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Save upserts sess and pushes its expiry forward.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	now := time.Now().UTC()
	sess.UpdatedAt = now
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO ats_sessions (id, data, created_at, updated_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET data = $2, updated_at = $4, expires_at = $5`,
		sess.ID, data, sess.CreatedAt, now, now.Add(s.ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", sess.ID, err)
	}
	return nil
}

// Delete removes a session. Missing sessions are not an error.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.pool.Exec(ctx, `DELETE FROM ats_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := s.db.pool.Exec(ctx, `DELETE FROM ats_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return result.RowsAffected(), nil
}
