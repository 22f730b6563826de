package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*SessionStore)(nil)

const sessionColumns = "id, user_id, email, role, token, refresh_token, expires_at, created_at"

// SessionStore persists sessions in PostgreSQL. Redis is the default
// backend; this one serves deployments that want a single datastore.
// Expired rows are filtered on read rather than reaped.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save stores a session, replacing the tokens on conflict (rotation)
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			token = EXCLUDED.token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Email,
		string(session.Role),
		session.Token,
		session.RefreshToken,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.getWhere(ctx, "id = $1", id)
}

// GetByToken retrieves a session by access token
func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	return s.getWhere(ctx, "token = $1", token)
}

// GetByRefreshToken retrieves a session by refresh token
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	return s.getWhere(ctx, "refresh_token = $1", refreshToken)
}

func (s *SessionStore) getWhere(ctx context.Context, where string, arg any) (*domain.Session, error) {
	query := "SELECT " + sessionColumns + " FROM sessions WHERE " + where
	session, err := scanSession(s.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// Delete deletes a session. Idempotent: deleting a session that is
// already gone is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// DeleteByToken deletes the session behind an access token
func (s *SessionStore) DeleteByToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// DeleteByUser deletes all sessions for a user (logout everywhere)
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

// ListByUser lists a user's sessions that have not yet expired
func (s *SessionStore) ListByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	query := "SELECT " + sessionColumns + ` FROM sessions
		WHERE user_id = $1 AND expires_at > NOW()
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func scanSession(row scanner) (*domain.Session, error) {
	var session domain.Session
	var role string
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Email,
		&role,
		&session.Token,
		&session.RefreshToken,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	session.Role = domain.Role(role)
	return &session, nil
}
