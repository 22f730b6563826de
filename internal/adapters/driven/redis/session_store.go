package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.SessionStore = (*SessionStore)(nil)

const (
	keySession      = "auth:sess:"    // full session record, JSON
	keyAccessIndex  = "auth:access:"  // access token -> session ID
	keyRefreshIndex = "auth:refresh:" // refresh token -> session ID
	keyUserSessions = "auth:user:"    // set of session IDs per user
)

// sessionRecord is the stored shape of a session. The email and role
// snapshot taken at login rides along so token validation never has
// to touch the user table.
type sessionRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func recordFromSession(s *domain.Session) *sessionRecord {
	return &sessionRecord{
		ID:           s.ID,
		UserID:       s.UserID,
		Email:        s.Email,
		Role:         string(s.Role),
		Token:        s.Token,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		CreatedAt:    s.CreatedAt,
	}
}

func (r *sessionRecord) toSession() *domain.Session {
	return &domain.Session{
		ID:           r.ID,
		UserID:       r.UserID,
		Email:        r.Email,
		Role:         domain.Role(r.Role),
		Token:        r.Token,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    r.ExpiresAt,
		CreatedAt:    r.CreatedAt,
	}
}

// SessionStore keeps sessions in Redis, letting key TTLs do the
// expiry. The record and both token indexes share one TTL so an index
// can never outlive its session.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save stores a session; the TTL is derived from ExpiresAt
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil // already expired
	}

	data, err := json.Marshal(recordFromSession(session))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, keySession+session.ID, data, ttl)
	pipe.Set(ctx, keyAccessIndex+session.Token, session.ID, ttl)
	pipe.Set(ctx, keyRefreshIndex+session.RefreshToken, session.ID, ttl)
	pipe.SAdd(ctx, keyUserSessions+session.UserID, session.ID)
	// The per-user set holds whatever sessions are alive; it only
	// needs to survive as long as the longest-lived one.
	pipe.Expire(ctx, keyUserSessions+session.UserID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, keySession+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return rec.toSession(), nil
}

// GetByToken retrieves a session by access token
func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	return s.getViaIndex(ctx, keyAccessIndex+token)
}

// GetByRefreshToken retrieves a session by refresh token
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	return s.getViaIndex(ctx, keyRefreshIndex+refreshToken)
}

// getViaIndex resolves an index key to a session ID and loads it
func (s *SessionStore) getViaIndex(ctx context.Context, indexKey string) (*domain.Session, error) {
	sessionID, err := s.client.Get(ctx, indexKey).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session index: %w", err)
	}
	return s.Get(ctx, sessionID)
}

// Delete deletes a session and its indexes
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err == domain.ErrSessionNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return s.remove(ctx, session)
}

// DeleteByToken deletes the session behind an access token
func (s *SessionStore) DeleteByToken(ctx context.Context, token string) error {
	session, err := s.GetByToken(ctx, token)
	if err == domain.ErrSessionNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return s.remove(ctx, session)
}

// DeleteByUser deletes every session a user holds (logout everywhere)
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, keyUserSessions+userID).Result()
	if err != nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}
	for _, id := range ids {
		// Expired members just fall through Delete's not-found path
		_ = s.Delete(ctx, id)
	}
	s.client.Del(ctx, keyUserSessions+userID)
	return nil
}

// ListByUser lists a user's live sessions, pruning expired set members
func (s *SessionStore) ListByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	ids, err := s.client.SMembers(ctx, keyUserSessions+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list user sessions: %w", err)
	}

	var sessions []*domain.Session
	var stale []string
	for _, id := range ids {
		session, err := s.Get(ctx, id)
		if err == domain.ErrSessionNotFound {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if session.IsExpired() {
			stale = append(stale, id)
			continue
		}
		sessions = append(sessions, session)
	}

	if len(stale) > 0 {
		s.client.SRem(ctx, keyUserSessions+userID, stale)
	}
	return sessions, nil
}

func (s *SessionStore) remove(ctx context.Context, session *domain.Session) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, keySession+session.ID)
	pipe.Del(ctx, keyAccessIndex+session.Token)
	pipe.Del(ctx, keyRefreshIndex+session.RefreshToken)
	pipe.SRem(ctx, keyUserSessions+session.UserID, session.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
