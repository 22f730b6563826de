package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService owns the login/refresh/logout lifecycle. Access tokens
// are short-lived JWTs; the session (and its refresh token) outlives
// them, so a client refreshes without re-entering credentials until
// the session itself expires.
type authService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
	accessTTL    time.Duration
	sessionTTL   time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
) driving.AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
		accessTTL:    24 * time.Hour,
		sessionTTL:   7 * 24 * time.Hour,
	}
}

// Authenticate validates credentials and opens a session
func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if !s.authAdapter.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	_ = s.userStore.UpdateLastLogin(ctx, user.ID)
	return resp, nil
}

// ValidateToken resolves an access token to the caller's identity
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	session, err := s.sessionStore.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		return nil, domain.ErrTokenExpired
	}
	// A rotated session keeps its ID but carries a new token; the old
	// token must stop working the moment rotation lands.
	if session.Token != token {
		return nil, domain.ErrTokenInvalid
	}

	// The identity comes from the session snapshot, not the JWT body
	return session.Context(), nil
}

// RefreshToken rotates a session: new tokens, fresh user snapshot
func (s *authService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if req.RefreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionStore.GetByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if session.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// Re-read the user so a deactivation or role change since login
	// takes effect here rather than riding out the old snapshot.
	user, err := s.userStore.Get(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		_ = s.sessionStore.Delete(ctx, session.ID)
		return nil, domain.ErrUnauthorized
	}

	_ = s.sessionStore.Delete(ctx, session.ID)
	return s.issueSession(ctx, user)
}

// Logout invalidates the session behind an access token
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil // nothing to invalidate
	}
	return s.sessionStore.Delete(ctx, claims.SessionID)
}

// LogoutAll invalidates every session a user holds
func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	return s.sessionStore.DeleteByUser(ctx, userID)
}

// ChangePassword rotates the password and forces re-login everywhere
func (s *authService) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.userStore.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !s.authAdapter.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	newHash, err := s.authAdapter.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = newHash
	user.UpdatedAt = time.Now()

	if err := s.userStore.Save(ctx, user); err != nil {
		return err
	}
	return s.sessionStore.DeleteByUser(ctx, userID)
}

// issueSession mints an access token for the user and persists the
// session carrying the user snapshot. Shared by login and refresh.
func (s *authService) issueSession(ctx context.Context, user *domain.User) (*domain.LoginResponse, error) {
	now := time.Now()
	sessionID := generateID()

	token, err := s.authAdapter.GenerateToken(&domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: sessionID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:           sessionID,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		Token:        token,
		RefreshToken: generateRefreshToken(),
		ExpiresAt:    now.Add(s.sessionTTL),
		CreatedAt:    now,
	}
	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:        token,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    now.Add(s.accessTTL), // access token expiry, not session expiry
		User:         user.ToSummary(),
	}, nil
}

// Helper functions

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func generateRefreshToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
