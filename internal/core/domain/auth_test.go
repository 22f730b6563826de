package domain

import (
	"testing"
	"time"
)

func TestSession_IsExpired(t *testing.T) {
	active := &Session{ExpiresAt: time.Now().Add(time.Hour)}
	expired := &Session{ExpiresAt: time.Now().Add(-time.Hour)}

	if active.IsExpired() {
		t.Error("expected active session to not be expired")
	}
	if !expired.IsExpired() {
		t.Error("expected past session to be expired")
	}
}

func TestSession_Context(t *testing.T) {
	s := &Session{
		ID:     "s1",
		UserID: "u1",
		Email:  "ada@cognidocs.dev",
		Role:   RoleAdmin,
	}

	ctx := s.Context()
	if ctx.UserID != "u1" || ctx.Email != "ada@cognidocs.dev" {
		t.Errorf("unexpected identity: %+v", ctx)
	}
	if ctx.Role != RoleAdmin || ctx.SessionID != "s1" {
		t.Errorf("unexpected role/session: %+v", ctx)
	}
}

func TestAuthContext_IsAdmin(t *testing.T) {
	if !(&AuthContext{Role: RoleAdmin}).IsAdmin() {
		t.Error("expected admin context to be admin")
	}
	if (&AuthContext{Role: RoleMember}).IsAdmin() {
		t.Error("expected member context to not be admin")
	}
}
