package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// testAdapter uses the minimum bcrypt cost to keep the suite fast
func testAdapter() *Adapter {
	return NewAdapterWithCost("test-secret", bcrypt.MinCost)
}

func validClaims() *domain.TokenClaims {
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    "user-1",
		Email:     "ada@cognidocs.dev",
		Role:      domain.RoleAdmin,
		SessionID: "session-1",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}
}

func TestAdapter_PasswordRoundTrip(t *testing.T) {
	a := testAdapter()

	hash, err := a.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !a.VerifyPassword("correct horse", hash) {
		t.Error("expected the password to verify against its own hash")
	}
	if a.VerifyPassword("battery staple", hash) {
		t.Error("expected a wrong password to fail")
	}
	if a.VerifyPassword("correct horse", "not-a-hash") {
		t.Error("expected garbage hashes to fail")
	}
}

func TestAdapter_HashPassword_UniqueSalts(t *testing.T) {
	a := testAdapter()

	h1, _ := a.HashPassword("pw")
	h2, _ := a.HashPassword("pw")
	if h1 == h2 {
		t.Error("expected distinct salts for identical passwords")
	}
}

func TestAdapter_TokenRoundTrip(t *testing.T) {
	a := testAdapter()
	claims := validClaims()

	token, err := a.GenerateToken(claims)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := a.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != claims.UserID || parsed.Email != claims.Email {
		t.Errorf("identity did not round-trip: %+v", parsed)
	}
	if parsed.Role != domain.RoleAdmin || parsed.SessionID != "session-1" {
		t.Errorf("role/session did not round-trip: %+v", parsed)
	}
	if parsed.ExpiresAt != claims.ExpiresAt {
		t.Errorf("expected expiry %d, got %d", claims.ExpiresAt, parsed.ExpiresAt)
	}
}

func TestAdapter_ParseToken_Expired(t *testing.T) {
	a := testAdapter()
	claims := validClaims()
	claims.IssuedAt = time.Now().Add(-2 * time.Hour).Unix()
	claims.ExpiresAt = time.Now().Add(-time.Hour).Unix()

	token, err := a.GenerateToken(claims)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := a.ParseToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAdapter_ParseToken_WrongSecret(t *testing.T) {
	minted, err := NewAdapterWithCost("other-secret", bcrypt.MinCost).GenerateToken(validClaims())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := testAdapter().ParseToken(minted); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for a foreign secret, got %v", err)
	}
}

func TestAdapter_ParseToken_WrongIssuer(t *testing.T) {
	// Same secret, different issuer: another service sharing the key
	// must not be able to mint tokens for this one.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "some-other-service",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := testAdapter().ParseToken(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for a foreign issuer, got %v", err)
	}
}

func TestAdapter_ParseToken_WrongAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := testAdapter().ParseToken(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for a non-HS256 token, got %v", err)
	}
}

func TestAdapter_ParseToken_Garbage(t *testing.T) {
	a := testAdapter()
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := a.ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid for %q, got %v", token, err)
		}
	}
}

func TestAdapter_ParseToken_Tampered(t *testing.T) {
	a := testAdapter()
	token, err := a.GenerateToken(validClaims())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tampered := token[:len(token)-4] + "XXXX"
	if _, err := a.ParseToken(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for a tampered signature, got %v", err)
	}
}
