package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, mutate func(*Claims)) string {
	t.Helper()

	claims := &Claims{
		UserID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		SessionID: "2b1f8c1e-5d7a-4f3b-9c2d-8e4a6b1c0d9f",
		TenantID:  "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Email:     "jo@example.com",
		Role:      "admin",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if mutate != nil {
		mutate(claims)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	claims, err := v.Verify(signedToken(t, testSecret, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "7c9e6679-7425-40de-944b-e07fc1f90ae7" {
		t.Fatalf("unexpected subject: %s", claims.UserID)
	}
	if claims.SessionID == "" || claims.TenantID == "" {
		t.Fatalf("expected session and tenant claims, got %+v", claims)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	_, err := v.Verify(signedToken(t, "other-secret", nil))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	expired := signedToken(t, testSecret, func(c *Claims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	})

	_, err := v.Verify(expired)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWrongTokenType(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	refresh := signedToken(t, testSecret, func(c *Claims) {
		c.TokenType = "refresh"
	})

	_, err := v.Verify(refresh)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	anonymous := signedToken(t, testSecret, func(c *Claims) {
		c.UserID = ""
	})

	_, err := v.Verify(anonymous)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyMalformedCredential(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	for _, cred := range []string{"", "not-a-token", "a.b", "a.b.c.d", "a..c"} {
		if _, err := v.Verify(cred); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed for %q, got %v", cred, err)
		}
	}
}
