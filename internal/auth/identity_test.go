package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return raw
}

func TestParseIdentity_ExtractsClaims(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"sub":   "user-42",
		"email": "dr@example.com",
		"role":  "DOCTOR",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	ident, err := ParseIdentity(raw, testSecret)
	if err != nil {
		t.Fatalf("ParseIdentity() error: %v", err)
	}

	if ident.UserID != "user-42" || ident.Email != "dr@example.com" {
		t.Fatalf("identity = %+v", ident)
	}
	if !ident.HasRole(RoleDoctor) {
		t.Fatalf("role = %s, want DOCTOR", ident.Role)
	}
	if ident.Token != raw {
		t.Fatal("raw token must be kept for upstream pass-through")
	}
}

func TestParseIdentity_RejectsWrongSecret(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"role": "DOCTOR"}, []byte("other-secret"))

	if _, err := ParseIdentity(raw, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
}

func TestParseIdentity_RejectsExpiredToken(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"role": "DOCTOR",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	if _, err := ParseIdentity(raw, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
}

func TestParseIdentity_RequiresRoleClaim(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "user-42"}, testSecret)

	if _, err := ParseIdentity(raw, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken for missing role", err)
	}
}

func TestParseIdentity_RejectsGarbage(t *testing.T) {
	if _, err := ParseIdentity("not-a-token", testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
}
