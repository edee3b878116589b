package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role enumerates the platform user roles.
type Role string

const (
	RoleDoctor     Role = "DOCTOR"
	RoleDispensary Role = "DISPENSARY"
	RolePatient    Role = "PATIENT"
	RoleAdmin      Role = "ADMIN"
)

// ErrInvalidToken covers malformed, expired or wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller, extracted once from the bearer
// token and passed explicitly into every service call. Token keeps the raw
// credential for pass-through to the upstream API.
type Identity struct {
	UserID string
	Email  string
	Role   Role
	Token  string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role Role) bool {
	return i.Role == role
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseIdentity verifies an HS256 bearer token and extracts the caller's
// identity from its claims.
func ParseIdentity(raw string, secret []byte) (Identity, error) {
	parsed := new(claims)

	token, err := jwt.ParseWithClaims(raw, parsed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	if parsed.Role == "" {
		return Identity{}, fmt.Errorf("%w: missing role claim", ErrInvalidToken)
	}

	return Identity{
		UserID: parsed.Subject,
		Email:  parsed.Email,
		Role:   Role(parsed.Role),
		Token:  raw,
	}, nil
}
