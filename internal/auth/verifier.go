package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnauthorized = errors.New("not authorized")
	ErrForbidden    = errors.New("admin access required")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the verified subject extracted from a bearer credential.
type Identity struct {
	Subject string
	Role    Role
}

type Verifier struct {
	secret []byte
}

func NewVerifier(jwtSecret string) *Verifier {
	return &Verifier{secret: []byte(jwtSecret)}
}

// Authenticate validates the token's signature and expiry and extracts the
// subject and role claims. A missing or unknown role claim downgrades to user.
func (v *Verifier) Authenticate(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}

	subject, _ := claims["id"].(string)
	if subject == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, "token missing subject")
	}

	role := RoleUser
	if r, _ := claims["role"].(string); r == string(RoleAdmin) {
		role = RoleAdmin
	}

	return &Identity{Subject: subject, Role: role}, nil
}
