package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret, id, role string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"id":  id,
		"exp": time.Now().Add(ttl).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticateUserToken(t *testing.T) {
	v := NewVerifier(testSecret)

	identity, err := v.Authenticate(signToken(t, testSecret, "u1", "", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.Subject)
	assert.Equal(t, RoleUser, identity.Role)
}

func TestAuthenticateAdminToken(t *testing.T) {
	v := NewVerifier(testSecret)

	identity, err := v.Authenticate(signToken(t, testSecret, "a1", "admin", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, identity.Role)
}

func TestAuthenticateRejects(t *testing.T) {
	v := NewVerifier(testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"malformed", "not-a-jwt"},
		{"wrong secret", signToken(t, "other-secret", "u1", "", time.Hour)},
		{"expired", signToken(t, testSecret, "u1", "", -time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Authenticate(tt.token)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestAuthenticateUnknownRoleDowngrades(t *testing.T) {
	v := NewVerifier(testSecret)

	identity, err := v.Authenticate(signToken(t, testSecret, "u1", "superuser", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, RoleUser, identity.Role)
}
