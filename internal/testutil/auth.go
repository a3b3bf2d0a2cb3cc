package testutil

import (
	"testing"

	"gallery-backend/config"
	"gallery-backend/internal/domain/session"
	"gallery-backend/internal/domain/users"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestSecret = "test-secret"

// UseSecret sets the JWT secret for the duration of t.
func UseSecret(t *testing.T) {
	t.Helper()
	prev := config.JWT_SECRET
	config.JWT_SECRET = TestSecret
	t.Cleanup(func() { config.JWT_SECRET = prev })
}

// CreateUser inserts a user with role and returns it with a signed bearer token.
func CreateUser(t *testing.T, db *gorm.DB, name, role string) (users.User, string) {
	t.Helper()
	u := users.User{Name: name, Email: name + "@example.com", Role: role, IsVerified: true}
	require.NoError(t, db.Create(&u).Error)

	secret := config.JWT_SECRET
	if secret == "" {
		secret = TestSecret
	}
	tok, err := session.Issue([]byte(secret), u, 0)
	require.NoError(t, err)
	return u, tok
}
