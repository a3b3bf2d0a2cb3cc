package session

import (
	"context"
	"testing"
	"time"

	"gallery-backend/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestIssueAndParseRoundTrip(t *testing.T) {
	tok, err := Issue(secret, users.User{ID: 12, Email: "a@b.c", Role: users.RoleArtist, Name: "Amara"}, time.Hour)
	require.NoError(t, err)

	s, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(12), s.UserID)
	assert.Equal(t, "a@b.c", s.Email)
	assert.True(t, s.IsArtist())
	assert.Equal(t, tok, s.Token)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := Issue(secret, users.User{ID: 1, Role: users.RoleUser}, time.Hour)
	require.NoError(t, err)
	_, err = Parse([]byte("other"), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Parse(secret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueDefaultsNonPositiveTTL(t *testing.T) {
	tok, err := Issue(secret, users.User{ID: 1}, -time.Hour)
	require.NoError(t, err)
	_, err = Parse(secret, tok)
	assert.NoError(t, err)
}

func TestIssueRequiresSecret(t *testing.T) {
	_, err := Issue(nil, users.User{ID: 1}, time.Hour)
	assert.Error(t, err)
}

func TestCanActFor(t *testing.T) {
	assert.True(t, Session{UserID: 3}.CanActFor(3))
	assert.False(t, Session{UserID: 3}.CanActFor(4))
	assert.True(t, Session{UserID: 1, Role: users.RoleAdmin}.CanActFor(4))
}

func TestContextCarriesSession(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithContext(context.Background(), Session{UserID: 5, Token: "t"})
	s, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "t", s.Token)
}
