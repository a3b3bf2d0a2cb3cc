package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gallery-backend/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated caller, built once per request from the bearer
// token and handed explicitly to anything that acts on the user's behalf.
type Session struct {
	UserID uint
	Email  string
	Role   string
	Name   string
	Token  string
}

const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

func (s Session) IsAdmin() bool  { return s.Role == users.RoleAdmin }
func (s Session) IsArtist() bool { return s.Role == users.RoleArtist }

// CanActFor reports whether the session may read data belonging to userID.
func (s Session) CanActFor(userID uint) bool {
	return s.UserID == userID || s.IsAdmin()
}

// Issue signs a session token for user. Same claims as the login handler has always used.
func Issue(secret []byte, user users.User, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"name":    user.Name,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return t.SignedString(secret)
}

// Parse validates tokenString and rebuilds the session from its claims.
func Parse(secret []byte, tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidToken
	}

	s := Session{Token: tokenString}
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		s.Role = role
	}
	if name, ok := claims["name"].(string); ok {
		s.Name = name
	}
	if userIDFloat, ok := claims["user_id"].(float64); ok {
		s.UserID = uint(userIDFloat)
	}
	if s.UserID == 0 {
		return Session{}, ErrInvalidToken
	}
	return s, nil
}

type ctxKey struct{}

func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
