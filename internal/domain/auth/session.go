package auth

import (
	"context"
	"errors"
	"time"

	"github.com/krushna001m/RentEasy-sub000/internal/domain/user"
)

var (
	ErrSessionNotFound = errors.New("auth: session not found")
	ErrSessionExpired  = errors.New("auth: session expired")
)

// Session binds an opaque bearer token to a user for a limited time.
type Session struct {
	Token     string
	UserID    user.ID
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type SessionStore interface {
	ByToken(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, token string) error
}
