package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Claims is the verified content of an access token.
type Claims struct {
	UserID   uuid.UUID
	JTI      string
	IssuedAt time.Time
	Exp      time.Time
}

type TokenProvider interface {
	Sign(ctx context.Context, sub uuid.UUID, ttl time.Duration) (token string, exp time.Time, err error)
	Parse(ctx context.Context, token string) (*Claims, error)
}

// TokenDenylist invalidates issued tokens before their natural expiry.
// A nil implementation degrades logout to cookie expiry only.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
