package security

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Different types of error returned while reading an access token
var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingKey   = errors.New("token key is not configured")
)

// Payload is the body of the PASETO access tokens issued by the backend.
type Payload struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiredAt time.Time
	Version   int64
	Scope     string
}

// Identity is the authenticated admin as far as the client is concerned.
type Identity struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the identity carries an expiry that has passed.
func (i *Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
