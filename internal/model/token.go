package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenTTL is the fixed lifetime of a bearer token.
const TokenTTL = 30 * 24 * time.Hour

// TokenManager signs and verifies bearer tokens.
type TokenManager interface {
	Generate(userID uuid.UUID) (IssuedToken, error)
	Parse(token string) (TokenClaims, error)
}

// IssuedToken is a freshly signed bearer token.
type IssuedToken struct {
	Token     string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenClaims are the verified contents of a bearer token.
type TokenClaims struct {
	UserID uuid.UUID
	JTI    string
}

// SessionStore persists issued tokens so they can be revoked before expiry.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByJTI(ctx context.Context, jti string) (Session, error)
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// Session is the persisted record of one issued token.
type Session struct {
	ID        uuid.UUID
	JTI       string
	UserID    uuid.UUID
	TokenHash []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
