package model

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the caller resolved by the access gate.
type Identity struct {
	UserID   uuid.UUID
	Username string
	TokenID  string
}

// ContextManager stores and loads the resolved identity on a request context.
type ContextManager interface {
	SetIdentity(ctx context.Context, identity Identity) context.Context
	GetIdentity(ctx context.Context) (Identity, bool)
}
