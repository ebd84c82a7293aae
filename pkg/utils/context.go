package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to a request context.
// SessionID is the token's jti. ExpiresAt mirrors the token expiry.
type Identity struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

func SetIdentityContext(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
