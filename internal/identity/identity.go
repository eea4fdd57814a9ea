// Package identity carries the authenticated caller through the request
// context. The auth gate attaches it when a valid token is presented;
// handlers that require authentication check for its presence themselves.
package identity

import (
	"context"

	"github.com/google/uuid"
)

type Identity struct {
	UserID uuid.UUID
	Email  string
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
