// Package identity resolves bearer credentials to caller identities. The
// provider of record is external; this package either validates its signed
// tokens locally or asks it over HTTP, and caches nothing.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated principal making a request.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Resolver exchanges a bearer credential for an identity. Any failure —
// missing, malformed, expired, unknown — yields an error that callers map
// to a uniform 401.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}
