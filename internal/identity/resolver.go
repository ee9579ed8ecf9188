// Package identity resolves request credentials to an author profile. Token
// issuance lives in the authentication service; this package only answers
// "whose token is this".
package identity

import (
	"context"
	"sync"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
)

// Resolver maps an opaque credential to the caller's profile.
// Implementations return domain.ErrUnauthenticated for unknown, revoked, or
// otherwise unusable credentials.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*domain.Profile, error)
}

// MemoryResolver is a token table in memory, used by tests and local
// development seeding.
type MemoryResolver struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

// NewMemoryResolver creates an empty MemoryResolver.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{profiles: make(map[string]domain.Profile)}
}

// Register associates a token with a profile.
func (r *MemoryResolver) Register(token string, p domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[token] = p
}

// Resolve returns the profile registered for a token.
func (r *MemoryResolver) Resolve(_ context.Context, token string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[token]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return &p, nil
}
