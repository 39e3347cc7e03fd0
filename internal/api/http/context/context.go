package context

import (
	"context"

	"github.com/skillpass/skillpass-server/internal/model"
)

var _ model.ContextManager = (*Manager)(nil)

type contextKey int

// principalKey is the context key under which the authenticated principal is stored.
const principalKey contextKey = iota

// Manager stores and retrieves the authenticated principal on request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipalToContext returns a new context carrying the principal.
func (m *Manager) SetPrincipalToContext(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipalFromContext retrieves the principal from the context.
// The boolean reports whether a principal was present.
func (m *Manager) GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(model.Principal)
	return principal, ok
}
