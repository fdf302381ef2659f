package session

import (
	"context"
	"fmt"
)

var managerCtxKey = &contextKey{"session-manager"}

type contextKey struct {
	name string
}

// WithContext installs the Manager in the given context. Call it once at
// application start; the same instance must serve every consumer for the
// lifetime of the process.
func WithContext(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerCtxKey, m)
}

// FromContext finds the Manager in the context.
func FromContext(ctx context.Context) (*Manager, bool) {
	raw, ok := ctx.Value(managerCtxKey).(*Manager)
	return raw, ok
}

// MustFromContext returns the Manager or panics. Reading session state outside
// the scope where a Manager was installed is a programming error, not a
// runtime condition, so it fails loudly instead of returning a degraded view.
func MustFromContext(ctx context.Context) *Manager {
	m, ok := FromContext(ctx)
	if !ok {
		panic(fmt.Sprintf("%s: wrap the application context with session.WithContext", ErrManagerMissing.Message))
	}
	return m
}
