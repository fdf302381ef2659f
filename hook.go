package session

import "context"

// Hook is the read interface the rest of the application consumes: a thin
// projection over the Manager. Values are computed per call so every read
// observes the latest resolved snapshot.
type Hook struct {
	manager *Manager
}

// Use returns the session hook for the Manager installed in ctx. It panics
// when no Manager is in scope (see MustFromContext).
func Use(ctx context.Context) Hook {
	return Hook{manager: MustFromContext(ctx)}
}

// NewHook wraps an explicit Manager, for tests and non-context wiring.
func NewHook(m *Manager) Hook {
	if m == nil {
		panic(ErrManagerMissing.Message)
	}
	return Hook{manager: m}
}

// User returns the confirmed user, nil while unauthenticated or initializing.
func (h Hook) User() *User {
	return h.manager.Snapshot().User
}

// IsInitializing reports whether the first session evaluation is still
// unresolved. Guards must take no navigation action while it is true.
func (h Hook) IsInitializing() bool {
	return h.manager.Snapshot().Initializing
}

// IsAuthenticated reports whether a confirmed user is attached.
func (h Hook) IsAuthenticated() bool {
	return h.manager.Snapshot().Authenticated()
}

// Snapshot returns the full atomic view, for guard evaluation.
func (h Hook) Snapshot() Snapshot {
	return h.manager.Snapshot()
}

// UserType is a shortcut for the logged-in user's role, empty when absent.
func (h Hook) UserType() UserRole {
	if u := h.User(); u != nil {
		return u.UserType
	}
	return ""
}

// IsActive is a shortcut for the logged-in user's active flag.
func (h Hook) IsActive() bool {
	if u := h.User(); u != nil {
		return u.IsActive
	}
	return false
}

// Login delegates to the Manager.
func (h Hook) Login(ctx context.Context, creds LoginRequest) (Snapshot, error) {
	return h.manager.Login(ctx, creds)
}

// Logout delegates to the Manager.
func (h Hook) Logout() Snapshot {
	return h.manager.Logout()
}
