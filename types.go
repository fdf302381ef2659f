package session

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore persists the raw bearer token across application loads. It never
// interprets the token. Implementations must degrade to no-ops when the
// backing medium is unavailable: Get reports absence, Set and Clear do nothing.
type TokenStore interface {
	Set(token string) error
	Get() (string, bool)
	Clear() error
}

// TokenValidator decodes a raw token into claims and checks expiry without
// contacting the server or tying callers to a signing implementation.
type TokenValidator interface {
	Decode(raw string) (*TokenClaims, error)
	IsExpired(claims *TokenClaims, now int64) bool
}

// AuthService exchanges credentials for tokens against the backend.
type AuthService interface {
	Login(ctx context.Context, creds LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, payload RegisterRequest) (*AuthResponse, error)
}

// ProfileFetcher confirms the session against the backend profile endpoint.
// The embedded user is the only authoritative source for role decisions.
type ProfileFetcher interface {
	MyProfile(ctx context.Context) (*Profile, error)
}

// Navigator receives navigation intents emitted by the Manager and by the
// global 401 reset. The hosting shell decides what a redirect means.
type Navigator interface {
	Navigate(intent NavigationIntent)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
