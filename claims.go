package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set the client can read out of a bearer token
// without verifying it. The role claim is informational only; guards must use
// the server-confirmed User instead.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserType string `json:"user_type,omitempty"`
}

// Subject returns the subject claim
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Role returns the role embedded in the token, which may be empty. Never use
// it for authorization decisions.
func (c *TokenClaims) Role() string {
	return c.UserType
}

// Expires returns the expiration time, zero when the claim is absent
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// ExpiresUnix returns the expiry instant in seconds since epoch, 0 when absent.
func (c *TokenClaims) ExpiresUnix() int64 {
	if c.RegisteredClaims.ExpiresAt == nil {
		return 0
	}
	return c.RegisteredClaims.ExpiresAt.Unix()
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
