package session

import (
	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// ClaimsValidator decodes bearer tokens locally. The backend owns signature
// verification; the client only needs the claim payload to decide whether a
// stored token is worth presenting.
type ClaimsValidator struct {
	parser *jwt.Parser
}

var _ TokenValidator = (*ClaimsValidator)(nil)

// NewClaimsValidator returns the default token validator.
func NewClaimsValidator() *ClaimsValidator {
	return &ClaimsValidator{
		parser: jwt.NewParser(),
	}
}

// Decode parses the raw token into claims without verifying the signature.
// Malformed or truncated tokens yield ErrTokenMalformed.
func (v *ClaimsValidator) Decode(raw string) (*TokenClaims, error) {
	if raw == "" {
		return nil, ErrTokenMalformed
	}

	claims := &TokenClaims{}
	if _, _, err := v.parser.ParseUnverified(raw, claims); err != nil {
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	return claims, nil
}

// IsExpired reports whether the claims' expiry instant has passed. The expiry
// claim is encoded in seconds; now is milliseconds since epoch.
func (v *ClaimsValidator) IsExpired(claims *TokenClaims, now int64) bool {
	if claims == nil {
		return true
	}
	return claims.ExpiresUnix()*1000 < now
}

// TokenValidatorFunc adapts a decode function into a TokenValidator using the
// default expiry rule.
type TokenValidatorFunc func(raw string) (*TokenClaims, error)

// Decode satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Decode(raw string) (*TokenClaims, error) {
	if f == nil {
		return nil, ErrTokenMalformed
	}
	return f(raw)
}

// IsExpired satisfies the TokenValidator interface.
func (f TokenValidatorFunc) IsExpired(claims *TokenClaims, now int64) bool {
	if claims == nil {
		return true
	}
	return claims.ExpiresUnix()*1000 < now
}
