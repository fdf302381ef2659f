package session

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeTokenExpired       = "TOKEN_EXPIRED"
	textCodeTokenMalformed     = "TOKEN_MALFORMED"
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeProfileUnavailable = "PROFILE_UNAVAILABLE"
	textCodeUnauthorized       = "UNAUTHORIZED"
	textCodeManagerMissing     = "SESSION_MANAGER_MISSING"
)

// ErrTokenExpired is returned when the decoded expiry instant has passed.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when a stored token cannot be decoded.
var ErrTokenMalformed = goerrors.New("authentication token malformed", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidCredentials is the one recoverable auth error: the backend
// rejected a login or registration and the caller is expected to display it.
var ErrInvalidCredentials = goerrors.New("credentials rejected", goerrors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrProfileUnavailable is returned when the profile confirmation call fails.
var ErrProfileUnavailable = goerrors.New("unable to confirm profile", goerrors.CategoryOperation).
	WithTextCode(textCodeProfileUnavailable)

// ErrUnauthorized is returned when the server rejects a bearer token
// mid-session. It always follows the global session reset side effect.
var ErrUnauthorized = goerrors.New("session rejected by server", goerrors.CategoryAuth).
	WithTextCode(textCodeUnauthorized).
	WithCode(goerrors.CodeUnauthorized)

// ErrManagerMissing signals a programming error: a consumer read session
// state outside the scope where a Manager was installed.
var ErrManagerMissing = goerrors.New("no session manager in scope", goerrors.CategoryInternal).
	WithTextCode(textCodeManagerMissing)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for undecodable tokens
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsCredentialError reports whether err is the recoverable login/register
// rejection rather than a session-level failure.
func IsCredentialError(err error) bool {
	return goerrors.Is(err, ErrInvalidCredentials)
}
