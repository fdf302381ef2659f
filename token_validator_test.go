package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	session "github.com/hireloop/go-session"
)

func TestClaimsValidatorDecode(t *testing.T) {
	validator := session.NewClaimsValidator()

	t.Run("decodes a well-formed token", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		raw := signedToken("user-42", exp)

		claims, err := validator.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.Subject())
		assert.Equal(t, exp.Unix(), claims.ExpiresUnix())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
			_, err := validator.Decode(raw)
			require.Error(t, err, "token %q", raw)
			assert.True(t, session.IsMalformedError(err))
		}
	})

	t.Run("rejects a truncated token", func(t *testing.T) {
		raw := signedToken("user-42", time.Now().Add(time.Hour))
		_, err := validator.Decode(raw[:len(raw)/2])
		require.Error(t, err)
		assert.True(t, session.IsMalformedError(err))
	})
}

func TestClaimsValidatorIsExpired(t *testing.T) {
	validator := session.NewClaimsValidator()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims, err := validator.Decode(signedToken("user-42", exp))
	require.NoError(t, err)

	expMillis := exp.Unix() * 1000

	tests := []struct {
		name    string
		now     int64
		expired bool
	}{
		{"well before expiry", expMillis - 60_000, false},
		{"one ms before expiry", expMillis - 1, false},
		{"exactly at expiry", expMillis, false},
		{"one ms past expiry", expMillis + 1, true},
		{"one second past expiry", expMillis + 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, validator.IsExpired(claims, tt.now))
		})
	}

	t.Run("nil claims are expired", func(t *testing.T) {
		assert.True(t, validator.IsExpired(nil, 0))
	})

	t.Run("missing exp claim is expired", func(t *testing.T) {
		claims := &session.TokenClaims{}
		assert.True(t, validator.IsExpired(claims, time.Now().UnixMilli()))
	})
}

func TestTokenValidatorFunc(t *testing.T) {
	called := false
	fn := session.TokenValidatorFunc(func(raw string) (*session.TokenClaims, error) {
		called = true
		return &session.TokenClaims{}, nil
	})

	_, err := fn.Decode("whatever")
	require.NoError(t, err)
	assert.True(t, called)

	var nilFn session.TokenValidatorFunc
	_, err = nilFn.Decode("whatever")
	assert.Error(t, err)
}
