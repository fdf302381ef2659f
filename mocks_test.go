package session_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"

	session "github.com/hireloop/go-session"
)

const testSigningKey = "test-signing-key"

// signedToken builds a real HS256 token; the validator decodes without
// verifying, so the key only matters for well-formedness.
func signedToken(sub string, exp time.Time) string {
	claims := &session.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte(testSigningKey))
	if err != nil {
		panic(err)
	}
	return raw
}

func testUser(role session.UserRole) session.User {
	return session.User{
		ID:       42,
		Email:    "a@b.com",
		UserType: role,
		IsActive: true,
	}
}

func testProfile(role session.UserRole) *session.Profile {
	return &session.Profile{
		ID:     7,
		UserID: 42,
		User:   testUser(role),
	}
}

// mockProfileFetcher counts calls and can block until released, to exercise
// the in-flight window of Initialize.
type mockProfileFetcher struct {
	profile *session.Profile
	err     error
	calls   atomic.Int64
	block   chan struct{}
}

func (m *mockProfileFetcher) MyProfile(ctx context.Context) (*session.Profile, error) {
	m.calls.Add(1)
	if m.block != nil {
		<-m.block
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

type mockAuthService struct {
	loginResp    *session.AuthResponse
	loginErr     error
	registerResp *session.AuthResponse
	registerErr  error
	loginCalls   atomic.Int64
}

func (m *mockAuthService) Login(ctx context.Context, creds session.LoginRequest) (*session.AuthResponse, error) {
	m.loginCalls.Add(1)
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResp, nil
}

func (m *mockAuthService) Register(ctx context.Context, payload session.RegisterRequest) (*session.AuthResponse, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.registerResp, nil
}

// recordingNavigator captures every intent it receives.
type recordingNavigator struct {
	mu      sync.Mutex
	intents []session.NavigationIntent
}

func (n *recordingNavigator) Navigate(intent session.NavigationIntent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.intents = append(n.intents, intent)
}

func (n *recordingNavigator) Intents() []session.NavigationIntent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]session.NavigationIntent, len(n.intents))
	copy(out, n.intents)
	return out
}
