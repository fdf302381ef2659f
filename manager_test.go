package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	session "github.com/hireloop/go-session"
)

func TestManagerInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("no token resolves unauthenticated", func(t *testing.T) {
		store := session.NewMemoryStore()
		fetcher := &mockProfileFetcher{}
		m := session.NewManager(store, &mockAuthService{}, fetcher)

		snap := m.Initialize(ctx)

		assert.Equal(t, session.StatusUnauthenticated, snap.Status)
		assert.Nil(t, snap.User)
		assert.False(t, snap.Initializing)
		assert.EqualValues(t, 0, fetcher.calls.Load(), "no profile fetch without a token")
	})

	t.Run("expired token clears the store without fetching", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Set(signedToken("user-42", time.Now().Add(-time.Second))))

		fetcher := &mockProfileFetcher{profile: testProfile(session.RoleCandidate)}
		m := session.NewManager(store, &mockAuthService{}, fetcher)

		snap := m.Initialize(ctx)

		assert.Equal(t, session.StatusUnauthenticated, snap.Status)
		_, ok := store.Get()
		assert.False(t, ok, "expired token must be cleared")
		assert.EqualValues(t, 0, fetcher.calls.Load(), "expired token must not trigger a fetch")
	})

	t.Run("malformed token clears the store", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Set("not-a-token"))

		m := session.NewManager(store, &mockAuthService{}, &mockProfileFetcher{})
		snap := m.Initialize(ctx)

		assert.Equal(t, session.StatusUnauthenticated, snap.Status)
		_, ok := store.Get()
		assert.False(t, ok)
	})

	t.Run("valid token with confirmed profile authenticates", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Set(signedToken("user-42", time.Now().Add(time.Hour))))

		fetcher := &mockProfileFetcher{profile: testProfile(session.RoleRecruiter)}
		m := session.NewManager(store, &mockAuthService{}, fetcher)

		snap := m.Initialize(ctx)

		require.True(t, snap.Authenticated())
		assert.Equal(t, session.RoleRecruiter, snap.User.UserType)
		assert.False(t, snap.Initializing)

		token, ok := store.Get()
		assert.True(t, ok, "token must survive a successful init")
		assert.NotEmpty(t, token)
	})

	t.Run("profile fetch failure fails closed", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Set(signedToken("user-42", time.Now().Add(time.Hour))))

		fetcher := &mockProfileFetcher{err: errors.New("backend down")}
		m := session.NewManager(store, &mockAuthService{}, fetcher)

		snap := m.Initialize(ctx)

		assert.Equal(t, session.StatusUnauthenticated, snap.Status)
		assert.Nil(t, snap.User)
		_, ok := store.Get()
		assert.False(t, ok, "token must be cleared on unconfirmed credentials")
	})

	t.Run("initializing flag resolves exactly once", func(t *testing.T) {
		store := session.NewMemoryStore()
		m := session.NewManager(store, &mockAuthService{}, &mockProfileFetcher{})

		assert.True(t, m.Snapshot().Initializing)
		m.Initialize(ctx)
		assert.False(t, m.Snapshot().Initializing)

		// A second call is a no-op and keeps the flag down.
		m.Initialize(ctx)
		assert.False(t, m.Snapshot().Initializing)
	})
}

func TestManagerInitializeSingleFlight(t *testing.T) {
	ctx := context.Background()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(signedToken("user-42", time.Now().Add(time.Hour))))

	fetcher := &mockProfileFetcher{
		profile: testProfile(session.RoleCandidate),
		block:   make(chan struct{}),
	}
	m := session.NewManager(store, &mockAuthService{}, fetcher)

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			m.Initialize(ctx)
		}()
	}

	close(fetcher.block)
	wg.Wait()

	assert.EqualValues(t, 1, fetcher.calls.Load(), "overlapping initializations must collapse into one fetch")
	snap := m.Snapshot()
	require.True(t, snap.Authenticated())
	assert.False(t, snap.Initializing)
}

func TestManagerInitializeDiscardsStaleResult(t *testing.T) {
	ctx := context.Background()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(signedToken("user-42", time.Now().Add(time.Hour))))

	fetcher := &mockProfileFetcher{
		profile: testProfile(session.RoleCandidate),
		block:   make(chan struct{}),
	}
	m := session.NewManager(store, &mockAuthService{}, fetcher)

	done := make(chan session.Snapshot, 1)
	go func() {
		done <- m.Initialize(ctx)
	}()

	// Wait for the fetch to be in flight, then log out underneath it.
	require.Eventually(t, func() bool { return fetcher.calls.Load() == 1 },
		time.Second, time.Millisecond)
	m.Logout()

	close(fetcher.block)
	snap := <-done

	assert.Equal(t, session.StatusUnauthenticated, snap.Status,
		"a fetch that lost the race must not resurrect the session")
	assert.Equal(t, session.StatusUnauthenticated, m.Snapshot().Status)
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestManagerLogin(t *testing.T) {
	ctx := context.Background()
	creds := session.LoginRequest{Username: "a@b.com", Password: "x"}

	t.Run("success persists token then publishes state", func(t *testing.T) {
		token := signedToken("user-42", time.Now().Add(time.Hour))
		authsvc := &mockAuthService{
			loginResp: &session.AuthResponse{
				AccessToken: token,
				TokenType:   "bearer",
				User:        testUser(session.RoleCandidate),
			},
		}

		var m *session.Manager
		store := &orderingStore{
			MemoryStore: session.NewMemoryStore(),
			onSet: func() {
				assert.False(t, m.Snapshot().Authenticated(),
					"token must hit the store before Authenticated is observable")
			},
		}

		nav := &recordingNavigator{}
		m = session.NewManager(store, authsvc, &mockProfileFetcher{},
			session.WithManagerNavigator(nav))

		snap, err := m.Login(ctx, creds)
		require.NoError(t, err)

		require.True(t, snap.Authenticated())
		assert.Equal(t, "a@b.com", snap.User.Email)
		assert.False(t, snap.Initializing)

		got, ok := store.Get()
		assert.True(t, ok)
		assert.Equal(t, token, got)

		assert.Equal(t, []session.NavigationIntent{session.NavToDashboard}, nav.Intents(),
			"exactly one navigation to the landing screen")
	})

	t.Run("backend rejection leaves state untouched", func(t *testing.T) {
		authsvc := &mockAuthService{loginErr: session.ErrInvalidCredentials}
		store := session.NewMemoryStore()
		nav := &recordingNavigator{}
		m := session.NewManager(store, authsvc, &mockProfileFetcher{},
			session.WithManagerNavigator(nav))
		m.Initialize(ctx)

		snap, err := m.Login(ctx, creds)
		require.Error(t, err)
		assert.True(t, session.IsCredentialError(err))

		assert.Equal(t, session.StatusUnauthenticated, snap.Status)
		_, ok := store.Get()
		assert.False(t, ok)
		assert.Empty(t, nav.Intents(), "no redirect on a surfaced login error")
	})

	t.Run("invalid payload never reaches the backend", func(t *testing.T) {
		authsvc := &mockAuthService{}
		m := session.NewManager(session.NewMemoryStore(), authsvc, &mockProfileFetcher{})

		_, err := m.Login(ctx, session.LoginRequest{Username: "not-an-email", Password: "x"})
		require.Error(t, err)
		assert.EqualValues(t, 0, authsvc.loginCalls.Load())
	})
}

func TestManagerRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success establishes the session", func(t *testing.T) {
		token := signedToken("user-42", time.Now().Add(time.Hour))
		authsvc := &mockAuthService{
			registerResp: &session.AuthResponse{
				AccessToken: token,
				TokenType:   "bearer",
				User:        testUser(session.RoleRecruiter),
			},
		}
		store := session.NewMemoryStore()
		nav := &recordingNavigator{}
		m := session.NewManager(store, authsvc, &mockProfileFetcher{},
			session.WithManagerNavigator(nav))

		snap, err := m.Register(ctx, session.RegisterRequest{
			Email:    "new@b.com",
			Password: "longenough",
			UserType: session.RoleRecruiter,
		})
		require.NoError(t, err)
		require.True(t, snap.Authenticated())

		got, ok := store.Get()
		assert.True(t, ok)
		assert.Equal(t, token, got)
		assert.Equal(t, []session.NavigationIntent{session.NavToDashboard}, nav.Intents())
	})

	t.Run("rejects an unknown role locally", func(t *testing.T) {
		m := session.NewManager(session.NewMemoryStore(), &mockAuthService{}, &mockProfileFetcher{})
		_, err := m.Register(ctx, session.RegisterRequest{
			Email:    "new@b.com",
			Password: "longenough",
			UserType: "superadmin",
		})
		assert.Error(t, err)
	})
}

func TestManagerLogout(t *testing.T) {
	ctx := context.Background()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(signedToken("user-42", time.Now().Add(time.Hour))))

	fetcher := &mockProfileFetcher{profile: testProfile(session.RoleCandidate)}
	nav := &recordingNavigator{}
	m := session.NewManager(store, &mockAuthService{}, fetcher,
		session.WithManagerNavigator(nav))

	require.True(t, m.Initialize(ctx).Authenticated())

	snap := m.Logout()

	assert.Equal(t, session.StatusUnauthenticated, snap.Status)
	assert.Nil(t, snap.User)
	assert.False(t, snap.Initializing)
	_, ok := store.Get()
	assert.False(t, ok)
	assert.Equal(t, []session.NavigationIntent{session.NavToLogin}, nav.Intents())
}

func TestManagerLogoutIgnoresStoreFailure(t *testing.T) {
	store := &failingStore{err: errors.New("disk gone")}
	nav := &recordingNavigator{}
	m := session.NewManager(store, &mockAuthService{}, &mockProfileFetcher{},
		session.WithManagerNavigator(nav))

	snap := m.Logout()

	assert.Equal(t, session.StatusUnauthenticated, snap.Status)
	assert.Equal(t, []session.NavigationIntent{session.NavToLogin}, nav.Intents())
}

// orderingStore lets a test observe the instant the token is persisted.
type orderingStore struct {
	*session.MemoryStore
	onSet func()
}

func (s *orderingStore) Set(token string) error {
	if s.onSet != nil {
		s.onSet()
	}
	return s.MemoryStore.Set(token)
}

// failingStore errors on every mutation.
type failingStore struct {
	err error
}

func (s *failingStore) Set(string) error    { return s.err }
func (s *failingStore) Get() (string, bool) { return "", false }
func (s *failingStore) Clear() error        { return s.err }
