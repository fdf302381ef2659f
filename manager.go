package session

import (
	"context"
	"sync"
	"time"
)

// Status is the session lifecycle state. Exactly one holds at any time.
type Status string

const (
	// StatusInitializing is the start state, before the stored token has been
	// evaluated and confirmed
	StatusInitializing Status = "initializing"
	// StatusAuthenticated means a server-confirmed user is attached
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated means no usable session exists
	StatusUnauthenticated Status = "unauthenticated"
)

// Snapshot is an atomic view of session state. Consumers either see the
// pre-transition or the fully resolved post-transition state, never a partial
// one.
type Snapshot struct {
	Status       Status
	User         *User
	Initializing bool
}

// Authenticated reports whether a server-confirmed user is attached.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// Manager owns the canonical in-memory session state and orchestrates the
// Initialize, Login, and Logout transitions. Construct one per application
// instance and hand it to consumers explicitly (see WithContext / Use); it is
// not a package-level global.
type Manager struct {
	store       TokenStore
	authsvc     AuthService
	profiles    ProfileFetcher
	validator   TokenValidator
	navigator   Navigator
	logger      Logger
	now         func() time.Time
	transitions map[Status]map[Status]struct{}

	mu           sync.Mutex
	status       Status
	user         *User
	initializing bool
	initStarted  bool
	// generation increments on every login/logout so an initialization result
	// that lost the race is discarded instead of clobbering newer state.
	generation uint64
}

// ManagerOption customizes Manager construction.
type ManagerOption func(*Manager)

// WithManagerClock injects a custom clock (useful for expiry tests).
func WithManagerClock(clock func() time.Time) ManagerOption {
	return func(m *Manager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithManagerLogger overrides the logger.
func WithManagerLogger(logger Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithManagerNavigator sets the Navigator that receives redirect intents.
func WithManagerNavigator(nav Navigator) ManagerOption {
	return func(m *Manager) {
		m.navigator = normalizeNavigator(nav)
	}
}

// WithManagerValidator sets a custom token validator.
func WithManagerValidator(validator TokenValidator) ManagerOption {
	return func(m *Manager) {
		if validator != nil {
			m.validator = validator
		}
	}
}

// NewManager returns a session manager in the Initializing state.
func NewManager(store TokenStore, authsvc AuthService, profiles ProfileFetcher, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:     store,
		authsvc:   authsvc,
		profiles:  profiles,
		validator: NewClaimsValidator(),
		navigator: noopNavigator{},
		logger:    defLogger{},
		now:       time.Now,
		status:    StatusInitializing,
		transitions: map[Status]map[Status]struct{}{
			StatusInitializing: {
				StatusAuthenticated:   {},
				StatusUnauthenticated: {},
			},
			StatusUnauthenticated: {
				StatusAuthenticated: {},
			},
			StatusAuthenticated: {
				StatusUnauthenticated: {},
			},
		},
		initializing: true,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Snapshot returns an atomic view of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Initialize evaluates the stored token and resolves the session exactly once
// per application load. It is single-flight: while an invocation is in flight,
// later invocations are no-ops that return the current snapshot. Every failure
// resolves fail-closed to Unauthenticated with the store cleared; nothing is
// surfaced as an error to consumers.
func (m *Manager) Initialize(ctx context.Context) Snapshot {
	m.mu.Lock()
	if m.initStarted {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap
	}
	m.initStarted = true
	gen := m.generation
	m.mu.Unlock()

	token, ok := m.store.Get()
	if !ok {
		return m.resolveInit(gen, StatusUnauthenticated, nil, false)
	}

	claims, err := m.validator.Decode(token)
	if err != nil {
		m.logger.Warn("session init: stored token undecodable: %v", err)
		return m.resolveInit(gen, StatusUnauthenticated, nil, true)
	}

	if m.validator.IsExpired(claims, m.now().UnixMilli()) {
		m.logger.Info("session init: stored token expired")
		return m.resolveInit(gen, StatusUnauthenticated, nil, true)
	}

	profile, err := m.profiles.MyProfile(ctx)
	if err != nil {
		m.logger.Warn("session init: profile confirmation failed: %v", err)
		return m.resolveInit(gen, StatusUnauthenticated, nil, true)
	}

	user := profile.User
	return m.resolveInit(gen, StatusAuthenticated, &user, false)
}

// Login exchanges credentials, persists the returned token, and publishes the
// Authenticated state with the server-returned user. The token hits the store
// before the state is observable. On failure the state is untouched and the
// error is surfaced for the caller to display.
func (m *Manager) Login(ctx context.Context, creds LoginRequest) (Snapshot, error) {
	if err := creds.Validate(); err != nil {
		return m.Snapshot(), err
	}

	resp, err := m.authsvc.Login(ctx, creds)
	if err != nil {
		m.logger.Error("login failed: %v", err)
		return m.Snapshot(), err
	}

	return m.establish(resp)
}

// Register creates an account and establishes the session from the response,
// which shares the login response shape.
func (m *Manager) Register(ctx context.Context, payload RegisterRequest) (Snapshot, error) {
	if err := payload.Validate(); err != nil {
		return m.Snapshot(), err
	}

	resp, err := m.authsvc.Register(ctx, payload)
	if err != nil {
		m.logger.Error("registration failed: %v", err)
		return m.Snapshot(), err
	}

	return m.establish(resp)
}

// Logout clears the store, publishes Unauthenticated, and emits NavToLogin.
// It cannot fail.
func (m *Manager) Logout() Snapshot {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("logout: token clear failed: %v", err)
	}

	m.mu.Lock()
	m.generation++
	m.status = StatusUnauthenticated
	m.user = nil
	m.initializing = false
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.navigator.Navigate(NavToLogin)
	return snap
}

func (m *Manager) establish(resp *AuthResponse) (Snapshot, error) {
	if err := m.store.Set(resp.AccessToken); err != nil {
		m.logger.Error("unable to persist session token: %v", err)
		return m.Snapshot(), err
	}

	user := resp.User

	m.mu.Lock()
	m.generation++
	m.setStateLocked(StatusAuthenticated, &user)
	m.initializing = false
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.navigator.Navigate(NavToDashboard)
	return snap, nil
}

// resolveInit publishes the outcome of an Initialize run. A result that lost
// the race against a login or logout is discarded.
func (m *Manager) resolveInit(gen uint64, target Status, user *User, clear bool) Snapshot {
	if clear {
		if err := m.store.Clear(); err != nil {
			m.logger.Warn("session init: token clear failed: %v", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		m.logger.Debug("session init: result discarded, state moved on")
		m.initializing = false
		return m.snapshotLocked()
	}

	m.setStateLocked(target, user)
	m.initializing = false
	return m.snapshotLocked()
}

func (m *Manager) setStateLocked(target Status, user *User) {
	if m.status != target && !m.canTransition(m.status, target) {
		// The transition map covers every reachable pair; hitting this means a
		// programming error upstream. Resolve unauthenticated rather than
		// leaving state undefined.
		m.logger.Error("invalid session transition %s -> %s", m.status, target)
		m.status = StatusUnauthenticated
		m.user = nil
		return
	}
	m.status = target
	if target == StatusAuthenticated {
		m.user = user
	} else {
		m.user = nil
	}
}

func (m *Manager) canTransition(from, to Status) bool {
	if allowed, ok := m.transitions[from]; ok {
		_, exists := allowed[to]
		return exists
	}
	return false
}

func (m *Manager) snapshotLocked() Snapshot {
	var user *User
	if m.user != nil {
		u := *m.user
		user = &u
	}
	return Snapshot{
		Status:       m.status,
		User:         user,
		Initializing: m.initializing,
	}
}
