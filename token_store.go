package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// StorageKey is the well-known key the bearer token is persisted under.
const StorageKey = "authToken"

// MemoryStore is a TokenStore for tests and short-lived processes.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	has   bool
}

var _ TokenStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.has = true
	return nil
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.has
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.has = false
	return nil
}

// FileStore persists the token under a single file so it survives application
// restarts. When the directory cannot be created or written the store degrades
// to a no-op: Get reports absence and Set/Clear return nil without touching
// anything, mirroring storage access outside a browser context.
type FileStore struct {
	path      string
	available bool
	logger    Logger
}

var _ TokenStore = (*FileStore)(nil)

// FileStoreOption customizes FileStore construction.
type FileStoreOption func(*FileStore)

// WithFileStoreLogger overrides the logger used for storage failures.
func WithFileStoreLogger(logger Logger) FileStoreOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore creates a token store rooted at dir. An empty dir resolves to
// the user config directory.
func NewFileStore(dir string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{logger: defLogger{}}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			s.logger.Debug("token store disabled, no config dir: %v", err)
			return s
		}
		dir = filepath.Join(base, "hireloop")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		s.logger.Debug("token store disabled, cannot create %s: %v", dir, err)
		return s
	}

	s.path = filepath.Join(dir, StorageKey)
	s.available = true
	return s
}

// Available reports whether the backing directory is usable.
func (s *FileStore) Available() bool {
	return s.available
}

func (s *FileStore) Set(token string) error {
	if !s.available {
		return nil
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to persist token")
	}
	return nil
}

func (s *FileStore) Get() (string, bool) {
	if !s.available {
		return "", false
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileStore) Clear() error {
	if !s.available {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to clear token")
	}
	return nil
}
