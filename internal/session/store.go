package session

import "sync"

// Storage keys, mirroring what the web storefront keeps in the
// browser's local key-value store.
const (
	KeyAccessToken   = "accessToken"
	KeyUser          = "user"
	KeyPendingAction = "pendingAction"
)

// Store is the persistent key-value session storage. Only the
// login/logout flow writes it; everything else reads.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a volatile in-process store, used when no
// session file is configured and in tests.
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string]string)}
}

func (s *memoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *memoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return nil
}
