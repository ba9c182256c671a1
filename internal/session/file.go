package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type fileStore struct {
	path   string
	sealer *sealer

	mu     sync.Mutex
	values map[string]string
}

// NewFileStore returns a store persisted as a JSON file at path. A
// missing file is an empty session. When key is non-empty, values are
// encrypted at rest with AES-GCM.
func NewFileStore(path, key string) (Store, error) {
	s := &fileStore{
		path:   path,
		values: make(map[string]string),
	}

	if key != "" {
		sl, err := newSealer(key)
		if err != nil {
			return nil, fmt.Errorf("session sealer: %w", err)
		}
		s.sealer = sl
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return fmt.Errorf("decode session file: %w", err)
	}
	return nil
}

func (s *fileStore) persist() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *fileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return "", false
	}
	if s.sealer != nil {
		plain, err := s.sealer.open(v)
		if err != nil {
			return "", false
		}
		return plain, true
	}
	return v, true
}

func (s *fileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealer != nil {
		sealed, err := s.sealer.seal(value)
		if err != nil {
			return err
		}
		value = sealed
	}
	s.values[key] = value
	return s.persist()
}

func (s *fileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return s.persist()
}

func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]string)
	return s.persist()
}
