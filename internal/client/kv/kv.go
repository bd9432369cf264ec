package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Storage keys, namespaced the same way the mobile app namespaces its
// AsyncStorage entries.
const (
	KeyToken        = "@onde_tem:token"
	KeyUser         = "@onde_tem:user"
	KeyProducts     = "@onde_tem:products"
	KeySupermarkets = "@onde_tem:supermarkets"
	KeyPushToken    = "@onde_tem:push_token"
	KeyTheme        = "@onde_tem:theme"
)

// Store is a file-backed key-value store. Each value is JSON-serialized
// under its key; the whole map lives in one file rewritten on every write.
type Store struct {
	path string
	mu   sync.Mutex
}

func Open(path string) *Store {
	return &Store{path: path}
}

// Get unmarshals the value under key into out. The boolean reports whether
// the key was present.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return false, err
	}
	raw, ok := entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	entries[key] = raw
	return s.save(entries)
}

func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	delete(entries, key)
	return s.save(entries)
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, err
	}
	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return entries, nil
}

func (s *Store) save(entries map[string]json.RawMessage) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
