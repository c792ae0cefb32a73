package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory KeyValueStore, used by tests and as a harmless
// default when no data directory is writable. Values round-trip through JSON
// so it behaves exactly like the sqlite store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get unmarshals the stored value for key into out; false when absent.
func (s *MemoryStore) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	value, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("decode key %q: %w", key, err)
	}
	return true, nil
}

// Set stores the value under key.
func (s *MemoryStore) Set(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode key %q: %w", key, err)
	}
	s.mu.Lock()
	s.data[key] = string(encoded)
	s.mu.Unlock()
	return nil
}

// Delete removes the key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
