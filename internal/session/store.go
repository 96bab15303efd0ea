package session

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when a key has no stored value
	ErrNotFound = errors.New("session value not found")
	// ErrDecrypt is returned when a stored file cannot be decrypted with the configured passphrase
	ErrDecrypt = errors.New("failed to decrypt session file")
	// ErrCorrupt is returned when a stored file is not a valid session document
	ErrCorrupt = errors.New("corrupt session file")
)

// Store is a durable key/value store for session state.
// Writes replace the whole value; there is no read-modify-write.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps values in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
