package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockKeyValueRepository is an in-memory implementation of KeyValueRepository.
type MockKeyValueRepository struct {
	values map[string]json.RawMessage
	mu     sync.RWMutex
}

// NewMockKeyValueRepository creates a new instance of MockKeyValueRepository.
func NewMockKeyValueRepository() *MockKeyValueRepository {
	return &MockKeyValueRepository{
		values: make(map[string]json.RawMessage),
	}
}

// Get returns a copy of the stored value.
func (r *MockKeyValueRepository) Get(_ context.Context, key string) (json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[key]
	if !ok {
		return nil, fmt.Errorf("key %s %w", key, ErrNotFound)
	}
	return append(json.RawMessage(nil), value...), nil
}

// Put overwrites the value stored under key.
func (r *MockKeyValueRepository) Put(_ context.Context, key string, value json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = append(json.RawMessage(nil), value...)
	return nil
}

// Delete removes key if present.
func (r *MockKeyValueRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.values, key)
	return nil
}
