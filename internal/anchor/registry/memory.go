package registry

import (
	"context"
	"sync"

	"datasentinel/internal/anchor/models"
)

// InMemoryRegistry is the registry used when no external one is configured.
type InMemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]models.Metadata
}

func NewInMemory() *InMemoryRegistry {
	return &InMemoryRegistry{entries: make(map[string]models.Metadata)}
}

func (r *InMemoryRegistry) IsRegistered(_ context.Context, hash string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[hash]
	return ok, nil
}

func (r *InMemoryRegistry) Register(_ context.Context, hash string, meta models.Metadata) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[hash]; ok {
		return false, nil
	}
	r.entries[hash] = meta
	return true, nil
}
