package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"datasentinel/internal/honeytoken/models"
	"datasentinel/pkg/platform/sentinel"
)

// Error Contract:
// - Create returns sentinel.ErrConflict when the value already exists
// - Find* and MarkUsed return sentinel.ErrNotFound for unknown tokens
// - MarkUsed never overwrites an existing assignment; it returns the stored token

// InMemoryStore keeps honeytokens in memory, indexed by ID and by value.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*models.Honeytoken
	byValue map[string]string
}

func New() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[string]*models.Honeytoken),
		byValue: make(map[string]string),
	}
}

func (s *InMemoryStore) Create(_ context.Context, token *models.Honeytoken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byValue[token.Value]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byID[token.ID]; exists {
		return sentinel.ErrConflict
	}
	stored := *token
	s.byID[token.ID] = &stored
	s.byValue[token.Value] = token.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*models.Honeytoken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(token), nil
}

func (s *InMemoryStore) FindByValue(_ context.Context, value string) (*models.Honeytoken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byValue[value]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(s.byID[id]), nil
}

func (s *InMemoryStore) MarkUsed(_ context.Context, id, partnerID string, at time.Time) (*models.Honeytoken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !token.IsAssigned() {
		token.AssignedPartner = partnerID
		assignedAt := at
		token.AssignedAt = &assignedAt
	}
	return clone(token), nil
}

// List returns every token, oldest first.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Honeytoken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Honeytoken, 0, len(s.byID))
	for _, token := range s.byID {
		out = append(out, clone(token))
	}
	sortByCreation(out)
	return out, nil
}

func (s *InMemoryStore) ListByPartner(_ context.Context, partnerID string) ([]*models.Honeytoken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Honeytoken
	for _, token := range s.byID {
		if token.AssignedPartner == partnerID {
			out = append(out, clone(token))
		}
	}
	sortByCreation(out)
	return out, nil
}

func clone(token *models.Honeytoken) *models.Honeytoken {
	c := *token
	if token.AssignedAt != nil {
		at := *token.AssignedAt
		c.AssignedAt = &at
	}
	return &c
}

func sortByCreation(tokens []*models.Honeytoken) {
	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].CreatedAt.Equal(tokens[j].CreatedAt) {
			return tokens[i].ID < tokens[j].ID
		}
		return tokens[i].CreatedAt.Before(tokens[j].CreatedAt)
	})
}
