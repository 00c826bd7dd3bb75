package store

import (
	"context"
	"sync"

	"datasentinel/internal/risk/models"
	platformsync "datasentinel/pkg/platform/sync"
)

// InMemoryStore keeps partner states in a map. Updates for one partner are
// serialized on that partner's shard; other partners proceed in parallel.
type InMemoryStore struct {
	locks  *platformsync.ShardedMutex
	mu     sync.RWMutex
	states map[string]*models.State
}

func New(opts ...platformsync.Option) *InMemoryStore {
	return &InMemoryStore{
		locks:  platformsync.NewShardedMutex(opts...),
		states: make(map[string]*models.State),
	}
}

// Get returns a copy of the partner's state, or nil when it has none.
func (s *InMemoryStore) Get(_ context.Context, partnerID string) (*models.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[partnerID]
	if !ok {
		return nil, nil
	}
	return cloneState(st), nil
}

// Update runs fn on a copy of the current state and stores the result only if
// fn succeeds.
func (s *InMemoryStore) Update(_ context.Context, partnerID string, fn func(*models.State) error) (*models.State, error) {
	var out *models.State
	err := s.locks.Do(partnerID, func() error {
		s.mu.RLock()
		current, ok := s.states[partnerID]
		s.mu.RUnlock()

		var working *models.State
		if ok {
			working = cloneState(current)
		} else {
			working = &models.State{PartnerID: partnerID}
		}
		if err := fn(working); err != nil {
			return err
		}

		s.mu.Lock()
		s.states[partnerID] = working
		s.mu.Unlock()
		out = cloneState(working)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every partner state; used for admin summaries.
func (s *InMemoryStore) List(_ context.Context) ([]*models.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.State, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, cloneState(st))
	}
	return out, nil
}

func cloneState(st *models.State) *models.State {
	c := *st
	c.Hits = append([]models.Hit(nil), st.Hits...)
	return &c
}
