package store

import (
	"context"
	"sort"
	"sync"

	"datasentinel/internal/consent/models"
	"datasentinel/pkg/platform/sentinel"
	platformsync "datasentinel/pkg/platform/sync"
)

// Error Contract:
// - Find returns sentinel.ErrNotFound when the user has no record
// - Execute creates the record when absent; an error from mutate aborts the
//   write and is returned unchanged

// InMemoryStore keeps one consent record per user.
type InMemoryStore struct {
	locks   *platformsync.ShardedMutex
	mu      sync.RWMutex
	records map[string]*models.Record
}

func New(opts ...platformsync.Option) *InMemoryStore {
	return &InMemoryStore{
		locks:   platformsync.NewShardedMutex(opts...),
		records: make(map[string]*models.Record),
	}
}

func (s *InMemoryStore) Find(_ context.Context, userID string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *record
	return &c, nil
}

// Save replaces the user's record.
func (s *InMemoryStore) Save(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *record
	s.records[record.UserID] = &c
	return nil
}

// Execute applies mutate to the user's record while holding the user's shard.
func (s *InMemoryStore) Execute(_ context.Context, userID string, mutate func(*models.Record) error) (*models.Record, error) {
	var out *models.Record
	err := s.locks.Do(userID, func() error {
		s.mu.RLock()
		current, ok := s.records[userID]
		s.mu.RUnlock()

		working := &models.Record{UserID: userID}
		if ok {
			c := *current
			working = &c
		}
		if err := mutate(working); err != nil {
			return err
		}

		s.mu.Lock()
		stored := *working
		s.records[userID] = &stored
		s.mu.Unlock()
		out = working
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every record ordered by user ID.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Record, 0, len(s.records))
	for _, r := range s.records {
		c := *r
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
