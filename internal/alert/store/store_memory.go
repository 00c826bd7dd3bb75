package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"datasentinel/internal/alert/models"
)

// DefaultRetention caps the admin feed and each user's feeds; the oldest
// entries fall off first.
const DefaultRetention = 1000

// InMemoryStore keeps the admin feed, per-user alerts and notifications in
// bounded slices.
type InMemoryStore struct {
	mu            sync.RWMutex
	retention     int
	admin         []*models.AdminAlert
	userAlerts    map[string][]*models.UserAlert
	notifications map[string][]sequenced
	seq           uint64
	raised        map[string]struct{}
}

// sequenced keeps the global append order across per-user notification feeds.
type sequenced struct {
	seq uint64
	n   *models.Notification
}

func New() *InMemoryStore {
	return NewWithRetention(DefaultRetention)
}

func NewWithRetention(retention int) *InMemoryStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &InMemoryStore{
		retention:     retention,
		userAlerts:    make(map[string][]*models.UserAlert),
		notifications: make(map[string][]sequenced),
		raised:        make(map[string]struct{}),
	}
}

func trim[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return append(items[:0:0], items[len(items)-limit:]...)
}

func (s *InMemoryStore) AppendAdmin(_ context.Context, a *models.AdminAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *a
	s.admin = trim(append(s.admin, &c), s.retention)
	return nil
}

func (s *InMemoryStore) ListAdmin(_ context.Context) ([]*models.AdminAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.AdminAlert, 0, len(s.admin))
	for _, a := range s.admin {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (s *InMemoryStore) AppendUser(_ context.Context, a *models.UserAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *a
	s.userAlerts[a.UserID] = trim(append(s.userAlerts[a.UserID], &c), s.retention)
	return nil
}

func (s *InMemoryStore) ListUser(_ context.Context, userID string) ([]*models.UserAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alerts := s.userAlerts[userID]
	out := make([]*models.UserAlert, 0, len(alerts))
	for _, a := range alerts {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (s *InMemoryStore) AppendNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *n
	s.seq++
	s.notifications[n.UserID] = trim(append(s.notifications[n.UserID], sequenced{seq: s.seq, n: &c}), s.retention)
	return nil
}

// ListNotifications returns the user's notifications, or every retained
// notification in append order when userID is empty.
func (s *InMemoryStore) ListNotifications(_ context.Context, userID string) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []sequenced
	if userID != "" {
		entries = s.notifications[userID]
	} else {
		for _, feed := range s.notifications {
			entries = append(entries, feed...)
		}
		slices.SortFunc(entries, func(a, b sequenced) int { return cmp.Compare(a.seq, b.seq) })
	}
	out := make([]*models.Notification, 0, len(entries))
	for _, e := range entries {
		c := *e.n
		out = append(out, &c)
	}
	return out, nil
}

// MarkRaised records key and reports whether this call was the first.
func (s *InMemoryStore) MarkRaised(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.raised[key]; ok {
		return false, nil
	}
	s.raised[key] = struct{}{}
	return true, nil
}

// ClearRaised forgets key so the next MarkRaised wins again.
func (s *InMemoryStore) ClearRaised(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.raised, key)
	return nil
}
