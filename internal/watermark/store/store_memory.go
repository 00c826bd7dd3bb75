package store

import (
	"context"
	"sync"

	"datasentinel/internal/watermark/models"
	"datasentinel/pkg/platform/sentinel"
)

// Error Contract:
// - Save is idempotent for an identical triple and returns sentinel.ErrConflict
//   when the marker is already bound to a different triple
// - FindByMarker returns sentinel.ErrNotFound for unknown markers

type InMemoryStore struct {
	mu         sync.RWMutex
	watermarks map[string]*models.Watermark
}

func New() *InMemoryStore {
	return &InMemoryStore{watermarks: make(map[string]*models.Watermark)}
}

func (s *InMemoryStore) Save(_ context.Context, wm *models.Watermark) (*models.Watermark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.watermarks[wm.Marker]; ok {
		if !sameDisclosure(existing, wm) {
			return nil, sentinel.ErrConflict
		}
		c := *existing
		return &c, nil
	}
	stored := *wm
	s.watermarks[wm.Marker] = &stored
	c := stored
	return &c, nil
}

func (s *InMemoryStore) FindByMarker(_ context.Context, marker string) (*models.Watermark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wm, ok := s.watermarks[marker]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *wm
	return &c, nil
}

func sameDisclosure(a, b *models.Watermark) bool {
	return a.PartnerID == b.PartnerID && a.UserID == b.UserID && a.Timestamp.Equal(b.Timestamp)
}
