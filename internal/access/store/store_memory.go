package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"datasentinel/internal/access/models"
)

// Error Contract:
// - Add and Approve are idempotent; created reports whether a new entry was written
// - Remove reports whether an entry existed
// - SaveRequest keeps the original request time when one is already on file

type pairKey struct {
	partnerID string
	userID    string
}

// InMemoryStore holds restrictions and restriction requests.
type InMemoryStore struct {
	mu           sync.RWMutex
	restrictions map[pairKey]*models.Restriction
	requests     map[pairKey]*models.RestrictionRequest
}

func New() *InMemoryStore {
	return &InMemoryStore{
		restrictions: make(map[pairKey]*models.Restriction),
		requests:     make(map[pairKey]*models.RestrictionRequest),
	}
}

func (s *InMemoryStore) Add(_ context.Context, r *models.Restriction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(r), nil
}

func (s *InMemoryStore) addLocked(r *models.Restriction) bool {
	key := pairKey{r.PartnerID, r.UserID}
	if _, ok := s.restrictions[key]; ok {
		return false
	}
	c := *r
	s.restrictions[key] = &c
	return true
}

func (s *InMemoryStore) Remove(_ context.Context, partnerID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{partnerID, userID}
	if _, ok := s.restrictions[key]; !ok {
		return false, nil
	}
	delete(s.restrictions, key)
	return true, nil
}

// ListByPartner returns the partner's restrictions, partner-wide entry included.
func (s *InMemoryStore) ListByPartner(_ context.Context, partnerID string) ([]*models.Restriction, error) {
	return s.filter(func(r *models.Restriction) bool { return r.PartnerID == partnerID }), nil
}

// ListByUser returns restrictions naming userID plus every partner-wide one.
func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]*models.Restriction, error) {
	return s.filter(func(r *models.Restriction) bool {
		return r.UserID == userID || r.PartnerWide()
	}), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Restriction, error) {
	return s.filter(func(*models.Restriction) bool { return true }), nil
}

func (s *InMemoryStore) filter(keep func(*models.Restriction) bool) []*models.Restriction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Restriction, 0)
	for _, r := range s.restrictions {
		if keep(r) {
			c := *r
			out = append(out, &c)
		}
	}
	sortRestrictions(out)
	return out
}

func (s *InMemoryStore) SaveRequest(_ context.Context, req *models.RestrictionRequest) (*models.RestrictionRequest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{req.PartnerID, req.UserID}
	if existing, ok := s.requests[key]; ok {
		c := *existing
		return &c, false, nil
	}
	c := *req
	s.requests[key] = &c
	out := c
	return &out, true, nil
}

// Approve enforces the restriction and marks any pending request approved in
// one step.
func (s *InMemoryStore) Approve(_ context.Context, r *models.Restriction, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.addLocked(r)
	if req, ok := s.requests[pairKey{r.PartnerID, r.UserID}]; ok && req.ApprovedAt == nil {
		approved := at
		req.ApprovedAt = &approved
	}
	return created, nil
}

func (s *InMemoryStore) ListRequests(_ context.Context) ([]*models.RestrictionRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.RestrictionRequest, 0, len(s.requests))
	for _, r := range s.requests {
		c := *r
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.Before(out[j].RequestedAt)
		}
		if out[i].PartnerID != out[j].PartnerID {
			return out[i].PartnerID < out[j].PartnerID
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func sortRestrictions(rs []*models.Restriction) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].PartnerID != rs[j].PartnerID {
			return rs[i].PartnerID < rs[j].PartnerID
		}
		return rs[i].UserID < rs[j].UserID
	})
}
