package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"datasentinel/internal/access/models"
	consentmodels "datasentinel/internal/consent/models"
)

// partnerEvidence is read once per request and shared by every user's
// evaluation so all decisions in one call see the same snapshot.
type partnerEvidence struct {
	partnerWide bool
	restricted  map[string]struct{}
	riskScore   int
}

func (p *partnerEvidence) isRestricted(userID string) bool {
	if p.partnerWide {
		return true
	}
	_, ok := p.restricted[userID]
	return ok
}

// gatherPartnerEvidence loads the partner's restrictions and risk score in
// parallel. Either failure aborts the request.
func (s *Service) gatherPartnerEvidence(ctx context.Context, partnerID string) (*partnerEvidence, error) {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	var (
		restrictions []*models.Restriction
		score        int
	)

	g.Go(func() error {
		var err error
		restrictions, err = s.store.ListByPartner(ctx, partnerID)
		return err
	})
	g.Go(func() error {
		current, err := s.risk.GetScore(ctx, partnerID)
		if err != nil {
			return err
		}
		score = current.Score
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ev := &partnerEvidence{restricted: make(map[string]struct{}, len(restrictions)), riskScore: score}
	for _, r := range restrictions {
		if r.PartnerWide() {
			ev.partnerWide = true
			continue
		}
		ev.restricted[r.UserID] = struct{}{}
	}
	return ev, nil
}

// gatherConsents looks up each user's consent record concurrently. Each
// goroutine writes only its own slot.
func (s *Service) gatherConsents(ctx context.Context, userIDs []string) ([]*consentmodels.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	records := make([]*consentmodels.Record, len(userIDs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, userID := range userIDs {
		g.Go(func() error {
			record, err := s.consent.Lookup(ctx, userID)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
