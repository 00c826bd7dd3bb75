package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"datasentinel/internal/access/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/validation"
)

// BulkResult is one partner's outcome within a bulk request. Err is set when
// that partner's request could not be evaluated; other partners are unaffected.
type BulkResult struct {
	PartnerID string
	Decisions []models.Decision
	Err       error
}

// BulkRequestData evaluates several partner requests independently and
// concurrently. Results keep the order of reqs.
func (s *Service) BulkRequestData(ctx context.Context, reqs []models.Request) ([]BulkResult, error) {
	if len(reqs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "requests must not be empty")
	}
	if err := validation.CheckSliceCount("requests", len(reqs), validation.MaxBulkRequests); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		if _, dup := seen[r.PartnerID]; dup {
			return nil, dErrors.New(dErrors.CodeValidation, "each partner_id may appear once per bulk request")
		}
		seen[r.PartnerID] = struct{}{}
	}

	results := make([]BulkResult, len(reqs))
	var g errgroup.Group
	g.SetLimit(s.fanout)
	for i, req := range reqs {
		g.Go(func() error {
			decisions, err := s.RequestData(ctx, req)
			results[i] = BulkResult{PartnerID: req.PartnerID, Decisions: decisions, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}
