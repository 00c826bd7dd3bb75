package admin

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	accessmodels "datasentinel/internal/access/models"
	"datasentinel/internal/admin/types"
	"datasentinel/internal/audit"
	htmodels "datasentinel/internal/honeytoken/models"
	riskmodels "datasentinel/internal/risk/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/requestcontext"
)

type AuditReader interface {
	List(ctx context.Context, filter audit.Filter) ([]audit.Entry, error)
}

type RiskReader interface {
	ListScores(ctx context.Context) ([]*riskmodels.Score, error)
	Threshold() int
}

type RestrictionReader interface {
	Restrictions(ctx context.Context) ([]*accessmodels.Restriction, error)
	RestrictionRequests(ctx context.Context) ([]*accessmodels.RestrictionRequest, error)
}

type HoneytokenReader interface {
	List(ctx context.Context) ([]*htmodels.Honeytoken, error)
}

const defaultRecentLimit = 50

// Service builds read-only admin views over the audit log, risk scores and
// restrictions. It never mutates state.
type Service struct {
	audit        AuditReader
	risk         RiskReader
	restrictions RestrictionReader
	honeytokens  HoneytokenReader
}

func NewService(auditReader AuditReader, risk RiskReader, restrictions RestrictionReader, honeytokens HoneytokenReader) *Service {
	return &Service{
		audit:        auditReader,
		risk:         risk,
		restrictions: restrictions,
		honeytokens:  honeytokens,
	}
}

// snapshot is every source read once, concurrently.
type snapshot struct {
	entries      []audit.Entry
	scores       map[string]*riskmodels.Score
	restrictions []*accessmodels.Restriction
	requests     []*accessmodels.RestrictionRequest
	tokens       []*htmodels.Honeytoken
}

func (s *Service) load(ctx context.Context, withTokens bool) (*snapshot, error) {
	snap := &snapshot{scores: make(map[string]*riskmodels.Score)}
	var scores []*riskmodels.Score

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.audit.List(gctx, audit.Filter{})
		snap.entries = entries
		return err
	})
	g.Go(func() error {
		var err error
		scores, err = s.risk.ListScores(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.restrictions, err = s.restrictions.Restrictions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.requests, err = s.restrictions.RestrictionRequests(gctx)
		return err
	})
	if withTokens {
		g.Go(func() error {
			var err error
			snap.tokens, err = s.honeytokens.List(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load admin view")
	}
	for _, sc := range scores {
		snap.scores[sc.PartnerID] = sc
	}
	return snap, nil
}

// GetStats returns headline counters.
func (s *Service) GetStats(ctx context.Context) (*types.Stats, error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return nil, err
	}
	stats := &types.Stats{
		Honeytokens:     len(snap.tokens),
		PartnersTracked: len(snap.scores),
		Restrictions:    len(snap.restrictions),
		Timestamp:       requestcontext.Now(ctx).UTC(),
	}
	for _, t := range snap.tokens {
		if t.IsAssigned() {
			stats.AttributedTokens++
		}
	}
	for _, sc := range snap.scores {
		if sc.Score >= s.risk.Threshold() {
			stats.HighRiskPartners++
		}
	}
	for _, r := range snap.requests {
		if r.Pending() {
			stats.PendingRestrictions++
		}
	}
	for _, e := range snap.entries {
		switch e.Kind {
		case audit.KindTrapHit:
			stats.TrapHits++
		case audit.KindDecodeAttempt:
			stats.DecodeAttempts++
		case audit.KindAccessDecision:
			if e.Outcome == audit.OutcomeGranted {
				stats.AccessGranted++
			} else {
				stats.AccessDenied++
			}
		}
	}
	return stats, nil
}

// PartnerActivity summarizes every partner seen in the audit log, in risk
// or in a restriction, highest risk first.
func (s *Service) PartnerActivity(ctx context.Context) ([]*types.PartnerSummary, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	byPartner := make(map[string]*types.PartnerSummary)
	get := func(id string) *types.PartnerSummary {
		p, ok := byPartner[id]
		if !ok {
			p = &types.PartnerSummary{PartnerID: id, Traits: []string{}}
			byPartner[id] = p
		}
		return p
	}

	for _, e := range snap.entries {
		if e.PartnerID == "" {
			continue
		}
		p := get(e.PartnerID)
		switch e.Kind {
		case audit.KindAccessDecision:
			p.Requests++
			if e.Outcome == audit.OutcomeGranted {
				p.Granted++
			} else {
				p.Denied++
			}
		case audit.KindTrapHit:
			p.TrapHits++
		}
		if e.OccurredAt.After(p.LastActivity) {
			p.LastActivity = e.OccurredAt
		}
	}
	for id, sc := range snap.scores {
		p := get(id)
		p.RiskScore = sc.Score
		p.Traits = sc.Traits
		p.HighRisk = sc.Score >= s.risk.Threshold()
	}
	for _, r := range snap.restrictions {
		p := get(r.PartnerID)
		if r.PartnerWide() {
			p.PartnerWide = true
			continue
		}
		p.RestrictedTo = append(p.RestrictedTo, r.UserID)
	}

	out := make([]*types.PartnerSummary, 0, len(byPartner))
	for _, p := range byPartner {
		slices.Sort(p.RestrictedTo)
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *types.PartnerSummary) int {
		if a.RiskScore != b.RiskScore {
			return cmp.Compare(b.RiskScore, a.RiskScore)
		}
		return cmp.Compare(a.PartnerID, b.PartnerID)
	})
	return out, nil
}

// UserActivity summarizes every user that appears in the audit log or a
// restriction.
func (s *Service) UserActivity(ctx context.Context) ([]*types.UserSummary, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	byUser := make(map[string]*types.UserSummary)
	get := func(id string) *types.UserSummary {
		u, ok := byUser[id]
		if !ok {
			u = &types.UserSummary{UserID: id, RestrictedPartners: []string{}}
			byUser[id] = u
		}
		return u
	}

	for _, e := range snap.entries {
		if e.UserID == "" || e.UserID == accessmodels.AllUsers {
			continue
		}
		u := get(e.UserID)
		switch e.Kind {
		case audit.KindAccessDecision:
			u.Requests++
			if e.Outcome == audit.OutcomeGranted {
				u.Granted++
			} else {
				u.Denied++
			}
		case audit.KindTrapHit:
			u.TrapHits++
		}
		if e.OccurredAt.After(u.LastActivity) {
			u.LastActivity = e.OccurredAt
		}
	}
	for _, r := range snap.restrictions {
		if r.PartnerWide() {
			continue
		}
		u := get(r.UserID)
		u.RestrictedPartners = append(u.RestrictedPartners, r.PartnerID)
	}

	out := make([]*types.UserSummary, 0, len(byUser))
	for _, u := range byUser {
		slices.Sort(u.RestrictedPartners)
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b *types.UserSummary) int {
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out, nil
}

// RestrictedPartnersDetailed groups enforced restrictions by partner with
// the partner's current risk.
func (s *Service) RestrictedPartnersDetailed(ctx context.Context) ([]*types.RestrictedPartner, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	byPartner := make(map[string]*types.RestrictedPartner)
	for _, r := range snap.restrictions {
		p, ok := byPartner[r.PartnerID]
		if !ok {
			p = &types.RestrictedPartner{PartnerID: r.PartnerID, Users: []string{}, Traits: []string{}, Since: r.CreatedAt}
			if sc, ok := snap.scores[r.PartnerID]; ok {
				p.RiskScore = sc.Score
				p.Traits = sc.Traits
			}
			byPartner[r.PartnerID] = p
		}
		if r.CreatedAt.Before(p.Since) {
			p.Since = r.CreatedAt
		}
		if r.PartnerWide() {
			p.PartnerWide = true
			continue
		}
		p.Users = append(p.Users, r.UserID)
	}

	out := make([]*types.RestrictedPartner, 0, len(byPartner))
	for _, p := range byPartner {
		slices.Sort(p.Users)
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *types.RestrictedPartner) int {
		return cmp.Compare(a.PartnerID, b.PartnerID)
	})
	return out, nil
}

// GetRecentAuditEvents returns the newest entries, newest first.
func (s *Service) GetRecentAuditEvents(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	entries, err := s.audit.List(ctx, audit.Filter{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit log")
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := slices.Clone(entries)
	slices.Reverse(out)
	return out, nil
}
