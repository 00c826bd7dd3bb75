package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"datasentinel/internal/audit"
	"datasentinel/internal/risk/metrics"
	"datasentinel/internal/risk/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/requestcontext"
)

// Store holds per-partner state.
// Error Contract:
//   - Get returns nil, nil for a partner with no state
//   - Update applies fn atomically for partnerID; an error from fn aborts the write
//     and is returned unchanged
type Store interface {
	Get(ctx context.Context, partnerID string) (*models.State, error)
	Update(ctx context.Context, partnerID string, fn func(*models.State) error) (*models.State, error)
	List(ctx context.Context) ([]*models.State, error)
}

// Escalator receives the one-time alert raised when a score crosses the
// escalation threshold from below. ClearEscalation re-arms the partner's
// one-time alerts after a reset.
type Escalator interface {
	RaiseEscalation(ctx context.Context, partnerID string, score int) error
	ClearEscalation(ctx context.Context, partnerID string) error
}

type Auditor interface {
	Emit(ctx context.Context, entry audit.Entry) (audit.Entry, error)
}

const DefaultEscalationThreshold = 85

type Option func(*Engine)

// Engine maintains partner risk scores. Scores do not decay; traits are
// recomputed from recent hits on every write and every read.
type Engine struct {
	store     Store
	escalator Escalator
	auditor   Auditor
	metrics   *metrics.Metrics
	logger    *slog.Logger
	policy    TraitPolicy
	threshold int
}

func WithEscalator(e Escalator) Option {
	return func(s *Engine) {
		s.escalator = e
	}
}

func WithAuditor(a Auditor) Option {
	return func(s *Engine) {
		s.auditor = a
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Engine) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Engine) {
		s.logger = logger
	}
}

func WithTraitPolicy(p TraitPolicy) Option {
	return func(s *Engine) {
		s.policy = p
	}
}

func WithThreshold(threshold int) Option {
	return func(s *Engine) {
		if threshold > 0 && threshold <= models.MaxScore {
			s.threshold = threshold
		}
	}
}

func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		logger:    slog.Default(),
		policy:    DefaultTraitPolicy(),
		threshold: DefaultEscalationThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Threshold is the score at and above which a partner is high risk.
func (e *Engine) Threshold() int {
	return e.threshold
}

// RecordEvent adds the event's delta to the partner's score, clamped to
// [0,100]. Crossing the threshold from below raises exactly one escalation.
func (e *Engine) RecordEvent(ctx context.Context, ev models.TrapEvent) (*models.Score, error) {
	if ev.PartnerID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "partner_id is required")
	}
	at := ev.Timestamp
	if at.IsZero() {
		at = requestcontext.Now(ctx)
	}
	at = at.UTC()
	automated := IsAutomatedClient(ev.UserAgent)

	var crossed bool
	state, err := e.store.Update(ctx, ev.PartnerID, func(st *models.State) error {
		crossed = false
		before := st.Score
		st.Score = models.Clamp(st.Score + ev.RiskDelta)
		st.Hits = append(e.policy.prune(st.Hits, at), models.Hit{At: at, Delta: ev.RiskDelta, Automated: automated})
		st.UpdatedAt = at
		if before < e.threshold && st.Score >= e.threshold && !st.Escalated {
			st.Escalated = true
			crossed = true
		}
		return nil
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update risk score")
	}
	if e.metrics != nil {
		e.metrics.ObserveEvent(state.Score)
	}

	if crossed {
		e.escalate(ctx, ev, state.Score)
	}
	return e.view(state, at), nil
}

func (e *Engine) escalate(ctx context.Context, ev models.TrapEvent, score int) {
	if e.metrics != nil {
		e.metrics.IncEscalation()
	}
	e.logger.WarnContext(ctx, "partner risk crossed escalation threshold",
		"partner_id", ev.PartnerID,
		"score", score,
		"threshold", e.threshold,
		"request_id", requestcontext.RequestID(ctx),
	)
	if e.auditor != nil {
		if _, err := e.auditor.Emit(ctx, audit.Entry{
			Kind:      audit.KindEscalation,
			PartnerID: ev.PartnerID,
			UserID:    ev.UserID,
			Reason:    "user_escalation",
			Detail:    "score=" + strconv.Itoa(score),
		}); err != nil {
			e.logger.ErrorContext(ctx, "failed to audit escalation", "error", err, "partner_id", ev.PartnerID)
		}
	}
	if e.escalator != nil {
		if err := e.escalator.RaiseEscalation(ctx, ev.PartnerID, score); err != nil {
			e.logger.ErrorContext(ctx, "failed to raise escalation alert", "error", err, "partner_id", ev.PartnerID)
		}
	}
}

// GetScore never fails for an unknown partner; it returns a zero score.
func (e *Engine) GetScore(ctx context.Context, partnerID string) (*models.Score, error) {
	state, err := e.store.Get(ctx, partnerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read risk score")
	}
	if state == nil {
		return &models.Score{PartnerID: partnerID, Traits: []string{}}, nil
	}
	return e.view(state, requestcontext.Now(ctx).UTC()), nil
}

// ResetScore zeroes the score and re-arms escalation along with the partner's
// high risk alert. Trap history stays in the audit log.
func (e *Engine) ResetScore(ctx context.Context, partnerID string) (*models.Score, error) {
	if partnerID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "partner_id is required")
	}
	now := requestcontext.Now(ctx).UTC()
	var previous int
	state, err := e.store.Update(ctx, partnerID, func(st *models.State) error {
		previous = st.Score
		st.Score = 0
		st.Hits = nil
		st.Escalated = false
		st.UpdatedAt = now
		st.ResetAt = now
		return nil
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset risk score")
	}
	if e.metrics != nil {
		e.metrics.IncReset()
	}
	if e.escalator != nil {
		if err := e.escalator.ClearEscalation(ctx, partnerID); err != nil {
			e.logger.WarnContext(ctx, "failed to re-arm partner alerts",
				"partner_id", partnerID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	if e.auditor != nil {
		if _, err := e.auditor.Emit(ctx, audit.Entry{
			Kind:      audit.KindRiskReset,
			PartnerID: partnerID,
			Detail:    fmt.Sprintf("previous_score=%d", previous),
		}); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to audit risk reset")
		}
	}
	e.logger.InfoContext(ctx, "partner risk score reset",
		"partner_id", partnerID,
		"previous_score", previous,
		"request_id", requestcontext.RequestID(ctx),
	)
	return e.view(state, now), nil
}

// ListScores returns the current view of every partner with recorded state.
func (e *Engine) ListScores(ctx context.Context) ([]*models.Score, error) {
	states, err := e.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list risk scores")
	}
	now := requestcontext.Now(ctx).UTC()
	out := make([]*models.Score, 0, len(states))
	for _, st := range states {
		out = append(out, e.view(st, now))
	}
	return out, nil
}

func (e *Engine) view(st *models.State, now time.Time) *models.Score {
	return &models.Score{
		PartnerID: st.PartnerID,
		Score:     st.Score,
		Traits:    e.policy.Traits(st.Hits, now),
		UpdatedAt: st.UpdatedAt,
	}
}
