package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"datasentinel/internal/access/metrics"
	"datasentinel/internal/access/models"
	alertmodels "datasentinel/internal/alert/models"
	"datasentinel/internal/audit"
	consentmodels "datasentinel/internal/consent/models"
	riskmodels "datasentinel/internal/risk/models"
	dErrors "datasentinel/pkg/domain-errors"
	platformstrings "datasentinel/pkg/platform/strings"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

const (
	evidenceTimeout = 5 * time.Second
	defaultFanout   = 16
)

// Store persists restrictions and user restriction requests.
// Error Contract:
// - Add and Approve are idempotent; created is false when the entry existed
// - Remove reports false, nil when there was nothing to lift
type Store interface {
	Add(ctx context.Context, r *models.Restriction) (bool, error)
	Remove(ctx context.Context, partnerID, userID string) (bool, error)
	ListByPartner(ctx context.Context, partnerID string) ([]*models.Restriction, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Restriction, error)
	List(ctx context.Context) ([]*models.Restriction, error)
	SaveRequest(ctx context.Context, req *models.RestrictionRequest) (*models.RestrictionRequest, bool, error)
	Approve(ctx context.Context, r *models.Restriction, at time.Time) (bool, error)
	ListRequests(ctx context.Context) ([]*models.RestrictionRequest, error)
}

// ConsentReader returns nil, nil for a user without a consent record.
type ConsentReader interface {
	Lookup(ctx context.Context, userID string) (*consentmodels.Record, error)
}

type RiskReader interface {
	GetScore(ctx context.Context, partnerID string) (*riskmodels.Score, error)
	Threshold() int
}

// Alerter receives the high-risk admin alert and per-decision user notifications.
type Alerter interface {
	RaiseHighRisk(ctx context.Context, partnerID string, score int) error
	Notify(ctx context.Context, userID, partnerID string, level alertmodels.Level, message string) error
}

type Auditor interface {
	Emit(ctx context.Context, entry audit.Entry) (audit.Entry, error)
	List(ctx context.Context, filter audit.Filter) ([]audit.Entry, error)
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithAlerter(a Alerter) Option {
	return func(s *Service) {
		s.alerter = a
	}
}

// WithFanout bounds concurrent consent lookups within one request.
func WithFanout(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fanout = n
		}
	}
}

// Service is the consent and access policy engine. Every partner data
// request is evaluated per user against restrictions, consent and partner risk.
type Service struct {
	store   Store
	consent ConsentReader
	risk    RiskReader
	auditor Auditor
	alerter Alerter
	metrics *metrics.Metrics
	logger  *slog.Logger
	fanout  int
}

// New creates the engine. Panics if a required dependency is nil.
func New(store Store, consent ConsentReader, risk RiskReader, auditor Auditor, opts ...Option) *Service {
	if store == nil {
		panic("access.New: restriction store is required")
	}
	if consent == nil {
		panic("access.New: consent reader is required")
	}
	if risk == nil {
		panic("access.New: risk reader is required")
	}
	if auditor == nil {
		panic("access.New: auditor is required for the access audit trail")
	}
	s := &Service{
		store:   store,
		consent: consent,
		risk:    risk,
		auditor: auditor,
		logger:  slog.Default(),
		fanout:  defaultFanout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateRequest(req models.Request) error {
	if err := checkPartnerID(req.PartnerID); err != nil {
		return err
	}
	if len(req.UserIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "requested_users must not be empty")
	}
	if err := validation.CheckSliceCount("requested_users", len(req.UserIDs), validation.MaxRequestedUsers); err != nil {
		return err
	}
	for _, userID := range req.UserIDs {
		if err := checkUserID(userID); err != nil {
			return err
		}
	}
	if req.DaysValid < 1 || req.DaysValid > validation.MaxDaysValid {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("days_valid must be between 1 and %d", validation.MaxDaysValid))
	}
	return nil
}

func checkUserID(userID string) error {
	if err := validation.CheckReference("user_id", userID); err != nil {
		return err
	}
	if userID == models.AllUsers {
		return dErrors.New(dErrors.CodeValidation, "user_id must name a user")
	}
	return nil
}

// RequestData evaluates req for every requested user. One user's denial
// never fails the call; only infrastructure failures do.
func (s *Service) RequestData(ctx context.Context, req models.Request) ([]models.Decision, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveEvaluateLatency(time.Since(start))
		}
	}()

	now := requestcontext.Now(ctx).UTC()
	userIDs := platformstrings.DedupeAndTrim(req.UserIDs)

	ev, err := s.gatherPartnerEvidence(ctx, req.PartnerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load partner evidence")
	}
	consents, err := s.gatherConsents(ctx, userIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load consent records")
	}

	decisions := make([]models.Decision, 0, len(userIDs))
	highRisk := false
	for i, userID := range userIDs {
		d := BuildDecision(req.PartnerID, userID, Input{
			Restricted: ev.isRestricted(userID),
			Consent:    consents[i],
			Category:   req.Category(),
			RiskScore:  ev.riskScore,
			Threshold:  s.risk.Threshold(),
			Now:        now,
			DaysValid:  req.DaysValid,
		})
		d = s.record(ctx, req, d)
		highRisk = highRisk || d.Reason == models.ReasonHighRisk
		decisions = append(decisions, d)
	}

	if highRisk && s.alerter != nil {
		if err := s.alerter.RaiseHighRisk(ctx, req.PartnerID, ev.riskScore); err != nil {
			s.logger.ErrorContext(ctx, "failed to raise high risk alert",
				"request_id", requestcontext.RequestID(ctx),
				"partner_id", req.PartnerID,
				"error", err,
			)
		}
	}
	return decisions, nil
}

// record audits and announces one decision. A grant whose audit entry cannot
// be written is turned into a denial: no access without a trail.
func (s *Service) record(ctx context.Context, req models.Request, d models.Decision) models.Decision {
	outcome := audit.OutcomeDenied
	if d.Granted() {
		outcome = audit.OutcomeGranted
	}
	_, err := s.auditor.Emit(ctx, audit.Entry{
		Kind:       audit.KindAccessDecision,
		PartnerID:  d.PartnerID,
		UserID:     d.UserID,
		Subject:    req.Purpose,
		Outcome:    outcome,
		Reason:     string(d.Reason),
		Detail:     req.Region,
		IP:         requestcontext.ClientIP(ctx),
		OccurredAt: d.EvaluatedAt,
	})
	if err != nil {
		if d.Granted() {
			s.logger.ErrorContext(ctx, "audit failed for access grant - denying",
				"request_id", requestcontext.RequestID(ctx),
				"partner_id", d.PartnerID,
				"user_id", d.UserID,
				"error", err,
			)
			d.Status = models.StatusDenied
			d.Reason = models.ReasonAuditUnavailable
			d.Expiry = nil
		} else {
			s.logger.WarnContext(ctx, "failed to audit access denial",
				"request_id", requestcontext.RequestID(ctx),
				"partner_id", d.PartnerID,
				"user_id", d.UserID,
				"error", err,
			)
		}
	}

	if s.metrics != nil {
		s.metrics.IncDecision(string(d.Status), string(d.Reason))
	}
	s.notify(ctx, d)
	return d
}

func (s *Service) notify(ctx context.Context, d models.Decision) {
	if s.alerter == nil {
		return
	}
	level := alertmodels.LevelWarning
	message := fmt.Sprintf("Partner %s was denied access to your data: %s", d.PartnerID, d.Reason)
	switch {
	case d.Granted():
		level = alertmodels.LevelInfo
		message = fmt.Sprintf("Partner %s was granted access to your data until %s", d.PartnerID, d.Expiry.Format(time.DateOnly))
	case d.Reason == models.ReasonHighRisk:
		level = alertmodels.LevelThreat
	}
	if err := s.alerter.Notify(ctx, d.UserID, d.PartnerID, level, message); err != nil {
		s.logger.WarnContext(ctx, "failed to notify user of access decision",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", d.UserID,
			"error", err,
		)
	}
}

// AccessHistory lists the access decisions recorded for userID, oldest first.
func (s *Service) AccessHistory(ctx context.Context, userID string) ([]audit.Entry, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	entries, err := s.auditor.List(ctx, audit.Filter{
		Kinds:  []audit.Kind{audit.KindAccessDecision},
		UserID: userID,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read access history")
	}
	return entries, nil
}

// GeneratePolicy builds the metadata attached to data shared for purpose.
func (s *Service) GeneratePolicy(ctx context.Context, purpose string, daysValid int, region string) (*models.Policy, error) {
	if purpose == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "purpose is required")
	}
	if daysValid < 1 || daysValid > validation.MaxDaysValid {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("days_valid must be between 1 and %d", validation.MaxDaysValid))
	}
	return &models.Policy{
		Purpose:         purpose,
		ExpiryDate:      requestcontext.Now(ctx).UTC().AddDate(0, 0, daysValid),
		RetentionPolicy: models.RetentionStandard,
		GeoRestriction:  region,
	}, nil
}

// RestrictedPartners returns the partners blocked from userID's data,
// partner-wide blocks included.
func (s *Service) RestrictedPartners(ctx context.Context, userID string) ([]string, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	restrictions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list restrictions")
	}
	partners := make([]string, 0, len(restrictions))
	for _, r := range restrictions {
		partners = append(partners, r.PartnerID)
	}
	slices.Sort(partners)
	return slices.Compact(partners), nil
}

func (s *Service) Restrictions(ctx context.Context) ([]*models.Restriction, error) {
	rs, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list restrictions")
	}
	return rs, nil
}
