package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	alertmodels "datasentinel/internal/alert/models"
	"datasentinel/internal/audit"
	htmodels "datasentinel/internal/honeytoken/models"
	riskmodels "datasentinel/internal/risk/models"
	"datasentinel/internal/trap/metrics"
	"datasentinel/internal/trap/models"
	wmmodels "datasentinel/internal/watermark/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/privacy"
	"datasentinel/pkg/platform/tracer"
	"datasentinel/pkg/platform/validation"
	"datasentinel/pkg/requestcontext"
)

// Honeytokens resolves and attributes planted tokens.
type Honeytokens interface {
	ResolveUsage(ctx context.Context, value string) (*htmodels.Usage, error)
	MarkUsed(ctx context.Context, tokenID, partnerID string) (*htmodels.Honeytoken, error)
	AssignedTo(ctx context.Context, partnerID string) ([]*htmodels.Honeytoken, error)
}

// Watermarks resolves leaked markers. Decode audits every attempt itself.
type Watermarks interface {
	Decode(ctx context.Context, marker string) (*wmmodels.DecodeResult, error)
}

type Risk interface {
	RecordEvent(ctx context.Context, ev riskmodels.TrapEvent) (*riskmodels.Score, error)
	GetScore(ctx context.Context, partnerID string) (*riskmodels.Score, error)
}

type Auditor interface {
	Emit(ctx context.Context, entry audit.Entry) (audit.Entry, error)
	List(ctx context.Context, filter audit.Filter) ([]audit.Entry, error)
}

// Alerter tells the affected user about a hit.
type Alerter interface {
	AlertUser(ctx context.Context, userID, partnerID string, risk int) error
	Notify(ctx context.Context, userID, partnerID string, level alertmodels.Level, message string) error
}

const (
	sourceTest     = "test"
	sourceSimulate = "simulate"
)

type Option func(*Service)

// Service is the trap hit detector. A value that matches nothing is a normal
// result; only malformed input and store failures are errors.
type Service struct {
	honeytokens Honeytokens
	watermarks  Watermarks
	risk        Risk
	auditor     Auditor
	alerter     Alerter
	tracer      tracer.Tracer
	metrics     *metrics.Metrics
	logger      *slog.Logger
	delta       int
	probability float64
	roll        func() float64
}

func WithAlerter(a Alerter) Option {
	return func(s *Service) {
		s.alerter = a
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRiskDelta sets the score contribution of each hit.
func WithRiskDelta(delta int) Option {
	return func(s *Service) {
		if delta > 0 {
			s.delta = delta
		}
	}
}

// WithHitProbability sets the chance that a simulated hit lands for a partner
// holding no attributed honeytoken. The default of 0 keeps simulation
// deterministic.
func WithHitProbability(p float64) Option {
	return func(s *Service) {
		if p >= 0 && p <= 1 {
			s.probability = p
		}
	}
}

// WithRand replaces the source used for simulated hit rolls.
func WithRand(roll func() float64) Option {
	return func(s *Service) {
		s.roll = roll
	}
}

func New(honeytokens Honeytokens, watermarks Watermarks, risk Risk, auditor Auditor, opts ...Option) *Service {
	if honeytokens == nil || watermarks == nil || risk == nil || auditor == nil {
		panic("trap.New: honeytokens, watermarks, risk and auditor are required")
	}
	s := &Service{
		honeytokens: honeytokens,
		watermarks:  watermarks,
		risk:        risk,
		auditor:     auditor,
		tracer:      tracer.NewNoop(),
		logger:      slog.Default(),
		delta:       models.DefaultRiskDelta,
		roll:        rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TestValue checks value against planted honeytokens, then against issued
// watermarks. On a match the hit is attributed to the partner the artifact
// resolves to, which takes precedence over the submitting partner. Matching
// is exact: value is never trimmed or case-folded.
func (s *Service) TestValue(ctx context.Context, partnerID, value string) (result *models.TestResult, err error) {
	if err := checkPartnerID(partnerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(value) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "value is required")
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanTestValue, tracer.String(tracer.AttrPartnerID, partnerID))
	defer func() { span.End(err) }()

	result, err = s.match(ctx, partnerID, value)
	if err != nil {
		return nil, err
	}
	s.countCheck(sourceTest, result.Match)
	span.SetAttributes(
		tracer.Bool(tracer.AttrHit, result.Hit),
		tracer.String(tracer.AttrMatchKind, string(result.Match)),
	)
	if !result.Hit {
		return result, nil
	}

	if result.Mismatch {
		span.SetAttributes(tracer.Bool(tracer.AttrPartnerDiffer, true))
		span.AddEvent(tracer.EventPartnerMismatch, tracer.String(tracer.AttrPartnerID, result.PartnerID))
		if s.metrics != nil {
			s.metrics.IncMismatch()
		}
		s.logger.WarnContext(ctx, "trap value attributed to a different partner",
			"submitted_partner", partnerID,
			"attributed_partner", result.PartnerID,
			"match", result.Match,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	score, err := s.recordHit(ctx, result.PartnerID, result.UserID, result.Reference, string(result.Match))
	if err != nil {
		return nil, err
	}
	result.Score = score
	span.SetAttributes(tracer.Int(tracer.AttrRiskScore, score.Score))
	return result, nil
}

// match resolves value without side effects on risk. A honeytoken match
// attributes the token on first use.
func (s *Service) match(ctx context.Context, partnerID, value string) (*models.TestResult, error) {
	result := &models.TestResult{
		Match:            models.MatchNone,
		SubmittedPartner: partnerID,
		PartnerID:        partnerID,
		Detail:           "no match",
	}

	usage, err := s.honeytokens.ResolveUsage(ctx, value)
	if err != nil {
		return nil, err
	}
	if usage.IsKnown {
		token, err := s.honeytokens.MarkUsed(ctx, usage.Token.ID, partnerID)
		if err != nil {
			return nil, err
		}
		result.Hit = true
		result.Match = models.MatchHoneytoken
		result.Reference = token.ID
		result.PartnerID = token.AssignedPartner
		result.Detail = fmt.Sprintf("honeytoken %s (%s) matched", token.ID, token.Type)
		s.flagMismatch(result)
		return result, nil
	}

	decoded, err := s.watermarks.Decode(ctx, value)
	if err != nil {
		return nil, err
	}
	if decoded.Found {
		wm := decoded.Watermark
		result.Hit = true
		result.Match = models.MatchWatermark
		result.Reference = wm.Marker
		result.PartnerID = wm.PartnerID
		result.UserID = wm.UserID
		result.Detail = fmt.Sprintf("watermark issued to %s for user %s matched", wm.PartnerID, wm.UserID)
		s.flagMismatch(result)
	}
	return result, nil
}

func (s *Service) flagMismatch(r *models.TestResult) {
	if r.PartnerID == "" || r.PartnerID == r.SubmittedPartner {
		r.PartnerID = r.SubmittedPartner
		return
	}
	r.Mismatch = true
	r.Detail += fmt.Sprintf("; warning: attributed to %s, not submitting partner %s", r.PartnerID, r.SubmittedPartner)
}

// SimulateHit synthesizes a hit for testing. A partner that already holds an
// attributed honeytoken always hits; otherwise the configured probability
// decides.
func (s *Service) SimulateHit(ctx context.Context, partnerID, userID string) (result *models.SimulationResult, err error) {
	if err := checkPartnerID(partnerID); err != nil {
		return nil, err
	}
	if err := validation.CheckReference("user_id", userID); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanSimulateHit, tracer.String(tracer.AttrPartnerID, partnerID))
	defer func() { span.End(err) }()

	held, err := s.honeytokens.AssignedTo(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	hit := len(held) > 0 || (s.probability > 0 && s.roll() < s.probability)
	span.SetAttributes(tracer.Bool(tracer.AttrHit, hit))

	if !hit {
		s.countCheck(sourceSimulate, models.MatchNone)
		score, err := s.risk.GetScore(ctx, partnerID)
		if err != nil {
			return nil, err
		}
		return &models.SimulationResult{TrapHit: false, Score: score}, nil
	}

	s.countCheck(sourceSimulate, models.MatchHoneytoken)
	reference := "simulated"
	if len(held) > 0 {
		reference = held[0].ID
	}
	score, err := s.recordHit(ctx, partnerID, userID, reference, "simulated")
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Int(tracer.AttrRiskScore, score.Score))
	return &models.SimulationResult{TrapHit: true, Score: score}, nil
}

// recordHit appends the trap event to the audit log before applying it to the
// partner's score, so every score change has a logged cause.
func (s *Service) recordHit(ctx context.Context, partnerID, userID, reference, detail string) (*riskmodels.Score, error) {
	ip := requestcontext.ClientIP(ctx)
	userAgent := requestcontext.UserAgent(ctx)

	if _, err := s.auditor.Emit(ctx, audit.Entry{
		Kind:      audit.KindTrapHit,
		PartnerID: partnerID,
		UserID:    userID,
		Subject:   reference,
		Outcome:   audit.OutcomeHit,
		Detail:    detail,
		IP:        ip,
		RiskDelta: s.delta,
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record trap hit")
	}

	score, err := s.risk.RecordEvent(ctx, riskmodels.TrapEvent{
		PartnerID: partnerID,
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		Matched:   reference,
		RiskDelta: s.delta,
		Timestamp: requestcontext.Now(ctx),
	})
	if err != nil {
		return nil, err
	}

	s.logger.WarnContext(ctx, "trap hit recorded",
		"partner_id", partnerID,
		"user_id", userID,
		"reference", privacy.Fingerprint(reference),
		"score", score.Score,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.alertUser(ctx, userID, partnerID, score.Score)
	return score, nil
}

func (s *Service) alertUser(ctx context.Context, userID, partnerID string, risk int) {
	if s.alerter == nil || userID == "" {
		return
	}
	if err := s.alerter.AlertUser(ctx, userID, partnerID, risk); err != nil {
		s.logger.ErrorContext(ctx, "failed to alert user about trap hit", "error", err, "user_id", userID)
	}
	message := fmt.Sprintf("Partner %s triggered a trap on your data", partnerID)
	if err := s.alerter.Notify(ctx, userID, partnerID, alertmodels.LevelThreat, message); err != nil {
		s.logger.ErrorContext(ctx, "failed to notify user about trap hit", "error", err, "user_id", userID)
	}
}

// Logs returns recorded trap hits, optionally narrowed to one user.
func (s *Service) Logs(ctx context.Context, userID string) ([]audit.Entry, error) {
	entries, err := s.auditor.List(ctx, audit.Filter{
		Kinds:  []audit.Kind{audit.KindTrapHit},
		UserID: userID,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read trap log")
	}
	return entries, nil
}

func (s *Service) countCheck(source string, match models.MatchKind) {
	if s.metrics != nil {
		s.metrics.IncCheck(source, string(match))
	}
}

func checkPartnerID(partnerID string) error {
	if partnerID == "*" {
		return dErrors.New(dErrors.CodeValidation, "partner_id must identify a single partner")
	}
	return validation.CheckReference("partner_id", partnerID)
}
