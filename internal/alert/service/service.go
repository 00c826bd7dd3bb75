package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"datasentinel/internal/alert/metrics"
	"datasentinel/internal/alert/models"
	riskmodels "datasentinel/internal/risk/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/requestcontext"
)

// Store holds the alert feeds. Appends are ordered per feed.
type Store interface {
	AppendAdmin(ctx context.Context, a *models.AdminAlert) error
	ListAdmin(ctx context.Context) ([]*models.AdminAlert, error)
	AppendUser(ctx context.Context, a *models.UserAlert) error
	ListUser(ctx context.Context, userID string) ([]*models.UserAlert, error)
	AppendNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRaised(ctx context.Context, key string) (bool, error)
	ClearRaised(ctx context.Context, key string) error
}

// RiskReader supplies the partner's current score for user-initiated alerts.
type RiskReader interface {
	GetScore(ctx context.Context, partnerID string) (*riskmodels.Score, error)
}

type Option func(*Service)

func WithRiskReader(r RiskReader) Option {
	return func(s *Service) {
		s.risk = r
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

// Service is the alerting collaborator: it receives risk escalations, user
// requests for admin action, and per-decision user notifications.
type Service struct {
	store   Store
	risk    RiskReader
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRiskReader binds the score source after construction, for wiring where
// the risk engine itself escalates into this service.
func (s *Service) SetRiskReader(r RiskReader) {
	s.risk = r
}

// RaiseEscalation records the admin alert for a partner whose risk score
// crossed the escalation threshold.
func (s *Service) RaiseEscalation(ctx context.Context, partnerID string, score int) error {
	alert := &models.AdminAlert{
		ID:        uuid.NewString(),
		Type:      models.TypeUserEscalation,
		Source:    models.SourceRiskThreshold,
		Message:   fmt.Sprintf("Partner %s reached risk score %d", partnerID, score),
		PartnerID: partnerID,
		RiskScore: score,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.AppendAdmin(ctx, alert); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record escalation alert")
	}
	s.incAdmin(alert.Source)
	s.logger.WarnContext(ctx, "partner escalated",
		"request_id", requestcontext.RequestID(ctx),
		"partner_id", partnerID,
		"risk_score", score,
	)
	return nil
}

// RaiseHighRisk records one admin alert per partner the first time an access
// request is denied for high risk. Later calls for the same partner are no-ops
// until the partner's risk is reset. A failed append releases the mark so the
// next denial retries.
func (s *Service) RaiseHighRisk(ctx context.Context, partnerID string, score int) error {
	key := highRiskKey(partnerID)
	first, err := s.store.MarkRaised(ctx, key)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check high risk alert")
	}
	if !first {
		return nil
	}
	alert := &models.AdminAlert{
		ID:        uuid.NewString(),
		Type:      models.TypeHighRisk,
		Source:    models.SourceAccessDenial,
		Message:   fmt.Sprintf("Access denied to high risk partner %s (score %d)", partnerID, score),
		PartnerID: partnerID,
		RiskScore: score,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.AppendAdmin(ctx, alert); err != nil {
		if clearErr := s.store.ClearRaised(ctx, key); clearErr != nil {
			s.logger.ErrorContext(ctx, "failed to release high risk alert mark",
				"request_id", requestcontext.RequestID(ctx),
				"partner_id", partnerID,
				"error", clearErr,
			)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record high risk alert")
	}
	s.incAdmin(alert.Source)
	return nil
}

// ClearEscalation re-arms the high risk alert after partnerID's score is reset.
func (s *Service) ClearEscalation(ctx context.Context, partnerID string) error {
	if err := s.store.ClearRaised(ctx, highRiskKey(partnerID)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to re-arm high risk alert")
	}
	return nil
}

func highRiskKey(partnerID string) string {
	return string(models.TypeHighRisk) + ":" + partnerID
}

// RequestAdminAction lets a user escalate a concern about a partner.
func (s *Service) RequestAdminAction(ctx context.Context, userID, partnerID, reason string) (*models.AdminAlert, error) {
	if userID == "" || partnerID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "user_id and partner_id are required")
	}
	var riskScore int
	if s.risk != nil {
		score, err := s.risk.GetScore(ctx, partnerID)
		if err != nil {
			s.logger.WarnContext(ctx, "risk score unavailable for admin request",
				"request_id", requestcontext.RequestID(ctx),
				"partner_id", partnerID,
				"error", err,
			)
		} else {
			riskScore = score.Score
		}
	}
	message := fmt.Sprintf("User %s requests admin action against %s", userID, partnerID)
	if reason != "" {
		message += ": " + reason
	}
	alert := &models.AdminAlert{
		ID:        uuid.NewString(),
		Type:      models.TypeUserEscalation,
		Source:    models.SourceUserRequest,
		Message:   message,
		PartnerID: partnerID,
		UserID:    userID,
		RiskScore: riskScore,
		Reason:    reason,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.AppendAdmin(ctx, alert); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record admin request")
	}
	s.incAdmin(alert.Source)
	return alert, nil
}

// AlertUser tells userID that partnerID was caught misusing data.
func (s *Service) AlertUser(ctx context.Context, userID, partnerID string, risk int) error {
	alert := &models.UserAlert{
		ID:        uuid.NewString(),
		UserID:    userID,
		PartnerID: partnerID,
		Message:   fmt.Sprintf("Suspicious activity detected for partner %s holding your data", partnerID),
		Risk:      risk,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.AppendUser(ctx, alert); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record user alert")
	}
	if s.metrics != nil {
		s.metrics.IncUserAlert()
	}
	return nil
}

// Notify appends a notification for userID.
func (s *Service) Notify(ctx context.Context, userID, partnerID string, level models.Level, message string) error {
	n := &models.Notification{
		ID:          uuid.NewString(),
		UserID:      userID,
		PartnerID:   partnerID,
		Level:       level,
		Message:     message,
		CanEscalate: level.CanEscalate(),
		CreatedAt:   requestcontext.Now(ctx).UTC(),
	}
	if err := s.store.AppendNotification(ctx, n); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record notification")
	}
	if s.metrics != nil {
		s.metrics.IncNotification(string(level))
	}
	return nil
}

func (s *Service) AdminAlerts(ctx context.Context) ([]*models.AdminAlert, error) {
	alerts, err := s.store.ListAdmin(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list admin alerts")
	}
	return alerts, nil
}

func (s *Service) UserAlerts(ctx context.Context, userID string) ([]*models.UserAlert, error) {
	alerts, err := s.store.ListUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list user alerts")
	}
	return alerts, nil
}

// Notifications lists userID's notifications; an empty userID lists all.
func (s *Service) Notifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	ns, err := s.store.ListNotifications(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications")
	}
	return ns, nil
}

func (s *Service) incAdmin(source models.Source) {
	if s.metrics != nil {
		s.metrics.IncAdminAlert(string(source))
	}
}
