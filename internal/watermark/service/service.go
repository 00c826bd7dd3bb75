package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"datasentinel/internal/audit"
	"datasentinel/internal/watermark/codec"
	"datasentinel/internal/watermark/metrics"
	"datasentinel/internal/watermark/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/privacy"
	"datasentinel/pkg/platform/sentinel"
	"datasentinel/pkg/requestcontext"
)

// Store persists the marker table.
// Error Contract:
// - Save returns sentinel.ErrConflict if the marker is bound to another triple
// - FindByMarker returns sentinel.ErrNotFound for unknown markers
type Store interface {
	Save(ctx context.Context, wm *models.Watermark) (*models.Watermark, error)
	FindByMarker(ctx context.Context, marker string) (*models.Watermark, error)
}

// Encoder derives markers.
type Encoder interface {
	Encode(partnerID, userID string, ts time.Time) string
	WellFormed(marker string) bool
}

// Auditor records decode attempts and reads them back for the decode log.
type Auditor interface {
	Emit(ctx context.Context, entry audit.Entry) (audit.Entry, error)
	List(ctx context.Context, filter audit.Filter) ([]audit.Entry, error)
}

type Option func(*Service)

type Service struct {
	store   Store
	codec   Encoder
	auditor Auditor
	metrics *metrics.Metrics
	logger  *slog.Logger
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

func New(store Store, codec Encoder, auditor Auditor, opts ...Option) *Service {
	s := &Service{
		store:   store,
		codec:   codec,
		auditor: auditor,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate issues the marker for a disclosure and stores the mapping needed to
// resolve it later. Timestamps are kept at microsecond precision.
func (s *Service) Generate(ctx context.Context, partnerID, userID string, ts time.Time) (*models.Watermark, error) {
	if partnerID == "" || userID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "partner_id and user_id are required")
	}
	ts = ts.UTC().Truncate(time.Microsecond)

	wm := &models.Watermark{
		Marker:    s.codec.Encode(partnerID, userID, ts),
		PartnerID: partnerID,
		UserID:    userID,
		Timestamp: ts,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	stored, err := s.store.Save(ctx, wm)
	if errors.Is(err, sentinel.ErrConflict) {
		s.logger.ErrorContext(ctx, "watermark marker collision",
			"marker", privacy.MaskValue(wm.Marker),
			"partner_id", partnerID,
		)
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "watermark marker collision")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store watermark")
	}
	if s.metrics != nil {
		s.metrics.IncIssued()
	}
	return stored, nil
}

// Decode resolves a leaked marker. Every attempt is audited; only successful
// ones carry a culprit.
func (s *Service) Decode(ctx context.Context, marker string) (*models.DecodeResult, error) {
	if marker == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "watermark is required")
	}

	var wm *models.Watermark
	if s.codec.WellFormed(marker) {
		found, err := s.store.FindByMarker(ctx, marker)
		switch {
		case err == nil:
			wm = found
		case errors.Is(err, sentinel.ErrNotFound):
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up watermark")
		}
	}

	entry := audit.Entry{
		Kind:    audit.KindDecodeAttempt,
		Subject: marker,
		Outcome: audit.OutcomeNotFound,
		IP:      requestcontext.ClientIP(ctx),
	}
	if wm != nil {
		entry.PartnerID = wm.PartnerID
		entry.UserID = wm.UserID
		entry.Outcome = audit.OutcomeFound
		entry.Detail = codec.CanonicalTime(wm.Timestamp)
	}
	if _, err := s.auditor.Emit(ctx, entry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record decode attempt")
	}
	if s.metrics != nil {
		s.metrics.IncDecode(wm != nil)
	}

	if wm == nil {
		return &models.DecodeResult{Found: false}, nil
	}
	return &models.DecodeResult{Found: true, Watermark: wm}, nil
}

// DecodeLog returns successful attributions in the order they were recorded.
func (s *Service) DecodeLog(ctx context.Context) ([]models.DecodeLogEntry, error) {
	entries, err := s.auditor.List(ctx, audit.Filter{
		Kinds:   []audit.Kind{audit.KindDecodeAttempt},
		Outcome: audit.OutcomeFound,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read decode log")
	}
	out := make([]models.DecodeLogEntry, 0, len(entries))
	for _, e := range entries {
		issued, err := time.Parse(time.RFC3339Nano, e.Detail)
		if err != nil {
			s.logger.WarnContext(ctx, "decode log entry has no issue timestamp",
				"seq", e.Seq,
				"error", err,
			)
		}
		out = append(out, models.DecodeLogEntry{
			Leaked:    e.Subject,
			Culprit:   e.PartnerID,
			UserID:    e.UserID,
			Timestamp: issued,
			DecodedAt: e.OccurredAt,
		})
	}
	return out, nil
}
