package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"datasentinel/internal/consent/metrics"
	"datasentinel/internal/consent/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/sentinel"
	"datasentinel/pkg/requestcontext"
)

// Store persists one consent record per user.
// Error Contract:
//   - Find returns sentinel.ErrNotFound when the user has no record
//   - Execute creates the record when absent and applies mutate atomically per
//     user; an error from mutate aborts the write and is returned unchanged
type Store interface {
	Find(ctx context.Context, userID string) (*models.Record, error)
	Save(ctx context.Context, record *models.Record) error
	Execute(ctx context.Context, userID string, mutate func(*models.Record) error) (*models.Record, error)
	List(ctx context.Context) ([]*models.Record, error)
}

const defaultConsentTTL = 365 * 24 * time.Hour

type Option func(*Service)

// Service owns the consent lifecycle: users grant or withdraw category flags
// and the access engine reads the result.
type Service struct {
	store      Store
	metrics    *metrics.Metrics
	logger     *slog.Logger
	consentTTL time.Duration
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

// WithConsentTTL sets the expiry applied to a record created without one.
func WithConsentTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.consentTTL = ttl
		}
	}
}

func New(store Store, opts ...Option) *Service {
	svc := &Service{
		store:      store,
		logger:     slog.Default(),
		consentTTL: defaultConsentTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Get returns the user's consent record.
func (s *Service) Get(ctx context.Context, userID string) (*models.Record, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	record, err := s.store.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.incLookup(false)
			return nil, dErrors.New(dErrors.CodeNotFound, "consent record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load consent record")
	}
	s.incLookup(true)
	return record, nil
}

// Lookup is Get for callers that treat a missing record as a normal outcome.
// It returns nil, nil when the user has no record.
func (s *Service) Lookup(ctx context.Context, userID string) (*models.Record, error) {
	record, err := s.store.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load consent record")
	}
	return record, nil
}

// Update merges a partial change into the user's record, creating it when
// absent. A new record without an explicit expiry gets the default TTL.
func (s *Service) Update(ctx context.Context, userID string, update models.Update) (*models.Record, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	if update.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one consent field is required")
	}
	start := time.Now()
	now := requestcontext.Now(ctx).UTC()

	var created bool
	record, err := s.store.Execute(ctx, userID, func(r *models.Record) error {
		created = r.UpdatedAt.IsZero()
		if created && update.ExpiryDate == nil {
			r.ExpiryDate = models.EndOfDay(now.Add(s.consentTTL))
		}
		update.Apply(r)
		r.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update consent record")
	}

	if s.metrics != nil {
		s.metrics.IncUpdate(created)
		s.metrics.ObserveUpdateLatency(time.Since(start))
	}
	s.logger.InfoContext(ctx, "consent updated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"created", created,
		"watermark", record.Watermark,
		"policy", record.Policy,
		"honeytoken", record.Honeytoken,
		"expiry_date", record.ExpiryDate,
	)
	return record, nil
}

// Seed stores a complete record as given, replacing any existing one.
func (s *Service) Seed(ctx context.Context, record *models.Record) error {
	if record == nil || record.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = requestcontext.Now(ctx).UTC()
	}
	if err := s.store.Save(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed consent record")
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*models.Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consent records")
	}
	return records, nil
}

func (s *Service) incLookup(found bool) {
	if s.metrics != nil {
		s.metrics.IncLookup(found)
	}
}
