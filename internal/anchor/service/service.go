package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"datasentinel/internal/anchor/metrics"
	"datasentinel/internal/anchor/models"
	htmodels "datasentinel/internal/honeytoken/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/sentinel"
	"datasentinel/pkg/platform/tracer"
	"datasentinel/pkg/requestcontext"
)

// Registry is the external register-once set keyed by content hash.
// Error Contract:
// - errors wrapping sentinel.ErrUnavailable mean the registry could not be reached
// - Register returns false, nil when the hash was already registered
type Registry interface {
	IsRegistered(ctx context.Context, hash string) (bool, error)
	Register(ctx context.Context, hash string, meta models.Metadata) (bool, error)
}

type Honeytokens interface {
	Get(ctx context.Context, id string) (*htmodels.Honeytoken, error)
}

const (
	opRegister = "register"
	opCheck    = "is_registered"
)

type Option func(*Service)

// Service anchors honeytokens in the registry. It is the only component that
// depends on the registry; a registry outage fails anchoring alone.
type Service struct {
	tokens   Honeytokens
	registry Registry
	tracer   tracer.Tracer
	metrics  *metrics.Metrics
	logger   *slog.Logger
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

func New(tokens Honeytokens, registry Registry, opts ...Option) *Service {
	s := &Service{
		tokens:   tokens,
		registry: registry,
		tracer:   tracer.NewNoop(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Anchor registers the token's hash. Re-anchoring an anchored token succeeds
// with Created=false.
func (s *Service) Anchor(ctx context.Context, tokenID string) (result *models.Anchor, err error) {
	token, err := s.tokens.Get(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	hash := models.Hash(token.Value)

	ctx, span := s.tracer.Start(ctx, tracer.SpanAnchor, tracer.String("token_id", token.ID))
	defer func() { span.End(err) }()

	start := time.Now()
	created, err := s.registry.Register(ctx, hash, models.Metadata{
		TokenID:   token.ID,
		Type:      token.Type.String(),
		CreatedAt: token.CreatedAt,
	})
	s.observe(opRegister, err, start)
	if err != nil {
		return nil, s.translate(ctx, opRegister, token.ID, err)
	}

	if created {
		s.logger.InfoContext(ctx, "honeytoken anchored",
			"token_id", token.ID,
			"hash", hash,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return &models.Anchor{
		TokenID:    token.ID,
		Hash:       hash,
		Registered: true,
		Created:    created,
		CheckedAt:  requestcontext.Now(ctx).UTC(),
	}, nil
}

// Status checks whether the token's hash is registered.
func (s *Service) Status(ctx context.Context, tokenID string) (result *models.Anchor, err error) {
	token, err := s.tokens.Get(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	hash := models.Hash(token.Value)

	ctx, span := s.tracer.Start(ctx, tracer.SpanAnchorCheck, tracer.String("token_id", token.ID))
	defer func() { span.End(err) }()

	start := time.Now()
	registered, err := s.registry.IsRegistered(ctx, hash)
	s.observe(opCheck, err, start)
	if err != nil {
		return nil, s.translate(ctx, opCheck, token.ID, err)
	}
	return &models.Anchor{
		TokenID:    token.ID,
		Hash:       hash,
		Registered: registered,
		CheckedAt:  requestcontext.Now(ctx).UTC(),
	}, nil
}

func (s *Service) translate(ctx context.Context, op, tokenID string, err error) error {
	s.logger.WarnContext(ctx, "honeytoken registry call failed",
		"op", op,
		"token_id", tokenID,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	if errors.Is(err, sentinel.ErrInvalidInput) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "honeytoken registry rejected the request")
	}
	return dErrors.Wrap(err, dErrors.CodeDependency, "honeytoken registry unavailable")
}

func (s *Service) observe(op string, err error, start time.Time) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.ObserveCall(op, outcome, time.Since(start))
}
