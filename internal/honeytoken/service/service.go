package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"datasentinel/internal/honeytoken/metrics"
	"datasentinel/internal/honeytoken/models"
	dErrors "datasentinel/pkg/domain-errors"
	"datasentinel/pkg/platform/sentinel"
	"datasentinel/pkg/requestcontext"
)

// Store persists honeytokens.
// Error Contract:
// - Create returns sentinel.ErrConflict when the value is already taken
// - FindByID, FindByValue, MarkUsed return sentinel.ErrNotFound for unknown tokens
type Store interface {
	Create(ctx context.Context, token *models.Honeytoken) error
	FindByID(ctx context.Context, id string) (*models.Honeytoken, error)
	FindByValue(ctx context.Context, value string) (*models.Honeytoken, error)
	MarkUsed(ctx context.Context, id, partnerID string, at time.Time) (*models.Honeytoken, error)
	List(ctx context.Context) ([]*models.Honeytoken, error)
	ListByPartner(ctx context.Context, partnerID string) ([]*models.Honeytoken, error)
}

// Generator produces candidate values for a token type.
type Generator interface {
	Generate(t models.Type) (string, error)
}

// Placeholder marks where a document expects a planted value.
const Placeholder = "[REDACTED]"

const defaultMaxAttempts = 8

type Option func(*Service)

// Service creates, resolves and attributes honeytokens.
type Service struct {
	store       Store
	generator   Generator
	metrics     *metrics.Metrics
	logger      *slog.Logger
	maxAttempts int
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

// WithMaxAttempts bounds how many colliding values Create discards before failing.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func New(store Store, generator Generator, opts ...Option) *Service {
	s := &Service{
		store:       store,
		generator:   generator,
		logger:      slog.Default(),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create generates and stores a token with a globally unique value.
func (s *Service) Create(ctx context.Context, t models.Type) (*models.Honeytoken, error) {
	if !t.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid honeytoken type: %q", string(t)))
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		value, err := s.generator.Generate(t)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate honeytoken value")
		}
		token := &models.Honeytoken{
			ID:        uuid.NewString(),
			Type:      t,
			Value:     value,
			CreatedAt: requestcontext.Now(ctx).UTC(),
		}
		err = s.store.Create(ctx, token)
		if errors.Is(err, sentinel.ErrConflict) {
			if s.metrics != nil {
				s.metrics.IncGenerateRetry()
			}
			continue
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store honeytoken")
		}
		if s.metrics != nil {
			s.metrics.IncCreated(t.String())
		}
		s.logger.InfoContext(ctx, "honeytoken created",
			"token_id", token.ID,
			"type", token.Type,
			"request_id", requestcontext.RequestID(ctx),
		)
		return token, nil
	}
	return nil, dErrors.New(dErrors.CodeConflict, "could not generate a unique honeytoken value")
}

// InjectIntoDocument replaces every placeholder in document with a new token of
// type t. A document without a placeholder gets the token appended on its own line.
func (s *Service) InjectIntoDocument(ctx context.Context, document string, t models.Type) (*models.InjectResult, error) {
	if strings.TrimSpace(document) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "document must not be blank")
	}
	token, err := s.Create(ctx, t)
	if err != nil {
		return nil, err
	}

	var redacted string
	if strings.Contains(document, Placeholder) {
		redacted = strings.ReplaceAll(document, Placeholder, token.Value)
	} else {
		redacted = strings.TrimRight(document, "\n") + "\n" + token.Value
	}
	return &models.InjectResult{
		RedactedDocument: redacted,
		TrapValue:        token.Value,
		Token:            token,
	}, nil
}

// ResolveUsage reports whether value is a stored token. It never assigns.
func (s *Service) ResolveUsage(ctx context.Context, value string) (*models.Usage, error) {
	token, err := s.store.FindByValue(ctx, value)
	if errors.Is(err, sentinel.ErrNotFound) {
		if s.metrics != nil {
			s.metrics.IncResolve(false)
		}
		return &models.Usage{IsKnown: false}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve honeytoken")
	}
	if s.metrics != nil {
		s.metrics.IncResolve(true)
	}
	return &models.Usage{IsKnown: true, Token: token}, nil
}

// MarkUsed attributes the token to partnerID on first use. Later calls return
// the original assignment unchanged.
func (s *Service) MarkUsed(ctx context.Context, tokenID, partnerID string) (*models.Honeytoken, error) {
	if partnerID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "partner_id is required")
	}
	at := requestcontext.Now(ctx).UTC()
	token, err := s.store.MarkUsed(ctx, tokenID, partnerID, at)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "honeytoken not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark honeytoken used")
	}
	newlyAssigned := token.AssignedPartner == partnerID && token.AssignedAt != nil && token.AssignedAt.Equal(at)
	if newlyAssigned && s.metrics != nil {
		s.metrics.IncAssigned()
	}
	if token.AssignedPartner != partnerID {
		s.logger.WarnContext(ctx, "honeytoken already attributed to another partner",
			"token_id", token.ID,
			"assigned_partner", token.AssignedPartner,
			"partner_id", partnerID,
		)
	}
	return token, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Honeytoken, error) {
	token, err := s.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "honeytoken not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load honeytoken")
	}
	return token, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Honeytoken, error) {
	tokens, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list honeytokens")
	}
	return tokens, nil
}

// AssignedTo returns the tokens already attributed to partnerID.
func (s *Service) AssignedTo(ctx context.Context, partnerID string) ([]*models.Honeytoken, error) {
	tokens, err := s.store.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list partner honeytokens")
	}
	return tokens, nil
}
