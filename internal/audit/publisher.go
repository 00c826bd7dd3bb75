package audit

import (
	"context"
	"log/slog"
	"time"

	"datasentinel/pkg/requestcontext"
)

// Mirror copies selected entries to an external append-only sink. Mirror
// failures are logged and never fail the local append.
type Mirror interface {
	Mirror(ctx context.Context, entry Entry) error
}

// Publisher is the single write path into the audit log. It stamps time and
// request ID, writes an audit log line, persists the entry, then mirrors it.
type Publisher struct {
	store   Store
	logger  *slog.Logger
	mirror  Mirror
	mirrors map[Kind]bool
	now     func() time.Time
}

type PublisherOption func(*Publisher)

// WithLogger writes one log_type=audit line per entry.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMirror forwards entries of the given kinds to m.
func WithMirror(m Mirror, kinds ...Kind) PublisherOption {
	return func(p *Publisher) {
		p.mirror = m
		for _, k := range kinds {
			p.mirrors[k] = true
		}
	}
}

func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) {
		p.now = now
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:   store,
		mirrors: make(map[Kind]bool),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit persists entry before returning the stored copy with its Seq. A store
// failure is returned so callers can refuse to act without a trail.
func (p *Publisher) Emit(ctx context.Context, entry Entry) (Entry, error) {
	if entry.OccurredAt.IsZero() {
		if t, ok := requestcontext.PinnedTime(ctx); ok {
			entry.OccurredAt = t.UTC()
		} else {
			entry.OccurredAt = p.now().UTC()
		}
	}
	if entry.RequestID == "" {
		entry.RequestID = requestcontext.RequestID(ctx)
	}
	p.logLine(ctx, entry)
	return p.persist(ctx, entry)
}

// List reads back entries from the store.
func (p *Publisher) List(ctx context.Context, filter Filter) ([]Entry, error) {
	return p.store.List(ctx, filter)
}

func (p *Publisher) persist(ctx context.Context, entry Entry) (Entry, error) {
	stored, err := p.store.Append(ctx, entry)
	if err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "failed to persist audit entry",
				"error", err,
				"kind", entry.Kind,
			)
		}
		return Entry{}, err
	}
	if p.mirror != nil && p.mirrors[stored.Kind] {
		if err := p.mirror.Mirror(ctx, stored); err != nil && p.logger != nil {
			p.logger.WarnContext(ctx, "audit mirror failed",
				"error", err,
				"kind", stored.Kind,
				"seq", stored.Seq,
			)
		}
	}
	return stored, nil
}

func (p *Publisher) logLine(ctx context.Context, e Entry) {
	if p.logger == nil {
		return
	}
	p.logger.InfoContext(ctx, string(e.Kind),
		"log_type", "audit",
		"partner_id", e.PartnerID,
		"user_id", e.UserID,
		"outcome", e.Outcome,
		"reason", e.Reason,
		"request_id", e.RequestID,
	)
}
