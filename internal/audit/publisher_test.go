package audit_test

//go:generate mockgen -source=publisher.go -destination=mocks/mocks.go -package=mocks Mirror

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datasentinel/internal/audit"
	"datasentinel/internal/audit/mocks"
	"datasentinel/pkg/requestcontext"
	"datasentinel/pkg/testutil"
)

type PublisherSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	mirror *mocks.MockMirror
	store  *audit.InMemoryStore
	logs   *bytes.Buffer
	logger *slog.Logger
	fixed  time.Time
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mirror = mocks.NewMockMirror(s.ctrl)
	s.store = audit.NewInMemoryStore()
	s.logs = &bytes.Buffer{}
	s.logger = slog.New(slog.NewJSONHandler(s.logs, nil))
	s.fixed = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PublisherSuite) newPublisher(opts ...audit.PublisherOption) *audit.Publisher {
	base := []audit.PublisherOption{
		audit.WithLogger(s.logger),
		audit.WithClock(func() time.Time { return s.fixed }),
	}
	return audit.NewPublisher(s.store, append(base, opts...)...)
}

func (s *PublisherSuite) TestEmitStampsAndOrders() {
	p := s.newPublisher()
	ctx := requestcontext.WithRequestID(context.Background(), "req-42")

	first, err := p.Emit(ctx, audit.Entry{Kind: audit.KindTrapHit, PartnerID: "partner1"})
	s.Require().NoError(err)
	second, err := p.Emit(ctx, audit.Entry{Kind: audit.KindDecodeAttempt, PartnerID: "partner2"})
	s.Require().NoError(err)

	s.Equal(int64(1), first.Seq)
	s.Equal(int64(2), second.Seq)
	s.Equal("req-42", first.RequestID)
	s.Equal(s.fixed, first.OccurredAt)
	s.Contains(s.logs.String(), `"log_type":"audit"`)

	entries, err := p.List(ctx, audit.Filter{})
	s.Require().NoError(err)
	s.Len(entries, 2)
	s.Equal(audit.KindTrapHit, entries[0].Kind)
}

func (s *PublisherSuite) TestEmitUsesPinnedRequestTime() {
	p := s.newPublisher()
	pinned := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), pinned)

	entry, err := p.Emit(ctx, audit.Entry{Kind: audit.KindAccessDecision})
	s.Require().NoError(err)
	s.Equal(pinned, entry.OccurredAt)
}

func (s *PublisherSuite) TestMirrorOnlySelectedKinds() {
	p := s.newPublisher(audit.WithMirror(s.mirror, audit.KindTrapHit))

	s.mirror.EXPECT().
		Mirror(gomock.Any(), gomock.AssignableToTypeOf(audit.Entry{})).
		DoAndReturn(func(_ context.Context, e audit.Entry) error {
			s.Equal(audit.KindTrapHit, e.Kind)
			s.Equal(int64(1), e.Seq)
			return nil
		}).
		Times(1)

	_, err := p.Emit(context.Background(), audit.Entry{Kind: audit.KindTrapHit, PartnerID: "partner1"})
	s.Require().NoError(err)
	_, err = p.Emit(context.Background(), audit.Entry{Kind: audit.KindAccessDecision, PartnerID: "partner1"})
	s.Require().NoError(err)
}

func (s *PublisherSuite) TestMirrorFailureDoesNotFailAppend() {
	p := s.newPublisher(audit.WithMirror(s.mirror, audit.KindTrapHit))
	s.mirror.EXPECT().Mirror(gomock.Any(), gomock.Any()).Return(errors.New("broker unreachable"))

	entry, err := p.Emit(context.Background(), audit.Entry{Kind: audit.KindTrapHit})
	s.Require().NoError(err)
	s.Equal(int64(1), entry.Seq)
	s.Contains(s.logs.String(), "audit mirror failed")
}

// blockedStore accepts one entry and then rejects appends.
type blockedStore struct {
	*audit.InMemoryStore
	accepted int
}

func (b *blockedStore) Append(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	if b.accepted >= 1 {
		return audit.Entry{}, errors.New("audit store unavailable")
	}
	b.accepted++
	return b.InMemoryStore.Append(ctx, e)
}

func (s *PublisherSuite) TestStoreFailureIsReturnedNotDropped() {
	st := &blockedStore{InMemoryStore: s.store}
	p := audit.NewPublisher(st, audit.WithLogger(s.logger), audit.WithMirror(s.mirror, audit.KindTrapHit))
	s.mirror.EXPECT().Mirror(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	var failures int
	for range 5 {
		if _, err := p.Emit(context.Background(), audit.Entry{Kind: audit.KindTrapHit}); err != nil {
			failures++
		}
	}
	s.Equal(4, failures)

	entries, err := s.store.List(context.Background(), audit.Filter{})
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.Contains(s.logs.String(), "failed to persist audit entry")
}

func (s *PublisherSuite) TestConcurrentAppendsKeepDenseSequence() {
	p := s.newPublisher()
	var mu sync.Mutex
	seen := make(map[int64]bool)

	result := testutil.RunConcurrent(100, func(int) error {
		e, err := p.Emit(context.Background(), audit.Entry{Kind: audit.KindTrapHit})
		if err != nil {
			return err
		}
		mu.Lock()
		seen[e.Seq] = true
		mu.Unlock()
		return nil
	})

	s.Equal(int32(100), result.Successes)
	for i := int64(1); i <= 100; i++ {
		s.True(seen[i], "missing seq %d", i)
	}
}
