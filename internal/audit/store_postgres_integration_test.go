//go:build integration

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"datasentinel/internal/audit"
	"datasentinel/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *audit.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = audit.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_entries"))
}

func (s *PostgresStoreSuite) TestAppendAssignsIncreasingSeq() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	first, err := s.store.Append(ctx, audit.Entry{Kind: audit.KindTrapHit, PartnerID: "partner1", RiskDelta: 20, OccurredAt: now})
	s.Require().NoError(err)
	second, err := s.store.Append(ctx, audit.Entry{Kind: audit.KindDecodeAttempt, Outcome: audit.OutcomeNotFound, OccurredAt: now})
	s.Require().NoError(err)
	s.Less(first.Seq, second.Seq)

	hits, err := s.store.List(ctx, audit.Filter{Kinds: []audit.Kind{audit.KindTrapHit}, PartnerID: "partner1"})
	s.Require().NoError(err)
	s.Require().Len(hits, 1)
	s.Equal(20, hits[0].RiskDelta)
	s.True(now.Equal(hits[0].OccurredAt))
}

func (s *PostgresStoreSuite) TestListLimitAndSince() {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		_, err := s.store.Append(ctx, audit.Entry{Kind: audit.KindAccessDecision, UserID: "user1", OccurredAt: base.Add(time.Duration(i) * time.Hour)})
		s.Require().NoError(err)
	}

	entries, err := s.store.List(ctx, audit.Filter{UserID: "user1", Since: base.Add(2 * time.Hour), Limit: 2})
	s.Require().NoError(err)
	s.Len(entries, 2)
	s.True(entries[0].OccurredAt.Equal(base.Add(2 * time.Hour)))
}
