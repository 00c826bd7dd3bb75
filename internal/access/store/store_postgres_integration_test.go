//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"datasentinel/internal/access/models"
	"datasentinel/internal/access/store"
	"datasentinel/pkg/testutil"
	"datasentinel/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "restrictions", "restriction_requests"))
}

func (s *PostgresStoreSuite) TestWildcardAndRemove() {
	ctx := context.Background()
	at := time.Now().UTC().Truncate(time.Microsecond)

	created, err := s.store.Add(ctx, &models.Restriction{PartnerID: "partner1", UserID: "user2", CreatedAt: at})
	s.Require().NoError(err)
	s.True(created)
	created, err = s.store.Add(ctx, &models.Restriction{PartnerID: "partner1", UserID: "user2", CreatedAt: at})
	s.Require().NoError(err)
	s.False(created)
	_, err = s.store.Add(ctx, &models.Restriction{PartnerID: "partner3", UserID: models.AllUsers, CreatedAt: at})
	s.Require().NoError(err)

	byUser, err := s.store.ListByUser(ctx, "user9")
	s.Require().NoError(err)
	s.Require().Len(byUser, 1)
	s.True(byUser[0].PartnerWide())

	removed, err := s.store.Remove(ctx, "partner1", "user2")
	s.Require().NoError(err)
	s.True(removed)
}

func (s *PostgresStoreSuite) TestConcurrentApprovalIsIdempotent() {
	ctx := context.Background()
	at := time.Now().UTC().Truncate(time.Microsecond)

	_, _, err := s.store.SaveRequest(ctx, &models.RestrictionRequest{PartnerID: "partner2", UserID: "user1", RequestedAt: at})
	s.Require().NoError(err)

	var createdCount int
	results := make([]bool, 8)
	outcome := testutil.RunConcurrent(8, func(idx int) error {
		created, err := s.store.Approve(ctx, &models.Restriction{PartnerID: "partner2", UserID: "user1", CreatedAt: at}, at)
		results[idx] = created
		return err
	})
	s.Equal(int32(8), outcome.Successes)
	for _, c := range results {
		if c {
			createdCount++
		}
	}
	s.Equal(1, createdCount)

	requests, err := s.store.ListRequests(ctx)
	s.Require().NoError(err)
	s.Require().Len(requests, 1)
	s.False(requests[0].Pending())
}
