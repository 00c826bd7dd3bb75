//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"datasentinel/internal/honeytoken/models"
	"datasentinel/internal/honeytoken/store"
	"datasentinel/pkg/platform/sentinel"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "honeytokens"))
}

func (s *PostgresStoreSuite) create(id, value string) {
	s.Require().NoError(s.store.Create(context.Background(), &models.Honeytoken{
		ID:        id,
		Type:      models.TypeID,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}))
}

func (s *PostgresStoreSuite) TestDuplicateValueConflicts() {
	s.create("t1", "HT-AAAAAAAAAAAA")
	err := s.store.Create(context.Background(), &models.Honeytoken{
		ID: "t2", Type: models.TypeID, Value: "HT-AAAAAAAAAAAA", CreatedAt: time.Now(),
	})
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestConcurrentMarkUsedSingleWinner() {
	s.create("t1", "HT-BBBBBBBBBBBB")
	ctx := context.Background()

	result := testutil.RunConcurrent(20, func(idx int) error {
		_, err := s.store.MarkUsed(ctx, "t1", fmt.Sprintf("partner%d", idx), time.Now())
		return err
	})
	s.Equal(int32(20), result.Successes)

	token, err := s.store.FindByValue(ctx, "HT-BBBBBBBBBBBB")
	s.Require().NoError(err)
	s.NotEmpty(token.AssignedPartner)

	assigned, err := s.store.ListByPartner(ctx, token.AssignedPartner)
	s.Require().NoError(err)
	s.Len(assigned, 1)
}

func (s *PostgresStoreSuite) TestFindUnknown() {
	_, err := s.store.FindByID(context.Background(), "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
