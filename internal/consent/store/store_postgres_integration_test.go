//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"datasentinel/internal/consent/models"
	"datasentinel/internal/consent/store"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "consent_records"))
}

func (s *PostgresStoreSuite) TestSaveFindList() {
	ctx := context.Background()
	expiry := time.Date(2030, 1, 1, 23, 59, 59, 0, time.UTC)
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := s.store.Find(ctx, "user1")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Save(ctx, &models.Record{UserID: "user1", Policy: true, ExpiryDate: expiry, UpdatedAt: now}))
	s.Require().NoError(s.store.Save(ctx, &models.Record{UserID: "user1", Policy: true, Watermark: true, ExpiryDate: expiry, UpdatedAt: now}))

	found, err := s.store.Find(ctx, "user1")
	s.Require().NoError(err)
	s.True(found.Policy)
	s.True(found.Watermark)
	s.True(expiry.Equal(found.ExpiryDate))

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *PostgresStoreSuite) TestExecuteCreatesAndSerializes() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	result := testutil.RunConcurrent(10, func(idx int) error {
		_, err := s.store.Execute(ctx, "user7", func(r *models.Record) error {
			if r.UpdatedAt.IsZero() {
				r.ExpiryDate = now.Add(time.Hour)
			}
			switch idx % 3 {
			case 0:
				r.Watermark = true
			case 1:
				r.Policy = true
			default:
				r.Honeytoken = true
			}
			r.UpdatedAt = now
			return nil
		})
		return err
	})
	s.Equal(int32(10), result.Successes)

	found, err := s.store.Find(ctx, "user7")
	s.Require().NoError(err)
	s.True(found.Watermark && found.Policy && found.Honeytoken)
}

func (s *PostgresStoreSuite) TestExecuteRollsBackOnError() {
	ctx := context.Background()
	_, err := s.store.Execute(ctx, "user9", func(*models.Record) error {
		return fmt.Errorf("rejected")
	})
	s.Error(err)
	_, err = s.store.Find(ctx, "user9")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
