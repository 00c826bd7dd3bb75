package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasentinel/internal/risk/models"
	"datasentinel/pkg/testutil"
)

func TestInMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := New()

	st, err := s.Get(ctx, "partner1")
	require.NoError(t, err)
	assert.Nil(t, st)

	updated, err := s.Update(ctx, "partner1", func(st *models.State) error {
		st.Score = 40
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "partner1", updated.PartnerID)
	assert.Equal(t, 40, updated.Score)

	_, err = s.Update(ctx, "partner1", func(st *models.State) error {
		st.Score = 99
		return errors.New("abort")
	})
	require.Error(t, err)

	st, err = s.Get(ctx, "partner1")
	require.NoError(t, err)
	assert.Equal(t, 40, st.Score, "failed update leaves state unchanged")
}

func TestInMemoryStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s := New()
	result := testutil.RunConcurrent(100, func(int) error {
		_, err := s.Update(ctx, "partner1", func(st *models.State) error {
			st.Score++
			return nil
		})
		return err
	})
	assert.Equal(t, int32(100), result.Successes)

	st, err := s.Get(ctx, "partner1")
	require.NoError(t, err)
	assert.Equal(t, 100, st.Score)
}
