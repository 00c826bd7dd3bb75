package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasentinel/internal/alert/models"
)

func TestRetentionDropsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewWithRetention(3)
	for i := range 5 {
		require.NoError(t, s.AppendAdmin(ctx, &models.AdminAlert{ID: fmt.Sprintf("a%d", i)}))
	}
	alerts, err := s.ListAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "a2", alerts[0].ID)
	assert.Equal(t, "a4", alerts[2].ID)
}

func TestUserFeedsAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.AppendUser(ctx, &models.UserAlert{ID: "x", UserID: "user1"}))
	require.NoError(t, s.AppendNotification(ctx, &models.Notification{ID: "n1", UserID: "user1"}))
	require.NoError(t, s.AppendNotification(ctx, &models.Notification{ID: "n2", UserID: "user2"}))

	u2, err := s.ListUser(ctx, "user2")
	require.NoError(t, err)
	assert.Empty(t, u2)

	n, err := s.ListNotifications(ctx, "user2")
	require.NoError(t, err)
	require.Len(t, n, 1)
	assert.Equal(t, "n2", n[0].ID)
}

func TestBusyUserDoesNotEvictOthersNotifications(t *testing.T) {
	ctx := context.Background()
	s := NewWithRetention(3)
	require.NoError(t, s.AppendNotification(ctx, &models.Notification{ID: "quiet", UserID: "user1"}))
	for i := range 10 {
		require.NoError(t, s.AppendNotification(ctx, &models.Notification{ID: fmt.Sprintf("busy%d", i), UserID: "user2"}))
	}

	quiet, err := s.ListNotifications(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, quiet, 1)
	assert.Equal(t, "quiet", quiet[0].ID)

	busy, err := s.ListNotifications(ctx, "user2")
	require.NoError(t, err)
	require.Len(t, busy, 3)
	assert.Equal(t, "busy7", busy[0].ID)

	all, err := s.ListNotifications(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "quiet", all[0].ID)
	assert.Equal(t, "busy9", all[3].ID)
}

func TestClearRaisedReArmsMark(t *testing.T) {
	ctx := context.Background()
	s := New()
	first, err := s.MarkRaised(ctx, "high_risk:partner1")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := s.MarkRaised(ctx, "high_risk:partner1")
	require.NoError(t, err)
	assert.False(t, again)

	require.NoError(t, s.ClearRaised(ctx, "high_risk:partner1"))
	rearmed, err := s.MarkRaised(ctx, "high_risk:partner1")
	require.NoError(t, err)
	assert.True(t, rearmed)
}
