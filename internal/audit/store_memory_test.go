package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, e := range []Entry{
		{Kind: KindTrapHit, PartnerID: "partner1", UserID: "user1", OccurredAt: base},
		{Kind: KindDecodeAttempt, PartnerID: "partner1", Outcome: OutcomeFound, OccurredAt: base.Add(time.Hour)},
		{Kind: KindDecodeAttempt, Outcome: OutcomeNotFound, OccurredAt: base.Add(2 * time.Hour)},
		{Kind: KindAccessDecision, PartnerID: "partner2", UserID: "user1", Outcome: OutcomeDenied, OccurredAt: base.Add(3 * time.Hour)},
	} {
		_, err := store.Append(ctx, e)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"everything", Filter{}, []int64{1, 2, 3, 4}},
		{"by kind", Filter{Kinds: []Kind{KindDecodeAttempt}}, []int64{2, 3}},
		{"by partner", Filter{PartnerID: "partner1"}, []int64{1, 2}},
		{"by user and kind", Filter{UserID: "user1", Kinds: []Kind{KindAccessDecision}}, []int64{4}},
		{"by outcome", Filter{Outcome: OutcomeFound}, []int64{2}},
		{"since", Filter{Since: base.Add(2 * time.Hour)}, []int64{3, 4}},
		{"limit keeps oldest", Filter{Limit: 2}, []int64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.List(ctx, tt.filter)
			require.NoError(t, err)
			got := make([]int64, 0, len(entries))
			for _, e := range entries {
				got = append(got, e.Seq)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
