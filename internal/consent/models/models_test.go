package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	d, err := ParseExpiry("2030-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 12, 31, 23, 59, 59, 0, time.UTC), d)

	ts, err := ParseExpiry("2030-12-31T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 12, 31, 8, 0, 0, 0, time.UTC), ts)

	_, err = ParseExpiry("next week")
	assert.Error(t, err)
}

func TestRecordExpiredAndAllows(t *testing.T) {
	r := &Record{Policy: true, ExpiryDate: time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)}
	assert.False(t, r.Expired(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)))
	assert.True(t, r.Expired(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Allows(CategoryPolicy))
	assert.False(t, r.Allows(CategoryWatermark))
	assert.False(t, r.Allows(Category("marketing")))
}

func TestUpdateApply(t *testing.T) {
	yes, no := true, false
	r := &Record{Watermark: true, Policy: false}
	Update{Policy: &yes, Watermark: &no}.Apply(r)
	assert.True(t, r.Policy)
	assert.False(t, r.Watermark)
	assert.True(t, Update{}.IsEmpty())
}
