package sync

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardedMutex_SameKeySerializes(t *testing.T) {
	m := NewShardedMutex()
	counter := 0
	var wg sync.WaitGroup

	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do("partner1", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, counter)
}

func TestShardedMutex_EmptyKeyUsesFirstShard(t *testing.T) {
	m := NewShardedMutex()
	assert.Equal(t, 0, m.shardFor(""))
	m.Lock("")
	m.Unlock("")
}

func TestShardedMutex_Distribution(t *testing.T) {
	m := NewShardedMutex()
	shards := make(map[int]bool)
	for _, key := range []string{"partner1", "partner2", "partner3", "HT-ABC", "HT-XYZ", "user1"} {
		shards[m.shardFor(key)] = true
	}
	assert.GreaterOrEqual(t, len(shards), 3)
}

func TestShardedMutex_Do(t *testing.T) {
	t.Run("returns the callback error", func(t *testing.T) {
		m := NewShardedMutex()
		boom := errors.New("boom")
		assert.ErrorIs(t, m.Do("k", func() error { return boom }), boom)
	})

	t.Run("reports wait time and releases the lock", func(t *testing.T) {
		var observed []time.Duration
		m := NewShardedMutex(WithWaitObserver(func(d time.Duration) {
			observed = append(observed, d)
		}))

		require.NoError(t, m.Do("k", func() error { return nil }))
		require.NoError(t, m.Do("k", func() error { return nil }))
		assert.Len(t, observed, 2)
	})
}
