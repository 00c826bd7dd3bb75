package circuit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var errCall = errors.New("registry down")

func TestBreaker(t *testing.T) {
	newBreaker := func(clock *fakeClock, transitions *[]State) *Breaker {
		return New("registry",
			WithFailureThreshold(3),
			WithSuccessThreshold(2),
			WithCooldown(time.Minute),
			WithClock(clock.Now),
			WithStateChange(func(_ string, _, to State) {
				*transitions = append(*transitions, to)
			}),
		)
	}
	fail := func() error { return errCall }
	ok := func() error { return nil }

	t.Run("opens after consecutive failures and rejects calls", func(t *testing.T) {
		clock := &fakeClock{t: time.Unix(0, 0)}
		var transitions []State
		b := newBreaker(clock, &transitions)

		for range 3 {
			assert.ErrorIs(t, b.Execute(fail), errCall)
		}
		assert.Equal(t, StateOpen, b.State())

		called := false
		err := b.Execute(func() error { called = true; return nil })
		assert.ErrorIs(t, err, ErrOpen)
		assert.False(t, called)
		assert.Equal(t, []State{StateOpen}, transitions)
	})

	t.Run("a success resets the failure streak", func(t *testing.T) {
		clock := &fakeClock{t: time.Unix(0, 0)}
		var transitions []State
		b := newBreaker(clock, &transitions)

		_ = b.Execute(fail)
		_ = b.Execute(fail)
		require.NoError(t, b.Execute(ok))
		_ = b.Execute(fail)
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("half-open probes close the circuit", func(t *testing.T) {
		clock := &fakeClock{t: time.Unix(0, 0)}
		var transitions []State
		b := newBreaker(clock, &transitions)
		for range 3 {
			_ = b.Execute(fail)
		}

		clock.Advance(time.Minute)
		assert.Equal(t, StateHalfOpen, b.State())
		require.NoError(t, b.Execute(ok))
		require.NoError(t, b.Execute(ok))
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, transitions)
	})

	t.Run("failed probe reopens", func(t *testing.T) {
		clock := &fakeClock{t: time.Unix(0, 0)}
		var transitions []State
		b := newBreaker(clock, &transitions)
		for range 3 {
			_ = b.Execute(fail)
		}
		clock.Advance(time.Minute)

		assert.ErrorIs(t, b.Execute(fail), errCall)
		assert.Equal(t, StateOpen, b.State())
	})

	t.Run("reset closes", func(t *testing.T) {
		clock := &fakeClock{t: time.Unix(0, 0)}
		var transitions []State
		b := newBreaker(clock, &transitions)
		for range 3 {
			_ = b.Execute(fail)
		}
		b.Reset()
		assert.Equal(t, StateClosed, b.State())
		assert.Equal(t, "closed", b.State().String())
	})
}
