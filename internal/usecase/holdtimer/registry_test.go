//go:build unit

package holdtimer_test

import (
	"sync"
	"testing"
	"time"

	"coach-booking-engine/internal/domain/reservation"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/pkg/errs"
	"coach-booking-engine/internal/usecase/holdtimer"
	"coach-booking-engine/tests/common/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC)

type recorder struct {
	mu        sync.Mutex
	updates   [][2]int
	expired   int
	broadcast []string
}

func (r *recorder) callbacks() holdtimer.Callbacks {
	return holdtimer.Callbacks{
		OnUpdate: func(m, s int) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.updates = append(r.updates, [2]int{m, s})
		},
		OnExpired: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.expired++
		},
	}
}

func (r *recorder) listener(orderID string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast = append(r.broadcast, orderID)
}

func newRegistry() (*holdtimer.Registry, *clock.MockClock, *recorder) {
	clk := clock.NewMockClock(epoch)
	rec := &recorder{}
	reg := holdtimer.NewRegistry(config.TimerConfig{TickInterval: time.Second}, clk, testutil.DiscardLogger(), rec.listener)
	return reg, clk, rec
}

func hold(orderID string, minutes int) *reservation.Info {
	return &reservation.Info{OrderID: orderID, Status: reservation.StatusReserved, ReservationUntilMinutes: minutes}
}

func TestRegistry_Countdown(t *testing.T) {
	t.Run("first tick of a twenty minute hold reports 19:59", func(t *testing.T) {
		reg, clk, rec := newRegistry()
		snap, err := reg.Start(hold("A1", 20), rec.callbacks())
		require.NoError(t, err)
		assert.Equal(t, epoch.Add(20*time.Minute), snap.ExpiresAt)
		assert.Equal(t, reservation.TimerRunning, snap.State)

		clk.Add(time.Second)
		require.Len(t, rec.updates, 1)
		assert.Equal(t, [2]int{19, 59}, rec.updates[0])

		clk.Add(time.Second)
		assert.Equal(t, [2]int{19, 58}, rec.updates[1])
	})

	t.Run("expiry fires once and is broadcast", func(t *testing.T) {
		reg, clk, rec := newRegistry()
		_, err := reg.Start(hold("A1", 1), rec.callbacks())
		require.NoError(t, err)

		for i := 0; i < 65; i++ {
			clk.Add(time.Second)
		}
		assert.Equal(t, 1, rec.expired)
		assert.Equal(t, []string{"A1"}, rec.broadcast)
		assert.Len(t, rec.updates, 59)
		assert.Equal(t, reservation.TimerExpired, reg.State("A1"))
		assert.Empty(t, reg.Active())
		assert.Zero(t, clk.Pending())
	})

	t.Run("remaining time follows the clock across a suspension", func(t *testing.T) {
		reg, clk, rec := newRegistry()
		_, err := reg.Start(hold("A1", 20), rec.callbacks())
		require.NoError(t, err)

		clk.Add(5 * time.Minute)
		require.Len(t, rec.updates, 1)
		assert.Equal(t, [2]int{15, 0}, rec.updates[0])

		clk.Add(30 * time.Minute)
		assert.Equal(t, 1, rec.expired)
	})

	t.Run("zero length hold expires on the first tick", func(t *testing.T) {
		reg, clk, rec := newRegistry()
		_, err := reg.Start(hold("A1", 0), rec.callbacks())
		require.NoError(t, err)
		clk.Add(time.Second)
		assert.Equal(t, 1, rec.expired)
		assert.Empty(t, rec.updates)
	})

	t.Run("order id is required", func(t *testing.T) {
		reg, _, rec := newRegistry()
		_, err := reg.Start(hold("", 20), rec.callbacks())
		assert.True(t, errs.Is(err, errs.ErrValidationFailed))
	})
}

func TestRegistry_Stop(t *testing.T) {
	t.Run("stop is idempotent", func(t *testing.T) {
		reg, clk, rec := newRegistry()
		_, err := reg.Start(hold("A1", 20), rec.callbacks())
		require.NoError(t, err)

		assert.True(t, reg.Stop("A1"))
		assert.False(t, reg.Stop("A1"))
		assert.False(t, reg.Stop("unknown"))
		assert.Equal(t, reservation.TimerStopped, reg.State("A1"))

		clk.Add(time.Hour)
		assert.Empty(t, rec.updates)
		assert.Zero(t, rec.expired)
		assert.Empty(t, rec.broadcast)
	})

	t.Run("stop from inside an update callback ends the countdown", func(t *testing.T) {
		reg, clk, _ := newRegistry()
		var ticks int
		_, err := reg.Start(hold("A1", 20), holdtimer.Callbacks{
			OnUpdate: func(int, int) {
				ticks++
				reg.Stop("A1")
			},
		})
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			clk.Add(time.Second)
		}
		assert.Equal(t, 1, ticks)
		assert.Zero(t, clk.Pending())
	})

	t.Run("stop all tears down every timer", func(t *testing.T) {
		reg, clk, rec := newRegistry()
		for _, id := range []string{"A1", "A2", "A3"} {
			_, err := reg.Start(hold(id, 20), rec.callbacks())
			require.NoError(t, err)
		}
		assert.Equal(t, 3, reg.StopAll())
		assert.Zero(t, reg.StopAll())
		clk.Add(time.Hour)
		assert.Zero(t, rec.expired)
	})
}

func TestRegistry_SingleActiveTimer(t *testing.T) {
	reg, clk, rec := newRegistry()
	_, err := reg.Start(hold("A1", 1), rec.callbacks())
	require.NoError(t, err)
	clk.Add(10 * time.Second)
	_, err = reg.Start(hold("A1", 1), rec.callbacks())
	require.NoError(t, err)

	assert.Equal(t, []string{"A1"}, reg.Active())
	assert.Equal(t, 1, clk.Pending())

	for i := 0; i < 120; i++ {
		clk.Add(time.Second)
	}
	assert.Equal(t, 1, rec.expired)
	assert.Equal(t, []string{"A1"}, rec.broadcast)
}

func TestRegistry_Extend(t *testing.T) {
	t.Run("extension moves the deadline", func(t *testing.T) {
		reg, clk, rec := newRegistry()
		_, err := reg.Start(hold("A1", 1), rec.callbacks())
		require.NoError(t, err)

		snap, err := reg.Extend("A1", 5*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, epoch.Add(6*time.Minute), snap.ExpiresAt)

		clk.Add(time.Second)
		assert.Equal(t, [2]int{5, 59}, rec.updates[0])

		remaining, ok := reg.Remaining("A1")
		assert.True(t, ok)
		assert.Equal(t, 6*time.Minute-time.Second, remaining)
	})

	t.Run("unknown order", func(t *testing.T) {
		reg, _, _ := newRegistry()
		_, err := reg.Extend("nope", time.Minute)
		assert.True(t, errs.Is(err, errs.ErrTimerNotFound))
		assert.Equal(t, reservation.TimerIdle, reg.State("nope"))
	})
}
