//go:build unit

package carrier_test

import (
	"testing"
	"time"

	"coach-booking-engine/internal/infra/carrier"
	"coach-booking-engine/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestLimiter(t *testing.T) {
	t.Run("every window must have room", func(t *testing.T) {
		clk := clock.NewMockClock(epoch)
		l := carrier.NewLimiter(clk, 2, 3, 100)

		for i := 0; i < 2; i++ {
			ok, _ := l.Allow()
			assert.True(t, ok)
		}
		ok, window := l.Allow()
		assert.False(t, ok)
		assert.Equal(t, "second", window)

		clk.Add(2 * time.Second)
		ok, _ = l.Allow()
		assert.True(t, ok)

		clk.Add(2 * time.Second)
		ok, window = l.Allow()
		assert.False(t, ok)
		assert.Equal(t, "minute", window)
		assert.Equal(t, map[string]int{"second": 0, "minute": 3, "hour": 3}, l.Usage())

		clk.Add(time.Minute)
		ok, _ = l.Allow()
		assert.True(t, ok)
	})

	t.Run("rejections are not counted", func(t *testing.T) {
		clk := clock.NewMockClock(epoch)
		l := carrier.NewLimiter(clk, 1, 0, 0)

		ok, _ := l.Allow()
		assert.True(t, ok)
		for i := 0; i < 10; i++ {
			ok, _ = l.Allow()
			assert.False(t, ok)
		}
		assert.Equal(t, map[string]int{"second": 1}, l.Usage())
	})
}
