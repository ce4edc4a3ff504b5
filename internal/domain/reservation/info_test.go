//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"coach-booking-engine/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	t.Run("hold duration comes from the numeric minutes field", func(t *testing.T) {
		info := &reservation.Info{OrderID: "1001", ReservationUntilMinutes: 20}
		assert.Equal(t, 20*time.Minute, info.HoldDuration())
		assert.Equal(t, now.Add(20*time.Minute), info.ExpiresAt(now))
	})

	t.Run("missing or negative minutes mean no hold", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), (&reservation.Info{ReservationUntilMinutes: -3}).HoldDuration())
		var nilInfo *reservation.Info
		assert.Equal(t, time.Duration(0), nilInfo.HoldDuration())
	})
}

func TestSplitRemaining(t *testing.T) {
	cases := []struct {
		name    string
		in      time.Duration
		minutes int
		seconds int
	}{
		{name: "just under twenty minutes", in: 19*time.Minute + 59*time.Second, minutes: 19, seconds: 59},
		{name: "sub-second remainder is dropped", in: 61*time.Second + 900*time.Millisecond, minutes: 1, seconds: 1},
		{name: "zero", in: 0, minutes: 0, seconds: 0},
		{name: "negative clamps to zero", in: -5 * time.Second, minutes: 0, seconds: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, s := reservation.SplitRemaining(c.in)
			assert.Equal(t, c.minutes, m)
			assert.Equal(t, c.seconds, s)
		})
	}
}
