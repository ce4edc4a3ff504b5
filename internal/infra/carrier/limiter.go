package carrier

import (
	"sync"
	"time"

	"coach-booking-engine/internal/pkg/clock"
)

type window struct {
	name  string
	span  time.Duration
	limit int
	hits  []time.Time
}

// Limiter is a sliding-window log over three independent windows. A call is
// admitted only when every window has room, and then counts against all of
// them.
type Limiter struct {
	mu      sync.Mutex
	clock   clock.Clock
	windows []*window
}

func NewLimiter(clk clock.Clock, burst, perMinute, perHour int) *Limiter {
	l := &Limiter{clock: clk}
	for _, w := range []*window{
		{name: "second", span: time.Second, limit: burst},
		{name: "minute", span: time.Minute, limit: perMinute},
		{name: "hour", span: time.Hour, limit: perHour},
	} {
		// non-positive limits disable the window
		if w.limit > 0 {
			l.windows = append(l.windows, w)
		}
	}
	return l
}

// Allow records a call and reports true, or reports false and the name of
// the first exhausted window without recording anything.
func (l *Limiter) Allow() (bool, string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	for _, w := range l.windows {
		w.prune(now)
		if len(w.hits) >= w.limit {
			return false, w.name
		}
	}
	for _, w := range l.windows {
		w.hits = append(w.hits, now)
	}
	return true, ""
}

// Usage returns the number of calls counted in each window.
func (l *Limiter) Usage() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	out := make(map[string]int, len(l.windows))
	for _, w := range l.windows {
		w.prune(now)
		out[w.name] = len(w.hits)
	}
	return out
}

func (w *window) prune(now time.Time) {
	cutoff := now.Add(-w.span)
	i := 0
	for i < len(w.hits) && !w.hits[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.hits = append(w.hits[:0], w.hits[i:]...)
	}
}
