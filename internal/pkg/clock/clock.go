package clock

import (
	"sort"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	// AfterFunc calls f in its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	// Stop reports whether the call prevented f from running.
	Stop() bool
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// MockClock stands still until Set or Add is called. Callbacks scheduled
// with AfterFunc run synchronously inside Add, in deadline order.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	pending     []*mockTimer
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	f        func()
	done     bool
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.currentTime = t
	c.mu.Unlock()
	c.fire(t)
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	target := c.currentTime
	c.mu.Unlock()
	c.fire(target)
}

func (c *MockClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{clock: c, deadline: c.currentTime.Add(d), f: f}
	c.pending = append(c.pending, t)
	return t
}

// Pending returns the number of scheduled callbacks that have not fired.
func (c *MockClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.done {
			n++
		}
	}
	return n
}

func (c *MockClock) fire(target time.Time) {
	for {
		due := c.collectDue(target)
		if len(due) == 0 {
			return
		}
		for _, t := range due {
			t.f()
		}
	}
}

func (c *MockClock) collectDue(target time.Time) []*mockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due, remaining []*mockTimer
	for _, t := range c.pending {
		if t.done {
			continue
		}
		if !t.deadline.After(target) {
			t.done = true
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	c.pending = remaining

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	return due
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}
