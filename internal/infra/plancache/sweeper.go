package plancache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SweepInterval is the configured interval, shortened to half the smallest
// possible TTL when it would let expired entries outlive it.
func (c *Cache) SweepInterval() time.Duration {
	interval := c.cfg.SweepInterval
	minTTL := c.TTLFor(0)
	if interval <= 0 || (minTTL > 0 && interval >= minTTL) {
		interval = minTTL / 2
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Start schedules the periodic sweep. Calling it twice is a no-op.
func (c *Cache) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sched != nil {
		return nil
	}

	sched := cron.New()
	spec := fmt.Sprintf("@every %s", c.SweepInterval())
	if _, err := sched.AddFunc(spec, func() { c.Sweep() }); err != nil {
		return fmt.Errorf("schedule plan cache sweep: %w", err)
	}
	sched.Start()
	c.sched = sched

	c.logger.Info("plan cache sweep scheduled", slog.String("schedule", spec))
	return nil
}

// Destroy stops the sweep and drops every entry.
func (c *Cache) Destroy() {
	c.mu.Lock()
	sched := c.sched
	c.sched = nil
	c.mu.Unlock()

	if sched != nil {
		<-sched.Stop().Done()
	}
	c.Clear()
}
