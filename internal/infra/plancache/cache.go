package plancache

import (
	"encoding/json"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"coach-booking-engine/internal/domain/seatplan"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/pkg/errs"

	"github.com/jinzhu/copier"
	"github.com/robfig/cron/v3"
)

const (
	evictFraction = 0.2
	maxMultiplier = 2.0
)

type entry struct {
	key         string
	plan        *seatplan.BusPlan
	createdAt   time.Time
	expiresAt   time.Time
	ttl         time.Duration
	accessCount int
	lastAccess  time.Time
	size        int
}

type Stats struct {
	TotalEntries  int     `json:"totalEntries"`
	MemoryUsageKB float64 `json:"memoryUsageKb"`
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	HitRatio      float64 `json:"hitRatio"`
	Evictions     uint64  `json:"evictions"`
	Expirations   uint64  `json:"expirations"`
}

// Cache holds normalized seat plans with a seat-count weighted TTL and LRU
// eviction on entry count and byte size. Plans go in and come out as deep
// copies, so callers can never mutate a stored entry.
type Cache struct {
	mu      sync.Mutex
	cfg     config.CacheConfig
	clock   clock.Clock
	logger  *slog.Logger
	entries map[string]*entry
	bytes   int

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64

	sched *cron.Cron
}

func New(cfg config.CacheConfig, clk clock.Clock, logger *slog.Logger) *Cache {
	return &Cache{
		cfg:     cfg,
		clock:   clk,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// TTLFor grows the base TTL with the seat count up to 2x, then caps it at
// the configured maximum.
func (c *Cache) TTLFor(seatCount int) time.Duration {
	scale := c.cfg.SeatScale
	if scale <= 0 {
		scale = 50
	}
	mult := math.Min(maxMultiplier, 1+float64(seatCount)/float64(scale))
	ttl := time.Duration(float64(c.cfg.BaseTTL) * mult)
	if c.cfg.MaxTTL > 0 && ttl > c.cfg.MaxTTL {
		ttl = c.cfg.MaxTTL
	}
	return ttl
}

func (c *Cache) Get(key Key) (*seatplan.BusPlan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key.String()
	e, ok := c.entries[k]
	now := c.clock.Now()
	if ok && !now.Before(e.expiresAt) {
		c.removeLocked(k)
		c.expirations++
		ok = false
	}
	if !ok {
		c.misses++
		return nil, false
	}

	e.accessCount++
	e.lastAccess = now
	c.hits++

	out, err := Clone(e.plan)
	if err != nil {
		c.logger.Error("failed to copy cached plan", slog.String("key", k), slog.String("error", err.Error()))
		return nil, false
	}
	return out, true
}

func (c *Cache) Set(key Key, plan *seatplan.BusPlan) error {
	if plan == nil {
		return errs.New("cannot cache a nil plan")
	}
	stored, err := Clone(plan)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(stored)
	if err != nil {
		return errs.Wrap(err, "measure plan size")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k := key.String()
	now := c.clock.Now()
	ttl := c.TTLFor(stored.SeatCount())

	c.removeLocked(k)
	c.entries[k] = &entry{
		key:        k,
		plan:       stored,
		createdAt:  now,
		expiresAt:  now.Add(ttl),
		ttl:        ttl,
		lastAccess: now,
		size:       len(encoded),
	}
	c.bytes += len(encoded)

	c.enforceLimitsLocked()
	return nil
}

func (c *Cache) Delete(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(key.String())
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.bytes = 0
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		TotalEntries:  len(c.entries),
		MemoryUsageKB: math.Round(float64(c.bytes)/1024*100) / 100,
		Hits:          c.hits,
		Misses:        c.misses,
		Evictions:     c.evictions,
		Expirations:   c.expirations,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRatio = float64(c.hits) / float64(total)
	}
	return s
}

// Sweep drops expired entries and re-applies the ceilings. It returns the
// number of expired entries removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			c.removeLocked(k)
			removed++
		}
	}
	c.expirations += uint64(removed)
	c.enforceLimitsLocked()

	if removed > 0 {
		c.logger.Debug("plan cache sweep", slog.Int("expired", removed), slog.Int("entries", len(c.entries)))
	}
	return removed
}

func (c *Cache) removeLocked(k string) bool {
	e, ok := c.entries[k]
	if !ok {
		return false
	}
	c.bytes -= e.size
	delete(c.entries, k)
	return true
}

func (c *Cache) overLimitLocked() bool {
	if c.cfg.MaxEntries > 0 && len(c.entries) > c.cfg.MaxEntries {
		return true
	}
	return c.cfg.SizeLimitKB > 0 && c.bytes > c.cfg.SizeLimitKB*1024
}

// enforceLimitsLocked evicts the least recently used fifth of the entries
// until both ceilings hold.
func (c *Cache) enforceLimitsLocked() {
	for c.overLimitLocked() && len(c.entries) > 0 {
		victims := make([]*entry, 0, len(c.entries))
		for _, e := range c.entries {
			victims = append(victims, e)
		}
		sort.Slice(victims, func(i, j int) bool {
			if victims[i].lastAccess.Equal(victims[j].lastAccess) {
				return victims[i].createdAt.Before(victims[j].createdAt)
			}
			return victims[i].lastAccess.Before(victims[j].lastAccess)
		})

		n := int(math.Ceil(float64(len(victims)) * evictFraction))
		for _, e := range victims[:n] {
			c.removeLocked(e.key)
		}
		c.evictions += uint64(n)
		c.logger.Debug("plan cache eviction", slog.Int("evicted", n), slog.Int("entries", len(c.entries)))
	}
}

// Clone deep-copies a plan the same way cache entries are copied.
func Clone(p *seatplan.BusPlan) (*seatplan.BusPlan, error) {
	out := &seatplan.BusPlan{}
	if err := copier.CopyWithOption(out, p, copier.Option{DeepCopy: true}); err != nil {
		return nil, errs.Wrap(err, "copy seat plan")
	}
	return out, nil
}
