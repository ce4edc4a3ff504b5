//go:build unit

package plancache_test

import (
	"strconv"
	"testing"
	"time"

	"coach-booking-engine/internal/domain/seatplan"
	"coach-booking-engine/internal/infra/plancache"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/tests/common/builder"
	"coach-booking-engine/tests/common/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC)

func newCache(mutate func(*config.CacheConfig)) (*plancache.Cache, *clock.MockClock) {
	cfg := config.NewTestConfig().Cache
	if mutate != nil {
		mutate(&cfg)
	}
	clk := clock.NewMockClock(epoch)
	return plancache.New(cfg, clk, testutil.DiscardLogger()), clk
}

func key(id int) plancache.Key {
	return plancache.NewKey(strconv.Itoa(id), seatplan.Horizontal, "")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "plan:77:h:1.1", plancache.NewKey(" 77 ", "", "").String())
	assert.Equal(t, "plan:77:v:2", plancache.NewKey("77", seatplan.Vertical, "2").String())
	assert.NotEqual(t, plancache.NewKey("77", seatplan.Vertical, "").String(), plancache.NewKey("77", seatplan.Horizontal, "").String())
}

func TestCache_TTL(t *testing.T) {
	cache, _ := newCache(nil)

	t.Run("more seats never shorten the ttl and the cap holds", func(t *testing.T) {
		prev := time.Duration(0)
		for seats := 0; seats <= 400; seats += 7 {
			ttl := cache.TTLFor(seats)
			assert.GreaterOrEqual(t, ttl, prev, "seats=%d", seats)
			assert.LessOrEqual(t, ttl, 2*time.Hour, "seats=%d", seats)
			prev = ttl
		}
	})

	t.Run("multiplier is capped at two", func(t *testing.T) {
		assert.Equal(t, 30*time.Minute, cache.TTLFor(0))
		assert.Equal(t, 45*time.Minute, cache.TTLFor(25))
		assert.Equal(t, time.Hour, cache.TTLFor(50))
		assert.Equal(t, time.Hour, cache.TTLFor(500))
	})

	t.Run("absolute maximum wins over the multiplier", func(t *testing.T) {
		capped, _ := newCache(func(c *config.CacheConfig) { c.MaxTTL = 40 * time.Minute })
		assert.Equal(t, 40*time.Minute, capped.TTLFor(50))
	})
}

func TestCache_GetSet(t *testing.T) {
	t.Run("hit returns an equal but independent copy", func(t *testing.T) {
		cache, _ := newCache(nil)
		plan := builder.NewPlanBuilder().BuildDomain()
		require.NoError(t, cache.Set(key(1), plan))

		got, ok := cache.Get(key(1))
		require.True(t, ok)
		if diff := cmp.Diff(plan, got); diff != "" {
			t.Errorf("cached plan mismatch (-want +got):\n%s", diff)
		}

		*got.Floors[0].Rows[0].Seats[0].Number = "999"
		again, _ := cache.Get(key(1))
		assert.Equal(t, "1", again.Floors[0].Rows[0].Seats[0].NumberOrEmpty())

		plan.Floors[0].Rows = nil
		again, _ = cache.Get(key(1))
		assert.NotEmpty(t, again.Floors[0].Rows)
	})

	t.Run("clone copies without touching the counters", func(t *testing.T) {
		cache, _ := newCache(nil)
		plan := builder.NewPlanBuilder().BuildDomain()

		out, err := plancache.Clone(plan)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(plan, out))
		*out.Floors[0].Rows[0].Seats[0].Number = "999"
		assert.Equal(t, "1", plan.Floors[0].Rows[0].Seats[0].NumberOrEmpty())

		stats := cache.Stats()
		assert.Zero(t, stats.Hits+stats.Misses)
	})

	t.Run("expired entries are dropped on read", func(t *testing.T) {
		cache, clk := newCache(nil)
		require.NoError(t, cache.Set(key(1), builder.NewPlanBuilder().WithSeats(0).BuildDomain()))

		clk.Add(29 * time.Minute)
		_, ok := cache.Get(key(1))
		assert.True(t, ok)

		clk.Add(time.Minute)
		_, ok = cache.Get(key(1))
		assert.False(t, ok)

		stats := cache.Stats()
		assert.Equal(t, 0, stats.TotalEntries)
		assert.Equal(t, uint64(1), stats.Expirations)
		assert.Equal(t, uint64(1), stats.Hits)
		assert.Equal(t, uint64(1), stats.Misses)
		assert.InDelta(t, 0.5, stats.HitRatio, 0.0001)
	})

	t.Run("delete and clear", func(t *testing.T) {
		cache, _ := newCache(nil)
		require.NoError(t, cache.Set(key(1), builder.NewPlanBuilder().BuildDomain()))
		require.NoError(t, cache.Set(key(2), builder.NewPlanBuilder().BuildDomain()))

		assert.True(t, cache.Delete(key(1)))
		assert.False(t, cache.Delete(key(1)))
		assert.Equal(t, 1, cache.Stats().TotalEntries)

		cache.Clear()
		stats := cache.Stats()
		assert.Equal(t, 0, stats.TotalEntries)
		assert.Zero(t, stats.MemoryUsageKB)
	})

	t.Run("replacing a key does not double count its size", func(t *testing.T) {
		cache, _ := newCache(nil)
		plan := builder.NewPlanBuilder().BuildDomain()
		require.NoError(t, cache.Set(key(1), plan))
		before := cache.Stats().MemoryUsageKB
		require.NoError(t, cache.Set(key(1), plan))
		assert.Equal(t, before, cache.Stats().MemoryUsageKB)
	})

	t.Run("nil plan is rejected", func(t *testing.T) {
		cache, _ := newCache(nil)
		assert.Error(t, cache.Set(key(1), nil))
	})
}

func TestCache_Eviction(t *testing.T) {
	t.Run("entry ceiling holds after any number of sets", func(t *testing.T) {
		cache, clk := newCache(func(c *config.CacheConfig) { c.MaxEntries = 10 })
		for i := 0; i < 57; i++ {
			clk.Add(time.Second)
			require.NoError(t, cache.Set(key(i), builder.NewPlanBuilder().BuildDomain()))
			assert.LessOrEqual(t, cache.Stats().TotalEntries, 10)
		}
		assert.NotZero(t, cache.Stats().Evictions)
	})

	t.Run("least recently used entries go first", func(t *testing.T) {
		cache, clk := newCache(func(c *config.CacheConfig) { c.MaxEntries = 5 })
		for i := 0; i < 5; i++ {
			clk.Add(time.Second)
			require.NoError(t, cache.Set(key(i), builder.NewPlanBuilder().BuildDomain()))
		}
		clk.Add(time.Second)
		_, ok := cache.Get(key(0))
		require.True(t, ok)

		clk.Add(time.Second)
		require.NoError(t, cache.Set(key(5), builder.NewPlanBuilder().BuildDomain()))

		// six entries over a ceiling of five: ceil(6*0.2) = 2 evicted
		_, ok = cache.Get(key(0))
		assert.True(t, ok, "recently read entry must survive")
		_, ok = cache.Get(key(1))
		assert.False(t, ok)
		_, ok = cache.Get(key(2))
		assert.False(t, ok)
		_, ok = cache.Get(key(3))
		assert.True(t, ok)
		assert.Equal(t, uint64(2), cache.Stats().Evictions)
	})

	t.Run("byte ceiling holds", func(t *testing.T) {
		cache, clk := newCache(func(c *config.CacheConfig) {
			c.MaxEntries = 1000
			c.SizeLimitKB = 8
		})
		for i := 0; i < 40; i++ {
			clk.Add(time.Second)
			require.NoError(t, cache.Set(key(i), builder.NewPlanBuilder().WithSeats(30).BuildDomain()))
			assert.LessOrEqual(t, cache.Stats().MemoryUsageKB, 8.0)
		}
		assert.Less(t, cache.Stats().TotalEntries, 40)
	})
}

func TestCache_Sweep(t *testing.T) {
	cache, clk := newCache(nil)
	require.NoError(t, cache.Set(key(1), builder.NewPlanBuilder().WithSeats(0).BuildDomain()))
	require.NoError(t, cache.Set(key(2), builder.NewPlanBuilder().WithSeats(50).BuildDomain()))

	clk.Add(31 * time.Minute)
	assert.Equal(t, 1, cache.Sweep())
	assert.Equal(t, 1, cache.Stats().TotalEntries)

	clk.Add(30 * time.Minute)
	assert.Equal(t, 1, cache.Sweep())
	assert.Equal(t, 0, cache.Stats().TotalEntries)
}

func TestCache_SweepInterval(t *testing.T) {
	t.Run("configured interval below the minimum ttl is kept", func(t *testing.T) {
		cache, _ := newCache(nil)
		assert.Equal(t, 5*time.Minute, cache.SweepInterval())
	})

	t.Run("interval is shortened below the minimum ttl", func(t *testing.T) {
		cache, _ := newCache(func(c *config.CacheConfig) { c.SweepInterval = time.Hour })
		assert.Equal(t, 15*time.Minute, cache.SweepInterval())
	})
}

func TestCache_StartDestroy(t *testing.T) {
	cache, _ := newCache(nil)
	require.NoError(t, cache.Start())
	require.NoError(t, cache.Start())
	require.NoError(t, cache.Set(key(1), builder.NewPlanBuilder().BuildDomain()))

	cache.Destroy()
	assert.Equal(t, 0, cache.Stats().TotalEntries)
	cache.Destroy()
}
