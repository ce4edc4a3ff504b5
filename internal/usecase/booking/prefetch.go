package booking

import (
	"context"

	"coach-booking-engine/internal/domain/seatplan"
	"coach-booking-engine/internal/infra/plancache"

	"golang.org/x/sync/errgroup"
)

const defaultPrefetchConcurrency = 4

type PrefetchResult struct {
	Key  plancache.Key
	Plan *seatplan.BusPlan
	Err  error
}

// PrefetchSeatPlans loads several layouts with at most concurrency calls in
// flight. Results keep the input order and one failure does not cancel the
// other lookups.
func (s *Session) PrefetchSeatPlans(ctx context.Context, keys []plancache.Key, concurrency int) []PrefetchResult {
	if concurrency <= 0 {
		concurrency = defaultPrefetchConcurrency
	}

	results := make([]PrefetchResult, len(keys))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, key := range keys {
		g.Go(func() error {
			plan, err := s.GetSeatPlan(ctx, key)
			results[i] = PrefetchResult{Key: key, Plan: plan, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
