package booking

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"coach-booking-engine/internal/domain/order"
	"coach-booking-engine/internal/domain/seatplan"
	"coach-booking-engine/internal/infra/carrier"
	"coach-booking-engine/internal/infra/plancache"
	"coach-booking-engine/internal/infra/wire"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/pkg/errs"
	"coach-booking-engine/internal/usecase/events"
	"coach-booking-engine/internal/usecase/holdtimer"

	"golang.org/x/sync/singleflight"
)

// Session owns every piece of mutable booking state: the plan cache, the
// hold timers and the event bus. Independent sessions share nothing.
type Session struct {
	carrier   CarrierAPI
	cache     *plancache.Cache
	timers    *holdtimer.Registry
	bus       *events.Bus
	validator *order.Validator
	logger    *slog.Logger

	coalesce bool
	inflight singleflight.Group
	closed   atomic.Bool
}

var _ Service = (*Session)(nil)

func NewSession(cfg config.Config, api CarrierAPI, clk clock.Clock, logger *slog.Logger) *Session {
	bus := events.NewBus(cfg.Events, clk, logger)
	s := &Session{
		carrier:   api,
		cache:     plancache.New(cfg.Cache, clk, logger),
		bus:       bus,
		validator: order.NewValidator(),
		logger:    logger,
		coalesce:  cfg.Cache.CoalesceInFlight,
	}
	s.timers = holdtimer.NewRegistry(cfg.Timer, clk, logger, func(orderID string, _ time.Time) {
		bus.Publish(events.KindExpired, orderID, "")
	})
	return s
}

// Start launches the background cache sweep.
func (s *Session) Start() error {
	return s.cache.Start()
}

// Close stops the cache sweep, drops cached plans and stops every running
// hold timer. Calls after the first are no-ops.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.cache.Destroy()
	stopped := s.timers.StopAll()
	s.logger.Info("booking session closed", slog.Int("timers_stopped", stopped))
	return nil
}

// GetSeatPlan serves from the cache and falls back to the carrier on a miss.
func (s *Session) GetSeatPlan(ctx context.Context, key plancache.Key) (*seatplan.BusPlan, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, newPlanError(err)
	}
	if plan, ok := s.cache.Get(key); ok {
		return plan, nil
	}

	if !s.coalesce {
		return s.fetchPlan(ctx, key)
	}
	v, err, shared := s.inflight.Do(key.String(), func() (any, error) {
		return s.fetchPlan(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	plan := v.(*seatplan.BusPlan)
	if !shared {
		return plan, nil
	}
	// waiters must not share one mutable value
	out, err := plancache.Clone(plan)
	if err != nil {
		return nil, newPlanError(err)
	}
	return out, nil
}

func (s *Session) fetchPlan(ctx context.Context, key plancache.Key) (*seatplan.BusPlan, error) {
	resp, err := s.carrier.Call(ctx, carrier.GetPlan, carrier.Payload{
		"bus_type_id": key.BusTypeID,
		"position":    string(key.Position),
		"v":           key.Version,
	})
	if err != nil {
		return nil, s.planFailure(key, err)
	}

	doc, err := wire.Decode(resp.Body)
	if err != nil {
		return nil, s.planFailure(key, err)
	}
	plan, err := wire.NormalizePlan(doc)
	if err != nil {
		return nil, s.planFailure(key, err)
	}
	if plan.BusTypeID == "" {
		plan.BusTypeID = key.BusTypeID
	}

	if err := s.cache.Set(key, plan); err != nil {
		s.logger.Error("failed to cache seat plan", slog.String("key", key.String()), slog.String("error", err.Error()))
	}
	return plan, nil
}

func (s *Session) planFailure(key plancache.Key, err error) error {
	pe := newPlanError(err)
	s.logger.Warn("seat plan lookup failed",
		slog.String("key", key.String()),
		slog.String("kind", pe.Kind.String()),
		slog.String("code", pe.Code),
		slog.Bool("retryable", pe.Retryable))
	return pe
}

func (s *Session) CacheStats() plancache.Stats {
	return s.cache.Stats()
}

// Subscribe registers a listener for reservation events.
func (s *Session) Subscribe(h events.Handler) func() {
	return s.bus.Subscribe(h)
}

// Events returns logged events newer than afterSeq for pollers.
func (s *Session) Events(afterSeq uint64) []events.Event {
	return s.bus.Since(afterSeq)
}

func (s *Session) ensureOpen() error {
	if s.closed.Load() {
		return errs.Mark(errs.New("booking session is closed"), errs.ErrSessionClosed)
	}
	return nil
}
