package holdtimer

import (
	"log/slog"
	"sync"
	"time"

	"coach-booking-engine/internal/domain/reservation"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/pkg/errs"
)

// finishedCap bounds how many terminal states are remembered for State.
const finishedCap = 1024

// Callbacks are invoked outside the registry lock, one at a time per order.
type Callbacks struct {
	OnUpdate  func(minutes, seconds int)
	OnExpired func()
}

// ExpiryListener receives the process-wide expiry notification.
type ExpiryListener func(orderID string, expiredAt time.Time)

type Snapshot struct {
	OrderID   string
	ExpiresAt time.Time
	Remaining time.Duration
	State     reservation.TimerState
}

type timer struct {
	orderID   string
	expiresAt time.Time
	callbacks Callbacks
	handle    clock.Timer
}

// Registry holds at most one running countdown per order id. Remaining time
// is always recomputed from the clock, so a late tick after a suspended
// process still sees the true deadline.
type Registry struct {
	mu       sync.Mutex
	clock    clock.Clock
	tick     time.Duration
	logger   *slog.Logger
	onExpiry ExpiryListener

	timers        map[string]*timer
	finished      map[string]reservation.TimerState
	finishedOrder []string
}

func NewRegistry(cfg config.TimerConfig, clk clock.Clock, logger *slog.Logger, onExpiry ExpiryListener) *Registry {
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = time.Second
	}
	return &Registry{
		clock:    clk,
		tick:     tick,
		logger:   logger,
		onExpiry: onExpiry,
		timers:   make(map[string]*timer),
		finished: make(map[string]reservation.TimerState),
	}
}

// Start begins the countdown for the hold granted in info. A running timer
// for the same order is stopped first.
func (r *Registry) Start(info *reservation.Info, cb Callbacks) (Snapshot, error) {
	if info == nil || info.OrderID == "" {
		return Snapshot{}, errs.Mark(errs.New("reservation without order id"), errs.ErrValidationFailed)
	}
	return r.StartUntil(info.OrderID, info.ExpiresAt(r.clock.Now()), cb), nil
}

// StartUntil begins a countdown to an absolute deadline.
func (r *Registry) StartUntil(orderID string, expiresAt time.Time, cb Callbacks) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.timers[orderID]; ok {
		old.handle.Stop()
		delete(r.timers, orderID)
	}

	t := &timer{orderID: orderID, expiresAt: expiresAt, callbacks: cb}
	r.timers[orderID] = t
	r.scheduleLocked(t)

	r.logger.Debug("reservation timer started",
		slog.String("order_id", orderID),
		slog.Time("expires_at", expiresAt))
	return r.snapshotLocked(t)
}

// Stop cancels the countdown and reports whether one was running.
func (r *Registry) Stop(orderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[orderID]
	if !ok {
		return false
	}
	t.handle.Stop()
	delete(r.timers, orderID)
	r.rememberLocked(orderID, reservation.TimerStopped)
	return true
}

// Extend pushes the local deadline forward. The carrier is not consulted,
// so the local countdown may outlive the real hold.
func (r *Registry) Extend(orderID string, d time.Duration) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[orderID]
	if !ok {
		return Snapshot{}, errs.Mark(errs.New("no running timer for order "+orderID), errs.ErrTimerNotFound)
	}
	t.expiresAt = t.expiresAt.Add(d)
	return r.snapshotLocked(t), nil
}

func (r *Registry) Get(orderID string) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[orderID]; ok {
		return r.snapshotLocked(t), true
	}
	if state, ok := r.finished[orderID]; ok {
		return Snapshot{OrderID: orderID, State: state}, false
	}
	return Snapshot{OrderID: orderID, State: reservation.TimerIdle}, false
}

func (r *Registry) Remaining(orderID string) (time.Duration, bool) {
	s, ok := r.Get(orderID)
	return s.Remaining, ok
}

func (r *Registry) State(orderID string) reservation.TimerState {
	s, _ := r.Get(orderID)
	return s.State
}

// Active lists the order ids with a running countdown.
func (r *Registry) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.timers))
	for id := range r.timers {
		ids = append(ids, id)
	}
	return ids
}

// StopAll is the teardown path; it returns how many timers were running.
func (r *Registry) StopAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.timers)
	for id, t := range r.timers {
		t.handle.Stop()
		delete(r.timers, id)
		r.rememberLocked(id, reservation.TimerStopped)
	}
	return n
}

func (r *Registry) scheduleLocked(t *timer) {
	t.handle = r.clock.AfterFunc(r.tick, func() { r.onTick(t) })
}

func (r *Registry) onTick(t *timer) {
	r.mu.Lock()
	if r.timers[t.orderID] != t {
		// stopped or superseded after this tick was scheduled
		r.mu.Unlock()
		return
	}

	now := r.clock.Now()
	remaining := t.expiresAt.Sub(now)
	if remaining <= 0 {
		delete(r.timers, t.orderID)
		r.rememberLocked(t.orderID, reservation.TimerExpired)
		r.mu.Unlock()

		r.logger.Info("reservation hold expired", slog.String("order_id", t.orderID))
		if t.callbacks.OnExpired != nil {
			t.callbacks.OnExpired()
		}
		if r.onExpiry != nil {
			r.onExpiry(t.orderID, now)
		}
		return
	}
	r.mu.Unlock()

	if t.callbacks.OnUpdate != nil {
		t.callbacks.OnUpdate(reservation.SplitRemaining(remaining))
	}

	r.mu.Lock()
	if r.timers[t.orderID] == t {
		r.scheduleLocked(t)
	}
	r.mu.Unlock()
}

func (r *Registry) snapshotLocked(t *timer) Snapshot {
	remaining := t.expiresAt.Sub(r.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{OrderID: t.orderID, ExpiresAt: t.expiresAt, Remaining: remaining, State: reservation.TimerRunning}
}

func (r *Registry) rememberLocked(orderID string, state reservation.TimerState) {
	if _, ok := r.finished[orderID]; !ok {
		r.finishedOrder = append(r.finishedOrder, orderID)
	}
	r.finished[orderID] = state

	for len(r.finishedOrder) > finishedCap {
		oldest := r.finishedOrder[0]
		r.finishedOrder = r.finishedOrder[1:]
		delete(r.finished, oldest)
	}
}
