package events

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"coach-booking-engine/internal/domain/reservation"
	"coach-booking-engine/internal/pkg/clock"
	"coach-booking-engine/internal/pkg/config"

	"github.com/google/uuid"
)

type Kind string

const (
	KindExpired   Kind = "reservation.expired"
	KindCompleted Kind = "reservation.completed"
	KindCancelled Kind = "reservation.cancelled"
)

type Event struct {
	ID         string           `json:"id"`
	Seq        uint64           `json:"seq"`
	Kind       Kind             `json:"kind"`
	OrderID    string           `json:"orderId"`
	Flow       reservation.Flow `json:"flow,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

type Handler func(Event)

// Bus fans events out to subscribers synchronously and keeps the most
// recent ones in a sequence-numbered log for pollers.
type Bus struct {
	mu       sync.Mutex
	clock    clock.Clock
	logger   *slog.Logger
	subs     map[int]Handler
	nextSub  int
	seq      uint64
	log      []Event
	capacity int
}

func NewBus(cfg config.EventsConfig, clk clock.Clock, logger *slog.Logger) *Bus {
	capacity := cfg.LogCapacity
	if capacity <= 0 {
		capacity = 256
	}
	return &Bus{
		clock:    clk,
		logger:   logger,
		subs:     make(map[int]Handler),
		capacity: capacity,
	}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	b.subs[id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

func (b *Bus) Publish(kind Kind, orderID string, flow reservation.Flow) Event {
	b.mu.Lock()
	b.seq++
	ev := Event{
		ID:         uuid.NewString(),
		Seq:        b.seq,
		Kind:       kind,
		OrderID:    orderID,
		Flow:       flow,
		OccurredAt: b.clock.Now(),
	}
	b.log = append(b.log, ev)
	if over := len(b.log) - b.capacity; over > 0 {
		b.log = append(b.log[:0], b.log[over:]...)
	}
	handlers := b.handlersLocked()
	b.mu.Unlock()

	for _, h := range handlers {
		b.deliver(h, ev)
	}
	return ev
}

// Since returns the logged events with a sequence number above afterSeq,
// oldest first.
func (b *Bus) Since(afterSeq uint64) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := sort.Search(len(b.log), func(i int) bool { return b.log[i].Seq > afterSeq })
	return append([]Event(nil), b.log[i:]...)
}

// LastSeq is the sequence number of the newest event, 0 when none.
func (b *Bus) LastSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

func (b *Bus) handlersLocked() []Handler {
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Handler, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.subs[id])
	}
	return out
}

// deliver keeps one failing subscriber from breaking the publisher, which
// may be a timer tick.
func (b *Bus) deliver(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked",
				slog.String("kind", string(ev.Kind)),
				slog.String("order_id", ev.OrderID),
				slog.String("panic", fmt.Sprint(r)))
		}
	}()
	h(ev)
}
