package booking

import (
	"context"
	"time"

	"coach-booking-engine/internal/domain/order"
	"coach-booking-engine/internal/domain/reservation"
	"coach-booking-engine/internal/domain/seatplan"
	"coach-booking-engine/internal/infra/carrier"
	"coach-booking-engine/internal/infra/plancache"
	"coach-booking-engine/internal/usecase/events"
	"coach-booking-engine/internal/usecase/holdtimer"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/booking/ports_mock.go -package=bookingmock

// CarrierAPI is the outbound port to the carrier; *carrier.Client
// implements it.
type CarrierAPI interface {
	Call(ctx context.Context, ep carrier.Endpoint, payload carrier.Payload, opts ...carrier.CallOption) (*carrier.RawResponse, error)
}

// Service is what the storefront facade needs from a booking session.
type Service interface {
	GetSeatPlan(ctx context.Context, key plancache.Key) (*seatplan.BusPlan, error)
	PrefetchSeatPlans(ctx context.Context, keys []plancache.Key, concurrency int) []PrefetchResult
	CacheStats() plancache.Stats

	ValidateOrder(b order.Builder) order.ValidationErrors
	SubmitOrder(ctx context.Context, b order.Builder, cb holdtimer.Callbacks) (*reservation.Info, error)

	ReservationTimer(orderID string) holdtimer.Snapshot
	ExtendReservation(orderID string, by time.Duration) (holdtimer.Snapshot, error)
	StopReservationTimer(orderID string) bool

	RequestSMSCode(ctx context.Context, orderID, phone string) error
	ValidateSMSCode(ctx context.Context, orderID, code string) error
	ConfirmPayment(ctx context.Context, orderID string) error
	CancelOrder(ctx context.Context, orderID string) error

	Events(afterSeq uint64) []events.Event
}
