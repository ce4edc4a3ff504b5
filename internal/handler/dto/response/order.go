package response

import (
	"time"

	"coach-booking-engine/internal/domain/order"
	"coach-booking-engine/internal/domain/reservation"
	"coach-booking-engine/internal/pkg/ptr"
	"coach-booking-engine/internal/usecase/events"
	"coach-booking-engine/internal/usecase/holdtimer"
)

type ValidationResponse struct {
	Valid        bool                   `json:"valid"`
	Complexity   string                 `json:"complexity"`
	Requirements order.Requirements     `json:"requirements"`
	Errors       order.ValidationErrors `json:"errors"`
	// Passengers holds the errors of each passenger form, by form index.
	Passengers []order.ValidationErrors `json:"passengers"`
}

func FromValidation(b order.Builder, verrs order.ValidationErrors) *ValidationResponse {
	if verrs == nil {
		verrs = order.ValidationErrors{}
	}
	perPassenger := make([]order.ValidationErrors, len(b.Passengers))
	for i := range b.Passengers {
		perPassenger[i] = verrs.ForPassenger(i)
		if perPassenger[i] == nil {
			perPassenger[i] = order.ValidationErrors{}
		}
	}
	return &ValidationResponse{
		Valid:        len(verrs) == 0,
		Complexity:   string(b.Complexity()),
		Requirements: b.Requirements(),
		Errors:       verrs,
		Passengers:   perPassenger,
	}
}

type TimerResponse struct {
	OrderID          string     `json:"orderId"`
	State            string     `json:"state"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	RemainingSeconds int        `json:"remainingSeconds"`
	Minutes          int        `json:"minutes"`
	Seconds          int        `json:"seconds"`
}

func FromSnapshot(orderID string, s holdtimer.Snapshot) *TimerResponse {
	state := s.State
	if state == "" {
		state = reservation.TimerIdle
	}
	resp := &TimerResponse{
		OrderID:          orderID,
		State:            string(state),
		RemainingSeconds: int(s.Remaining / time.Second),
	}
	if !s.ExpiresAt.IsZero() {
		resp.ExpiresAt = ptr.Of(s.ExpiresAt)
	}
	resp.Minutes, resp.Seconds = reservation.SplitRemaining(s.Remaining)
	return resp
}

type OrderResponse struct {
	OrderID                 string                            `json:"orderId"`
	Security                string                            `json:"security"`
	Status                  string                            `json:"status"`
	PriceTotal              float64                           `json:"priceTotal"`
	Currency                string                            `json:"currency"`
	ReservationUntil        *string                           `json:"reservationUntil,omitempty"`
	ReservationUntilMinutes int                               `json:"reservationUntilMinutes"`
	Promo                   *reservation.PromoResult          `json:"promo,omitempty"`
	Trips                   map[string]reservation.TripDetail `json:"trips,omitempty"`
	Timer                   *TimerResponse                    `json:"timer,omitempty"`
}

func FromReservationInfo(info *reservation.Info, timer holdtimer.Snapshot) *OrderResponse {
	resp := &OrderResponse{
		OrderID:                 info.OrderID,
		Security:                info.Security,
		Status:                  info.Status.String(),
		PriceTotal:              info.PriceTotal,
		Currency:                info.Currency,
		ReservationUntil:        ptr.NonEmpty(info.ReservationUntil),
		ReservationUntilMinutes: info.ReservationUntilMinutes,
		Promo:                   info.Promo,
		Trips:                   info.Trips,
	}
	if timer.State != "" {
		resp.Timer = FromSnapshot(info.OrderID, timer)
	}
	return resp
}

type ActionResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type EventsResponse struct {
	Events  []events.Event `json:"events"`
	LastSeq uint64         `json:"lastSeq"`
}

func FromEvents(after uint64, evs []events.Event) *EventsResponse {
	if evs == nil {
		evs = []events.Event{}
	}
	last := after
	if n := len(evs); n > 0 {
		last = evs[n-1].Seq
	}
	return &EventsResponse{Events: evs, LastSeq: last}
}
