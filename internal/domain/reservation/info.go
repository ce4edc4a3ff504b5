package reservation

import (
	"time"
)

type Status string

const (
	StatusReserved  Status = "reserve_ok"
	StatusPaid      Status = "buy"
	StatusCancelled Status = "cancel"
)

func (s Status) String() string {
	return string(s)
}

// Flow is how the customer settles a held order.
type Flow string

const (
	FlowOnlinePayment Flow = "online_payment"
	FlowPayOnBoardSMS Flow = "pay_on_board_sms"
	FlowReservation   Flow = "reservation"
)

func (f Flow) IsValid() bool {
	switch f {
	case FlowOnlinePayment, FlowPayOnBoardSMS, FlowReservation:
		return true
	default:
		return false
	}
}

type PromoResult struct {
	Code    string `json:"code"`
	Applied bool   `json:"applied"`
	Message string `json:"message,omitempty"`
}

// TripDetail is one ordinal trip entry of an order confirmation, flattened
// to scalar strings.
type TripDetail map[string]string

// Info is the carrier's answer to order creation. A retry produces a new
// Info; an existing one is never modified.
type Info struct {
	OrderID                 string                `json:"orderId"`
	Security                string                `json:"security"`
	Status                  Status                `json:"status"`
	PriceTotal              float64               `json:"priceTotal"`
	Currency                string                `json:"currency"`
	ReservationUntil        string                `json:"reservationUntil"`
	ReservationUntilMinutes int                   `json:"reservationUntilMinutes"`
	Promo                   *PromoResult          `json:"promo,omitempty"`
	Trips                   map[string]TripDetail `json:"trips,omitempty"`
}

// HoldDuration is the server-granted lock length.
func (i *Info) HoldDuration() time.Duration {
	if i == nil || i.ReservationUntilMinutes <= 0 {
		return 0
	}
	return time.Duration(i.ReservationUntilMinutes) * time.Minute
}

// ExpiresAt is the absolute hold deadline as seen from now.
func (i *Info) ExpiresAt(now time.Time) time.Time {
	return now.Add(i.HoldDuration())
}

// TimerState is the lifecycle of a client-side hold countdown.
type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerExpired TimerState = "expired"
	TimerStopped TimerState = "stopped"
)

// SplitRemaining converts a remaining duration into whole minutes and
// seconds, clamped at zero.
func SplitRemaining(d time.Duration) (minutes, seconds int) {
	if d <= 0 {
		return 0, 0
	}
	total := int(d / time.Second)
	return total / 60, total % 60
}
