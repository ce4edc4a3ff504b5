package booking

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coach-booking-engine/internal/domain/order"
	"coach-booking-engine/internal/domain/reservation"
	"coach-booking-engine/internal/infra/carrier"
	"coach-booking-engine/internal/infra/wire"
	"coach-booking-engine/internal/pkg/errs"
	"coach-booking-engine/internal/usecase/events"
	"coach-booking-engine/internal/usecase/holdtimer"
)

func (s *Session) ValidateOrder(b order.Builder) order.ValidationErrors {
	return s.validator.Validate(b)
}

// SubmitOrder validates and places the order, then starts the hold
// countdown from the lock duration the carrier granted.
func (s *Session) SubmitOrder(ctx context.Context, b order.Builder, cb holdtimer.Callbacks) (*reservation.Info, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, newOrderError(err)
	}
	if verrs := s.validator.Validate(b); len(verrs) > 0 {
		return nil, newValidationError(verrs)
	}

	payload := order.Build(b)
	resp, err := s.carrier.Call(ctx, carrier.NewOrder, carrier.Payload(payload))
	if err != nil {
		return nil, s.orderFailure("new_order", "", err)
	}

	doc, err := wire.Decode(resp.Body)
	if err != nil {
		return nil, s.orderFailure("new_order", "", err)
	}
	info, err := wire.NormalizeOrder(doc)
	if err != nil {
		return nil, s.orderFailure("new_order", "", err)
	}

	if info.HoldDuration() > 0 {
		if _, err := s.timers.Start(info, cb); err != nil {
			return nil, s.orderFailure("new_order", info.OrderID, err)
		}
	}
	s.logger.Info("order reserved",
		slog.String("order_id", info.OrderID),
		slog.String("status", info.Status.String()),
		slog.Int("hold_minutes", info.ReservationUntilMinutes),
		slog.String("complexity", string(b.Complexity())))
	return info, nil
}

// StartReservationTimer restarts the countdown for a known reservation.
func (s *Session) StartReservationTimer(info *reservation.Info, cb holdtimer.Callbacks) (holdtimer.Snapshot, error) {
	if err := s.ensureOpen(); err != nil {
		return holdtimer.Snapshot{}, err
	}
	return s.timers.Start(info, cb)
}

func (s *Session) StopReservationTimer(orderID string) bool {
	return s.timers.Stop(orderID)
}

// ExtendReservation only moves the local deadline; the carrier keeps its
// own.
func (s *Session) ExtendReservation(orderID string, by time.Duration) (holdtimer.Snapshot, error) {
	return s.timers.Extend(orderID, by)
}

func (s *Session) ReservationTimer(orderID string) holdtimer.Snapshot {
	snap, _ := s.timers.Get(orderID)
	return snap
}

// RemainingTime is the hold time left on a running countdown.
func (s *Session) RemainingTime(orderID string) (time.Duration, bool) {
	return s.timers.Remaining(orderID)
}

// RequestSMSCode asks the carrier to text the pay-on-board confirmation
// code to the given phone.
func (s *Session) RequestSMSCode(ctx context.Context, orderID, phone string) error {
	_, err := s.ack(ctx, carrier.ReserveValidation, orderID, carrier.Payload{
		"phone": order.NormalizePhone(phone),
	})
	return err
}

// ValidateSMSCode completes the pay-on-board flow.
func (s *Session) ValidateSMSCode(ctx context.Context, orderID, code string) error {
	if _, err := s.ack(ctx, carrier.SMSValidation, orderID, carrier.Payload{"code": strings.TrimSpace(code)}); err != nil {
		return err
	}
	s.finish(orderID, events.KindCompleted, reservation.FlowPayOnBoardSMS)
	return nil
}

// ConfirmPayment buys the tickets once the external gateway has charged
// the customer.
func (s *Session) ConfirmPayment(ctx context.Context, orderID string) error {
	if _, err := s.ack(ctx, carrier.BuyTicket, orderID, nil); err != nil {
		return err
	}
	s.finish(orderID, events.KindCompleted, reservation.FlowOnlinePayment)
	return nil
}

// CancelOrder releases the hold at the carrier.
func (s *Session) CancelOrder(ctx context.Context, orderID string) error {
	if _, err := s.ack(ctx, carrier.CancelTicket, orderID, nil); err != nil {
		return err
	}
	s.finish(orderID, events.KindCancelled, "")
	return nil
}

func (s *Session) ack(ctx context.Context, ep carrier.Endpoint, orderID string, extra carrier.Payload) (map[string]string, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, newOrderError(err)
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, newOrderError(errs.Mark(errs.New("order id is required"), errs.ErrValidationFailed))
	}

	payload := carrier.Payload{"order_id": orderID}
	for k, v := range extra {
		payload[k] = v
	}

	resp, err := s.carrier.Call(ctx, ep, payload)
	if err != nil {
		return nil, s.orderFailure(ep.Name, orderID, err)
	}
	doc, err := wire.Decode(resp.Body)
	if err != nil {
		return nil, s.orderFailure(ep.Name, orderID, err)
	}
	fields, err := wire.NormalizeAck(doc)
	if err != nil {
		return nil, s.orderFailure(ep.Name, orderID, err)
	}
	return fields, nil
}

func (s *Session) finish(orderID string, kind events.Kind, flow reservation.Flow) {
	s.timers.Stop(orderID)
	s.bus.Publish(kind, orderID, flow)
}

func (s *Session) orderFailure(endpoint, orderID string, err error) error {
	oe := newOrderError(err)
	s.logger.Warn("order call failed",
		slog.String("endpoint", endpoint),
		slog.String("order_id", orderID),
		slog.String("code", oe.Code),
		slog.String("detail", oe.Detail))
	return oe
}
