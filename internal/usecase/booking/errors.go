package booking

import (
	"errors"
	"fmt"

	"coach-booking-engine/internal/domain/order"
	"coach-booking-engine/internal/infra"
	"coach-booking-engine/internal/infra/wire"
	"coach-booking-engine/internal/pkg/errs"
)

// PlanError is the failure of a seat plan lookup.
type PlanError struct {
	Kind      wire.Kind `json:"kind"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message"`
	Guidance  string    `json:"guidance"`
	Retryable bool      `json:"retryable"`
	err       error
}

func (e *PlanError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("seat plan %s (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("seat plan %s: %s", e.Kind, e.Message)
}

func (e *PlanError) Unwrap() error {
	return e.err
}

// OrderError is the failure of an order submission or a follow-up call.
// Validation is set only for client-side validation failures.
type OrderError struct {
	Kind       wire.Kind              `json:"kind"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Detail     string                 `json:"detail,omitempty"`
	Suggestion string                 `json:"suggestion"`
	Retryable  bool                   `json:"retryable"`
	Validation order.ValidationErrors `json:"validation,omitempty"`
	err        error
}

func (e *OrderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("order %s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("order %s: %s", e.Code, e.Message)
}

func (e *OrderError) Unwrap() error {
	return e.err
}

// classified is the common reading of any failure below the session.
type classified struct {
	kind      wire.Kind
	code      string
	message   string
	detail    string
	retryable bool
}

func classify(err error) classified {
	if we, ok := wire.AsWireError(err); ok {
		return classified{kind: we.Kind, code: we.Code, message: we.Message, detail: we.Detail, retryable: we.Retryable()}
	}
	if pe, ok := wire.AsParseError(err); ok {
		return classified{kind: wire.KindParse, code: string(wire.KindParse), message: pe.Error()}
	}

	if errs.Is(err, errs.ErrValidationFailed) {
		return classified{kind: wire.KindValidation, code: string(wire.KindValidation), message: "request is incomplete", detail: errMessage(err)}
	}

	var ce *infra.ClientError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case infra.KindRateLimit:
			return classified{kind: wire.KindNetwork, code: wire.CodeRateLimited, message: "too many requests to the carrier, slow down"}
		case infra.KindNetwork, infra.KindHTTPStatus:
			return classified{kind: wire.KindNetwork, code: string(wire.KindNetwork), message: "carrier is unreachable", detail: ce.Error(), retryable: ce.Retryable}
		}
	}
	if errs.Is(err, errs.ErrSessionClosed) {
		return classified{kind: wire.KindUnknown, code: string(wire.KindUnknown), message: "booking session is closed"}
	}
	return classified{kind: wire.KindUnknown, code: string(wire.KindUnknown), message: "unexpected failure", detail: errMessage(err)}
}

func newPlanError(err error) *PlanError {
	c := classify(err)
	return &PlanError{
		Kind:      c.kind,
		Code:      c.code,
		Message:   c.message,
		Guidance:  wire.Guidance(c.code),
		Retryable: c.retryable,
		err:       err,
	}
}

func newOrderError(err error) *OrderError {
	c := classify(err)
	return &OrderError{
		Kind:       c.kind,
		Code:       c.code,
		Message:    c.message,
		Detail:     c.detail,
		Suggestion: wire.Guidance(c.code),
		Retryable:  c.retryable,
		err:        err,
	}
}

func newValidationError(v order.ValidationErrors) *OrderError {
	return &OrderError{
		Kind:       wire.KindValidation,
		Code:       string(wire.KindValidation),
		Message:    "order is incomplete",
		Suggestion: "correct the highlighted fields",
		Validation: v,
		err:        errs.Mark(v, errs.ErrValidationFailed),
	}
}

func AsPlanError(err error) (*PlanError, bool) {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func AsOrderError(err error) (*OrderError, bool) {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
