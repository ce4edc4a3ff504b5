package infra

import (
	"errors"
	"log/slog"

	"coach-booking-engine/internal/pkg/errs"
)

type ClientErrorKind string

// ClientError is the single failure type returned by the carrier client.
type ClientError struct {
	Kind       ClientErrorKind
	Endpoint   string
	StatusCode int
	Attempts   int
	Retryable  bool
	msg        string
	err        error // wrapped low-level error
}

func (e *ClientError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e *ClientError) Unwrap() error {
	return e.err
}

func WrapClientErr(slogger *slog.Logger, kind ClientErrorKind, endpoint, msg string, err error) *ClientError {
	logArgs := []any{
		slog.String("kind", string(kind)),
		slog.String("endpoint", endpoint),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Warn("Carrier call failed: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}
	err = errs.Mark(err, kindMarkers[kind])

	return &ClientError{Kind: kind, Endpoint: endpoint, Retryable: kind.retryable(), msg: msg, err: err}
}

func IsKind(err error, kind ClientErrorKind) bool {
	var e *ClientError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Carrier client error kinds
const (
	KindRateLimit  ClientErrorKind = "RATE_LIMIT"
	KindNetwork    ClientErrorKind = "NETWORK"
	KindHTTPStatus ClientErrorKind = "HTTP"
	KindWire       ClientErrorKind = "WIRE"
)

var kindMarkers = map[ClientErrorKind]error{
	KindRateLimit:  errs.ErrRateLimited,
	KindNetwork:    errs.ErrTransport,
	KindHTTPStatus: errs.ErrUpstreamStatus,
	KindWire:       errs.ErrCarrierRejected,
}

// retryable is the default per kind; wire errors decide for themselves.
func (k ClientErrorKind) retryable() bool {
	switch k {
	case KindNetwork, KindHTTPStatus:
		return true
	default:
		return false
	}
}
