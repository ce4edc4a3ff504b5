package errs

import "errors"

// Category markers attached with Mark and checked with errors.Is
var (
	// Client-side checks
	ErrValidationFailed = errors.New("validation failed")
	ErrRateLimited      = errors.New("rate limit exceeded")

	// Carrier communication
	ErrTransport       = errors.New("carrier transport failure")
	ErrUpstreamStatus  = errors.New("carrier returned unexpected status")
	ErrCarrierRejected = errors.New("carrier rejected request")
	ErrMalformedReply  = errors.New("malformed carrier response")

	// Reservation lifecycle
	ErrTimerNotFound = errors.New("reservation timer not found")
	ErrSessionClosed = errors.New("booking session closed")
)
