package api

import (
	"net/http"

	"coach-booking-engine/internal/handler/httperr"
	"coach-booking-engine/internal/infra/wire"
	"coach-booking-engine/internal/pkg/errs"
	"coach-booking-engine/internal/usecase/booking"

	"github.com/gin-gonic/gin"
)

func statusFor(kind wire.Kind, code string) int {
	if code == wire.CodeRateLimited {
		return http.StatusTooManyRequests
	}
	switch kind {
	case wire.KindValidation:
		return http.StatusUnprocessableEntity
	case wire.KindNotFound:
		return http.StatusNotFound
	case wire.KindNetwork, wire.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// abortWithBookingError renders session failures with their category,
// user guidance and retry hint.
func abortWithBookingError(c *gin.Context, err error) {
	if pe, ok := booking.AsPlanError(err); ok {
		httperr.AbortWithBody(c, statusFor(pe.Kind, pe.Code), err, pe.Message, httperr.Body{
			Code:      pe.Code,
			Guidance:  pe.Guidance,
			Retryable: pe.Retryable,
		})
		return
	}
	if oe, ok := booking.AsOrderError(err); ok {
		body := httperr.Body{
			Code:      oe.Code,
			Guidance:  oe.Suggestion,
			Retryable: oe.Retryable,
		}
		if len(oe.Validation) > 0 {
			body.Detail = oe.Validation
		} else if oe.Detail != "" {
			body.Detail = oe.Detail
		}
		httperr.AbortWithBody(c, statusFor(oe.Kind, oe.Code), err, oe.Message, body)
		return
	}
	if errs.Is(err, errs.ErrTimerNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "No running reservation timer", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
