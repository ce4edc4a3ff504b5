package api

import (
	"net/http"
	"strconv"

	resdto "coach-booking-engine/internal/handler/dto/response"
	"coach-booking-engine/internal/handler/httperr"
	"coach-booking-engine/internal/usecase/booking"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	svc booking.Service
}

func NewEventHandler(svc booking.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

// @Summary Reservation events
// @Description Lifecycle events after the given sequence number, for polling clients
// @Tags events
// @Produce json
// @Param after query int false "Last sequence number already seen"
// @Success 200 {object} resdto.EventsResponse
// @Failure 400 {object} httperr.Response
// @Router /api/events [get]
func (h *EventHandler) List(c *gin.Context) {
	var after uint64
	if raw := c.Query("after"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid after", nil)
			return
		}
		after = v
	}
	c.JSON(http.StatusOK, resdto.FromEvents(after, h.svc.Events(after)))
}
