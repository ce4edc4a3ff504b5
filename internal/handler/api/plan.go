package api

import (
	"net/http"
	"strings"

	reqdto "coach-booking-engine/internal/handler/dto/request"
	resdto "coach-booking-engine/internal/handler/dto/response"
	"coach-booking-engine/internal/handler/httperr"
	"coach-booking-engine/internal/pkg/errs"
	"coach-booking-engine/internal/usecase/booking"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	svc booking.Service
}

func NewPlanHandler(svc booking.Service) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// @Summary Get seat plan
// @Description Normalized seat layout of a bus type, served from cache when fresh
// @Tags plans
// @Produce json
// @Param busTypeId path string true "Carrier bus type id"
// @Param position query string false "Orientation (h or v)"
// @Param version query string false "Layout schema version"
// @Success 200 {object} resdto.PlanResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/plans/{busTypeId} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	busTypeID := strings.TrimSpace(c.Param("busTypeId"))
	if busTypeID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("empty bus type id"), "Invalid bus type id", nil)
		return
	}
	var q reqdto.PlanQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	plan, err := h.svc.GetSeatPlan(c.Request.Context(), q.ToKey(busTypeID))
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBusPlan(plan))
}

// @Summary Prefetch seat plans
// @Description Warm the cache for several layouts with bounded concurrency
// @Tags plans
// @Accept json
// @Produce json
// @Param request body reqdto.PrefetchRequest true "Layouts to load"
// @Success 200 {object} resdto.PrefetchResponse
// @Failure 400 {object} httperr.Response
// @Router /api/plans/prefetch [post]
func (h *PlanHandler) Prefetch(c *gin.Context) {
	var req reqdto.PrefetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	results := h.svc.PrefetchSeatPlans(c.Request.Context(), req.ToKeys(), req.Concurrency)
	c.JSON(http.StatusOK, resdto.FromPrefetch(results))
}

// @Summary Plan cache statistics
// @Tags plans
// @Produce json
// @Success 200 {object} plancache.Stats
// @Router /api/cache/stats [get]
func (h *PlanHandler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.CacheStats())
}
