package api

import (
	"net/http"
	"strings"

	reqdto "coach-booking-engine/internal/handler/dto/request"
	resdto "coach-booking-engine/internal/handler/dto/response"
	"coach-booking-engine/internal/handler/httperr"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/pkg/errs"
	"coach-booking-engine/internal/usecase/booking"
	"coach-booking-engine/internal/usecase/holdtimer"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc      booking.Service
	currency string
	lang     string
}

func NewOrderHandler(svc booking.Service, cfg config.Config) *OrderHandler {
	return &OrderHandler{svc: svc, currency: cfg.Carrier.Currency, lang: cfg.Carrier.Lang}
}

// @Summary Validate order
// @Description Check passenger and seat data without contacting the carrier
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOrderRequest true "Order draft"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /api/orders/validate [post]
func (h *OrderHandler) Validate(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	b := req.ToBuilder(h.currency, h.lang)
	c.JSON(http.StatusOK, resdto.FromValidation(b, h.svc.ValidateOrder(b)))
}

// @Summary Create order
// @Description Place a held order and start its reservation countdown
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOrderRequest true "Order"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	info, err := h.svc.SubmitOrder(c.Request.Context(), req.ToBuilder(h.currency, h.lang), holdtimer.Callbacks{})
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.Header("Location", "/api/orders/"+info.OrderID+"/timer")
	c.JSON(http.StatusCreated, resdto.FromReservationInfo(info, h.svc.ReservationTimer(info.OrderID)))
}

// @Summary Reservation timer
// @Tags orders
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} resdto.TimerResponse
// @Router /api/orders/{orderId}/timer [get]
func (h *OrderHandler) Timer(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(orderID, h.svc.ReservationTimer(orderID)))
}

// @Summary Extend reservation timer
// @Description Move the local hold deadline; the carrier keeps its own
// @Tags orders
// @Accept json
// @Produce json
// @Param orderId path string true "Order id"
// @Param request body reqdto.ExtendTimerRequest false "Extension"
// @Success 200 {object} resdto.TimerResponse
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{orderId}/timer/extend [post]
func (h *OrderHandler) ExtendTimer(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req reqdto.ExtendTimerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	snap, err := h.svc.ExtendReservation(orderID, req.Duration())
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSnapshot(orderID, snap))
}

// @Summary Stop reservation timer
// @Tags orders
// @Param orderId path string true "Order id"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{orderId}/timer [delete]
func (h *OrderHandler) StopTimer(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	if !h.svc.StopReservationTimer(orderID) {
		httperr.AbortWithError(c, http.StatusNotFound, errs.ErrTimerNotFound, "No running reservation timer", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Request SMS code
// @Description Ask the carrier to text the pay-on-board confirmation code
// @Tags orders
// @Accept json
// @Produce json
// @Param orderId path string true "Order id"
// @Param request body reqdto.SMSCodeRequest true "Phone"
// @Success 202 {object} resdto.ActionResponse
// @Router /api/orders/{orderId}/sms/request [post]
func (h *OrderHandler) RequestSMS(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req reqdto.SMSCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.svc.RequestSMSCode(c.Request.Context(), orderID, req.Phone); err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resdto.ActionResponse{OrderID: orderID, Status: "sms_sent"})
}

// @Summary Validate SMS code
// @Tags orders
// @Accept json
// @Produce json
// @Param orderId path string true "Order id"
// @Param request body reqdto.SMSValidateRequest true "Code"
// @Success 200 {object} resdto.ActionResponse
// @Router /api/orders/{orderId}/sms/validate [post]
func (h *OrderHandler) ValidateSMS(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req reqdto.SMSValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.svc.ValidateSMSCode(c.Request.Context(), orderID, req.Code); err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ActionResponse{OrderID: orderID, Status: "confirmed"})
}

// @Summary Confirm payment
// @Description Buy the tickets after the payment gateway charged the customer
// @Tags orders
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} resdto.ActionResponse
// @Router /api/orders/{orderId}/pay [post]
func (h *OrderHandler) Pay(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.ConfirmPayment(c.Request.Context(), orderID); err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ActionResponse{OrderID: orderID, Status: "paid"})
}

// @Summary Cancel order
// @Tags orders
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} resdto.ActionResponse
// @Router /api/orders/{orderId}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.CancelOrder(c.Request.Context(), orderID); err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ActionResponse{OrderID: orderID, Status: "cancelled"})
}

func orderIDParam(c *gin.Context) (string, bool) {
	orderID := strings.TrimSpace(c.Param("orderId"))
	if orderID == "" || len(orderID) > 64 {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("bad order id"), "Invalid order id", nil)
		return "", false
	}
	return orderID, true
}
