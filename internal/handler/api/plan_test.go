//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"coach-booking-engine/internal/domain/seatplan"
	"coach-booking-engine/internal/handler/api"
	resdto "coach-booking-engine/internal/handler/dto/response"
	"coach-booking-engine/internal/infra/plancache"
	"coach-booking-engine/internal/infra/wire"
	"coach-booking-engine/internal/usecase/booking"
	"coach-booking-engine/tests/common/builder"
	"coach-booking-engine/tests/common/httptest"
	bookingmock "coach-booking-engine/tests/mock/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PlanHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockSvc  *bookingmock.MockService
	handler  *api.PlanHandler
}

func (s *PlanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSvc = bookingmock.NewMockService(s.mockCtrl)
	s.handler = api.NewPlanHandler(s.mockSvc)

	s.router.GET("/plans/:busTypeId", s.handler.Get)
	s.router.POST("/plans/prefetch", s.handler.Prefetch)
	s.router.GET("/cache/stats", s.handler.CacheStats)
}

func (s *PlanHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPlanHandlerSuite(t *testing.T) {
	suite.Run(t, new(PlanHandlerTestSuite))
}

// ================================================================================
// TestGet
// ================================================================================

func (s *PlanHandlerTestSuite) TestGet() {
	plan := builder.NewPlanBuilder().BuildDomain()

	s.Run("success: defaults position and version", func() {
		s.mockSvc.EXPECT().GetSeatPlan(gomock.Any(), plancache.Key{BusTypeID: "77", Position: seatplan.Horizontal, Version: "1.1"}).
			Return(plan, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/plans/77", nil, "")

		var response resdto.PlanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("77", response.BusTypeID)
		s.Equal(plan.SeatCount(), response.SeatCount)
		s.Len(response.Floors, 1)
	})

	s.Run("success: passes query through", func() {
		s.mockSvc.EXPECT().GetSeatPlan(gomock.Any(), plancache.Key{BusTypeID: "77", Position: seatplan.Vertical, Version: "2.0"}).
			Return(plan, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/plans/77?position=v&version=2.0", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on unknown position", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/plans/77?position=diagonal", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps plan errors to proper statuses", func() {
		testCases := []struct {
			name           string
			kind           wire.Kind
			code           string
			expectedStatus int
		}{
			{name: "not found", kind: wire.KindNotFound, code: "no_found", expectedStatus: http.StatusNotFound},
			{name: "rate limited", kind: wire.KindNetwork, code: wire.CodeRateLimited, expectedStatus: http.StatusTooManyRequests},
			{name: "network", kind: wire.KindNetwork, code: "network_error", expectedStatus: http.StatusBadGateway},
			{name: "malformed reply", kind: wire.KindParse, code: "parse_error", expectedStatus: http.StatusBadGateway},
			{name: "carrier validation", kind: wire.KindValidation, code: "no_seat", expectedStatus: http.StatusUnprocessableEntity},
			{name: "dealer inactive", kind: wire.KindDealerInactive, code: "dealer_no_activ", expectedStatus: http.StatusInternalServerError},
			{name: "unknown", kind: wire.KindUnknown, code: "unknown_error", expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				planErr := &booking.PlanError{Kind: tc.kind, Code: tc.code, Message: "lookup failed", Guidance: wire.Guidance(tc.code)}
				s.mockSvc.EXPECT().GetSeatPlan(gomock.Any(), gomock.Any()).Return(nil, planErr).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/plans/77", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "lookup failed")
			})
		}
	})
}

// ================================================================================
// TestPrefetch
// ================================================================================

func (s *PlanHandlerTestSuite) TestPrefetch() {
	plan := builder.NewPlanBuilder().BuildDomain()

	s.Run("success: reports per-key outcome in order", func() {
		keys := []plancache.Key{
			plancache.NewKey("77", seatplan.Horizontal, ""),
			plancache.NewKey("78", seatplan.Vertical, "1.1"),
		}
		s.mockSvc.EXPECT().PrefetchSeatPlans(gomock.Any(), keys, 2).
			Return([]booking.PrefetchResult{
				{Key: keys[0], Plan: plan},
				{Key: keys[1], Err: &booking.PlanError{Kind: wire.KindNotFound, Code: "no_found", Message: "nothing found"}},
			}).Times(1)

		body := map[string]any{
			"plans": []map[string]any{
				{"busTypeId": "77"},
				{"busTypeId": "78", "position": "v", "version": "1.1"},
			},
			"concurrency": 2,
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/plans/prefetch", body, "")

		var response resdto.PrefetchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(1, response.Loaded)
		s.Equal(1, response.Failed)
		s.Require().Len(response.Items, 2)
		s.True(response.Items[0].OK)
		s.Equal(plan.SeatCount(), response.Items[0].SeatCount)
		s.Equal("no_found", response.Items[1].Error.Code)
	})

	s.Run("error: 400 on empty list", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/plans/prefetch", map[string]any{"plans": []any{}}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 on missing bus type", func() {
		body := map[string]any{"plans": []map[string]any{{"position": "h"}}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/plans/prefetch", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestCacheStats
// ================================================================================

func (s *PlanHandlerTestSuite) TestCacheStats() {
	s.mockSvc.EXPECT().CacheStats().Return(plancache.Stats{TotalEntries: 3, Hits: 9, Misses: 3, HitRatio: 0.75}).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cache/stats", nil, "")

	var stats plancache.Stats
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &stats)
	s.Equal(3, stats.TotalEntries)
	s.InDelta(0.75, stats.HitRatio, 1e-9)
}
