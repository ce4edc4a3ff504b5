package response

import (
	"coach-booking-engine/internal/domain/seatplan"
	"coach-booking-engine/internal/usecase/booking"
)

type PlanResponse struct {
	BusTypeID string           `json:"busTypeId"`
	Schema    string           `json:"schema"`
	SeatCount int              `json:"seatCount"`
	Floors    []seatplan.Floor `json:"floors"`
}

func FromBusPlan(p *seatplan.BusPlan) *PlanResponse {
	if p == nil {
		return nil
	}
	return &PlanResponse{
		BusTypeID: p.BusTypeID,
		Schema:    p.Schema.String(),
		SeatCount: p.SeatCount(),
		Floors:    p.Floors,
	}
}

type PrefetchItem struct {
	BusTypeID string        `json:"busTypeId"`
	Position  string        `json:"position"`
	Version   string        `json:"version"`
	OK        bool          `json:"ok"`
	SeatCount int           `json:"seatCount,omitempty"`
	Error     *ErrorSummary `json:"error,omitempty"`
}

type ErrorSummary struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Guidance  string `json:"guidance,omitempty"`
	Retryable bool   `json:"retryable"`
}

type PrefetchResponse struct {
	Loaded int            `json:"loaded"`
	Failed int            `json:"failed"`
	Items  []PrefetchItem `json:"items"`
}

func FromPrefetch(results []booking.PrefetchResult) *PrefetchResponse {
	resp := &PrefetchResponse{Items: make([]PrefetchItem, 0, len(results))}
	for _, r := range results {
		item := PrefetchItem{
			BusTypeID: r.Key.BusTypeID,
			Position:  string(r.Key.Position),
			Version:   r.Key.Version,
		}
		if r.Err != nil {
			resp.Failed++
			item.Error = summarize(r.Err)
		} else {
			resp.Loaded++
			item.OK = true
			item.SeatCount = r.Plan.SeatCount()
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func summarize(err error) *ErrorSummary {
	if pe, ok := booking.AsPlanError(err); ok {
		return &ErrorSummary{Code: pe.Code, Message: pe.Message, Guidance: pe.Guidance, Retryable: pe.Retryable}
	}
	return &ErrorSummary{Code: "unknown_error", Message: err.Error()}
}
