package order

import (
	"strconv"
	"strings"
)

// Payload is the new_order request body. Keys are present only when the
// carrier should read them; absence means "not applicable".
type Payload map[string]any

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Build derives the carrier payload. It assumes the builder already passed
// validation.
func Build(b Builder) Payload {
	req := b.Requirements()
	payload := Payload{}

	setIfPresent(payload, "login", b.Common.Login)
	setIfPresent(payload, "password", b.Common.Password)
	setIfPresent(payload, "currency", b.Common.Currency)
	setIfPresent(payload, "lang", b.Common.Lang)
	setIfPresent(payload, "promocode", strings.TrimSpace(b.Common.PromoCode))

	dates := make([]string, len(b.Trips))
	intervals := make([]string, len(b.Trips))
	seats := make([][]string, len(b.Trips))
	for i, trip := range b.Trips {
		dates[i] = trip.Date
		intervals[i] = trip.IntervalID
		seats[i] = append([]string(nil), trip.Seats...)
	}
	payload["date"] = dates
	payload["interval_id"] = intervals
	payload["seat"] = seats

	if req.OrderData {
		payload["name"] = collect(b.Passengers, func(p Passenger) string { return p.Name })
		payload["surname"] = collect(b.Passengers, func(p Passenger) string { return p.Surname })
		if len(b.Passengers) > 0 {
			setIfPresent(payload, "phone", NormalizePhone(b.Passengers[0].Phone))
			setIfPresent(payload, "email", strings.TrimSpace(b.Passengers[0].Email))
		}
	}
	if req.BirthDate {
		payload["birth_date"] = collect(b.Passengers, func(p Passenger) string { return p.BirthDate })
	}
	if req.Document {
		payload["doc_type"] = collect(b.Passengers, func(p Passenger) string { return p.DocType })
		payload["doc_number"] = collect(b.Passengers, func(p Passenger) string { return p.DocNumber })
	}
	if req.Citizenship {
		payload["citizenship"] = collect(b.Passengers, func(p Passenger) string { return p.Citizenship })
	}
	if req.Gender {
		payload["gender"] = collect(b.Passengers, func(p Passenger) string { return strings.ToUpper(p.Gender) })
	}

	if discounts := buildDiscounts(b.Trips); len(discounts) > 0 {
		payload["discount_id"] = discounts
	}
	if baggage := buildBaggage(b.Trips); len(baggage) > 0 {
		payload["baggage"] = baggage
	}
	return payload
}

func setIfPresent(p Payload, key, value string) {
	if value != "" {
		p[key] = value
	}
}

func collect(passengers []Passenger, field func(Passenger) string) []string {
	out := make([]string, len(passengers))
	for i, p := range passengers {
		out[i] = strings.TrimSpace(field(p))
	}
	return out
}

// buildDiscounts yields trip index -> passenger index -> discount id.
func buildDiscounts(trips []TripMeta) map[string]map[string]string {
	out := map[string]map[string]string{}
	for ti, trip := range trips {
		for pi, id := range trip.Discounts {
			if id = strings.TrimSpace(id); id == "" {
				continue
			}
			key := strconv.Itoa(ti)
			if out[key] == nil {
				out[key] = map[string]string{}
			}
			out[key][strconv.Itoa(pi)] = id
		}
	}
	return out
}

// buildBaggage yields trip index -> passenger index -> non-empty baggage ids.
func buildBaggage(trips []TripMeta) map[string]map[string][]string {
	out := map[string]map[string][]string{}
	for ti, trip := range trips {
		for pi, ids := range trip.Baggage {
			var kept []string
			for _, id := range ids {
				if id = strings.TrimSpace(id); id != "" {
					kept = append(kept, id)
				}
			}
			if len(kept) == 0 {
				continue
			}
			key := strconv.Itoa(ti)
			if out[key] == nil {
				out[key] = map[string][]string{}
			}
			out[key][strconv.Itoa(pi)] = kept
		}
	}
	return out
}
