//go:build unit || e2e

package builder

import (
	"strconv"

	"coach-booking-engine/internal/domain/order"
	reqdto "coach-booking-engine/internal/handler/dto/request"
	"coach-booking-engine/internal/pkg/ptr"
)

type OrderBuilder struct {
	Trips      []order.TripMeta
	Passengers []order.Passenger
	Common     order.CommonData
}

// NewOrderBuilder returns a valid single-trip, single-passenger order on a
// route that asks for order data only.
func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		Trips: []order.TripMeta{
			{
				Date:         "2026-11-02",
				IntervalID:   "local|1001|2026-11-02|08:30",
				Seats:        []string{"12"},
				Segments:     1,
				Requirements: order.Requirements{OrderData: true},
			},
		},
		Passengers: []order.Passenger{NewPassenger("Anna", "Novak")},
		Common: order.CommonData{
			Currency: "EUR",
			Lang:     "en",
		},
	}
}

func NewPassenger(name, surname string) order.Passenger {
	return order.Passenger{
		Name:        name,
		Surname:     surname,
		Phone:       "+420 601 234 567",
		Email:       "anna.novak@example.com",
		BirthDate:   "1990-04-12",
		DocType:     "passport",
		DocNumber:   "AB123456",
		Gender:      "F",
		Citizenship: "CZ",
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

// WithPassengers replaces the passenger list and sizes every trip's seat
// list to match.
func (o *OrderBuilder) WithPassengers(ps ...order.Passenger) *OrderBuilder {
	o.Passengers = ps
	for i := range o.Trips {
		seats := make([]string, len(ps))
		for p := range seats {
			seats[p] = seatFor(i, p, o.Trips[i].SegmentCount())
		}
		o.Trips[i].Seats = seats
	}
	return o
}

func (o *OrderBuilder) WithTrip(trip order.TripMeta) *OrderBuilder {
	o.Trips = append(o.Trips, trip)
	return o
}

func (o *OrderBuilder) WithRequirements(r order.Requirements) *OrderBuilder {
	for i := range o.Trips {
		o.Trips[i].Requirements = r
	}
	return o
}

func (o *OrderBuilder) BuildDomain() order.Builder {
	return order.Builder{
		Trips:      o.Trips,
		Passengers: o.Passengers,
		Common:     o.Common,
	}
}

func seatFor(trip, passenger, segments int) string {
	seat := func(seg int) string {
		return strconv.Itoa(10 + passenger + seg*20 + trip*40)
	}
	out := seat(0)
	for s := 1; s < segments; s++ {
		out += "," + seat(s)
	}
	return out
}

// BuildCreateRequestDTO is the storefront JSON form of the same order.
func (o *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	req := reqdto.CreateOrderRequest{
		Currency: o.Common.Currency,
		Lang:     o.Common.Lang,
	}
	if o.Common.PromoCode != "" {
		req.PromoCode = ptr.Of(o.Common.PromoCode)
	}
	for _, t := range o.Trips {
		req.Trips = append(req.Trips, reqdto.TripRequest{
			Date:       t.Date,
			IntervalID: t.IntervalID,
			Seats:      append([]string(nil), t.Seats...),
			Segments:   t.Segments,
			Requirements: reqdto.RequirementsRequest{
				OrderData:   t.Requirements.OrderData,
				BirthDate:   t.Requirements.BirthDate,
				Document:    t.Requirements.Document,
				Citizenship: t.Requirements.Citizenship,
				Gender:      t.Requirements.Gender,
			},
			Discounts: t.Discounts,
			Baggage:   t.Baggage,
		})
	}
	for _, p := range o.Passengers {
		req.Passengers = append(req.Passengers, reqdto.PassengerRequest(p))
	}
	return req
}
