//go:build unit

package order_test

import (
	"testing"

	"coach-booking-engine/internal/domain/order"
	"coach-booking-engine/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name      string
	mutate    func(*builder.OrderBuilder)
	expectErr []string
}

func TestValidator(t *testing.T) {
	v := order.NewValidator()

	t.Run("basic success case", func(t *testing.T) {
		errs := v.Validate(builder.NewOrderBuilder().BuildDomain())
		assert.Empty(t, errs)
	})

	t.Run("empty name on a single-trip order yields exactly one error", func(t *testing.T) {
		b := builder.NewOrderBuilder().With(func(o *builder.OrderBuilder) {
			o.Passengers[0].Name = ""
		}).BuildDomain()

		errs := v.Validate(b)
		require.Len(t, errs, 1)
		assert.Equal(t, order.CodeNameRequired, errs[0].Code)
		assert.Equal(t, 0, errs[0].Passenger)
		assert.Equal(t, "name required", errs[0].Message)
	})

	t.Run("structure", func(t *testing.T) {
		runCases(t, v, []testCase{
			{
				name:      "no trips",
				mutate:    func(o *builder.OrderBuilder) { o.Trips = nil },
				expectErr: []string{order.CodeNoTrips},
			},
			{
				name:      "no passengers and no trips",
				mutate:    func(o *builder.OrderBuilder) { o.Trips = nil; o.Passengers = nil },
				expectErr: []string{order.CodeNoTrips, order.CodeNoPassengers},
			},
			{
				name:      "fewer seats than passengers",
				mutate:    func(o *builder.OrderBuilder) { o.Passengers = append(o.Passengers, builder.NewPassenger("Petr", "Novak")) },
				expectErr: []string{order.CodeSeatCountMismatch},
			},
			{
				name:      "blank seat selector",
				mutate:    func(o *builder.OrderBuilder) { o.Trips[0].Seats = []string{" "} },
				expectErr: []string{order.CodeSeatRequired},
			},
			{
				name: "transfer leg with one seat for two segments",
				mutate: func(o *builder.OrderBuilder) {
					o.Trips[0].Segments = 2
					o.Trips[0].Seats = []string{"12"}
				},
				expectErr: []string{order.CodeSegmentCountMismatch},
			},
			{
				name: "transfer leg with a seat per segment",
				mutate: func(o *builder.OrderBuilder) {
					o.Trips[0].Segments = 2
					o.Trips[0].Seats = []string{"12,31"}
				},
			},
			{
				name: "structural errors hide field errors",
				mutate: func(o *builder.OrderBuilder) {
					o.Trips[0].Seats = nil
					o.Passengers[0].Name = ""
				},
				expectErr: []string{order.CodeSeatCountMismatch},
			},
		})
	})

	t.Run("order data", func(t *testing.T) {
		runCases(t, v, []testCase{
			{
				name:      "missing surname",
				mutate:    func(o *builder.OrderBuilder) { o.Passengers[0].Surname = "  " },
				expectErr: []string{order.CodeSurnameRequired},
			},
			{
				name:      "first passenger needs phone",
				mutate:    func(o *builder.OrderBuilder) { o.Passengers[0].Phone = "" },
				expectErr: []string{order.CodePhoneRequired},
			},
			{
				name:      "first passenger needs email",
				mutate:    func(o *builder.OrderBuilder) { o.Passengers[0].Email = "" },
				expectErr: []string{order.CodeEmailRequired},
			},
			{
				name: "second passenger may omit phone and email",
				mutate: func(o *builder.OrderBuilder) {
					p := builder.NewPassenger("Petr", "Novak")
					p.Phone, p.Email = "", ""
					o.WithPassengers(o.Passengers[0], p)
				},
			},
			{
				name:      "phone too short after stripping",
				mutate:    func(o *builder.OrderBuilder) { o.Passengers[0].Phone = "+1 (23) 45" },
				expectErr: []string{order.CodePhoneInvalid},
			},
			{
				name:      "phone too long",
				mutate:    func(o *builder.OrderBuilder) { o.Passengers[0].Phone = "1234567890123456" },
				expectErr: []string{order.CodePhoneInvalid},
			},
			{
				name:      "email without tld",
				mutate:    func(o *builder.OrderBuilder) { o.Passengers[0].Email = "anna@example" },
				expectErr: []string{order.CodeEmailInvalid},
			},
			{
				name: "nothing required when route needs no order data",
				mutate: func(o *builder.OrderBuilder) {
					o.WithRequirements(order.Requirements{})
					o.Passengers[0] = order.Passenger{}
				},
			},
		})
	})

	t.Run("birth date", func(t *testing.T) {
		needBirth := func(o *builder.OrderBuilder) {
			o.WithRequirements(order.Requirements{OrderData: true, BirthDate: true})
		}
		runCases(t, v, []testCase{
			{
				name:   "valid date",
				mutate: needBirth,
			},
			{
				name:      "missing",
				mutate:    func(o *builder.OrderBuilder) { needBirth(o); o.Passengers[0].BirthDate = "" },
				expectErr: []string{order.CodeBirthDateRequired},
			},
			{
				name:      "not a calendar date",
				mutate:    func(o *builder.OrderBuilder) { needBirth(o); o.Passengers[0].BirthDate = "1990-02-30" },
				expectErr: []string{order.CodeBirthDateInvalid},
			},
			{
				name:      "wrong layout",
				mutate:    func(o *builder.OrderBuilder) { needBirth(o); o.Passengers[0].BirthDate = "12.04.1990" },
				expectErr: []string{order.CodeBirthDateInvalid},
			},
			{
				name:      "single digit month",
				mutate:    func(o *builder.OrderBuilder) { needBirth(o); o.Passengers[0].BirthDate = "1990-4-12" },
				expectErr: []string{order.CodeBirthDateInvalid},
			},
			{
				name: "requirement on any trip applies to all passengers",
				mutate: func(o *builder.OrderBuilder) {
					o.WithTrip(order.TripMeta{
						Date: "2026-11-05", IntervalID: "back", Seats: []string{"3"},
						Requirements: order.Requirements{BirthDate: true},
					})
					o.Passengers[0].BirthDate = ""
				},
				expectErr: []string{order.CodeBirthDateRequired},
			},
		})
	})

	t.Run("document, citizenship and gender", func(t *testing.T) {
		all := order.Requirements{OrderData: true, Document: true, Citizenship: true, Gender: true}
		runCases(t, v, []testCase{
			{
				name:   "all present",
				mutate: func(o *builder.OrderBuilder) { o.WithRequirements(all) },
			},
			{
				name:      "document number missing",
				mutate:    func(o *builder.OrderBuilder) { o.WithRequirements(all); o.Passengers[0].DocNumber = "" },
				expectErr: []string{order.CodeDocumentRequired},
			},
			{
				name:      "citizenship missing",
				mutate:    func(o *builder.OrderBuilder) { o.WithRequirements(all); o.Passengers[0].Citizenship = "" },
				expectErr: []string{order.CodeCitizenshipRequired},
			},
			{
				name:      "gender missing",
				mutate:    func(o *builder.OrderBuilder) { o.WithRequirements(all); o.Passengers[0].Gender = "" },
				expectErr: []string{order.CodeGenderRequired},
			},
			{
				name:      "gender unknown",
				mutate:    func(o *builder.OrderBuilder) { o.WithRequirements(all); o.Passengers[0].Gender = "X" },
				expectErr: []string{order.CodeGenderInvalid},
			},
			{
				name:   "lower-case gender accepted",
				mutate: func(o *builder.OrderBuilder) { o.WithRequirements(all); o.Passengers[0].Gender = "m" },
			},
		})
	})
}

func runCases(t *testing.T, v *order.Validator, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewOrderBuilder()
			if c.mutate != nil {
				b.With(c.mutate)
			}
			errs := v.Validate(b.BuildDomain())

			codes := make([]string, 0, len(errs))
			for _, e := range errs {
				codes = append(codes, e.Code)
			}
			if len(c.expectErr) == 0 {
				assert.Empty(t, codes)
				return
			}
			assert.ElementsMatch(t, c.expectErr, codes)
		})
	}
}
