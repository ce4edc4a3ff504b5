//go:build unit

package order_test

import (
	"testing"

	"coach-booking-engine/internal/domain/order"
	"coach-booking-engine/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	t.Run("single trip with order data", func(t *testing.T) {
		b := builder.NewOrderBuilder().With(func(o *builder.OrderBuilder) {
			o.Common.PromoCode = " SPRING "
		}).BuildDomain()

		want := order.Payload{
			"currency":    "EUR",
			"lang":        "en",
			"promocode":   "SPRING",
			"date":        []string{"2026-11-02"},
			"interval_id": []string{"local|1001|2026-11-02|08:30"},
			"seat":        [][]string{{"12"}},
			"name":        []string{"Anna"},
			"surname":     []string{"Novak"},
			"phone":       "420601234567",
			"email":       "anna.novak@example.com",
		}
		if diff := cmp.Diff(want, order.Build(b)); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fields omitted when not required", func(t *testing.T) {
		payload := order.Build(builder.NewOrderBuilder().WithRequirements(order.Requirements{}).BuildDomain())

		for _, key := range []string{"name", "surname", "phone", "email", "birth_date", "doc_type", "doc_number", "citizenship", "gender", "discount_id", "baggage", "promocode"} {
			assert.False(t, payload.Has(key), "unexpected key %q", key)
		}
	})

	t.Run("birth date absent without the requirement", func(t *testing.T) {
		payload := order.Build(builder.NewOrderBuilder().BuildDomain())
		_, ok := payload["birth_date"]
		assert.False(t, ok)
	})

	t.Run("requirements of any trip attach arrays for every passenger", func(t *testing.T) {
		b := builder.NewOrderBuilder().
			WithTrip(order.TripMeta{
				Date: "2026-11-05", IntervalID: "back", Seats: []string{"7"},
				Requirements: order.Requirements{BirthDate: true, Document: true, Citizenship: true, Gender: true},
			}).
			BuildDomain()

		payload := order.Build(b)
		assert.Equal(t, []string{"1990-04-12"}, payload["birth_date"])
		assert.Equal(t, []string{"passport"}, payload["doc_type"])
		assert.Equal(t, []string{"AB123456"}, payload["doc_number"])
		assert.Equal(t, []string{"CZ"}, payload["citizenship"])
		assert.Equal(t, []string{"F"}, payload["gender"])
		assert.Equal(t, [][]string{{"12"}, {"7"}}, payload["seat"])
	})

	t.Run("transfer seat selectors are passed through", func(t *testing.T) {
		b := builder.NewOrderBuilder().With(func(o *builder.OrderBuilder) {
			o.Trips[0].Segments = 2
		}).WithPassengers(builder.NewPassenger("Anna", "Novak"), builder.NewPassenger("Petr", "Novak")).BuildDomain()

		assert.Equal(t, [][]string{{"10,30", "11,31"}}, order.Build(b)["seat"])
	})

	t.Run("discounts and baggage keep only meaningful entries", func(t *testing.T) {
		b := builder.NewOrderBuilder().
			WithPassengers(builder.NewPassenger("Anna", "Novak"), builder.NewPassenger("Petr", "Novak")).
			With(func(o *builder.OrderBuilder) {
				o.Trips[0].Discounts = map[int]string{0: "", 1: "3321"}
				o.Trips[0].Baggage = map[int][]string{0: {"", " "}, 1: {"81", "", "82"}}
			}).BuildDomain()

		payload := order.Build(b)
		assert.Equal(t, map[string]map[string]string{"0": {"1": "3321"}}, payload["discount_id"])
		assert.Equal(t, map[string]map[string][]string{"0": {"1": {"81", "82"}}}, payload["baggage"])
	})

	t.Run("empty discount and baggage maps are omitted", func(t *testing.T) {
		b := builder.NewOrderBuilder().With(func(o *builder.OrderBuilder) {
			o.Trips[0].Discounts = map[int]string{0: " "}
			o.Trips[0].Baggage = map[int][]string{0: {}}
		}).BuildDomain()

		payload := order.Build(b)
		assert.False(t, payload.Has("discount_id"))
		assert.False(t, payload.Has("baggage"))
	})
}

func TestComplexity(t *testing.T) {
	simple := builder.NewOrderBuilder().BuildDomain()
	assert.Equal(t, order.ComplexitySimple, simple.Complexity())

	transfers := builder.NewOrderBuilder().With(func(o *builder.OrderBuilder) { o.Trips[0].Segments = 3 }).BuildDomain()
	assert.Equal(t, order.ComplexityTransfers, transfers.Complexity())

	combined := builder.NewOrderBuilder().WithTrip(order.TripMeta{Date: "2026-11-05", Seats: []string{"1"}}).BuildDomain()
	assert.Equal(t, order.ComplexityCombined, combined.Complexity())

	assert.Equal(t, order.Build(simple)["seat"], order.Build(builder.NewOrderBuilder().BuildDomain())["seat"])
}
