package request

import (
	"strings"
	"time"

	"coach-booking-engine/internal/domain/order"
	"coach-booking-engine/internal/pkg/patch"
)

// Field presence is checked by the order validator so the storefront gets
// per-passenger errors instead of a single binding failure.
type CreateOrderRequest struct {
	Trips      []TripRequest      `json:"trips" binding:"max=8,dive"`
	Passengers []PassengerRequest `json:"passengers" binding:"max=20,dive"`
	Currency   string             `json:"currency" binding:"omitempty,len=3"`
	Lang       string             `json:"lang" binding:"omitempty,max=5"`
	PromoCode  *string            `json:"promoCode,omitempty" binding:"omitempty,max=32"`
}

type TripRequest struct {
	Date         string              `json:"date"`
	IntervalID   string              `json:"intervalId"`
	Seats        []string            `json:"seats"`
	Segments     int                 `json:"segments" binding:"omitempty,min=1,max=10"`
	Requirements RequirementsRequest `json:"requirements"`
	Discounts    map[int]string      `json:"discounts,omitempty"`
	Baggage      map[int][]string    `json:"baggage,omitempty"`
}

type RequirementsRequest struct {
	OrderData   bool `json:"needOrderData"`
	BirthDate   bool `json:"needBirth"`
	Document    bool `json:"needDoc"`
	Citizenship bool `json:"needCitizenship"`
	Gender      bool `json:"needGender"`
}

type PassengerRequest struct {
	Name        string `json:"name" binding:"max=64"`
	Surname     string `json:"surname" binding:"max=64"`
	Phone       string `json:"phone,omitempty" binding:"max=32"`
	Email       string `json:"email,omitempty" binding:"max=128"`
	BirthDate   string `json:"birthDate,omitempty"`
	DocType     string `json:"docType,omitempty"`
	DocNumber   string `json:"docNumber,omitempty" binding:"max=64"`
	Gender      string `json:"gender,omitempty"`
	Citizenship string `json:"citizenship,omitempty"`
}

// ToBuilder fills currency and language from the deployment defaults when
// the storefront leaves them out.
func (r CreateOrderRequest) ToBuilder(defaultCurrency, defaultLang string) order.Builder {
	b := order.Builder{
		Trips:      make([]order.TripMeta, 0, len(r.Trips)),
		Passengers: make([]order.Passenger, 0, len(r.Passengers)),
		Common: order.CommonData{
			Currency:  strings.ToUpper(strings.TrimSpace(r.Currency)),
			Lang:      strings.TrimSpace(r.Lang),
			PromoCode: strings.TrimSpace(patch.Coalesce(r.PromoCode, "")),
		},
	}
	if b.Common.Currency == "" {
		b.Common.Currency = defaultCurrency
	}
	if b.Common.Lang == "" {
		b.Common.Lang = defaultLang
	}

	for _, t := range r.Trips {
		b.Trips = append(b.Trips, order.TripMeta{
			Date:       t.Date,
			IntervalID: t.IntervalID,
			Seats:      t.Seats,
			Segments:   t.Segments,
			Requirements: order.Requirements{
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
	for _, p := range r.Passengers {
		b.Passengers = append(b.Passengers, order.Passenger(p))
	}
	return b
}

type ExtendTimerRequest struct {
	Minutes *int `json:"minutes" binding:"omitempty,min=1,max=60"`
}

const defaultExtendMinutes = 5

func (r ExtendTimerRequest) Duration() time.Duration {
	return time.Duration(patch.Coalesce(r.Minutes, defaultExtendMinutes)) * time.Minute
}

type SMSCodeRequest struct {
	Phone string `json:"phone" binding:"required,max=32"`
}

type SMSValidateRequest struct {
	Code string `json:"code" binding:"required,max=16"`
}
