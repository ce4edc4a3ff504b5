package order

import "strings"

// Requirements lists which passenger fields a carrier route demands.
type Requirements struct {
	OrderData   bool `json:"needOrderData"`
	BirthDate   bool `json:"needBirth"`
	Document    bool `json:"needDoc"`
	Citizenship bool `json:"needCitizenship"`
	Gender      bool `json:"needGender"`
}

// Or merges two requirement sets; a field is needed if either side needs it.
func (r Requirements) Or(o Requirements) Requirements {
	return Requirements{
		OrderData:   r.OrderData || o.OrderData,
		BirthDate:   r.BirthDate || o.BirthDate,
		Document:    r.Document || o.Document,
		Citizenship: r.Citizenship || o.Citizenship,
		Gender:      r.Gender || o.Gender,
	}
}

// TripMeta is one leg of the itinerary.
type TripMeta struct {
	Date       string `json:"date"`
	IntervalID string `json:"intervalId"`
	// Seats holds one selector per passenger. Multi-segment legs use a
	// comma-joined list with one seat number per segment.
	Seats        []string     `json:"seats"`
	Segments     int          `json:"segments"`
	Requirements Requirements `json:"requirements"`
	// Discounts maps passenger index to a carrier discount id.
	Discounts map[int]string `json:"discounts,omitempty"`
	// Baggage maps passenger index to carrier baggage ids.
	Baggage map[int][]string `json:"baggage,omitempty"`
}

// SegmentCount treats a zero or negative count as a single segment.
func (t TripMeta) SegmentCount() int {
	if t.Segments < 1 {
		return 1
	}
	return t.Segments
}

type Passenger struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	BirthDate   string `json:"birthDate,omitempty"`
	DocType     string `json:"docType,omitempty"`
	DocNumber   string `json:"docNumber,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Citizenship string `json:"citizenship,omitempty"`
}

type CommonData struct {
	Login     string `json:"-"`
	Password  string `json:"-"`
	Currency  string `json:"currency"`
	Lang      string `json:"lang"`
	PromoCode string `json:"promoCode,omitempty"`
}

// Builder aggregates everything needed to place one order.
type Builder struct {
	Trips      []TripMeta  `json:"trips"`
	Passengers []Passenger `json:"passengers"`
	Common     CommonData  `json:"common"`
}

// Requirements is the union of every trip's requirements.
func (b Builder) Requirements() Requirements {
	var r Requirements
	for _, t := range b.Trips {
		r = r.Or(t.Requirements)
	}
	return r
}

type Complexity string

const (
	ComplexitySimple    Complexity = "simple"
	ComplexityTransfers Complexity = "transfers"
	ComplexityCombined  Complexity = "combined"
)

// Complexity only drives UI hints; the payload shape never depends on it.
func (b Builder) Complexity() Complexity {
	switch {
	case len(b.Trips) > 1:
		return ComplexityCombined
	case len(b.Trips) == 1 && b.Trips[0].SegmentCount() > 1:
		return ComplexityTransfers
	default:
		return ComplexitySimple
	}
}

// splitSelector returns the trimmed seat numbers of a comma-joined selector.
func splitSelector(selector string) []string {
	parts := strings.Split(selector, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
