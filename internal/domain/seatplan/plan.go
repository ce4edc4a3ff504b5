package seatplan

import (
	"slices"
	"strings"
)

// SchemaVersion records which carrier layout schema a plan was read from.
type SchemaVersion string

const (
	// SchemaFloors is the multi-deck schema with an explicit floor grouping.
	SchemaFloors SchemaVersion = "floors"
	// SchemaRows is the legacy schema: rows directly under the root.
	SchemaRows SchemaVersion = "rows"
)

func (v SchemaVersion) String() string {
	return string(v)
}

type Orientation string

const (
	Horizontal Orientation = "h"
	Vertical   Orientation = "v"
)

func (o Orientation) IsValid() bool {
	switch o {
	case Horizontal, Vertical:
		return true
	default:
		return false
	}
}

// Seat is one cell of a row. Empty cells are aisles, doors or stairs.
type Seat struct {
	Number     *string  `json:"number,omitempty"`
	Empty      bool     `json:"empty"`
	Selectable bool     `json:"selectable"`
	Price      *float64 `json:"price,omitempty"`
	Currency   *string  `json:"currency,omitempty"`
	Icon       *string  `json:"icon,omitempty"`
}

type Row struct {
	Index int    `json:"index"`
	Seats []Seat `json:"seats"`
}

type Floor struct {
	Index  int   `json:"index"`
	Number int   `json:"number"`
	Rows   []Row `json:"rows"`
}

// BusPlan is immutable once built by the normalizer.
type BusPlan struct {
	BusTypeID string        `json:"busTypeId,omitempty"`
	Schema    SchemaVersion `json:"schema"`
	Floors    []Floor       `json:"floors"`
}

// NewSeat builds a seat cell. A cell without a number is empty and can
// never be selected.
func NewSeat(number string, selectable bool) Seat {
	number = strings.TrimSpace(number)
	if number == "" {
		return Seat{Empty: true}
	}
	return Seat{Number: &number, Selectable: selectable}
}

func (s Seat) WithPrice(price float64, currency string) Seat {
	if s.Empty {
		return s
	}
	s.Price = &price
	if currency != "" {
		s.Currency = &currency
	}
	return s
}

func (s Seat) WithIcon(icon string) Seat {
	if icon != "" {
		s.Icon = &icon
	}
	return s
}

func (s Seat) NumberOrEmpty() string {
	if s.Number == nil {
		return ""
	}
	return *s.Number
}

// SeatCount counts non-empty cells across all floors.
func (p *BusPlan) SeatCount() int {
	if p == nil {
		return 0
	}
	n := 0
	p.eachSeat(func(s Seat) {
		if !s.Empty {
			n++
		}
	})
	return n
}

// SeatNumbers returns the sorted, de-duplicated set of seat numbers.
func (p *BusPlan) SeatNumbers() []string {
	if p == nil {
		return nil
	}
	var out []string
	p.eachSeat(func(s Seat) {
		if s.Number != nil {
			out = append(out, *s.Number)
		}
	})
	slices.Sort(out)
	return slices.Compact(out)
}

func (p *BusPlan) FindSeat(number string) (Seat, bool) {
	var (
		found Seat
		ok    bool
	)
	p.eachSeat(func(s Seat) {
		if !ok && s.Number != nil && *s.Number == number {
			found, ok = s, true
		}
	})
	return found, ok
}

func (p *BusPlan) eachSeat(fn func(Seat)) {
	if p == nil {
		return
	}
	for _, f := range p.Floors {
		for _, r := range f.Rows {
			for _, s := range r.Seats {
				fn(s)
			}
		}
	}
}
