//go:build unit || e2e

package builder

import (
	"fmt"
	"strconv"
	"strings"

	"coach-booking-engine/internal/domain/seatplan"
)

type PlanBuilder struct {
	BusTypeID   string
	Seats       int
	SeatsPerRow int
	Floors      int
}

// NewPlanBuilder describes a single-deck coach with 4 seats per row split by
// an aisle.
func NewPlanBuilder() *PlanBuilder {
	return &PlanBuilder{
		BusTypeID:   "77",
		Seats:       12,
		SeatsPerRow: 4,
		Floors:      1,
	}
}

func (b *PlanBuilder) With(mutate func(*PlanBuilder)) *PlanBuilder {
	mutate(b)
	return b
}

func (b *PlanBuilder) WithSeats(n int) *PlanBuilder {
	b.Seats = n
	return b
}

func (b *PlanBuilder) BuildDomain() *seatplan.BusPlan {
	schema := seatplan.SchemaRows
	if b.Floors > 1 {
		schema = seatplan.SchemaFloors
	}
	plan := &seatplan.BusPlan{BusTypeID: b.BusTypeID, Schema: schema}
	for f, rows := range b.layout() {
		floor := seatplan.Floor{Index: f, Number: f + 1}
		for r, numbers := range rows {
			row := seatplan.Row{Index: r}
			for _, n := range numbers {
				row.Seats = append(row.Seats, seatplan.NewSeat(n, true))
			}
			floor.Rows = append(floor.Rows, row)
		}
		plan.Floors = append(plan.Floors, floor)
	}
	return plan
}

// RowsXML renders the layout in the legacy schema, every floor flattened
// into one list of rows.
func (b *PlanBuilder) RowsXML() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<plan><bus_type_id>%s</bus_type_id><rows>", b.BusTypeID)
	for _, rows := range b.layout() {
		for _, numbers := range rows {
			writeRow(&sb, numbers)
		}
	}
	sb.WriteString("</rows></plan>")
	return sb.String()
}

// FloorsXML renders the layout in the multi-deck schema.
func (b *PlanBuilder) FloorsXML() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<plan><bus_type_id>%s</bus_type_id><floors>", b.BusTypeID)
	for f, rows := range b.layout() {
		fmt.Fprintf(&sb, "<floor><number>%d</number><rows>", f+1)
		for _, numbers := range rows {
			writeRow(&sb, numbers)
		}
		sb.WriteString("</rows></floor>")
	}
	sb.WriteString("</floors></plan>")
	return sb.String()
}

func writeRow(sb *strings.Builder, numbers []string) {
	sb.WriteString("<row>")
	for _, n := range numbers {
		fmt.Fprintf(sb, "<seat>%s</seat>", n)
	}
	sb.WriteString("</row>")
}

// layout spreads seat numbers 1..Seats over floors and rows; "" marks the
// aisle cell in the middle of each row.
func (b *PlanBuilder) layout() [][][]string {
	floors := max(b.Floors, 1)
	perRow := max(b.SeatsPerRow, 1)
	perFloor := (b.Seats + floors - 1) / floors

	out := make([][][]string, floors)
	next := 1
	for f := range out {
		for placed := 0; placed < perFloor && next <= b.Seats; {
			var row []string
			for i := 0; i < perRow && next <= b.Seats; i++ {
				if i == perRow/2 {
					row = append(row, "")
				}
				row = append(row, strconv.Itoa(next))
				next++
				placed++
			}
			out[f] = append(out[f], row)
		}
	}
	return out
}
