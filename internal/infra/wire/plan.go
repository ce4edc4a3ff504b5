package wire

import (
	"strconv"
	"strings"

	"coach-booking-engine/internal/domain/seatplan"
)

// NormalizePlan builds a BusPlan from a decoded get_plan response. It tries
// the floors schema first and falls back to the legacy rows schema; the
// result carries the schema it was read from.
func NormalizePlan(doc *Document) (*seatplan.BusPlan, error) {
	if doc == nil || doc.Degraded {
		return nil, degraded(doc, "seat plan payload could not be parsed")
	}

	root := doc.Root
	if inner, ok := root["plan"].(map[string]any); ok {
		root = inner
	}

	plan, ok := parseFloorsSchema(root)
	if !ok {
		plan, ok = parseRowsSchema(root)
	}
	if !ok {
		return nil, &ParseError{Reason: "no floors or rows in seat plan", Raw: doc.Raw}
	}
	plan.BusTypeID = scalarOf(root, "bus_type_id", "@bus_type_id", "@id")
	return plan, nil
}

func parseFloorsSchema(root map[string]any) (*seatplan.BusPlan, bool) {
	container, ok := root["floors"]
	if !ok {
		return nil, false
	}
	items := Children(container, "floor")
	if len(items) == 0 {
		return nil, false
	}

	plan := &seatplan.BusPlan{Schema: seatplan.SchemaFloors, Floors: make([]seatplan.Floor, 0, len(items))}
	for i, item := range items {
		m, _ := item.(map[string]any)
		floor := seatplan.Floor{Index: i, Number: i + 1}
		if n, err := strconv.Atoi(scalarOf(m, "number", "@number")); err == nil {
			floor.Number = n
		}
		floor.Rows = parseRows(rowItems(m))
		plan.Floors = append(plan.Floors, floor)
	}
	return plan, true
}

func parseRowsSchema(root map[string]any) (*seatplan.BusPlan, bool) {
	items := rowItems(root)
	if items == nil {
		return nil, false
	}
	return &seatplan.BusPlan{
		Schema: seatplan.SchemaRows,
		Floors: []seatplan.Floor{{Index: 0, Number: 1, Rows: parseRows(items)}},
	}, true
}

// rowItems accepts <rows><row/>...</rows>, bare repeated <row/> and JSON arrays.
func rowItems(m map[string]any) []any {
	if m == nil {
		return nil
	}
	if container, ok := m["rows"]; ok {
		if items := Children(container, "row"); items != nil {
			return items
		}
		return []any{}
	}
	if row, ok := m["row"]; ok {
		return List(row)
	}
	return nil
}

func parseRows(items []any) []seatplan.Row {
	rows := make([]seatplan.Row, 0, len(items))
	for i, item := range items {
		rows = append(rows, seatplan.Row{Index: i, Seats: parseSeats(item)})
	}
	return rows
}

func parseSeats(row any) []seatplan.Seat {
	var cells []any
	switch t := row.(type) {
	case []any:
		cells = t
	case map[string]any:
		cells = List(t["seat"])
	case string:
		// legacy rows may be a comma list of seat numbers with blanks for aisles
		if t == "" {
			return []seatplan.Seat{}
		}
		for _, part := range strings.Split(t, ",") {
			cells = append(cells, part)
		}
	}

	seats := make([]seatplan.Seat, 0, len(cells))
	for _, cell := range cells {
		seats = append(seats, parseSeat(cell))
	}
	return seats
}

func parseSeat(cell any) seatplan.Seat {
	m, ok := cell.(map[string]any)
	if !ok {
		number, _ := Scalar(cell)
		return seatplan.NewSeat(number, true)
	}
	number := scalarOf(m, textKey, "number", "@number", "@num")
	seat := seatplan.NewSeat(number, flag(scalarOf(m, "@free", "free", "@selectable", "selectable"), true))
	if price, err := strconv.ParseFloat(strings.ReplaceAll(scalarOf(m, "@price", "price"), ",", "."), 64); err == nil {
		seat = seat.WithPrice(price, scalarOf(m, "@currency", "currency"))
	}
	return seat.WithIcon(scalarOf(m, "@icon", "icon", "@type"))
}

func flag(s string, fallback bool) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	default:
		return fallback
	}
}

func degraded(doc *Document, reason string) error {
	if doc == nil {
		return &ParseError{Reason: reason}
	}
	return &ParseError{Reason: reason, Raw: doc.Raw}
}
