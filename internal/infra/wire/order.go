package wire

import (
	"sort"
	"strconv"
	"strings"

	"coach-booking-engine/internal/domain/reservation"
)

// NormalizeOrder extracts an order confirmation: the fixed top-level
// scalars plus per-trip detail groups keyed "0", "1", ...
func NormalizeOrder(doc *Document) (*reservation.Info, error) {
	if doc == nil || doc.Degraded {
		return nil, degraded(doc, "order payload could not be parsed")
	}
	root := doc.Root
	if inner, ok := root["order"].(map[string]any); ok {
		root = inner
	}

	orderID := scalarOf(root, "order_id", "@order_id")
	if orderID == "" {
		return nil, &ParseError{Reason: "order confirmation without order_id", Raw: doc.Raw}
	}

	info := &reservation.Info{
		OrderID:          orderID,
		Security:         scalarOf(root, "security"),
		Status:           reservation.Status(scalarOf(root, "status")),
		Currency:         scalarOf(root, "currency"),
		ReservationUntil: scalarOf(root, "reservation_until"),
		Trips:            tripDetails(root),
	}
	if price, err := parseDecimal(scalarOf(root, "price_total")); err == nil {
		info.PriceTotal = price
	}
	if minutes, err := strconv.Atoi(scalarOf(root, "reservation_until_min")); err == nil {
		info.ReservationUntilMinutes = minutes
	}
	info.Promo = promoResult(root)
	return info, nil
}

// NormalizeAck reads the status of a follow-up call (buy, cancel, sms).
func NormalizeAck(doc *Document) (map[string]string, error) {
	if doc == nil || doc.Degraded {
		return nil, degraded(doc, "acknowledgement could not be parsed")
	}
	return flatten(doc.Root), nil
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

func promoResult(root map[string]any) *reservation.PromoResult {
	m, ok := root["promocode_info"].(map[string]any)
	if !ok {
		return nil
	}
	return &reservation.PromoResult{
		Code:    scalarOf(m, "promocode_name", "promocode", "code"),
		Applied: flag(scalarOf(m, "promocode_valid", "valid", "applied"), false),
		Message: scalarOf(m, "promocode_message", "message", "error"),
	}
}

func tripDetails(root map[string]any) map[string]reservation.TripDetail {
	out := map[string]reservation.TripDetail{}

	keys := make([]string, 0)
	for k := range root {
		if _, err := strconv.Atoi(k); err == nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if m, ok := root[k].(map[string]any); ok {
			out[k] = flatten(m)
		}
	}

	if len(out) == 0 {
		if container, ok := root["trips"]; ok {
			items := Children(container, "trip")
			if items == nil {
				items = Children(container, "item")
			}
			for i, item := range items {
				if m, ok := item.(map[string]any); ok {
					out[strconv.Itoa(i)] = flatten(m)
				}
			}
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// flatten keeps scalars, lifts the scalar children of nested groups one
// level up as parent_child, and joins scalar sequences with commas.
func flatten(m map[string]any) reservation.TripDetail {
	out := reservation.TripDetail{}
	for k, v := range m {
		key := strings.TrimPrefix(k, attrPrefix)
		switch t := v.(type) {
		case map[string]any:
			for ck, cv := range t {
				s, ok := Scalar(cv)
				if !ok {
					continue
				}
				if ck == textKey {
					out[key] = s
				} else {
					out[key+"_"+strings.TrimPrefix(ck, attrPrefix)] = s
				}
			}
		case []any:
			parts := make([]string, 0, len(t))
			for _, item := range t {
				if s, ok := Scalar(item); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				out[key] = strings.Join(parts, ",")
			}
		default:
			if s, ok := Scalar(v); ok {
				out[key] = s
			}
		}
	}
	return out
}
