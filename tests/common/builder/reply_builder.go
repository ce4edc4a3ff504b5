//go:build unit || e2e

package builder

import (
	"fmt"
	"strings"
)

type ConfirmationBuilder struct {
	OrderID     string
	Security    string
	Status      string
	PriceTotal  string
	Currency    string
	HoldMinutes int
	PromoCode   string
	Trips       []map[string]string
}

// NewConfirmationBuilder describes a successful new_order reply holding the
// seats for twenty minutes.
func NewConfirmationBuilder() *ConfirmationBuilder {
	return &ConfirmationBuilder{
		OrderID:     "1029384",
		Security:    "884422",
		Status:      "reserve_ok",
		PriceTotal:  "54.20",
		Currency:    "EUR",
		HoldMinutes: 20,
		Trips: []map[string]string{
			{"trip_id": "1", "point_from": "Prague", "point_to": "Vienna"},
		},
	}
}

func (b *ConfirmationBuilder) With(mutate func(*ConfirmationBuilder)) *ConfirmationBuilder {
	mutate(b)
	return b
}

func (b *ConfirmationBuilder) XML() string {
	var sb strings.Builder
	sb.WriteString("<root>")
	fmt.Fprintf(&sb, "<order_id>%s</order_id><security>%s</security><status>%s</status>", b.OrderID, b.Security, b.Status)
	fmt.Fprintf(&sb, "<price_total>%s</price_total><currency>%s</currency>", b.PriceTotal, b.Currency)
	fmt.Fprintf(&sb, "<reservation_until>%d min</reservation_until><reservation_until_min>%d</reservation_until_min>", b.HoldMinutes, b.HoldMinutes)
	if b.PromoCode != "" {
		fmt.Fprintf(&sb, "<promocode_info><promocode_name>%s</promocode_name><promocode_valid>1</promocode_valid></promocode_info>", b.PromoCode)
	}
	sb.WriteString("<trips>")
	for _, trip := range b.Trips {
		sb.WriteString("<trip>")
		for k, v := range trip {
			fmt.Fprintf(&sb, "<%s>%s</%s>", k, v, k)
		}
		sb.WriteString("</trip>")
	}
	sb.WriteString("</trips></root>")
	return sb.String()
}

// ErrorXML is a carrier reply rejecting the call with code.
func ErrorXML(code, detail string) string {
	return fmt.Sprintf("<root><error>%s</error><detal>%s</detal></root>", code, detail)
}

// AckXML is a plain success reply of a follow-up call.
func AckXML(orderID string) string {
	return fmt.Sprintf("<root><order_id>%s</order_id><result>ok</result></root>", orderID)
}
