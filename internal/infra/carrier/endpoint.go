package carrier

import "net/http"

type Encoding string

const (
	EncodingForm Encoding = "form"
	EncodingJSON Encoding = "json"
)

// Endpoint describes one carrier API operation and the body format it expects.
type Endpoint struct {
	Name     string
	Path     string
	Encoding Encoding
	Method   string
}

var (
	GetPlan = Endpoint{Name: "get_plan", Path: "get_plan", Encoding: EncodingForm, Method: http.MethodPost}
	// NewOrder takes the nested order payload, which only survives as JSON.
	NewOrder          = Endpoint{Name: "new_order", Path: "new_order", Encoding: EncodingJSON, Method: http.MethodPost}
	BuyTicket         = Endpoint{Name: "buy_ticket", Path: "buy_ticket", Encoding: EncodingForm, Method: http.MethodPost}
	ReserveValidation = Endpoint{Name: "reserve_validation", Path: "reserve_validation", Encoding: EncodingForm, Method: http.MethodPost}
	SMSValidation     = Endpoint{Name: "sms_validation", Path: "sms_validation", Encoding: EncodingForm, Method: http.MethodPost}
	CancelTicket      = Endpoint{Name: "cancel_ticket", Path: "cancel_ticket", Encoding: EncodingForm, Method: http.MethodPost}
)

func (e Endpoint) method() string {
	if e.Method == "" {
		return http.MethodPost
	}
	return e.Method
}
