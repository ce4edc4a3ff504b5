package wire

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories the engine reports.
type Kind string

const (
	KindValidation     Kind = "validation_error"
	KindDealerInactive Kind = "dealer_no_activ"
	KindNotFound       Kind = "no_found"
	KindNetwork        Kind = "network_error"
	KindParse          Kind = "parse_error"
	KindUnknown        Kind = "unknown_error"
)

func (k Kind) String() string {
	return string(k)
}

const fallbackGuidance = "please try again later"

// CodeRateLimited is reported, under KindNetwork, when the local request
// budget toward the carrier is exhausted.
const CodeRateLimited = "rate_limit"

type codeInfo struct {
	kind      Kind
	message   string
	guidance  string
	retryable bool
}

// Every known carrier code describes a business failure, so none of them is
// retryable.
var knownCodes = map[string]codeInfo{
	"dealer_no_activ":   {kind: KindDealerInactive, message: "dealer account is not active", guidance: "online sales are temporarily unavailable, please contact support"},
	"no_login":          {kind: KindValidation, message: "invalid carrier credentials", guidance: "online sales are temporarily unavailable, please contact support"},
	"no_found":          {kind: KindNotFound, message: "nothing found", guidance: "search again: this trip is no longer available"},
	"interval_no_found": {kind: KindNotFound, message: "trip interval not found", guidance: "search again: this trip is no longer available"},
	"route_no_activ":    {kind: KindNotFound, message: "route is not active", guidance: "choose another route"},
	"order_no_found":    {kind: KindNotFound, message: "order not found", guidance: "start a new booking"},
	"no_seat":           {kind: KindValidation, message: "no seat selected", guidance: "select seats for all passengers"},
	"no_name":           {kind: KindValidation, message: "passenger name missing", guidance: "enter name and surname for every passenger"},
	"no_phone":          {kind: KindValidation, message: "phone number missing or invalid", guidance: "use international phone format"},
	"no_email":          {kind: KindValidation, message: "email missing or invalid", guidance: "enter a valid email address"},
	"no_doc":            {kind: KindValidation, message: "document missing", guidance: "enter document details for every passenger"},
	"no_birth_date":     {kind: KindValidation, message: "birth date missing", guidance: "enter birth date for every passenger"},
	"sms_not_valid":     {kind: KindValidation, message: "SMS code is not valid", guidance: "check the SMS code and try again"},
	CodeRateLimited:     {kind: KindNetwork, message: "too many requests to the carrier, slow down", guidance: "too many requests, wait a minute and try again"},
}

// WireError is a business failure reported inside a carrier response.
type WireError struct {
	Code    string
	Kind    Kind
	Message string
	Detail  string
	retry   bool
}

func (e *WireError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("carrier error %s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("carrier error %s: %s", e.Code, e.Message)
}

func (e *WireError) Retryable() bool {
	return e.retry
}

// Guidance is the actionable text shown to the customer.
func (e *WireError) Guidance() string {
	return Guidance(e.Code)
}

// Classify maps a carrier error code to a WireError. Unknown codes keep the
// raw code for diagnostics.
func Classify(code, detail string) *WireError {
	info, ok := knownCodes[code]
	if !ok {
		return &WireError{Code: code, Kind: KindUnknown, Message: "unrecognized carrier error", Detail: detail}
	}
	return &WireError{Code: code, Kind: info.kind, Message: info.message, Detail: detail, retry: info.retryable}
}

func Guidance(code string) string {
	if info, ok := knownCodes[code]; ok {
		return info.guidance
	}
	return fallbackGuidance
}

// ParseError means the response could not be turned into a domain object.
type ParseError struct {
	Reason string
	Raw    []byte
}

func (e *ParseError) Error() string {
	return "malformed carrier response: " + e.Reason
}

// RawSnippet returns at most n bytes of the offending payload.
func (e *ParseError) RawSnippet(n int) string {
	if len(e.Raw) <= n {
		return string(e.Raw)
	}
	return string(e.Raw[:n]) + "..."
}

func AsWireError(err error) (*WireError, bool) {
	var we *WireError
	if errors.As(err, &we) {
		return we, true
	}
	return nil, false
}

func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Inspect reports the business error embedded in a payload, if any.
func Inspect(raw []byte) *WireError {
	_, err := Decode(raw)
	we, _ := AsWireError(err)
	return we
}
