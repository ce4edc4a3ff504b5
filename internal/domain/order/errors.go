package order

import (
	"fmt"
	"strings"
)

const (
	CodeNoTrips              = "no_trips"
	CodeNoPassengers         = "no_passengers"
	CodeSeatCountMismatch    = "seat_count_mismatch"
	CodeSeatRequired         = "seat_required"
	CodeSegmentCountMismatch = "segment_count_mismatch"
	CodeNameRequired         = "name_required"
	CodeSurnameRequired      = "surname_required"
	CodePhoneRequired        = "phone_required"
	CodePhoneInvalid         = "phone_invalid"
	CodeEmailRequired        = "email_required"
	CodeEmailInvalid         = "email_invalid"
	CodeBirthDateRequired    = "birth_date_required"
	CodeBirthDateInvalid     = "birth_date_invalid"
	CodeDocumentRequired     = "document_required"
	CodeCitizenshipRequired  = "citizenship_required"
	CodeGenderRequired       = "gender_required"
	CodeGenderInvalid        = "gender_invalid"
)

// ValidationError points at one form field. Trip and Passenger are -1 when
// the error is not tied to a specific trip or passenger.
type ValidationError struct {
	Code      string `json:"code"`
	Field     string `json:"field"`
	Message   string `json:"message"`
	Trip      int    `json:"trip"`
	Passenger int    `json:"passenger"`
}

func (v ValidationError) Error() string {
	switch {
	case v.Passenger >= 0:
		return fmt.Sprintf("passenger %d: %s", v.Passenger, v.Message)
	case v.Trip >= 0:
		return fmt.Sprintf("trip %d: %s", v.Trip, v.Message)
	default:
		return v.Message
	}
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ForPassenger filters errors belonging to one passenger form.
func (v ValidationErrors) ForPassenger(index int) ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if e.Passenger == index {
			out = append(out, e)
		}
	}
	return out
}

func passengerError(index int, code, field, message string) ValidationError {
	return ValidationError{Code: code, Field: field, Message: message, Trip: -1, Passenger: index}
}

func tripError(index int, code, field, message string) ValidationError {
	return ValidationError{Code: code, Field: field, Message: message, Trip: index, Passenger: -1}
}
