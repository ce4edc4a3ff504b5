package order

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const birthDateLayout = "2006-01-02"

var (
	birthDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits        = regexp.MustCompile(`\D`)
)

// Validator runs the two-phase order check: structure first, then the
// per-passenger fields demanded by the combined trip requirements.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	mustRegister(v, "birth_date", validateBirthDate)
	mustRegister(v, "phone_digits", validatePhone)
	mustRegister(v, "basic_email", validateEmail)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

func validateBirthDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !birthDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(birthDateLayout, s)
	return err == nil
}

func validatePhone(fl validator.FieldLevel) bool {
	n := len(NormalizePhone(fl.Field().String()))
	return n >= 7 && n <= 15
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

func (v *Validator) Validate(b Builder) ValidationErrors {
	if errs := v.validateStructure(b); len(errs) > 0 {
		return errs
	}
	return v.validateFields(b)
}

func (v *Validator) validateStructure(b Builder) ValidationErrors {
	var errs ValidationErrors
	if len(b.Trips) == 0 {
		errs = append(errs, tripError(-1, CodeNoTrips, "trips", "at least one trip required"))
	}
	if len(b.Passengers) == 0 {
		errs = append(errs, passengerError(-1, CodeNoPassengers, "passengers", "at least one passenger required"))
	}
	if len(errs) > 0 {
		return errs
	}

	for i, trip := range b.Trips {
		if len(trip.Seats) != len(b.Passengers) {
			errs = append(errs, tripError(i, CodeSeatCountMismatch, "seats",
				fmt.Sprintf("%d seat(s) selected for %d passenger(s)", len(trip.Seats), len(b.Passengers))))
			continue
		}
		segments := trip.SegmentCount()
		for p, selector := range trip.Seats {
			seats := splitSelector(selector)
			switch {
			case len(seats) == 0:
				e := tripError(i, CodeSeatRequired, "seats", "seat required")
				e.Passenger = p
				errs = append(errs, e)
			case segments > 1 && len(seats) != segments:
				e := tripError(i, CodeSegmentCountMismatch, "seats",
					fmt.Sprintf("%d seat(s) selected for %d segment(s)", len(seats), segments))
				e.Passenger = p
				errs = append(errs, e)
			}
		}
	}
	return errs
}

func (v *Validator) validateFields(b Builder) ValidationErrors {
	req := b.Requirements()
	var errs ValidationErrors

	for i, p := range b.Passengers {
		if req.OrderData {
			errs = v.require(errs, i, p.Name, "name", CodeNameRequired, "name required")
			errs = v.require(errs, i, p.Surname, "surname", CodeSurnameRequired, "surname required")
			if i == 0 {
				errs = v.require(errs, i, p.Phone, "phone", CodePhoneRequired, "phone required")
				errs = v.require(errs, i, p.Email, "email", CodeEmailRequired, "email required")
			}
		}
		errs = v.format(errs, i, p.Phone, "phone", "phone_digits", CodePhoneInvalid, "phone must contain 7 to 15 digits")
		errs = v.format(errs, i, p.Email, "email", "basic_email", CodeEmailInvalid, "email is invalid")

		if req.BirthDate {
			errs = v.require(errs, i, p.BirthDate, "birthDate", CodeBirthDateRequired, "birth date required")
			errs = v.format(errs, i, p.BirthDate, "birthDate", "birth_date", CodeBirthDateInvalid, "birth date must be a real date in YYYY-MM-DD format")
		}
		if req.Document {
			if strings.TrimSpace(p.DocType) == "" || strings.TrimSpace(p.DocNumber) == "" {
				errs = append(errs, passengerError(i, CodeDocumentRequired, "document", "document type and number required"))
			}
		}
		if req.Citizenship {
			errs = v.require(errs, i, p.Citizenship, "citizenship", CodeCitizenshipRequired, "citizenship required")
		}
		if req.Gender {
			errs = v.require(errs, i, p.Gender, "gender", CodeGenderRequired, "gender required")
			errs = v.format(errs, i, strings.ToUpper(p.Gender), "gender", "oneof=M F", CodeGenderInvalid, "gender must be M or F")
		}
	}
	return errs
}

func (v *Validator) require(errs ValidationErrors, index int, value, field, code, message string) ValidationErrors {
	if v.validate.Var(strings.TrimSpace(value), "required") != nil {
		return append(errs, passengerError(index, code, field, message))
	}
	return errs
}

// format checks a value only when it is present; presence is require's job.
func (v *Validator) format(errs ValidationErrors, index int, value, field, tag, code, message string) ValidationErrors {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs
	}
	if v.validate.Var(value, tag) != nil {
		return append(errs, passengerError(index, code, field, message))
	}
	return errs
}
