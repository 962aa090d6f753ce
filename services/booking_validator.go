package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// BookingRequest is the JSON body of POST /api/book-appointment.
type BookingRequest struct {
	AppointmentDate string  `json:"appointmentDate" validate:"required,bookingdate"`
	AppointmentTime string  `json:"appointmentTime" validate:"required,bookingtime"`
	Plan            string  `json:"plan"`
	FullName        string  `json:"fullName" validate:"required"`
	BusinessName    *string `json:"businessName"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone"`
	Industry        *string `json:"industry"`
	MissionBrief    *string `json:"missionBrief"`
}

// FieldIssue is one failed rule on one request field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every issue found in a request.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// BookingValidator checks booking requests. In strict mode the date must be
// YYYY-MM-DD and the time 24-hour HH:MM; otherwise the date may also be an
// RFC 3339 timestamp and the time any non-empty slot label.
type BookingValidator struct {
	strict   bool
	validate *validator.Validate
}

func NewBookingValidator(strict bool) *BookingValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	bv := &BookingValidator{strict: strict, validate: v}
	if err := v.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
		_, err := bv.ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("bookingtime", func(fl validator.FieldLevel) bool {
		if !bv.strict {
			return true
		}
		return clockPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return bv
}

// ParseDate turns the submitted appointment date into a calendar date.
func (bv *BookingValidator) ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if !bv.strict {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid appointment date %q", raw)
}

// Validate normalizes req in place and returns a *ValidationError listing
// every failing field, or nil.
func (bv *BookingValidator) Validate(req *BookingRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.AppointmentDate = strings.TrimSpace(req.AppointmentDate)
	req.AppointmentTime = strings.TrimSpace(req.AppointmentTime)

	err := bv.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Issues: []FieldIssue{{Field: "body", Message: err.Error()}}}
	}

	issues := make([]FieldIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, FieldIssue{Field: fe.Field(), Message: bv.message(fe)})
	}
	return &ValidationError{Issues: issues}
}

func (bv *BookingValidator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		switch fe.Field() {
		case "fullName":
			return "Full name is required"
		case "email":
			return "Email is required"
		case "appointmentDate":
			return "Appointment date is required"
		case "appointmentTime":
			return "Appointment time is required"
		}
		return "is required"
	case "email":
		return "Invalid email address"
	case "bookingdate":
		if bv.strict {
			return "Appointment date must be in YYYY-MM-DD format"
		}
		return "Invalid appointment date"
	case "bookingtime":
		return "Appointment time must be in HH:MM 24-hour format"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
