// services/booking_service.go
package services

import (
	"context"
	"strings"
	"time"

	"booking-backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BookingService validates appointment requests and hands them to the store.
type BookingService struct {
	Store     BookingStore
	Validator *BookingValidator

	now func() time.Time
}

func NewBookingService(store BookingStore, validator *BookingValidator) *BookingService {
	return &BookingService{
		Store:     store,
		Validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source used for new bookings.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// Create validates req, applies the plan default and inserts one booking.
// Validation failures return *ValidationError before the store is touched.
func (s *BookingService) Create(ctx context.Context, req *BookingRequest) (*models.Booking, error) {
	if err := s.Validator.Validate(req); err != nil {
		return nil, err
	}

	// the bookingdate rule already accepted this value
	date, _ := s.Validator.ParseDate(req.AppointmentDate)

	plan := strings.TrimSpace(req.Plan)
	if plan == "" {
		plan = models.DefaultPlan
	} else {
		plan = req.Plan
	}

	now := s.now()
	booking := &models.Booking{
		ID:              uuid.NewString(),
		AppointmentDate: datatypes.Date(date),
		AppointmentTime: req.AppointmentTime,
		Plan:            plan,
		FullName:        req.FullName,
		BusinessName:    req.BusinessName,
		Email:           req.Email,
		Phone:           req.Phone,
		Industry:        req.Industry,
		MissionBrief:    req.MissionBrief,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Store.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// List returns every booking, most recent first.
func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.Store.ListAll(ctx)
}
