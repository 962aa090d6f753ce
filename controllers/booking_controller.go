// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"

	"booking-backend/metrics"
	"booking-backend/services"
	"booking-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type BookingController struct {
	BookingSvc *services.BookingService

	log          zerolog.Logger
	exposeErrors bool
}

// NewBookingController builds the booking handlers. exposeErrors adds store
// error text to 500 bodies and must be false in production.
func NewBookingController(svc *services.BookingService, log zerolog.Logger, exposeErrors bool) *BookingController {
	return &BookingController{BookingSvc: svc, log: log, exposeErrors: exposeErrors}
}

// BookAppointment handles POST /api/book-appointment.
func (ctrl *BookingController) BookAppointment(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncValidationFailure()
		utils.JSONValidationError(c, http.StatusBadRequest, []services.FieldIssue{
			{Field: "body", Message: "Request body must be a JSON object: " + err.Error()},
		})
		return
	}

	booking, err := ctrl.BookingSvc.Create(c.Request.Context(), &req)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			metrics.IncValidationFailure()
			utils.JSONValidationError(c, http.StatusBadRequest, verr.Issues)
			return
		}

		ctrl.log.Error().
			Err(err).
			Bool("store_unavailable", errors.Is(err, services.ErrStoreUnavailable)).
			Msg("booking create failed")
		utils.JSONServerError(c, http.StatusInternalServerError, err.Error(), ctrl.exposeErrors)
		return
	}

	metrics.IncBookingCreated()
	ctrl.log.Info().Str("id", booking.ID).Str("email", booking.Email).Msg("booking created")
	utils.JSONCreated(c, http.StatusCreated, booking.ID)
}

// Preflight answers OPTIONS /api/book-appointment without touching the store.
func (ctrl *BookingController) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ListBookings handles GET /api/bookings. AdminKey runs first.
func (ctrl *BookingController) ListBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.List(c.Request.Context())
	if err != nil {
		ctrl.log.Error().Err(err).Msg("booking list failed")
		utils.JSONServerError(c, http.StatusInternalServerError, err.Error(), ctrl.exposeErrors)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}
