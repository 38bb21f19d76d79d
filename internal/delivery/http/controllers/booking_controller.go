package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// CreateBookingRequest is the request body for POST /api/bookings.
type CreateBookingRequest struct {
	EventID string `json:"eventId"`
	Slug    string `json:"slug"`
	Email   string `json:"email"`
}

// Validate implements Validator.
func (b CreateBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(b.Slug) == "" && strings.TrimSpace(b.EventID) == "" {
		errs = append(errs, "slug or eventId is required")
	}
	if strings.TrimSpace(b.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// BookingResponse is the body of every booking outcome.
type BookingResponse struct {
	Success bool            `json:"success"`
	Booking *domain.Booking `json:"booking,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book an event
// @Description Records the attendee email for the event. Each email can book an event once.
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body CreateBookingRequest true "Booking"
// @Success 201 {object} controllers.BookingResponse "success true with the booking"
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 409 {object} controllers.BookingResponse "error: already_booked"
// @Failure 500 {object} controllers.BookingResponse "error: unknown_error"
// @Router /api/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.CreateBooking(r.Context(), req.EventID, req.Slug, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSON(w, http.StatusInternalServerError, BookingResponse{Error: string(domain.BookingUnknownError)})
		}
		return
	}

	switch res.Outcome {
	case domain.BookingCreated:
		h.WriteJSON(w, http.StatusCreated, BookingResponse{Success: true, Booking: res.Booking})
	case domain.BookingAlreadyBooked:
		h.WriteJSON(w, http.StatusConflict, BookingResponse{Error: string(domain.BookingAlreadyBooked)})
	default:
		h.WriteJSON(w, http.StatusInternalServerError, BookingResponse{Error: string(domain.BookingUnknownError)})
	}
}
