package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// ListEventsResponse is the response body for GET /api/events.
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

// EventResponse is the response body for GET /api/events/{slug}.
type EventResponse struct {
	Event *domain.Event `json:"event"`
}

// EventMessageResponse is the response body for create and delete.
type EventMessageResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ListEventsResponse{Events: events})
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventResponse
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /api/events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("slug"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, EventResponse{Event: event})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Multipart form with every event field and an image file (JPEG, PNG or GIF, at most 5MB). agenda and tags accept a JSON array or plain text (one agenda item per line, comma-separated tags).
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security AdminCookie
// @Param title formData string true "Title (max 100 characters)"
// @Param description formData string true "Description (max 1000 characters)"
// @Param overview formData string true "Overview"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Date"
// @Param time formData string true "Time"
// @Param mode formData string true "online, offline or hybrid"
// @Param audience formData string true "Audience"
// @Param organizer formData string true "Organizer"
// @Param agenda formData string true "Agenda items"
// @Param tags formData string true "Tags"
// @Param image formData file true "Cover image"
// @Success 201 {object} controllers.EventMessageResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 409 {object} helpers.APIError "code: conflict"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	in, cleanup, err := h.ParseCreateEventForm(w, r, h.MaxUploadBytes)
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	defer cleanup()

	event, err := c.Service.CreateEvent(r.Context(), in)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, EventMessageResponse{Message: "Event created successfully", Event: event})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes the event and its stored image. Bookings are kept.
// @Tags events
// @Produce json
// @Security AdminCookie
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventMessageResponse
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /api/events/{slug} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.DeleteEvent(r.Context(), r.PathValue("slug"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, EventMessageResponse{Message: "Event deleted successfully", Event: event})
}

func (c *EventController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrDuplicateSlug):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "an event with this title already exists")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
	}
}
