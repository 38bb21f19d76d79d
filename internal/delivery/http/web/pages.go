// Package web serves the server-rendered HTML pages: the public listing and
// event detail with booking form, and the admin login, dashboard, delete
// confirmation and create-event pages.
package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"
)

// DashboardPageSize is the number of rows per admin dashboard page.
const DashboardPageSize = 10

// Booking outcome messages shown on the event page.
const (
	msgAlreadyBooked = "You have already booked this event."
	msgBookingFailed = "Booking creation failed. Please try again later."
)

type Pages struct {
	Logger       *slog.Logger
	Catalog      domain.EventCatalog
	Events       domain.EventService
	Bookings     domain.BookingService
	Auth         domain.AuthService
	SecureCookie bool

	views *renderer
}

func NewPages(logger *slog.Logger,
	catalog domain.EventCatalog,
	events domain.EventService,
	bookings domain.BookingService,
	auth domain.AuthService,
	secureCookie bool,
) (*Pages, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Pages{
		Logger:       logger,
		Catalog:      catalog,
		Events:       events,
		Bookings:     bookings,
		Auth:         auth,
		SecureCookie: secureCookie,
		views:        views,
	}, nil
}

type base struct {
	Admin bool
}

type homeView struct {
	base
	Events []*domain.Event
	Error  string
}

type eventView struct {
	base
	Event          *domain.Event
	Similar        []*domain.Event
	BookingCount   int64
	Email          string
	Booked         bool
	BookingMessage string
}

type loginView struct {
	base
	Username string
	Error    string
}

type dashboardView struct {
	base
	Events     []*domain.Event
	Page       int
	TotalPages int
	Flash      string
	Error      string
}

type deleteView struct {
	base
	Event *domain.Event
	Error string
}

type createView struct {
	base
	Form    domain.CreateEventInput
	Modes   []domain.Mode
	Success bool
	Created *domain.Event
	Error   string
}

type messageView struct {
	base
	Message string
}

func (p *Pages) baseView(r *http.Request) base {
	if _, ok := middleware.AdminClaimsFromContext(r.Context()); ok {
		return base{Admin: true}
	}
	return base{Admin: middleware.IsAdmin(r, p.Auth)}
}

// render buffers the page so a template error still yields a clean 500.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := p.views.render(&buf, name, data); err != nil {
		p.Logger.ErrorContext(r.Context(), "render page", "page", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (p *Pages) notFound(w http.ResponseWriter, r *http.Request, message string) {
	p.render(w, r, http.StatusNotFound, "notfound", messageView{base: p.baseView(r), Message: message})
}

func (p *Pages) serverError(w http.ResponseWriter, r *http.Request, err error) {
	p.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	p.render(w, r, http.StatusInternalServerError, "error", messageView{base: p.baseView(r)})
}

// Home renders the landing page with every event.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		p.notFound(w, r, "")
		return
	}
	view := homeView{base: p.baseView(r)}
	events, err := p.Catalog.ListEvents(r.Context())
	if err != nil {
		p.Logger.ErrorContext(r.Context(), "list events", "err", err)
		view.Error = "Events could not be loaded. Please try again later."
	}
	view.Events = events
	p.render(w, r, http.StatusOK, "home", view)
}

// EventDetail renders one event with its booking form.
func (p *Pages) EventDetail(w http.ResponseWriter, r *http.Request) {
	view, ok := p.eventView(w, r)
	if !ok {
		return
	}
	p.render(w, r, http.StatusOK, "event", view)
}

// BookEvent handles the booking form on the event page.
func (p *Pages) BookEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	slug := r.PathValue("slug")
	email := strings.TrimSpace(r.PostFormValue("email"))

	status := http.StatusOK
	var booked bool
	var message string
	res, err := p.Bookings.CreateBooking(r.Context(), r.PostFormValue("eventId"), slug, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		p.notFound(w, r, "Event not found")
		return
	case errors.Is(err, domain.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case err != nil:
		p.Logger.ErrorContext(r.Context(), "create booking", "slug", slug, "err", err)
		status, message = http.StatusInternalServerError, msgBookingFailed
	case res.Outcome == domain.BookingCreated:
		booked = true
	case res.Outcome == domain.BookingAlreadyBooked:
		status, message = http.StatusConflict, msgAlreadyBooked
	default:
		status, message = http.StatusInternalServerError, msgBookingFailed
	}

	view, ok := p.eventView(w, r)
	if !ok {
		return
	}
	view.Booked = booked
	view.BookingMessage = message
	if !booked {
		view.Email = email
	}
	p.render(w, r, status, "event", view)
}

// eventView loads the event named by the slug path value. On failure it
// writes the response and returns false.
func (p *Pages) eventView(w http.ResponseWriter, r *http.Request) (eventView, bool) {
	slug := r.PathValue("slug")
	event, err := p.Catalog.GetEvent(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.notFound(w, r, "Event not found")
		} else {
			p.serverError(w, r, err)
		}
		return eventView{}, false
	}

	view := eventView{base: p.baseView(r), Event: event}
	if n, err := p.Bookings.CountBookings(r.Context(), event.ID); err != nil {
		p.Logger.WarnContext(r.Context(), "count bookings", "slug", slug, "err", err)
	} else {
		view.BookingCount = n
	}
	if similar, err := p.Events.SimilarEvents(r.Context(), event.Slug); err != nil {
		p.Logger.WarnContext(r.Context(), "similar events", "slug", slug, "err", err)
	} else {
		view.Similar = similar
	}
	return view, true
}

// LoginForm renders the admin login page.
func (p *Pages) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAdmin(r, p.Auth) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	p.render(w, r, http.StatusOK, "login", loginView{})
}

// Login checks the submitted credential and starts an admin session.
func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	token, err := p.Auth.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			p.Logger.ErrorContext(r.Context(), "admin login", "err", err)
		}
		p.render(w, r, http.StatusUnauthorized, "login", loginView{Username: username, Error: "Invalid credentials"})
		return
	}
	middleware.SetSessionCookie(w, token, p.SecureCookie)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout ends the admin session.
func (p *Pages) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, p.SecureCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard renders the paginated event table.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	view := dashboardView{base: p.baseView(r), Flash: r.URL.Query().Get("flash")}
	events, err := p.Events.ListEvents(r.Context())
	if err != nil {
		p.Logger.ErrorContext(r.Context(), "list events", "err", err)
		view.Error = "Events could not be loaded. Please try again later."
	}
	params := h.ParsePage(r, DashboardPageSize).Clamp(len(events))
	view.Events = domain.PageOf(events, params)
	view.Page = params.Page
	view.TotalPages = params.TotalPages(len(events))
	p.render(w, r, http.StatusOK, "dashboard", view)
}

// ConfirmDelete renders the delete confirmation step.
func (p *Pages) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	event, err := p.Events.GetEvent(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.render(w, r, http.StatusNotFound, "delete", deleteView{base: p.baseView(r), Error: "Event not found"})
			return
		}
		p.serverError(w, r, err)
		return
	}
	p.render(w, r, http.StatusOK, "delete", deleteView{base: p.baseView(r), Event: event})
}

// DeleteEvent deletes the event and returns to the dashboard.
func (p *Pages) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	event, err := p.Events.DeleteEvent(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.render(w, r, http.StatusNotFound, "delete", deleteView{base: p.baseView(r), Error: "Event not found"})
			return
		}
		p.serverError(w, r, err)
		return
	}
	flash := url.Values{"flash": {`Deleted "` + event.Title + `"`}}
	http.Redirect(w, r, "/admin?"+flash.Encode(), http.StatusSeeOther)
}

var modes = []domain.Mode{domain.ModeOnline, domain.ModeOffline, domain.ModeHybrid}

// CreateEventForm renders the empty create-event form.
func (p *Pages) CreateEventForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "create", createView{base: p.baseView(r), Modes: modes})
}

// CreateEvent handles the create-event form submission.
func (p *Pages) CreateEvent(w http.ResponseWriter, r *http.Request) {
	view := createView{base: p.baseView(r), Modes: modes}
	in, cleanup, err := h.ParseCreateEventForm(w, r, h.MaxUploadBytes)
	if err != nil {
		view.Error = err.Error()
		p.render(w, r, http.StatusBadRequest, "create", view)
		return
	}
	defer cleanup()

	event, err := p.Events.CreateEvent(r.Context(), in)
	if err != nil {
		view.Form = in
		view.Form.Image = nil
		switch {
		case errors.Is(err, domain.ErrValidation):
			view.Error = err.Error()
			p.render(w, r, http.StatusBadRequest, "create", view)
		case errors.Is(err, domain.ErrDuplicateSlug):
			view.Error = "An event with this title already exists."
			p.render(w, r, http.StatusConflict, "create", view)
		default:
			p.Logger.ErrorContext(r.Context(), "create event", "err", err)
			view.Error = "Event creation failed. Please try again later."
			p.render(w, r, http.StatusInternalServerError, "create", view)
		}
		return
	}
	view.Success = true
	view.Created = event
	p.render(w, r, http.StatusCreated, "create", view)
}
