package controllers

import (
	"context"
	"io"
	"log/slog"

	"devevent/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events    []*domain.Event
	listErr   error
	createErr error
	deleteErr error

	lastCreate  domain.CreateEventInput
	imageBytes  []byte
	lastDeleted string
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.listErr
}

func (f *fakeEventService) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) SimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	return []*domain.Event{}, nil
}

func (f *fakeEventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	f.lastCreate = in
	if in.Image != nil {
		f.imageBytes, _ = io.ReadAll(in.Image.Content)
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Event{ID: "ev-1", Title: in.Title, Slug: "created"}, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, slug string) (*domain.Event, error) {
	f.lastDeleted = slug
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &domain.Event{ID: "ev-1", Slug: slug}, nil
}

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	result *domain.BookingResult
	err    error

	lastEventID, lastSlug, lastEmail string
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, eventID, slug, email string) (*domain.BookingResult, error) {
	f.lastEventID, f.lastSlug, f.lastEmail = eventID, slug, email
	return f.result, f.err
}

func (f *fakeBookingService) CountBookings(ctx context.Context, eventID string) (int64, error) {
	return 0, nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	err error
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if username != "admin" || password != "s3cret" {
		return "", domain.ErrInvalidCredentials
	}
	return "signed-token", nil
}

func (f *fakeAuthService) Verify(token string) (*domain.AdminClaims, error) {
	if token != "signed-token" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.AdminClaims{Admin: true}, nil
}
