package domain

import (
	"context"
	"time"
)

// Booking represents one attendee's registration for one event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBooking returns a new Booking. ID is set by the repository on create.
func NewBooking(eventID, slug, email string, now time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Slug:      slug,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BookingOutcome is the user-facing result of a booking attempt.
type BookingOutcome string

const (
	BookingCreated       BookingOutcome = "created"
	BookingAlreadyBooked BookingOutcome = "already_booked"
	BookingUnknownError  BookingOutcome = "unknown_error"
)

// BookingResult bundles the outcome with the stored booking (set only when created).
type BookingResult struct {
	Outcome BookingOutcome
	Booking *Booking
}

// BookingRepository defines storage operations for bookings. Create returns
// ErrDuplicateBooking when (eventID, email) already exists.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	CountByEvent(ctx context.Context, eventID string) (int64, error)
}

// BookingService defines attendee booking operations.
type BookingService interface {
	// CreateBooking records email for the event. Persistence failures are
	// reported through the result outcome; the error is reserved for invalid
	// input and unknown events.
	CreateBooking(ctx context.Context, eventID, slug, email string) (*BookingResult, error)
	CountBookings(ctx context.Context, eventID string) (int64, error)
}
