package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"devevent/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService with the given repositories.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		logger:         logger,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, slug, email string) (*domain.BookingResult, error) {
	eventID = strings.TrimSpace(eventID)
	slug = strings.TrimSpace(slug)
	email = strings.ToLower(strings.TrimSpace(email))

	var problems []string
	if slug == "" && eventID == "" {
		problems = append(problems, "slug or event id is required")
	}
	if email == "" {
		problems = append(problems, "email is required")
	} else if !emailRegexp.MatchString(email) {
		problems = append(problems, "email is not a valid address")
	}
	if err := domain.NewValidationError(problems); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.resolveEvent(ctx, eventID, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "resolve event for booking", "slug", slug, "event_id", eventID, "error", err)
		return &domain.BookingResult{Outcome: domain.BookingUnknownError}, nil
	}
	if eventID == "" {
		eventID = event.ID
	} else if eventID != event.ID {
		return nil, domain.NewValidationError([]string{"event id does not match slug"})
	}

	now := s.now()
	booking := domain.NewBooking(eventID, event.Slug, email, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) {
			return &domain.BookingResult{Outcome: domain.BookingAlreadyBooked}, nil
		}
		s.logger.ErrorContext(ctx, "create booking", "slug", slug, "error", err)
		return &domain.BookingResult{Outcome: domain.BookingUnknownError}, nil
	}
	return &domain.BookingResult{Outcome: domain.BookingCreated, Booking: booking}, nil
}

// resolveEvent looks the event up by slug, or by id when no slug was given.
func (s *bookingService) resolveEvent(ctx context.Context, eventID, slug string) (*domain.Event, error) {
	if slug != "" {
		return s.eventRepo.GetBySlug(ctx, slug)
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *bookingService) CountBookings(ctx context.Context, eventID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.bookingRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
