package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"devevent/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if _, err := uuid.Parse(b.EventID); err != nil {
		return domain.NewValidationError([]string{"invalid event id"})
	}
	query := `
		INSERT INTO bookings (event_id, slug, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, b.EventID, b.Slug, b.Email, b.CreatedAt, b.UpdatedAt).
		Scan(&b.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateBooking
		}
		return err
	}
	return nil
}

func (r *bookingRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return 0, nil
	}
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&n)
	return n, err
}
