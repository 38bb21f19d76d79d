package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"devevent/internal/domain"
)

const uniqueViolation = "23505"

const eventColumns = `id, title, slug, description, overview, image, image_key, venue, location,
		date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, slug, description, overview, image, image_key, venue, location,
			date, time, mode, audience, agenda, organizer, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.ImageKey, e.Venue, e.Location,
		e.Date, e.Time, string(e.Mode), e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at DESC
	`
	return r.query(ctx, query)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	return scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE slug = $1
	`
	return scanOne(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) DeleteBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `DELETE FROM events
		WHERE slug = $1
		RETURNING ` + eventColumns
	return scanOne(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) ListByTags(ctx context.Context, tags []string, excludeSlug string, limit int) ([]*domain.Event, error) {
	if len(tags) == 0 || limit <= 0 {
		return []*domain.Event{}, nil
	}
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE tags && $1 AND slug <> $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	return r.query(ctx, query, pq.Array(tags), excludeSlug, limit)
}

func (r *eventRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner) (*domain.Event, error) {
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func scanEvent(row scanner) (*domain.Event, error) {
	e := &domain.Event{}
	var mode string
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image, &e.ImageKey, &e.Venue, &e.Location,
		&e.Date, &e.Time, &mode, &e.Audience, pq.Array(&e.Agenda), &e.Organizer, pq.Array(&e.Tags),
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Mode = domain.Mode(mode)
	if e.Agenda == nil {
		e.Agenda = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e, nil
}
