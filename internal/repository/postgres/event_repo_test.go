package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{
	"id", "title", "slug", "description", "overview", "image", "image_key", "venue", "location",
	"date", "time", "mode", "audience", "agenda", "organizer", "tags", "created_at", "updated_at",
}

var created = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

const eventUUID = "0b9f2f3e-6c1d-4d6b-9d0e-6f1a2b3c4d5e"

func eventRow(rows *sqlmock.Rows, id, slug string) *sqlmock.Rows {
	return rows.AddRow(id, "Go Meetup", slug, "desc", "overview", "/uploads/events/a.jpg", "events/a.jpg",
		"Hall A", "Berlin", "2026-03-01", "18:00", "offline", "Gophers", "{Intro,Talks}", "Gopher Club",
		"{go,backend}", created, created)
}

func sampleEvent() *domain.Event {
	return &domain.Event{
		Title: "Go Meetup", Slug: "go-meetup", Description: "desc", Overview: "overview",
		Image: "/uploads/events/a.jpg", ImageKey: "events/a.jpg", Venue: "Hall A", Location: "Berlin",
		Date: "2026-03-01", Time: "18:00", Mode: domain.ModeOffline, Audience: "Gophers",
		Agenda: []string{"Intro", "Talks"}, Organizer: "Gopher Club", Tags: []string{"go", "backend"},
		CreatedAt: created, UpdatedAt: created,
	}
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, slug, description`).
					WithArgs("Go Meetup", "go-meetup", "desc", "overview", "/uploads/events/a.jpg", "events/a.jpg",
						"Hall A", "Berlin", "2026-03-01", "18:00", "offline", "Gophers",
						pq.Array([]string{"Intro", "Talks"}), "Gopher Club", pq.Array([]string{"go", "backend"}),
						created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(eventUUID))
			},
			wantID: eventUUID,
		},
		{
			name: "duplicate slug",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateSlug,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			e := sampleEvent()
			err = NewEventRepository(db).Create(ctx, e)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, e.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, slug`).
					WithArgs("go-meetup").
					WillReturnRows(eventRow(sqlmock.NewRows(eventCols), eventUUID, "go-meetup"))
			},
			want: func() *domain.Event {
				e := sampleEvent()
				e.ID = eventUUID
				return e
			}(),
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, slug`).
					WithArgs("go-meetup").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewEventRepository(db).GetBySlug(ctx, "go-meetup")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id skips query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		_, err = NewEventRepository(db).GetByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events\s+WHERE id = \$1`).
			WithArgs(eventUUID).
			WillReturnRows(eventRow(sqlmock.NewRows(eventCols), eventUUID, "go-meetup"))

		got, err := NewEventRepository(db).GetByID(ctx, eventUUID)
		require.NoError(t, err)
		require.Equal(t, []string{"Intro", "Talks"}, got.Agenda)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantLen int
		wantErr bool
	}{
		{
			name: "success multiple",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventCols)
				eventRow(rows, eventUUID, "one")
				eventRow(rows, "5d0c2a8e-1b7f-4f5e-8a2d-3c4b5a697887", "two")
				mock.ExpectQuery(`ORDER BY created_at DESC`).WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "success empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`ORDER BY created_at DESC`).WillReturnRows(sqlmock.NewRows(eventCols))
			},
			wantLen: 0,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewEventRepository(db).List(ctx)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Len(t, got, tt.wantLen)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_DeleteBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("returns deleted row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`DELETE FROM events\s+WHERE slug = \$1\s+RETURNING`).
			WithArgs("go-meetup").
			WillReturnRows(eventRow(sqlmock.NewRows(eventCols), eventUUID, "go-meetup"))

		got, err := NewEventRepository(db).DeleteBySlug(ctx, "go-meetup")
		require.NoError(t, err)
		require.Equal(t, "events/a.jpg", got.ImageKey)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`DELETE FROM events`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(eventCols))

		_, err = NewEventRepository(db).DeleteBySlug(ctx, "nope")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_ListByTags(t *testing.T) {
	ctx := context.Background()

	t.Run("no tags", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		got, err := NewEventRepository(db).ListByTags(ctx, nil, "go-meetup", 3)
		require.NoError(t, err)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlapping tags", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE tags && \$1 AND slug <> \$2`).
			WithArgs(pq.Array([]string{"go"}), "go-meetup", 3).
			WillReturnRows(eventRow(sqlmock.NewRows(eventCols), eventUUID, "other"))

		got, err := NewEventRepository(db).ListByTags(ctx, []string{"go"}, "go-meetup", 3)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "other", got[0].Slug)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
