package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on startup. Every statement is idempotent.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS events (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title       TEXT NOT NULL,
		slug        TEXT NOT NULL,
		description TEXT NOT NULL,
		overview    TEXT NOT NULL,
		image       TEXT NOT NULL,
		image_key   TEXT NOT NULL DEFAULT '',
		venue       TEXT NOT NULL,
		location    TEXT NOT NULL,
		date        TEXT NOT NULL,
		time        TEXT NOT NULL,
		mode        TEXT NOT NULL CHECK (mode IN ('online', 'offline', 'hybrid')),
		audience    TEXT NOT NULL,
		agenda      TEXT[] NOT NULL,
		organizer   TEXT NOT NULL,
		tags        TEXT[] NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		CONSTRAINT events_slug_key UNIQUE (slug)
	)`,
	`CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS events_tags_idx ON events USING GIN (tags)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id   UUID NOT NULL,
		slug       TEXT NOT NULL,
		email      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT bookings_event_email_key UNIQUE (event_id, email)
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_slug_idx ON bookings (slug)`,
	// Bookings reference an event without being owned by it; older schemas
	// cascaded event deletes into bookings.
	`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_event_id_fkey`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
