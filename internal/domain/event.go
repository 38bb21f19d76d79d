package domain

import (
	"context"
	"io"
	"strings"
	"time"
)

// Mode is how an event is attended.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeHybrid  Mode = "hybrid"
)

// ParseMode normalizes s and reports whether it names a known mode.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return m, true
	}
	return "", false
}

// Event represents a scheduled developer event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	ImageKey    string    `json:"-"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        Mode      `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ImageUpload is a raw image file received with a create-event submission.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// CreateEventInput carries the create-event form fields. Agenda and Tags hold
// the raw submitted values: either a JSON array or plain text.
type CreateEventInput struct {
	Title       string
	Description string
	Overview    string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Agenda      string
	Tags        string
	Image       *ImageUpload
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// DeleteBySlug removes the event and returns what was removed.
	DeleteBySlug(ctx context.Context, slug string) (*Event, error)
	// ListByTags returns up to limit events sharing any of tags, excluding excludeSlug.
	ListByTags(ctx context.Context, tags []string, excludeSlug string, limit int) ([]*Event, error)
}

// EventService defines the event operations exposed to HTTP handlers.
type EventService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, slug string) (*Event, error)
	SimilarEvents(ctx context.Context, slug string) ([]*Event, error)
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	DeleteEvent(ctx context.Context, slug string) (*Event, error)
}

// EventCatalog is the read side the public pages render from. It is served
// either in-process by the EventService or over HTTP from the events API.
type EventCatalog interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, slug string) (*Event, error)
}

// EventListCache holds the public event listing for a short time window.
type EventListCache interface {
	// Get returns the cached listing; ok is false on a miss.
	Get(ctx context.Context) (events []*Event, ok bool, err error)
	Set(ctx context.Context, events []*Event) error
	Invalidate(ctx context.Context) error
}
