package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"devevent/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu        sync.Mutex
	bySlug    map[string]*domain.Event
	nextID    int
	createErr error // if set, Create returns this error
	getErr    error // if set, GetBySlug returns this error
	// raceSlugs makes Create report ErrDuplicateSlug once for each listed slug.
	raceSlugs map[string]bool
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{bySlug: make(map[string]*domain.Event), nextID: 1}
	for _, e := range events {
		if e.ID == "" {
			e.ID = fmt.Sprintf("ev-%d", f.nextID)
			f.nextID++
		}
		f.bySlug[e.Slug] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if f.raceSlugs[e.Slug] {
		delete(f.raceSlugs, e.Slug)
		return domain.ErrDuplicateSlug
	}
	if _, ok := f.bySlug[e.Slug]; ok {
		return domain.ErrDuplicateSlug
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.bySlug[e.Slug] = e
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Event, 0, len(f.bySlug))
	for _, e := range f.bySlug {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.bySlug {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) DeleteBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(f.bySlug, slug)
	return e, nil
}

func (f *fakeEventRepo) ListByTags(ctx context.Context, tags []string, excludeSlug string, limit int) ([]*domain.Event, error) {
	all, _ := f.List(ctx)
	out := []*domain.Event{}
	for _, e := range all {
		if e.Slug == excludeSlug || len(out) == limit {
			continue
		}
		if sharesTag(e.Tags, tags) {
			out = append(out, e)
		}
	}
	return out, nil
}

func sharesTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	createErr error
	countErr  error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.bookings {
		if existing.EventID == b.EventID && existing.Email == b.Email {
			return domain.ErrDuplicateBooking
		}
	}
	b.ID = fmt.Sprintf("bk-%d", len(f.bookings)+1)
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, b := range f.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

type fakeProcessor struct {
	err error
}

func (p *fakeProcessor) Process(upload *domain.ImageUpload) (*domain.ProcessedImage, error) {
	if p.err != nil {
		return nil, p.err
	}
	data, err := io.ReadAll(upload.Content)
	if err != nil {
		return nil, err
	}
	return &domain.ProcessedImage{Data: data, ContentType: "image/png", Ext: "png"}, nil
}

type fakeImageStore struct {
	saved     map[string][]byte
	deleted   []string
	saveErr   error
	deleteErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{saved: make(map[string][]byte)}
}

func (s *fakeImageStore) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved[key] = data
	return "/uploads/" + key, nil
}

func (s *fakeImageStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.saved, key)
	return s.deleteErr
}

type fakeCache struct {
	events      []*domain.Event
	ok          bool
	getErr      error
	setErr      error
	sets        int
	invalidated int
}

func (c *fakeCache) Get(ctx context.Context) ([]*domain.Event, bool, error) {
	return c.events, c.ok, c.getErr
}

func (c *fakeCache) Set(ctx context.Context, events []*domain.Event) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.events, c.ok = events, true
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.invalidated++
	c.events, c.ok = nil, false
	return nil
}

func pngUpload() *domain.ImageUpload {
	return &domain.ImageUpload{Filename: "cover.png", Size: 4, Content: bytes.NewReader([]byte("\x89PNG"))}
}

func validInput() domain.CreateEventInput {
	return domain.CreateEventInput{
		Title:       "GopherCon EU",
		Description: "The European Go conference",
		Overview:    "Three days of talks",
		Venue:       "Festsaal",
		Location:    "Berlin",
		Date:        "2026-06-16",
		Time:        "09:00",
		Mode:        "Hybrid",
		Audience:    "Go developers",
		Organizer:   "Gopher Club",
		Agenda:      "Keynote\nTalks\n\nParty",
		Tags:        "go, backend, Go",
		Image:       pngUpload(),
	}
}

func joined(items []string) string { return strings.Join(items, "|") }
