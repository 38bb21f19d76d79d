package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"

	"devevent/internal/domain"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 1000
	maxSlugAttempts   = 20
	similarLimit      = 3
)

type eventService struct {
	eventRepo      domain.EventRepository
	images         domain.ImageProcessor
	imageStore     domain.ImageStore
	cache          domain.EventListCache
	policy         *bluemonday.Policy
	logger         *slog.Logger
	now            func() time.Time
	newImageKey    func(ext string) string
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	images domain.ImageProcessor,
	imageStore domain.ImageStore,
	cache domain.EventListCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		images:         images,
		imageStore:     imageStore,
		cache:          cache,
		policy:         bluemonday.StrictPolicy(),
		logger:         logger,
		now:            time.Now,
		newImageKey:    newImageKey,
		contextTimeout: timeout,
	}
}

func newImageKey(ext string) string {
	return "events/" + uuid.NewString() + "." + ext
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) SimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	event, err := s.GetEvent(ctx, slug)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	similar, err := s.eventRepo.ListByTags(ctx, event.Tags, event.Slug, similarLimit)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	return similar, nil
}

// CreateEvent validates every field before touching storage. The image is
// stored first so its URL can be saved with the event, and removed again if
// the event cannot be inserted.
func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	event, err := s.buildEvent(in)
	if err != nil {
		return nil, err
	}
	img, err := s.images.Process(in.Image)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key := s.newImageKey(img.Ext)
	url, err := s.imageStore.Save(ctx, key, img.ContentType, img.Data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	event.Image = url
	event.ImageKey = key

	now := s.now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.insertWithUniqueSlug(ctx, event); err != nil {
		s.discardImage(ctx, key)
		return nil, err
	}

	s.invalidate(ctx)
	return event, nil
}

func (s *eventService) insertWithUniqueSlug(ctx context.Context, event *domain.Event) error {
	base := slug.Make(event.Title)
	if base == "" {
		base = "event"
	}
	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := base
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		_, err := s.eventRepo.GetBySlug(ctx, candidate)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check slug: %w", err)
		}

		event.Slug = candidate
		err = s.eventRepo.Create(ctx, event)
		if err == nil {
			return nil
		}
		// Lost a race with a concurrent insert of the same slug.
		if errors.Is(err, domain.ErrDuplicateSlug) {
			continue
		}
		return fmt.Errorf("create event: %w", err)
	}
	return fmt.Errorf("create event: %w: no free slug for %q", domain.ErrDuplicateSlug, base)
}

func (s *eventService) DeleteEvent(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.DeleteBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	if event.ImageKey != "" {
		s.discardImage(ctx, event.ImageKey)
	}
	s.invalidate(ctx)
	return event, nil
}

func (s *eventService) discardImage(ctx context.Context, key string) {
	if err := s.imageStore.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.WarnContext(ctx, "delete stored image", "key", key, "error", err)
	}
}

func (s *eventService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		s.logger.WarnContext(ctx, "invalidate event cache", "error", err)
	}
}

// buildEvent cleans and validates the submitted text fields, collecting
// every problem rather than stopping at the first.
func (s *eventService) buildEvent(in domain.CreateEventInput) (*domain.Event, error) {
	var problems []string
	required := func(name, value string) string {
		v := s.clean(value)
		if v == "" {
			problems = append(problems, name+" is required")
		}
		return v
	}

	e := &domain.Event{
		Title:       required("title", in.Title),
		Description: required("description", in.Description),
		Overview:    required("overview", in.Overview),
		Venue:       required("venue", in.Venue),
		Location:    required("location", in.Location),
		Date:        required("date", in.Date),
		Time:        required("time", in.Time),
		Audience:    required("audience", in.Audience),
		Organizer:   required("organizer", in.Organizer),
	}
	if utf8.RuneCountInString(e.Title) > maxTitleLen {
		problems = append(problems, fmt.Sprintf("title must be at most %d characters", maxTitleLen))
	}
	if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
		problems = append(problems, fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}

	if strings.TrimSpace(in.Mode) == "" {
		problems = append(problems, "mode is required")
	} else if mode, ok := domain.ParseMode(in.Mode); ok {
		e.Mode = mode
	} else {
		problems = append(problems, "mode must be one of online, offline, hybrid")
	}

	if agenda, err := parseAgenda(in.Agenda); err != nil {
		problems = append(problems, "agenda "+err.Error())
	} else if e.Agenda = s.cleanAll(agenda); len(e.Agenda) == 0 {
		problems = append(problems, "agenda must have at least one item")
	}
	if tags, err := parseTags(in.Tags); err != nil {
		problems = append(problems, "tags "+err.Error())
	} else if e.Tags = dedupeFold(s.cleanAll(tags)); len(e.Tags) == 0 {
		problems = append(problems, "at least one tag is required")
	}

	if in.Image == nil {
		problems = append(problems, "image is required")
	}

	if err := domain.NewValidationError(problems); err != nil {
		return nil, err
	}
	return e, nil
}

// clean strips markup and surrounding whitespace. The policy escapes the
// text it keeps, so entities are decoded again for storage.
func (s *eventService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *eventService) cleanAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if v := s.clean(it); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseAgenda accepts a JSON array of strings or newline-separated text.
func parseAgenda(raw string) ([]string, error) {
	if looksLikeJSONList(raw) {
		return parseJSONList(raw)
	}
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n"), nil
}

// parseTags accepts a JSON array of strings or comma-separated text.
func parseTags(raw string) ([]string, error) {
	if looksLikeJSONList(raw) {
		return parseJSONList(raw)
	}
	return strings.Split(raw, ","), nil
}

func looksLikeJSONList(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "[")
}

// parseJSONList decodes raw as a JSON array of strings. Anything else that
// starts with "[" is rejected rather than stored as literal text.
func parseJSONList(raw string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &items); err != nil {
		return nil, errors.New("must be a JSON array of strings")
	}
	return items, nil
}

func dedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		k := strings.ToLower(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
