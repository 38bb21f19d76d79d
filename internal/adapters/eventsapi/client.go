package eventsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"devevent/internal/domain"
)

type client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns an EventCatalog reading from the events API at baseURL.
func NewClient(baseURL string, httpClient *http.Client) domain.EventCatalog {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{baseURL: strings.TrimSuffix(baseURL, "/"), http: httpClient}
}

type listResponse struct {
	Events []*domain.Event `json:"events"`
}

type eventResponse struct {
	Event *domain.Event `json:"event"`
}

func (c *client) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	var out listResponse
	if err := c.get(ctx, "/api/events", &out); err != nil {
		return nil, err
	}
	if out.Events == nil {
		out.Events = []*domain.Event{}
	}
	return out.Events, nil
}

func (c *client) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	var out eventResponse
	if err := c.get(ctx, "/api/events/"+url.PathEscape(slug), &out); err != nil {
		return nil, err
	}
	if out.Event == nil {
		return nil, domain.ErrNotFound
	}
	return out.Event, nil
}

func (c *client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("events api returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode events api response: %w", err)
	}
	return nil
}
