package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		params     PaginationParams
		total      int
		wantOffset int
		wantPages  int
		wantPage   int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 10}, 25, 0, 3, 1},
		{"middle page", PaginationParams{Page: 2, PageSize: 10}, 25, 10, 3, 2},
		{"below range", PaginationParams{Page: 0, PageSize: 10}, 25, 0, 3, 1},
		{"past the end", PaginationParams{Page: 7, PageSize: 10}, 25, 60, 3, 3},
		{"exact multiple", PaginationParams{Page: 2, PageSize: 10}, 20, 10, 2, 2},
		{"no rows", PaginationParams{Page: 3, PageSize: 10}, 0, 20, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOffset, tt.params.Offset())
			assert.Equal(t, tt.wantPages, tt.params.TotalPages(tt.total))
			assert.Equal(t, tt.wantPage, tt.params.Clamp(tt.total).Page)
		})
	}
}

func TestPageOf(t *testing.T) {
	events := make([]*Event, 25)
	for i := range events {
		events[i] = &Event{Slug: fmt.Sprintf("e%d", i+1)}
	}

	page := PageOf(events, PaginationParams{Page: 3, PageSize: 10})
	assert.Len(t, page, 5)
	assert.Equal(t, "e21", page[0].Slug)

	page = PageOf(events, PaginationParams{Page: 9, PageSize: 10})
	assert.Len(t, page, 5)

	page = PageOf(events, PaginationParams{Page: -1, PageSize: 10})
	assert.Equal(t, "e1", page[0].Slug)

	assert.Empty(t, PageOf(nil, PaginationParams{Page: 1, PageSize: 10}))
}
