package domain

// PaginationParams holds offset-based pagination parameters for list views.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceiling(total / PageSize), and at least 1.
func (p PaginationParams) TotalPages(total int) int {
	if p.PageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Clamp keeps Page within [1, TotalPages(total)].
func (p PaginationParams) Clamp(total int) PaginationParams {
	last := p.TotalPages(total)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > last {
		p.Page = last
	}
	return p
}

// PageOf returns the slice of events visible on page p.
func PageOf(events []*Event, p PaginationParams) []*Event {
	p = p.Clamp(len(events))
	start := p.Offset()
	if start >= len(events) {
		return []*Event{}
	}
	end := start + p.PageSize
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}
