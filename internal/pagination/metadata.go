package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Sort orders accepted by ParseSort.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
)

// Meta contains metadata about a paginated result.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewMeta creates pagination metadata for page (1-based) of total items.
// A non-positive pageSize means a single page holding everything.
func NewMeta(page, pageSize, total int) Meta {
	if pageSize <= 0 {
		pageSize = max(total, 1)
	}
	pages := TotalPages(total, pageSize)
	page = Clamp(page, pages)

	return Meta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  pages,
		TotalItems:  total,
		HasPrevious: page > 1,
		HasNext:     page < pages,
	}
}

// String renders "page 2/5 · 48 items".
func (m Meta) String() string {
	return fmt.Sprintf("page %d/%d · %d items", m.CurrentPage, m.TotalPages, m.TotalItems)
}

// TotalPages returns ceil(total/pageSize), never less than 1 so that an
// empty table still has a page to show.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// Clamp keeps page inside [1, pages].
func Clamp(page, pages int) int {
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// Bounds returns the half-open [start, end) slice bounds of page within
// total items.
func Bounds(page, pageSize, total int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	if pageSize <= 0 {
		return 0, total
	}
	page = Clamp(page, TotalPages(total, pageSize))
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	return start, end
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "released:desc", "tracks:asc".
//
//nolint:nonamedreturns // Named returns document the pair.
func ParseSort(sortStr string) (field, order string, err error) {
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
