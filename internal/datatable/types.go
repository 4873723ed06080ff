package datatable

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// Cell is one table cell. Value drives sorting and filtering, Content is
// what gets drawn.
type Cell struct {
	Value   any
	Content string
}

// String returns the display content, falling back to the value.
func (c Cell) String() string {
	if c.Content != "" {
		return c.Content
	}
	if c.Value == nil {
		return ""
	}
	return fmt.Sprint(c.Value)
}

// Text returns the plain text the filter matches against.
func (c Cell) Text() string {
	if s, ok := c.Value.(string); ok {
		return s
	}
	if c.Content != "" {
		return ansi.Strip(c.Content)
	}
	if c.Value == nil {
		return ""
	}
	return fmt.Sprint(c.Value)
}

// Row is one table row. ID maps the row back to its source record.
type Row struct {
	ID    string
	Cells []Cell
}

// Cell returns cell i, or an empty cell for ragged rows.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[i]
}

// Value returns the value of cell i.
func (r Row) Value(i int) any {
	return r.Cell(i).Value
}

// Column describes a table column.
type Column struct {
	Header   string
	Sortable bool
	Numeric  bool // right aligned
	Width    int  // fixed width in cells; 0 sizes to content
}

// SortDirection is the direction of the active sort.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// Next cycles ASC -> DESC -> NONE -> ASC.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortAsc:
		return SortDesc
	case SortDesc:
		return SortNone
	default:
		return SortAsc
	}
}

// Modifier is the factor applied to comparator results.
func (d SortDirection) Modifier() int {
	switch d {
	case SortAsc:
		return 1
	case SortDesc:
		return -1
	default:
		return 0
	}
}

func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "ASC"
	case SortDesc:
		return "DESC"
	default:
		return "NONE"
	}
}
