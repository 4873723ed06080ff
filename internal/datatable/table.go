package datatable

import (
	"errors"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"

	"github.com/tryp/album-table/internal/pagination"
)

// DefaultPageSize is used when Config.PageSize is not positive.
const DefaultPageSize = 10

var (
	ErrInvalidPageSize = errors.New("page size must be at least 1")
	ErrInvalidColumn   = errors.New("column index out of range")
	ErrNotSortable     = errors.New("column is not sortable")
)

// Config configures a Table.
type Config struct {
	Columns []Column
	Caption string

	Sortable  bool
	Paginated bool
	PageSize  int

	// FilterColumn is the column the filter text matches against.
	FilterColumn int
	// Fuzzy switches the filter from substring to subsequence matching.
	Fuzzy bool

	// Locale selects the string collation used when sorting.
	Locale language.Tag
}

// Table holds rows and the sort, filter and pagination state applied to
// them. Visible derives the shown rows: filter, then sort, then slice.
//
// Table is not safe for concurrent use.
type Table struct {
	cfg  Config
	rows []Row

	sortIndex int
	direction SortDirection

	filter string

	page      int
	pageSize  int
	paginated bool

	cmp *Comparator

	// filtered and sorted rows, rebuilt when dirty
	view  []Row
	dirty bool
}

// New creates an empty table.
func New(cfg Config) *Table {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Locale == language.Und {
		cfg.Locale = language.AmericanEnglish
	}

	return &Table{
		cfg:       cfg,
		sortIndex: -1,
		direction: SortNone,
		page:      1,
		pageSize:  cfg.PageSize,
		paginated: cfg.Paginated,
		cmp:       NewComparator(cfg.Locale),
		dirty:     true,
	}
}

// Columns returns the column definitions.
func (t *Table) Columns() []Column { return t.cfg.Columns }

// Caption returns the table caption.
func (t *Table) Caption() string { return t.cfg.Caption }

// SetCaption replaces the table caption.
func (t *Table) SetCaption(caption string) { t.cfg.Caption = caption }

// Sortable reports whether the table accepts sort toggles at all.
func (t *Table) Sortable() bool { return t.cfg.Sortable }

// Rows returns the stored rows in source order.
func (t *Table) Rows() []Row { return t.rows }

// Len returns the number of stored rows.
func (t *Table) Len() int { return len(t.rows) }

// SetRows replaces the rows. Sort and filter state are kept and the page
// is clamped into range.
func (t *Table) SetRows(rows []Row) {
	t.rows = rows
	t.dirty = true
	t.page = pagination.Clamp(t.page, t.PageCount())
}

// Sort returns the active sort column (-1 for none) and direction.
func (t *Table) Sort() (int, SortDirection) {
	return t.sortIndex, t.direction
}

func (t *Table) canSort(index int) error {
	if index < 0 || index >= len(t.cfg.Columns) {
		return ErrInvalidColumn
	}
	if !t.cfg.Sortable || !t.cfg.Columns[index].Sortable {
		return ErrNotSortable
	}
	return nil
}

// ToggleSort advances the sort for column index. A new column starts
// ascending; the active column cycles ASC -> DESC -> NONE. It reports
// false, leaving the state unchanged, when the column cannot be sorted.
func (t *Table) ToggleSort(index int) bool {
	if t.canSort(index) != nil {
		return false
	}
	if index != t.sortIndex {
		t.sortIndex = index
		t.direction = SortAsc
	} else {
		t.direction = t.direction.Next()
	}
	t.dirty = true
	return true
}

// SortBy sets the sort state directly.
func (t *Table) SortBy(index int, direction SortDirection) error {
	if err := t.canSort(index); err != nil {
		return err
	}
	t.sortIndex = index
	t.direction = direction
	t.dirty = true
	return nil
}

// ColumnIndex returns the index of the column whose header matches name
// case-insensitively, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.cfg.Columns {
		if strings.EqualFold(c.Header, name) {
			return i
		}
	}
	return -1
}

// Filter returns the current filter text.
func (t *Table) Filter() string { return t.filter }

// SetFilter sets the filter text. A changed filter returns to the first
// page; setting the same text again keeps the current page.
func (t *Table) SetFilter(text string) {
	if text == t.filter {
		return
	}
	t.filter = text
	t.dirty = true
	t.page = 1
}

// Fuzzy reports whether fuzzy filtering is on.
func (t *Table) Fuzzy() bool { return t.cfg.Fuzzy }

// SetFuzzy switches between substring and fuzzy filtering.
func (t *Table) SetFuzzy(on bool) {
	if on == t.cfg.Fuzzy {
		return
	}
	t.cfg.Fuzzy = on
	t.dirty = true
	t.page = 1
}

// Page returns the current page, starting at 1.
func (t *Table) Page() int {
	return pagination.Clamp(t.page, t.PageCount())
}

// SetPage moves to page n, clamped to [1, PageCount()].
func (t *Table) SetPage(n int) {
	t.page = pagination.Clamp(n, t.PageCount())
}

// NextPage moves forward one page if there is one.
func (t *Table) NextPage() { t.SetPage(t.Page() + 1) }

// PrevPage moves back one page if there is one.
func (t *Table) PrevPage() { t.SetPage(t.Page() - 1) }

// PageSize returns the rows per page.
func (t *Table) PageSize() int { return t.pageSize }

// SetPageSize changes the rows per page and returns to the first page.
// Sizes below 1 are rejected and leave the state unchanged.
func (t *Table) SetPageSize(n int) error {
	if n < 1 {
		return ErrInvalidPageSize
	}
	t.pageSize = n
	t.page = 1
	return nil
}

// Paginated reports whether Visible slices to a page.
func (t *Table) Paginated() bool { return t.paginated }

// SetPaginated turns pagination on or off.
func (t *Table) SetPaginated(on bool) {
	t.paginated = on
	t.page = pagination.Clamp(t.page, t.PageCount())
}

// PageCount returns the number of pages of filtered rows, at least 1.
func (t *Table) PageCount() int {
	return pagination.TotalPages(len(t.Filtered()), t.pageSize)
}

// Filtered returns every row passing the filter, sorted. The stored rows
// are never reordered.
func (t *Table) Filtered() []Row {
	if t.dirty {
		t.view = t.sorted(t.filtered())
		t.dirty = false
	}
	return t.view
}

// Visible returns the rows of the current page, or every filtered row
// when pagination is off.
func (t *Table) Visible() []Row {
	rows := t.Filtered()
	if !t.paginated {
		return rows
	}
	start, end := pagination.Bounds(t.Page(), t.pageSize, len(rows))
	return rows[start:end]
}

// Meta describes the visible page.
func (t *Table) Meta() pagination.Meta {
	total := len(t.Filtered())
	if !t.paginated {
		return pagination.NewMeta(1, 0, total)
	}
	return pagination.NewMeta(t.Page(), t.pageSize, total)
}

func (t *Table) filtered() []Row {
	rows := make([]Row, 0, len(t.rows))
	if t.filter == "" {
		return append(rows, t.rows...)
	}

	if t.cfg.Fuzzy {
		targets := make([]string, len(t.rows))
		for i, r := range t.rows {
			targets[i] = strings.ToLower(r.Cell(t.cfg.FilterColumn).Text())
		}
		keep := make(map[int]bool)
		for _, m := range fuzzy.Find(strings.ToLower(t.filter), targets) {
			keep[m.Index] = true
		}
		for i, r := range t.rows {
			if keep[i] {
				rows = append(rows, r)
			}
		}
		return rows
	}

	needle := strings.ToLower(t.filter)
	for _, r := range t.rows {
		if strings.Contains(strings.ToLower(r.Cell(t.cfg.FilterColumn).Text()), needle) {
			rows = append(rows, r)
		}
	}
	return rows
}

func (t *Table) sorted(rows []Row) []Row {
	if t.sortIndex < 0 || t.direction == SortNone {
		return rows
	}
	index, modifier := t.sortIndex, t.direction.Modifier()
	slices.SortStableFunc(rows, func(a, b Row) int {
		return t.cmp.Compare(a.Value(index), b.Value(index)) * modifier
	})
	return rows
}
