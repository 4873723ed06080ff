package datatable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() []Column {
	return []Column{
		{Header: "Name", Sortable: true},
		{Header: "Release Date", Sortable: true},
		{Header: "Track Count", Sortable: true, Numeric: true},
		{Header: "", Sortable: false},
	}
}

func albumRow(id, name string, released time.Time, tracks int) Row {
	return Row{
		ID: id,
		Cells: []Cell{
			{Value: name},
			{Value: released, Content: released.Format("Jan 2, 2006")},
			{Value: tracks},
			{Value: "https://example.com/" + id, Content: "Listen ↗"},
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRows() []Row {
	return []Row{
		albumRow("1", "Thriller", date(1982, 11, 30), 9),
		albumRow("2", "Bad", date(1987, 8, 31), 11),
		albumRow("3", "Off the Wall", date(1979, 8, 10), 10),
		albumRow("4", "Dangerous", date(1991, 11, 26), 14),
		albumRow("5", "Invincible", date(2001, 10, 30), 16),
	}
}

func newTestTable(pageSize int) *Table {
	t := New(Config{
		Columns:   testColumns(),
		Caption:   "Michael Jackson's Albums",
		Sortable:  true,
		Paginated: true,
		PageSize:  pageSize,
	})
	t.SetRows(testRows())
	return t
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestTable_DefaultsToSourceOrder(t *testing.T) {
	table := newTestTable(10)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(table.Visible()))

	index, dir := table.Sort()
	assert.Equal(t, -1, index)
	assert.Equal(t, SortNone, dir)
}

func TestTable_New_Defaults(t *testing.T) {
	table := New(Config{})
	assert.Equal(t, DefaultPageSize, table.PageSize())
	assert.Equal(t, 1, table.PageCount(), "an empty table has one page")
	assert.Empty(t, table.Visible())
}

func TestTable_ToggleSortCycle(t *testing.T) {
	table := newTestTable(10)

	require.True(t, table.ToggleSort(0))
	assert.Equal(t, []string{"2", "4", "5", "3", "1"}, ids(table.Visible()), "ascending by name")

	require.True(t, table.ToggleSort(0))
	assert.Equal(t, []string{"1", "3", "5", "4", "2"}, ids(table.Visible()), "descending by name")

	require.True(t, table.ToggleSort(0))
	_, dir := table.Sort()
	assert.Equal(t, SortNone, dir)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(table.Visible()), "source order")

	require.True(t, table.ToggleSort(0))
	_, dir = table.Sort()
	assert.Equal(t, SortAsc, dir, "cycle starts over")
}

func TestTable_ToggleSortNewColumnStartsAscending(t *testing.T) {
	table := newTestTable(10)
	table.ToggleSort(0)
	table.ToggleSort(0) // DESC on name

	require.True(t, table.ToggleSort(1))
	index, dir := table.Sort()
	assert.Equal(t, 1, index)
	assert.Equal(t, SortAsc, dir)
	assert.Equal(t, []string{"3", "1", "2", "4", "5"}, ids(table.Visible()), "chronological")
}

func TestTable_SortNumeric(t *testing.T) {
	table := newTestTable(10)
	table.ToggleSort(2)
	assert.Equal(t, []string{"1", "3", "2", "4", "5"}, ids(table.Visible()), "9 < 10 < 11, not lexicographic")
}

func TestTable_ToggleSortRejected(t *testing.T) {
	table := newTestTable(10)

	assert.False(t, table.ToggleSort(3), "link column is not sortable")
	assert.False(t, table.ToggleSort(-1))
	assert.False(t, table.ToggleSort(9))

	index, _ := table.Sort()
	assert.Equal(t, -1, index)

	unsortable := New(Config{Columns: testColumns(), Sortable: false})
	assert.False(t, unsortable.ToggleSort(0))
	assert.ErrorIs(t, unsortable.SortBy(0, SortAsc), ErrNotSortable)
	assert.ErrorIs(t, table.SortBy(7, SortAsc), ErrInvalidColumn)
}

func TestTable_SortIsStableAndDoesNotMutateRows(t *testing.T) {
	table := New(Config{Columns: testColumns(), Sortable: true, PageSize: 10})
	table.SetRows([]Row{
		{ID: "x", Cells: []Cell{{Value: "a"}}},
		{ID: "y", Cells: []Cell{{Value: "b"}}},
		{ID: "z", Cells: []Cell{{Value: "a"}}},
	})

	require.NoError(t, table.SortBy(0, SortAsc))
	assert.Equal(t, []string{"x", "z", "y"}, ids(table.Visible()))

	require.NoError(t, table.SortBy(0, SortDesc))
	assert.Equal(t, []string{"y", "x", "z"}, ids(table.Visible()))

	assert.Equal(t, []string{"x", "y", "z"}, ids(table.Rows()), "stored rows keep source order")
}

func TestTable_Filter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{name: "empty matches all", filter: "", want: []string{"1", "2", "3", "4", "5"}},
		{name: "substring", filter: "the", want: []string{"3"}},
		{name: "case insensitive", filter: "BAD", want: []string{"2"}},
		{name: "no match", filter: "xyz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := newTestTable(10)
			table.SetFilter(tt.filter)
			assert.Equal(t, tt.want, ids(table.Visible()))
		})
	}
}

func TestTable_FilterResetsPage(t *testing.T) {
	table := newTestTable(2)
	table.SetPage(3)
	require.Equal(t, 3, table.Page())

	table.SetFilter("i")
	assert.Equal(t, 1, table.Page())
}

func TestTable_SameFilterKeepsPage(t *testing.T) {
	table := newTestTable(2)
	table.SetFilter("a")
	require.Equal(t, 2, table.PageCount())
	table.SetPage(2)

	table.SetFilter("a")
	assert.Equal(t, 2, table.Page())

	table.SetFuzzy(false)
	assert.Equal(t, 2, table.Page())

	table.SetFilter("al")
	assert.Equal(t, 1, table.Page())
}

func TestTable_FilterThenSort(t *testing.T) {
	table := newTestTable(10)
	table.SetFilter("i")
	table.ToggleSort(2)
	table.ToggleSort(2)
	// Thriller(9), Invincible(16) contain "i"; descending by tracks.
	assert.Equal(t, []string{"5", "1"}, ids(table.Visible()))
}

func TestTable_FuzzyFilter(t *testing.T) {
	table := newTestTable(10)
	table.SetFilter("tw")
	assert.Empty(t, table.Visible(), "substring mode")

	table.SetFuzzy(true)
	assert.Equal(t, []string{"3"}, ids(table.Visible()))

	table.SetFilter("dgrs")
	assert.Equal(t, []string{"4"}, ids(table.Visible()))
}

func TestTable_Pagination(t *testing.T) {
	table := newTestTable(2)
	assert.Equal(t, 3, table.PageCount())
	assert.Equal(t, []string{"1", "2"}, ids(table.Visible()))

	table.NextPage()
	assert.Equal(t, []string{"3", "4"}, ids(table.Visible()))

	table.NextPage()
	table.NextPage()
	assert.Equal(t, 3, table.Page(), "next on the last page stays")
	assert.Equal(t, []string{"5"}, ids(table.Visible()))

	table.SetPage(0)
	assert.Equal(t, 1, table.Page())
	table.PrevPage()
	assert.Equal(t, 1, table.Page(), "prev on the first page stays")

	table.SetPage(99)
	assert.Equal(t, 3, table.Page())
}

func TestTable_SetPageSize(t *testing.T) {
	table := newTestTable(2)
	table.SetPage(2)

	assert.ErrorIs(t, table.SetPageSize(0), ErrInvalidPageSize)
	assert.ErrorIs(t, table.SetPageSize(-3), ErrInvalidPageSize)
	assert.Equal(t, 2, table.PageSize(), "rejected size leaves state unchanged")
	assert.Equal(t, 2, table.Page())

	require.NoError(t, table.SetPageSize(4))
	assert.Equal(t, 1, table.Page())
	assert.Equal(t, 2, table.PageCount())
}

func TestTable_SetPaginated(t *testing.T) {
	table := newTestTable(2)
	table.SetPaginated(false)
	assert.Len(t, table.Visible(), 5)
	assert.Equal(t, 1, table.Meta().TotalPages)

	table.SetPaginated(true)
	assert.Len(t, table.Visible(), 2)
}

func TestTable_SetRowsClampsPage(t *testing.T) {
	table := newTestTable(2)
	table.ToggleSort(0)
	table.SetPage(3)

	table.SetRows(testRows()[:3])
	assert.Equal(t, 2, table.Page())

	index, dir := table.Sort()
	assert.Equal(t, 0, index, "sort state survives new rows")
	assert.Equal(t, SortAsc, dir)
}

func TestTable_Meta(t *testing.T) {
	table := newTestTable(2)
	table.NextPage()

	meta := table.Meta()
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 5, meta.TotalItems)
	assert.True(t, meta.HasPrevious)
	assert.True(t, meta.HasNext)
}

func TestTable_ColumnIndex(t *testing.T) {
	table := newTestTable(2)
	assert.Equal(t, 2, table.ColumnIndex("track count"))
	assert.Equal(t, -1, table.ColumnIndex("price"))
}
