package datatable

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tryp/album-table/internal/pagination"
)

const (
	markerWidth = 2
	columnGap   = 2
	arrowWidth  = 3 // " ▲▼"
	minColWidth = 4

	headerLine = 0
	rowsTop    = 2
)

// SelectedMsg is sent when a row is chosen with enter.
type SelectedMsg struct {
	Row Row
}

// Model is the Bubble Tea component drawing a Table.
//
// The model holds a pointer to its Table, so copies of the model share
// the same table state. Callers that change the table directly should
// call Refresh afterwards.
type Model struct {
	KeyMap KeyMap
	Styles Styles

	table *Table

	cursor int // row index within Visible
	offset int // first visible row when the height is limited
	column int // header cursor for the sort key

	focus   bool
	width   int
	height  int
	originX int
	originY int
}

// NewModel creates a focused model for t.
func NewModel(t *Table) Model {
	return Model{
		KeyMap: DefaultKeyMap(),
		Styles: DefaultStyles(),
		table:  t,
		focus:  true,
	}
}

// Table returns the underlying table.
func (m Model) Table() *Table { return m.table }

// Focus focuses the table so it receives key presses.
func (m *Model) Focus() { m.focus = true }

// Blur removes focus.
func (m *Model) Blur() { m.focus = false }

// Focused reports whether the table has focus.
func (m Model) Focused() bool { return m.focus }

// SetWidth limits the rendered width. Zero means unlimited.
func (m *Model) SetWidth(w int) { m.width = w }

// SetHeight limits the rendered height. Zero means unlimited.
func (m *Model) SetHeight(h int) {
	m.height = h
	m.Refresh()
}

// SetOrigin sets the screen position of the table's top-left corner, used
// to translate mouse events.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Cursor returns the cursor row within the visible rows.
func (m Model) Cursor() int { return m.cursor }

// Column returns the header cursor.
func (m Model) Column() int { return m.column }

// Selected returns the row under the cursor.
func (m Model) Selected() (Row, bool) {
	rows := m.table.Visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return Row{}, false
	}
	return rows[m.cursor], true
}

// Refresh clamps the cursor after the table changed.
func (m *Model) Refresh() {
	n := len(m.table.Visible())
	m.cursor = max(0, min(m.cursor, n-1))
	m.column = max(0, min(m.column, len(m.table.Columns())-1))

	limit := m.rowLimit()
	if limit <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+limit {
		m.offset = m.cursor - limit + 1
	}
	m.offset = max(0, min(m.offset, max(0, n-limit)))
}

func (m *Model) resetCursor() {
	m.cursor, m.offset = 0, 0
	m.Refresh()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.Refresh()
}

func (m Model) strip() pagination.Strip {
	t := m.table
	s := pagination.Strip{
		Max:     t.PageCount(),
		Current: t.Page(),
		OnPrev:  t.PrevPage,
		OnNext:  t.NextPage,
		OnClick: t.SetPage,
		Styles:  m.Styles.Strip,
	}
	if m.width > 0 {
		s.Window = max(1, (m.width-markerWidth-12)/5)
	}
	return s
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and mouse input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			m.moveCursor(1)
		case tea.MouseButtonLeft:
			m.click(msg.X-m.originX, msg.Y-m.originY)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focus {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	t := m.table
	switch {
	case key.Matches(msg, m.KeyMap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.KeyMap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.KeyMap.PrevPage):
		s := m.strip()
		if s.Press(s.Prev()) {
			m.resetCursor()
		}
	case key.Matches(msg, m.KeyMap.NextPage):
		s := m.strip()
		if s.Press(s.Next()) {
			m.resetCursor()
		}
	case key.Matches(msg, m.KeyMap.FirstPage):
		t.SetPage(1)
		m.resetCursor()
	case key.Matches(msg, m.KeyMap.LastPage):
		t.SetPage(t.PageCount())
		m.resetCursor()
	case key.Matches(msg, m.KeyMap.PrevColumn):
		m.column = max(0, m.column-1)
	case key.Matches(msg, m.KeyMap.NextColumn):
		m.column = min(len(t.Columns())-1, m.column+1)
	case key.Matches(msg, m.KeyMap.Sort):
		if t.ToggleSort(m.column) {
			m.Refresh()
		}
	case key.Matches(msg, m.KeyMap.SortColumn):
		index := int(msg.String()[0] - '1')
		if t.ToggleSort(index) {
			m.column = index
			m.Refresh()
		}
	case key.Matches(msg, m.KeyMap.Select):
		if row, ok := m.Selected(); ok {
			return m, func() tea.Msg { return SelectedMsg{Row: row} }
		}
	}
	return m, nil
}

func (m *Model) click(x, y int) {
	lay := m.layout()

	switch {
	case y == headerLine:
		for i, start := range lay.starts {
			if x >= start && x < start+lay.widths[i] {
				if m.table.ToggleSort(i) {
					m.column = i
					m.Refresh()
				}
				return
			}
		}

	case y >= rowsTop && y < rowsTop+lay.rowLines:
		index := m.offset + y - rowsTop
		if index < len(m.table.Visible()) {
			m.cursor = index
			m.Refresh()
		}

	case y == lay.stripLine:
		s := m.strip()
		if b, ok := s.HitTest(x - markerWidth); ok && s.Press(b) {
			m.resetCursor()
		}
	}
}

type layout struct {
	widths    []int
	starts    []int
	total     int
	rowLines  int
	stripLine int
}

func (m Model) sortable(i int) bool {
	cols := m.table.Columns()
	return m.table.Sortable() && i >= 0 && i < len(cols) && cols[i].Sortable
}

func (m Model) chromeLines() int {
	n := rowsTop
	if m.table.Caption() != "" {
		n++
	}
	if m.table.Paginated() {
		n++
	}
	return n
}

func (m Model) rowLimit() int {
	if m.height <= 0 {
		return 0
	}
	return max(1, m.height-m.chromeLines())
}

func (m Model) layout() layout {
	cols := m.table.Columns()
	widths := make([]int, len(cols))
	auto := make([]bool, len(cols))
	for i, c := range cols {
		if c.Width > 0 {
			widths[i] = c.Width
			continue
		}
		auto[i] = true
		w := ansi.StringWidth(c.Header)
		if m.sortable(i) {
			w += arrowWidth
		}
		for _, r := range m.table.Filtered() {
			w = max(w, ansi.StringWidth(r.Cell(i).String()))
		}
		widths[i] = w
	}

	total := func() int {
		sum := markerWidth + max(0, len(widths)-1)*columnGap
		for _, w := range widths {
			sum += w
		}
		return sum
	}
	if m.width > 0 {
		for total() > m.width {
			widest := -1
			for i, w := range widths {
				if auto[i] && w > minColWidth && (widest < 0 || w > widths[widest]) {
					widest = i
				}
			}
			if widest < 0 {
				break
			}
			widths[widest]--
		}
	}

	starts := make([]int, len(widths))
	x := markerWidth
	for i, w := range widths {
		starts[i] = x
		x += w + columnGap
	}

	rows := len(m.table.Visible())
	if limit := m.rowLimit(); limit > 0 {
		rows = min(rows, limit)
	}
	rows = max(rows, 1) // "No Data" line

	strip := -1
	if m.table.Paginated() {
		strip = rowsTop + rows
		if m.table.Caption() != "" {
			strip++
		}
	}

	return layout{
		widths:    widths,
		starts:    starts,
		total:     total(),
		rowLines:  rows,
		stripLine: strip,
	}
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int, right bool) string {
	s = ansi.Truncate(s, w, "…")
	pad := strings.Repeat(" ", max(0, w-ansi.StringWidth(s)))
	if right {
		return pad + s
	}
	return s + pad
}

func (m Model) headerView(lay layout) string {
	sortIndex, direction := m.table.Sort()
	cells := make([]string, len(lay.widths))
	for i, c := range m.table.Columns() {
		style := m.Styles.Header
		if m.focus && i == m.column && m.sortable(i) {
			style = m.Styles.HeaderCursor
		}
		label := style.Render(c.Header)
		if m.sortable(i) {
			up, down := m.Styles.ArrowInactive, m.Styles.ArrowInactive
			if i == sortIndex {
				switch direction {
				case SortAsc:
					up = m.Styles.ArrowActive
				case SortDesc:
					down = m.Styles.ArrowActive
				}
			}
			label += " " + up.Render("▲") + down.Render("▼")
		}
		cells[i] = fit(label, lay.widths[i], c.Numeric)
	}
	return strings.Repeat(" ", markerWidth) + strings.Join(cells, strings.Repeat(" ", columnGap))
}

func (m Model) rowView(lay layout, row Row, selected bool) string {
	cols := m.table.Columns()
	cells := make([]string, len(lay.widths))
	for i := range lay.widths {
		cells[i] = fit(row.Cell(i).String(), lay.widths[i], cols[i].Numeric)
	}
	marker := strings.Repeat(" ", markerWidth)
	if selected {
		marker = m.Styles.Marker.Render("›") + " "
	}
	return marker + strings.Join(cells, strings.Repeat(" ", columnGap))
}

// View renders the table.
func (m Model) View() string {
	lay := m.layout()
	lines := []string{
		m.headerView(lay),
		m.Styles.Rule.Render(strings.Repeat("─", lay.total)),
	}

	rows := m.table.Visible()
	switch {
	case m.table.Len() == 0:
		lines = append(lines, m.emptyView(lay, "No Data"))
	case len(rows) == 0:
		lines = append(lines, m.emptyView(lay, "No matches"))
	default:
		end := len(rows)
		if limit := m.rowLimit(); limit > 0 {
			end = min(end, m.offset+limit)
		}
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.rowView(lay, rows[i], m.focus && i == m.cursor))
		}
	}

	if caption := m.table.Caption(); caption != "" {
		lines = append(lines, m.Styles.Caption.Render(lipgloss.PlaceHorizontal(lay.total, lipgloss.Center, caption)))
	}
	if m.table.Paginated() {
		lines = append(lines, strings.Repeat(" ", markerWidth)+m.strip().View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) emptyView(lay layout, text string) string {
	return m.Styles.Empty.Render(lipgloss.PlaceHorizontal(lay.total, lipgloss.Center, text))
}
