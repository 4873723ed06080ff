package present

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tryp/album-table/internal/datatable"
	"github.com/tryp/album-table/internal/model"
)

// Column indices of the album table.
const (
	ColName = iota
	ColGenre
	ColReleased
	ColTracks
	ColLink
)

// NoDate is shown for albums without a release date.
const NoDate = "—"

// Styles
var (
	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#319795")).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E2E8F0")).
			Background(lipgloss.Color("#4A5568")).
			Padding(0, 1)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#63B3ED")).
			Underline(true)
)

// Headers returns the album table headers. The last column holds the
// store link and has no header.
func Headers() []string {
	return []string{"Name", "Genre", "Release Date", "Track Count", ""}
}

// Columns returns the album table column definitions.
func Columns() []datatable.Column {
	headers := Headers()
	return []datatable.Column{
		{Header: headers[ColName], Sortable: true},
		{Header: headers[ColGenre], Sortable: true},
		{Header: headers[ColReleased], Sortable: true},
		{Header: headers[ColTracks], Sortable: true, Numeric: true},
		{Header: headers[ColLink]},
	}
}

// Caption returns the table caption for a search term, e.g.
// "Michael Jackson's Albums".
func Caption(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return "Albums"
	}
	return cases.Title(language.English).String(term) + "'s Albums"
}

// TableConfig returns the album table configuration. Pagination, page
// size and filter mode are left for the caller.
func TableConfig(term string, locale language.Tag) datatable.Config {
	return datatable.Config{
		Columns:      Columns(),
		Caption:      Caption(term),
		Sortable:     true,
		Paginated:    true,
		PageSize:     datatable.DefaultPageSize,
		FilterColumn: ColName,
		Locale:       locale,
	}
}

// SortColumn resolves a sort field name to a column index. It accepts
// the short names name, genre, released (or date) and tracks as well as
// the column headers themselves.
func SortColumn(field string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name", "album":
		return ColName, true
	case "genre":
		return ColGenre, true
	case "released", "date", "release", "release date":
		return ColReleased, true
	case "tracks", "track count", "count":
		return ColTracks, true
	}
	return -1, false
}

// RowID returns the table row ID of the album at position i of a result
// list. Albums without a collection ID are keyed by position.
func RowID(a *model.Album, i int) string {
	if a.ID == 0 {
		return "#" + strconv.Itoa(i)
	}
	return strconv.FormatInt(a.ID, 10)
}

// AlbumRows maps albums to table rows.
func AlbumRows(albums []*model.Album, locale language.Tag) []datatable.Row {
	rows := make([]datatable.Row, 0, len(albums))
	for i, a := range albums {
		row := AlbumRow(a, locale)
		row.ID = RowID(a, i)
		rows = append(rows, row)
	}
	return rows
}

// AlbumRow maps one album to a table row.
func AlbumRow(a *model.Album, locale language.Tag) datatable.Row {
	return datatable.Row{
		ID: RowID(a, 0),
		Cells: []datatable.Cell{
			ColName:     {Value: a.Name},
			ColGenre:    {Value: a.Genre, Content: Tag(a.Genre)},
			ColReleased: {Value: a.ReleaseDate, Content: FormatDate(a.ReleaseDate, locale)},
			ColTracks:   {Value: a.TrackCount, Content: Badge(strconv.Itoa(a.TrackCount))},
			ColLink:     {Value: a.ViewURL, Content: Link(a.ViewURL, "Listen ↗")},
		},
	}
}

// Index maps the row IDs given by AlbumRows back to albums.
func Index(albums []*model.Album) map[string]*model.Album {
	index := make(map[string]*model.Album, len(albums))
	for i, a := range albums {
		index[RowID(a, i)] = a
	}
	return index
}

// Tag renders a genre as a solid pill.
func Tag(genre string) string {
	if genre == "" {
		return ""
	}
	return tagStyle.Render(genre)
}

// Badge renders a count as a subtle pill.
func Badge(text string) string {
	return badgeStyle.Render(text)
}

// Link renders text as an OSC 8 hyperlink to url. Terminals without
// hyperlink support show the text only.
func Link(url, text string) string {
	if url == "" {
		return ""
	}
	return ansi.SetHyperlink(url) + linkStyle.Render(text) + ansi.ResetHyperlink()
}

// FormatDate formats t with a numeric day, short month and numeric year,
// ordered for locale: "Oct 30, 2001" in the US, "30 Oct 2001" elsewhere.
func FormatDate(t time.Time, locale language.Tag) string {
	if t.IsZero() {
		return NoDate
	}
	if monthFirst(locale) {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("2 Jan 2006")
}

func monthFirst(locale language.Tag) bool {
	region, _ := locale.Region()
	switch region.String() {
	case "US", "PH", "FM", "MH", "PW":
		return true
	}
	return false
}

// Released returns how long ago t was, e.g. "23 years ago".
func Released(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}
