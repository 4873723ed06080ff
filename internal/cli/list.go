package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/tryp/album-table/internal/datatable"
	"github.com/tryp/album-table/internal/export"
	"github.com/tryp/album-table/internal/itunes"
	"github.com/tryp/album-table/internal/model"
	"github.com/tryp/album-table/internal/pagination"
	"github.com/tryp/album-table/internal/present"
)

const formatTable = "table"

var (
	// AllFormats lists the accepted --format values.
	AllFormats = []string{formatTable, "csv", "json", "m3u", "pls"}

	ErrUnknownSortField = errors.New("unknown sort field")
	ErrPageOutOfRange   = errors.New("page out of range")
)

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	listCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	listBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	listMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
)

type ListArgs struct {
	*RootArgs

	Artist     string
	Limit      int
	Country    string
	Filter     string
	Fuzzy      bool
	Sort       string
	Page       int
	PageSize   int
	NoPaginate bool
	Format     string
}

func NewListArgs(ra *RootArgs) *ListArgs {
	return &ListArgs{RootArgs: ra}
}

func (la *ListArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&la.Artist, "artist", "a", "", "Artist to search for")
	cmd.Flags().IntVar(&la.Limit, "limit", 0, "Maximum number of albums to request (0 uses the API default)")
	cmd.Flags().StringVar(&la.Country, "country", "", "Two-letter store country code")
	cmd.Flags().StringVarP(&la.Filter, "filter", "f", "", "Only show albums whose name contains this text")
	cmd.Flags().BoolVar(&la.Fuzzy, "fuzzy", false, "Match --filter as a subsequence")
	cmd.Flags().StringVarP(&la.Sort, "sort", "s", "", "Sort field and order, e.g. name or tracks:desc")
	cmd.Flags().IntVarP(&la.Page, "page", "p", 1, "Page to print")
	cmd.Flags().IntVarP(&la.PageSize, "page-size", "n", 0, "Rows per page")
	cmd.Flags().BoolVar(&la.NoPaginate, "no-paginate", false, "Print every matching album")
	cmd.Flags().StringVarP(&la.Format, "format", "o", formatTable,
		fmt.Sprintf("Output format, one of: %s", AllFormats))

	err := cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("sort",
		cobra.FixedCompletions([]string{
			"name", "name:desc", "genre", "genre:desc",
			"released", "released:desc", "tracks", "tracks:desc",
		}, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewListCmd(ra *RootArgs) *cobra.Command {
	la := NewListArgs(ra)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of albums",
		Long: `Search for an artist's albums and print them after filtering,
sorting and paginating, the same way the interactive table does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return la.run(cmd)
		},
	}

	la.AddFlags(cmd)

	return cmd
}

func (la *ListArgs) run(cmd *cobra.Command) error {
	settings := la.settings

	term := settings.Term
	if strings.TrimSpace(la.Artist) != "" {
		term = la.Artist
	}
	limit := settings.Limit
	if cmd.Flags().Changed("limit") {
		limit = la.Limit
	}
	country := settings.Country
	if la.Country != "" {
		country = la.Country
	}
	pageSize := settings.PageSize
	if cmd.Flags().Changed("page-size") {
		pageSize = la.PageSize
	}
	fuzzy := settings.FuzzyFilter || la.Fuzzy
	paginated := settings.Paginated && !la.NoPaginate

	var exporter *export.Exporter
	if la.Format != formatTable {
		format, err := export.ParseFormat(la.Format)
		if err != nil {
			return err
		}
		exporter = export.NewExporter(format, settings.Export.M3UExtended)
	}

	locale := la.locale()
	cfg := present.TableConfig(term, locale)
	cfg.Paginated = paginated
	cfg.Fuzzy = fuzzy
	t := datatable.New(cfg)
	if err := t.SetPageSize(pageSize); err != nil {
		return fmt.Errorf("%w: got %d", err, pageSize)
	}
	if la.Sort != "" {
		if err := sortTable(t, la.Sort); err != nil {
			return err
		}
	}

	searcher, err := la.searchClient(la.httpClient())
	if err != nil {
		return err
	}
	albums, err := searcher.Search(cmd.Context(), itunes.Query{Term: term, Limit: limit, Country: country})
	if err != nil {
		return err
	}

	t.SetRows(present.AlbumRows(albums, locale))
	t.SetFilter(la.Filter)
	if la.Page < 1 || la.Page > t.PageCount() {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, la.Page, t.PageCount())
	}
	t.SetPage(la.Page)

	la.logger.Debug("listing albums", "term", term, "matches", len(t.Filtered()), "page", t.Page())

	out := cmd.OutOrStdout()
	if exporter != nil {
		data, err := exporter.Render(visibleAlbums(t, present.Index(albums)))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	return printTable(out, t)
}

// sortTable applies a "field[:asc|desc]" sort.
func sortTable(t *datatable.Table, value string) error {
	field, order, err := pagination.ParseSort(value)
	if err != nil {
		return err
	}
	index, ok := present.SortColumn(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}
	direction := datatable.SortAsc
	if order == pagination.SortOrderDesc {
		direction = datatable.SortDesc
	}
	return t.SortBy(index, direction)
}

func visibleAlbums(t *datatable.Table, index map[string]*model.Album) []*model.Album {
	rows := t.Visible()
	albums := make([]*model.Album, 0, len(rows))
	for _, r := range rows {
		if a, ok := index[r.ID]; ok {
			albums = append(albums, a)
		}
	}
	return albums
}

// printTable writes the visible rows, the caption and the page summary.
// Styling is kept only when out is a terminal.
func printTable(out io.Writer, t *datatable.Table) error {
	styled := isTerminal(out)

	headers := make([]string, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		headers = append(headers, c.Header)
	}

	rows := t.Visible()
	lt := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(listBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return listCellStyle
		}).
		Headers(headers...)
	if width := terminalWidth(out); width > 0 {
		lt = lt.Width(width)
	}

	for _, r := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			if styled {
				cells[i] = r.Cell(i).String()
			} else {
				cells[i] = strings.TrimSpace(r.Cell(i).Text())
			}
		}
		lt.Row(cells...)
	}

	rendered := lt.String()
	meta := t.Meta().String()
	if styled {
		meta = listMetaStyle.Render(meta)
	} else {
		rendered = ansi.Strip(rendered)
	}

	var b strings.Builder
	b.WriteString(rendered)
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(emptyMessage(t))
		b.WriteString("\n")
	}
	b.WriteString(t.Caption())
	b.WriteString("\n")
	b.WriteString(meta)
	b.WriteString("\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func emptyMessage(t *datatable.Table) string {
	if t.Len() == 0 {
		return "No Data"
	}
	return "No matches"
}
