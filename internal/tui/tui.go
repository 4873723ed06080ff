// Package tui provides the Bubble Tea album table page for album-table.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/tryp/album-table/internal/artwork"
	"github.com/tryp/album-table/internal/config"
	"github.com/tryp/album-table/internal/datatable"
	"github.com/tryp/album-table/internal/export"
	"github.com/tryp/album-table/internal/itunes"
	"github.com/tryp/album-table/internal/model"
	"github.com/tryp/album-table/internal/present"
)

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

// focus is the control receiving key presses.
type focus int

const (
	focusTable focus = iota
	focusArtist
	focusSearch
	focusPageSize
	focusCount
)

// Searcher fetches the albums matching a query.
type Searcher interface {
	Search(ctx context.Context, q itunes.Query) ([]*model.Album, error)
}

// Options holds the dependencies of the page.
type Options struct {
	Settings *config.Settings
	Searcher Searcher

	// Artwork renders detail pane thumbnails. Nil disables artwork.
	Artwork *artwork.Service

	Logger *log.Logger
	Locale language.Tag

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error
}

// Message types
type (
	// AlbumsMsg is sent when a search completes.
	AlbumsMsg struct {
		Seq    int
		Term   string
		Albums []*model.Album
		Err    error
	}

	// ArtworkMsg is sent when a single thumbnail finished loading.
	ArtworkMsg struct {
		AlbumID int64
		Err     error
	}

	// PrefetchDoneMsg is sent when every thumbnail of a search is loaded.
	PrefetchDoneMsg struct {
		Seq int
		Err error
	}

	// ExportDoneMsg is sent when an export file was written.
	ExportDoneMsg struct {
		Path string
		Err  error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Model is the Bubble Tea model for the album table page.
type Model struct {
	state State
	focus focus

	artistInput   textinput.Model
	searchInput   textinput.Model
	pageSizeInput textinput.Model
	pageSizeErr   string

	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     KeyMap
	table    datatable.Model

	settings   *config.Settings
	searcher   Searcher
	artwork    *artwork.Service
	prefetcher *artwork.Prefetcher
	exporter   *export.Exporter
	clipboard  func(string) error
	logger     *log.Logger
	locale     language.Tag

	term        string
	albums      []*model.Album
	index       map[string]*model.Album
	seq         int
	prefetching bool
	err         error
	status      string
	statusErr   bool

	// Search context
	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates the page model. The first search starts from Init.
func NewModel(opts Options) Model {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	locale := opts.Locale
	if locale == language.Und {
		locale = present.Locale()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	artist := textinput.New()
	artist.Prompt = ""
	artist.Placeholder = itunes.DefaultTerm
	artist.CharLimit = 100
	artist.Width = 40
	artist.SetValue(settings.Term)

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "filter by album name"
	search.CharLimit = 100
	search.Width = 40

	pageSize := textinput.New()
	pageSize.Prompt = ""
	pageSize.CharLimit = 4
	pageSize.Width = 6
	pageSize.SetValue(strconv.Itoa(settings.PageSize))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 30

	cfg := present.TableConfig(settings.Term, locale)
	cfg.PageSize = settings.PageSize
	cfg.Paginated = settings.Paginated
	cfg.Sortable = settings.Sortable
	cfg.Fuzzy = settings.FuzzyFilter
	table := datatable.NewModel(datatable.New(cfg))

	format, err := export.ParseFormat(settings.Export.Format)
	if err != nil {
		format = export.FormatCSV
	}

	svc := opts.Artwork
	if !settings.Artwork.Enabled {
		svc = nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:         StateLoading,
		focus:         focusTable,
		artistInput:   artist,
		searchInput:   search,
		pageSizeInput: pageSize,
		spinner:       sp,
		progress:      prog,
		help:          help.New(),
		keys:          DefaultKeyMap(),
		table:         table,
		settings:      settings,
		searcher:      opts.Searcher,
		artwork:       svc,
		exporter:      export.NewExporter(format, settings.Export.M3UExtended),
		clipboard:     copyFn,
		logger:        logger.WithPrefix("tui"),
		locale:        locale,
		term:          settings.Term,
		seq:           1,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Init starts the first search.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(m.seq, m.term))
}

// State returns the current UI state.
func (m Model) State() State { return m.state }

// Table returns the album table.
func (m Model) Table() *datatable.Table { return m.table.Table() }

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-20, 20), 60)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.state == StateReady {
			var cmd tea.Cmd
			m.table.SetOrigin(0, m.tableTop())
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case AlbumsMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Error("search failed", "term", msg.Term, "err", msg.Err)
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.logger.Info("albums loaded", "term", msg.Term, "count", len(msg.Albums))
		m.state = StateReady
		m.err = nil
		m.setAlbums(msg.Albums)
		cmds = append(cmds, m.startPrefetch()...)

	case datatable.SelectedMsg:
		if a, ok := m.index[msg.Row.ID]; ok {
			m.setStatus(fmt.Sprintf("Selected %s", a), false)
			if m.artwork != nil {
				if _, cached := m.artwork.Cached(a); !cached && a.HasArtwork() {
					cmds = append(cmds, m.loadArtwork(a))
				}
			}
		}

	case ArtworkMsg:
		if msg.Err != nil {
			m.logger.Warn("artwork failed", "album", msg.AlbumID, "err", msg.Err)
			m.setStatus("Could not load artwork: "+msg.Err.Error(), true)
		}

	case PrefetchDoneMsg:
		if msg.Seq == m.seq {
			m.prefetching = false
			if m.prefetcher != nil {
				done, failed, total := m.prefetcher.Progress()
				m.logger.Debug("artwork prefetched", "done", done, "failed", failed, "total", total)
			}
			cmds = append(cmds, m.progress.SetPercent(1))
		}

	case ExportDoneMsg:
		if msg.Err != nil {
			m.logger.Error("export failed", "err", msg.Err)
			m.setStatus("Export failed: "+msg.Err.Error(), true)
		} else {
			m.logger.Info("exported albums", "path", msg.Path)
			m.setStatus("Exported to "+msg.Path, false)
		}

	case TickMsg:
		// Update progress from prefetcher
		if m.prefetching && m.prefetcher != nil {
			cmds = append(cmds, m.progress.SetPercent(m.prefetcher.Percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextFocus):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	if m.focus != focusTable {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Retry):
		if m.state != StateLoading {
			return m.search(m.term)
		}
		return m, nil
	case key.Matches(msg, m.keys.Artist):
		m.setFocus(focusArtist)
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.setFocus(focusSearch)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.state != StateReady {
		return m, nil
	}

	t := m.table.Table()
	switch {
	case key.Matches(msg, m.keys.Paginate):
		t.SetPaginated(!t.Paginated())
		m.table.Refresh()
		return m, nil
	case key.Matches(msg, m.keys.Fuzzy):
		t.SetFuzzy(!t.Fuzzy())
		m.table.Refresh()
		mode := "substring"
		if t.Fuzzy() {
			mode = "fuzzy"
		}
		m.setStatus("Search mode: "+mode, false)
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyLink()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.exportVisible()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.setFocus(focusTable)
		return m, nil
	case msg.Type == tea.KeyEnter:
		if m.focus == focusArtist {
			term := strings.TrimSpace(m.artistInput.Value())
			if term == "" {
				m.setStatus("Enter an artist to search for", true)
				return m, nil
			}
			m.setFocus(focusTable)
			return m.search(term)
		}
		m.setFocus(focusTable)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusArtist:
		m.artistInput, cmd = m.artistInput.Update(msg)
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.table.Table().SetFilter(m.searchInput.Value())
		m.table.Refresh()
	case focusPageSize:
		m.pageSizeInput, cmd = m.pageSizeInput.Update(msg)
		m.applyPageSize()
	}
	return m, cmd
}

func (m *Model) applyPageSize() {
	n, err := strconv.Atoi(strings.TrimSpace(m.pageSizeInput.Value()))
	if err != nil || n < config.MinPageSize || n > config.MaxPageSize {
		m.pageSizeErr = fmt.Sprintf("enter a number from %d to %d", config.MinPageSize, config.MaxPageSize)
		return
	}
	if err := m.table.Table().SetPageSize(n); err != nil {
		m.pageSizeErr = err.Error()
		return
	}
	m.pageSizeErr = ""
	m.table.Refresh()
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.artistInput.Blur()
	m.searchInput.Blur()
	m.pageSizeInput.Blur()
	m.table.Blur()

	switch f {
	case focusArtist:
		m.artistInput.Focus()
	case focusSearch:
		m.searchInput.Focus()
	case focusPageSize:
		m.pageSizeInput.Focus()
	default:
		m.table.Focus()
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// search starts a new search for term. Responses of earlier searches are
// dropped when they arrive.
func (m Model) search(term string) (tea.Model, tea.Cmd) {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.seq++
	m.term = term
	m.state = StateLoading
	m.err = nil
	m.prefetching = false
	m.status = ""
	m.logger.Debug("searching", "term", term)

	return m, tea.Batch(m.spinner.Tick, m.fetch(m.seq, term))
}

// fetch runs the search in the background.
func (m Model) fetch(seq int, term string) tea.Cmd {
	ctx, searcher := m.ctx, m.searcher
	q := itunes.Query{Term: term, Limit: m.settings.Limit, Country: m.settings.Country}
	return func() tea.Msg {
		if searcher == nil {
			return AlbumsMsg{Seq: seq, Term: term, Err: fmt.Errorf("no album source configured")}
		}
		albums, err := searcher.Search(ctx, q)
		return AlbumsMsg{Seq: seq, Term: term, Albums: albums, Err: err}
	}
}

func (m *Model) setAlbums(albums []*model.Album) {
	m.albums = albums
	m.index = present.Index(albums)

	t := m.table.Table()
	t.SetRows(present.AlbumRows(albums, m.locale))
	t.SetCaption(present.Caption(m.term))
	m.table.Refresh()
}

func (m *Model) startPrefetch() []tea.Cmd {
	if m.artwork == nil || len(m.albums) == 0 {
		return nil
	}
	m.prefetcher = artwork.NewPrefetcher(m.artwork, m.settings.Artwork.MaxConcurrent)
	m.prefetching = true

	p, ctx, seq, albums := m.prefetcher, m.ctx, m.seq, m.albums
	run := func() tea.Msg {
		return PrefetchDoneMsg{Seq: seq, Err: p.Run(ctx, albums, nil)}
	}
	return []tea.Cmd{run, m.progress.SetPercent(0), m.tickProgress()}
}

func (m Model) loadArtwork(a *model.Album) tea.Cmd {
	svc, ctx := m.artwork, m.ctx
	return func() tea.Msg {
		_, err := svc.Thumbnail(ctx, a)
		return ArtworkMsg{AlbumID: a.ID, Err: err}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// selectedAlbum returns the album under the table cursor.
func (m Model) selectedAlbum() (*model.Album, bool) {
	row, ok := m.table.Selected()
	if !ok {
		return nil, false
	}
	a, ok := m.index[row.ID]
	return a, ok
}

func (m *Model) copyLink() {
	a, ok := m.selectedAlbum()
	if !ok || a.ViewURL == "" {
		m.setStatus("Nothing to copy", true)
		return
	}
	if err := m.clipboard(a.ViewURL); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		m.setStatus("Could not copy link: "+err.Error(), true)
		return
	}
	m.setStatus("Copied link to "+a.Name, false)
}

// exportVisible writes the rows on screen to the export directory.
func (m Model) exportVisible() tea.Cmd {
	t := m.table.Table()
	var albums []*model.Album
	for _, row := range t.Visible() {
		if a, ok := m.index[row.ID]; ok {
			albums = append(albums, a)
		}
	}

	base := m.term
	if t.Paginated() {
		base = fmt.Sprintf("%s page %d", m.term, t.Page())
	}

	exporter, dir := m.exporter, m.settings.Export.Directory
	return func() tea.Msg {
		path, err := exporter.Save(dir, base, albums)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.cancel()
	}
	return err
}
