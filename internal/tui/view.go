package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tryp/album-table/internal/model"
	"github.com/tryp/album-table/internal/present"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	labelStyle = lipgloss.NewStyle().
			Width(11).
			Foreground(lipgloss.Color("#6C757D"))

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("#4ECDC4")).
				Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	albumStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

const (
	detailMinWidth = 28
	// lines below the table: meta, progress, status, help
	footerLines = 4
)

func (m Model) detailWidth() int {
	if m.artwork == nil {
		return detailMinWidth
	}
	return max(detailMinWidth, m.settings.Artwork.Columns)
}

// resize fits the table next to the detail pane.
func (m *Model) resize() {
	if m.width > 0 {
		// border and padding of the detail box, plus the gap
		m.table.SetWidth(max(20, m.width-m.detailWidth()-6))
	}
	if m.height > 0 {
		m.table.SetHeight(max(5, m.height-m.tableTop()-footerLines))
	}
}

// tableTop is the screen line the table starts on.
func (m Model) tableTop() int {
	return lipgloss.Height(m.topView()) + 1
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.topView())
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateReady:
		b.WriteString(m.viewReady())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render("✗ " + m.status))
		} else {
			b.WriteString(successStyle.Render("✓ " + m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// topView renders the header and the form controls.
func (m Model) topView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ Album Table"))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render("iTunes album search"))
	b.WriteString("\n\n")

	b.WriteString(m.field("Artist", m.artistInput.View(), m.focus == focusArtist))
	b.WriteString("\n")
	b.WriteString(m.field("Search", m.searchInput.View(), m.focus == focusSearch))
	b.WriteString("\n")

	pageSize := m.pageSizeInput.View()
	if m.pageSizeErr != "" {
		pageSize += " " + errorStyle.Render(m.pageSizeErr)
	}
	b.WriteString(m.field("Page size", pageSize, m.focus == focusPageSize))
	b.WriteString("\n")

	check := "[ ]"
	if m.table.Table().Paginated() {
		check = "[×]"
	}
	b.WriteString(m.field("Paginate", check+dimStyle.Render(" (p)"), false))

	return b.String()
}

func (m Model) field(label, input string, focused bool) string {
	style := labelStyle
	if focused {
		style = focusedLabelStyle
	}
	return style.Render(label) + input
}

func (m Model) viewLoading() string {
	return m.spinner.View() + " " + subtitleStyle.Render(fmt.Sprintf("Fetching albums for %q...", m.term)) + "\n"
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Could not load albums:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("r: retry • a: change artist • q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewReady() string {
	var b strings.Builder

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.table.View(), "  ", m.viewDetail()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(m.table.Table().Meta().String()))
	b.WriteString("\n")

	if m.prefetching && m.prefetcher != nil {
		done, _, total := m.prefetcher.Progress()
		b.WriteString(dimStyle.Render("Artwork "))
		b.WriteString(m.progress.View())
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %d/%d", done, total)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewDetail() string {
	a, ok := m.selectedAlbum()
	if !ok {
		return ""
	}
	width := m.detailWidth()
	return boxStyle.Width(width + 2).Render(detailLines(m, a, width))
}

func detailLines(m Model, a *model.Album, width int) string {
	var lines []string

	if m.artwork != nil {
		switch thumb, ok := m.artwork.Cached(a); {
		case ok:
			lines = append(lines, thumb, "")
		case !a.HasArtwork():
			lines = append(lines, dimStyle.Render("no artwork"), "")
		default:
			lines = append(lines, dimStyle.Render("loading artwork..."), "")
		}
	}

	lines = append(lines, albumStyle.Width(width).Render(a.Name))
	lines = append(lines, a.Artist)

	released := present.FormatDate(a.ReleaseDate, m.locale)
	if ago := present.Released(a.ReleaseDate); ago != "" {
		released += dimStyle.Render(" · " + ago)
	}
	lines = append(lines, released)

	if a.Genre != "" {
		lines = append(lines, present.Tag(a.Genre))
	}
	lines = append(lines, fmt.Sprintf("%d tracks", a.TrackCount))
	if price := a.PriceString(); price != "" {
		lines = append(lines, price)
	}
	if a.Country != "" {
		lines = append(lines, dimStyle.Render("Store: "+a.Country))
	}
	if a.Explicit {
		lines = append(lines, errorStyle.Render("Explicit"))
	}
	if a.ViewURL != "" {
		lines = append(lines, "", present.Link(a.ViewURL, "Open in Apple Music ↗"))
	}

	return strings.Join(lines, "\n")
}
