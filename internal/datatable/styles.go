package datatable

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tryp/album-table/internal/pagination"
)

// Colors
var (
	accentColor = lipgloss.Color("#FF5F87")
	headerColor = lipgloss.Color("#FFA94D")
	dimColor    = lipgloss.Color("#626262")
)

// Styles styles the rendered table.
type Styles struct {
	Header        lipgloss.Style
	HeaderCursor  lipgloss.Style
	ArrowActive   lipgloss.Style
	ArrowInactive lipgloss.Style
	Marker        lipgloss.Style
	Rule          lipgloss.Style
	Caption       lipgloss.Style
	Empty         lipgloss.Style
	Strip         pagination.StripStyles
}

// DefaultStyles returns the default table styles.
func DefaultStyles() Styles {
	return Styles{
		Header:        lipgloss.NewStyle().Bold(true).Foreground(headerColor),
		HeaderCursor:  lipgloss.NewStyle().Bold(true).Foreground(headerColor).Underline(true),
		ArrowActive:   lipgloss.NewStyle().Foreground(accentColor),
		ArrowInactive: lipgloss.NewStyle().Foreground(dimColor),
		Marker:        lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		Rule:          lipgloss.NewStyle().Foreground(dimColor),
		Caption:       lipgloss.NewStyle().Italic(true).Foreground(dimColor),
		Empty:         lipgloss.NewStyle().Foreground(dimColor),
		Strip:         pagination.DefaultStripStyles(),
	}
}
