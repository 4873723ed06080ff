package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/tryp/album-table/internal/datatable"
)

// KeyMap defines the page keybindings. Table keys are handled by the
// table itself and listed here for help.
type KeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Blur      key.Binding
	Artist    key.Binding
	Search    key.Binding
	Paginate  key.Binding
	Fuzzy     key.Binding
	Retry     key.Binding
	Copy      key.Binding
	Export    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Table datatable.KeyMap
}

// DefaultKeyMap returns the default page keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Blur:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to table")),
		Artist:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "artist")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Paginate:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle pages")),
		Fuzzy:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fuzzy search")),
		Retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export page")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

		Table: datatable.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Table.Up, k.Table.Down, k.Table.PrevPage, k.Table.NextPage,
		k.Table.SortColumn, k.Search, k.Paginate, k.Help, k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.Table.FullHelp(),
		[]key.Binding{k.NextFocus, k.PrevFocus, k.Blur, k.Artist, k.Search},
		[]key.Binding{k.Paginate, k.Fuzzy, k.Retry, k.Copy, k.Export},
		[]key.Binding{k.Help, k.Quit},
	)
}
