package pagination

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ButtonKind identifies what a strip button does when pressed.
type ButtonKind int

const (
	ButtonPrev ButtonKind = iota
	ButtonPage
	ButtonNext
)

// Button is one pressable element of a Strip.
type Button struct {
	Kind     ButtonKind
	Page     int // target page for ButtonPage
	Label    string
	Disabled bool
	Active   bool // the current page
}

// StripStyles styles the rendered strip.
type StripStyles struct {
	Button   lipgloss.Style
	Active   lipgloss.Style
	Disabled lipgloss.Style
	Ellipsis lipgloss.Style
	Gap      string
}

// DefaultStripStyles returns the styles used by the album table.
func DefaultStripStyles() StripStyles {
	return StripStyles{
		Button:   lipgloss.NewStyle().Padding(0, 1),
		Active:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FF5F87")).Underline(true),
		Disabled: lipgloss.NewStyle().Padding(0, 1).Faint(true),
		Ellipsis: lipgloss.NewStyle().Faint(true),
		Gap:      " ",
	}
}

// Strip is a stateless page-number button strip: ‹ 1 2 3 ›.
//
// It owns no page state. The table that renders it passes the current
// page and the page count, and receives presses through the callbacks.
type Strip struct {
	Max     int
	Current int
	// Window caps the number of page buttons shown at once. Zero shows
	// every page.
	Window int

	OnPrev  func()
	OnNext  func()
	OnClick func(page int)

	Styles StripStyles
}

type segment struct {
	label  string
	button *Button
}

func (s Strip) pages() int {
	return max(s.Max, 1)
}

func (s Strip) current() int {
	return Clamp(s.Current, s.pages())
}

// pageRange returns the first and last page number shown.
func (s Strip) pageRange() (int, int) {
	total := s.pages()
	if s.Window <= 0 || total <= s.Window {
		return 1, total
	}
	first := s.current() - s.Window/2
	first = max(first, 1)
	first = min(first, total-s.Window+1)
	return first, first + s.Window - 1
}

// Prev returns the previous-page button.
func (s Strip) Prev() Button {
	return Button{Kind: ButtonPrev, Label: "‹", Disabled: s.current() == 1}
}

// Next returns the next-page button.
func (s Strip) Next() Button {
	return Button{Kind: ButtonNext, Label: "›", Disabled: s.current() == s.pages()}
}

// Page returns the button for page n, or false when n is out of range.
func (s Strip) Page(n int) (Button, bool) {
	if n < 1 || n > s.pages() {
		return Button{}, false
	}
	active := n == s.current()
	return Button{
		Kind:     ButtonPage,
		Page:     n,
		Label:    strconv.Itoa(n),
		Disabled: active,
		Active:   active,
	}, true
}

// Buttons returns prev, the shown page numbers and next, in display order.
func (s Strip) Buttons() []Button {
	var buttons []Button
	for _, seg := range s.segments() {
		if seg.button != nil {
			buttons = append(buttons, *seg.button)
		}
	}
	return buttons
}

func (s Strip) segments() []segment {
	first, last := s.pageRange()

	prev := s.Prev()
	segs := []segment{{label: prev.Label, button: &prev}}
	if first > 1 {
		segs = append(segs, segment{label: "…"})
	}
	for n := first; n <= last; n++ {
		b, _ := s.Page(n)
		segs = append(segs, segment{label: b.Label, button: &b})
	}
	if last < s.pages() {
		segs = append(segs, segment{label: "…"})
	}
	next := s.Next()
	segs = append(segs, segment{label: next.Label, button: &next})
	return segs
}

// Press invokes the callback matching b. Disabled buttons do nothing.
// It reports whether a callback ran.
func (s Strip) Press(b Button) bool {
	if b.Disabled {
		return false
	}
	switch b.Kind {
	case ButtonPrev:
		if s.OnPrev != nil {
			s.OnPrev()
			return true
		}
	case ButtonNext:
		if s.OnNext != nil {
			s.OnNext()
			return true
		}
	case ButtonPage:
		if s.OnClick != nil {
			s.OnClick(b.Page)
			return true
		}
	}
	return false
}

func (s Strip) render(seg segment) string {
	st := s.Styles
	switch {
	case seg.button == nil:
		return st.Ellipsis.Render(seg.label)
	case seg.button.Active:
		return st.Active.Render(seg.label)
	case seg.button.Disabled:
		return st.Disabled.Render(seg.label)
	default:
		return st.Button.Render(seg.label)
	}
}

// View renders the strip on a single line.
func (s Strip) View() string {
	segs := s.segments()
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		parts = append(parts, s.render(seg))
	}
	return strings.Join(parts, s.Styles.Gap)
}

// HitTest maps a column offset within View() to the button drawn there.
func (s Strip) HitTest(x int) (Button, bool) {
	if x < 0 {
		return Button{}, false
	}
	gap := lipgloss.Width(s.Styles.Gap)
	pos := 0
	for _, seg := range s.segments() {
		w := lipgloss.Width(s.render(seg))
		if x >= pos && x < pos+w {
			if seg.button == nil {
				return Button{}, false
			}
			return *seg.button, true
		}
		pos += w + gap
	}
	return Button{}, false
}
