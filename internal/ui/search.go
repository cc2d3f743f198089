package ui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// SearchBar is the filter input shown below the header
type SearchBar struct {
	input  textinput.Model
	width  int
	active bool
}

// NewSearchBar creates an inactive search bar
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "filter cards..."
	ti.CharLimit = SearchCharLimit
	ti.Prompt = ""

	return &SearchBar{input: ti}
}

// SetWidth sets the bar width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// Leave room for " / "
	s.input.SetWidth(max(width-4, 1))
}

// Activate gives the input keyboard focus
func (s *SearchBar) Activate() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

// Deactivate removes keyboard focus but keeps the query
func (s *SearchBar) Deactivate() {
	s.active = false
	s.input.Blur()
}

// IsActive reports whether keys go to the input
func (s *SearchBar) IsActive() bool {
	return s.active
}

// Value returns the current query
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the query, used when switching frames
func (s *SearchBar) SetValue(query string) {
	s.input.SetValue(query)
}

// Update forwards a key to the input and reports whether the query changed
func (s *SearchBar) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// View renders the search line
func (s *SearchBar) View() string {
	prompt := SearchPromptStyle.Render(" / ")
	var body string
	switch {
	case s.active:
		body = s.input.View()
	case s.input.Value() != "":
		body = s.input.Value() + SearchHintStyle.Render("  (esc in search clears)")
	default:
		body = SearchHintStyle.Render("press / to filter")
	}
	return ansi.Truncate(prompt+body, max(s.width, 0), "")
}
