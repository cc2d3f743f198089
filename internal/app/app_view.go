package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.footer.SetContext(m.search.IsActive(), m.preview.IsVisible())

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.gallery.View(),
		m.trays.View(),
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.search.View(),
		panels,
		m.footer.View(),
	)

	// Overlay preview if visible
	if m.preview.IsVisible() {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.preview.View(),
		)
	}

	return view
}
