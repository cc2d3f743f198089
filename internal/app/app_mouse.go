package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/cardtray/internal/logger"
	"github.com/zhubert/cardtray/internal/tray"
	"github.com/zhubert/cardtray/internal/ui"
)

// buttonFor maps a mouse button to a tray activation. Only left and right
// clicks activate tiles.
func buttonFor(b tea.MouseButton) (tray.Button, bool) {
	switch b {
	case tea.MouseLeft:
		return tray.Primary, true
	case tea.MouseRight:
		return tray.Secondary, true
	}
	return 0, false
}

// handleMouseClick resolves a click to the header tabs, the search line or a
// tile, adjusting terminal coordinates to panel coordinates on the way.
func (m *Model) handleMouseClick(msg tea.MouseClickMsg) tea.Cmd {
	if m.preview.IsVisible() {
		return nil
	}
	ctx := ui.GetViewContext()

	switch {
	case msg.Y < ctx.HeaderHeight:
		if id, ok := m.header.TabAt(msg.X); ok {
			m.showFrame(id)
		}
		return nil

	case msg.Y < ctx.ContentTop:
		if msg.Button == tea.MouseLeft && !m.search.IsActive() {
			return m.enterSearch()
		}
		return nil
	}

	button, ok := buttonFor(msg.Button)
	if !ok {
		return nil
	}
	if m.search.IsActive() {
		m.leaveSearch(false)
	}

	y := msg.Y - ctx.ContentTop
	var t *tray.Tile
	if msg.X < ctx.GalleryWidth {
		t = m.gallery.TileAt(msg.X, y)
		if t != nil {
			m.focusGallery()
			m.gallery.SetCursorTile(t)
		}
	} else {
		t = m.trays.TileAt(msg.X-ctx.GalleryWidth, y)
	}
	if t == nil {
		return nil
	}

	logger.WithComponent("mouse").Debug("tile clicked", "x", msg.X, "y", msg.Y, "item", t.Item.DisplayName, "kind", t.Kind)
	return m.activateTile(t, button)
}

// handleMouseWheel scrolls the preview when it is open, the gallery otherwise
func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) tea.Cmd {
	if m.preview.IsVisible() {
		return m.preview.Update(msg)
	}

	ctx := ui.GetViewContext()
	switch msg.Button {
	case tea.MouseWheelUp:
		if msg.X >= ctx.GalleryWidth {
			m.trays.MoveCursor(-1)
		} else {
			m.gallery.MoveCursor(0, -1)
		}
	case tea.MouseWheelDown:
		if msg.X >= ctx.GalleryWidth {
			m.trays.MoveCursor(1)
		} else {
			m.gallery.MoveCursor(0, 1)
		}
	}
	return nil
}
