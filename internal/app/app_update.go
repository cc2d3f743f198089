package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/cardtray/internal/keys"
	"github.com/zhubert/cardtray/internal/logger"
	"github.com/zhubert/cardtray/internal/tray"
	"github.com/zhubert/cardtray/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case CatalogLoadedMsg:
		cmds = append(cmds, m.handleCatalogLoaded(msg))

	case ExportDoneMsg:
		cmds = append(cmds, m.handleExportDone(msg))

	case ClipboardResultMsg:
		if msg.Err != nil {
			logger.WithComponent("app").Warn("clipboard write failed", "what", msg.What, "error", msg.Err)
			cmds = append(cmds, m.ShowFlashWarning(fmt.Sprintf("Could not copy %s: %v", msg.What, msg.Err)))
		}

	case ui.FlashTickMsg:
		m.footer.ClearIfExpired()
		if m.footer.HasFlash() {
			cmds = append(cmds, ui.FlashTick())
		}

	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKeyPress(msg))

	case tea.MouseClickMsg:
		cmds = append(cmds, m.handleMouseClick(msg))

	case tea.MouseWheelMsg:
		cmds = append(cmds, m.handleMouseWheel(msg))
	}

	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

// handleKeyPress routes a key to the first layer that wants it: the preview
// overlay, the search input, the tray panel, then shortcuts and the gallery.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if key == keys.CtrlC {
		m.quitting = true
		return nil
	}

	if m.preview.IsVisible() {
		return m.handlePreviewKey(msg)
	}

	if m.search.IsActive() {
		return m.handleSearchKey(msg)
	}

	if m.focus == FocusTrays {
		if cmd, handled := m.handleTrayKey(key); handled {
			return cmd
		}
	}

	// Digits jump straight to a frame
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if frames := m.switcher.Frames(); i < len(frames) {
			m.showFrame(frames[i].ID)
		}
		return nil
	}

	if _, cmd, ok := m.ExecuteShortcut(key); ok {
		return cmd
	}

	m.handleGalleryKey(key)
	return nil
}

func (m *Model) handlePreviewKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Escape, "p", "q":
		m.preview.Hide()
		m.footer.SetContext(m.search.IsActive(), false)
		return nil
	case keys.CtrlS:
		return m.exportSelection()
	}
	return m.preview.Update(msg)
}

// handleSearchKey feeds the search input. Every change re-filters the
// active frame so the gallery tracks each keystroke.
func (m *Model) handleSearchKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Escape:
		m.leaveSearch(true)
		return nil
	case keys.Enter, keys.Tab:
		m.leaveSearch(false)
		return nil
	}

	changed, cmd := m.search.Update(msg)
	if changed {
		m.applyFilter(m.search.Value())
	}
	return cmd
}

// enterSearch focuses the search input
func (m *Model) enterSearch() tea.Cmd {
	m.focus = FocusSearch
	m.gallery.SetFocused(false)
	m.trays.SetFocused(false)
	m.footer.SetContext(true, m.preview.IsVisible())
	return m.search.Activate()
}

// leaveSearch returns focus to the gallery, optionally clearing the query
func (m *Model) leaveSearch(clear bool) {
	if clear && m.search.Value() != "" {
		m.search.SetValue("")
		m.applyFilter("")
	}
	if !m.search.IsActive() {
		return
	}
	m.search.Deactivate()
	m.focus = FocusGallery
	m.gallery.SetFocused(true)
	m.footer.SetContext(false, m.preview.IsVisible())
}

// handleTrayKey handles navigation inside the tray panel. Keys it does not
// handle fall through to shortcuts.
func (m *Model) handleTrayKey(key string) (tea.Cmd, bool) {
	switch key {
	case keys.Up, "k":
		m.trays.MoveCursor(-1)
	case keys.Down, "j":
		m.trays.MoveCursor(1)
	case keys.Left, keys.Right, "h", "l":
		m.trays.SwitchTray()
	case keys.Enter, keys.Space, "x", keys.Backspace, keys.Delete:
		return m.activateTile(m.trays.Cursor(), tray.Primary), true
	case keys.Escape, "t":
		m.focusGallery()
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleGalleryKey(key string) {
	switch key {
	case keys.Up, "k":
		m.gallery.MoveCursor(0, -1)
	case keys.Down, "j":
		m.gallery.MoveCursor(0, 1)
	case keys.Left, "h":
		m.gallery.MoveCursor(-1, 0)
	case keys.Right, "l":
		m.gallery.MoveCursor(1, 0)
	case keys.Home, "g":
		m.gallery.CursorHome()
	case keys.End, "G":
		m.gallery.CursorEnd()
	case keys.PgUp:
		m.gallery.MoveCursor(0, -m.gallery.PageRows())
	case keys.PgDown:
		m.gallery.MoveCursor(0, m.gallery.PageRows())
	case keys.Escape:
		if m.search.Value() != "" {
			m.leaveSearch(true)
		}
	}
}

func (m *Model) focusGallery() {
	m.focus = FocusGallery
	m.trays.SetFocused(false)
	m.gallery.SetFocused(true)
}

func (m *Model) focusTrays() {
	m.focus = FocusTrays
	m.gallery.SetFocused(false)
	m.trays.SetFocused(true)
}

func (m *Model) handleExportDone(msg ExportDoneMsg) tea.Cmd {
	if msg.Err != nil {
		logger.WithComponent("export").Error("export failed", "error", msg.Err)
		return m.ShowFlashError(fmt.Sprintf("Export failed: %v", msg.Err))
	}
	logger.WithComponent("export").Info("selection exported", "path", msg.Path, "count", msg.Count)
	return m.ShowFlashSuccess(fmt.Sprintf("Exported %d cards to %s", msg.Count, msg.Path))
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.search.SetWidth(ctx.TerminalWidth)
	m.gallery.SetSize(ctx.GalleryWidth, ctx.ContentHeight)
	m.trays.SetSize(ctx.TrayWidth, ctx.ContentHeight)
	m.preview.SetSize(ctx.TerminalWidth, ctx.TerminalHeight)

	m.adjustLayout()
}
