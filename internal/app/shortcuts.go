package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/cardtray/internal/clipboard"
	"github.com/zhubert/cardtray/internal/export"
	"github.com/zhubert/cardtray/internal/keys"
	"github.com/zhubert/cardtray/internal/logger"
	"github.com/zhubert/cardtray/internal/tray"
	"github.com/zhubert/cardtray/internal/ui"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key         string                              // The key binding (e.g., "x", "ctrl+s")
	DisplayKey  string                              // Display name; defaults to Key
	Description string                              // Human-readable description
	Category    string                              // Section for grouping
	Handler     func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition   func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts
const (
	CategoryNavigation = "Navigation"
	CategorySelection  = "Selection"
	CategoryExport     = "Export"
	CategoryGeneral    = "General"
)

// hasCursorTile reports whether the gallery cursor sits on a tile
func hasCursorTile(m *Model) bool {
	return m.gallery.Cursor() != nil
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         "/",
		Description: "Filter cards by name",
		Category:    CategoryNavigation,
		Handler:     shortcutSearch,
	},
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Next frame",
		Category:    CategoryNavigation,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.cycleFrame(1); return m, nil },
	},
	{
		Key:         keys.ShiftTab,
		DisplayKey:  "Shift+Tab",
		Description: "Previous frame",
		Category:    CategoryNavigation,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.cycleFrame(-1); return m, nil },
	},
	{
		Key:         "t",
		Description: "Focus the trays",
		Category:    CategoryNavigation,
		Handler:     shortcutFocusTrays,
	},

	// Selection
	{
		Key:         keys.Enter,
		DisplayKey:  "Enter",
		Description: "Add card to the left tray",
		Category:    CategorySelection,
		Handler:     shortcutPrimary,
		Condition:   hasCursorTile,
	},
	{
		Key:         keys.Space,
		DisplayKey:  "Space",
		Description: "Add card to the left tray",
		Category:    CategorySelection,
		Handler:     shortcutPrimary,
		Condition:   hasCursorTile,
	},
	{
		Key:         "x",
		Description: "Add card to the right tray",
		Category:    CategorySelection,
		Handler:     shortcutSecondary,
		Condition:   hasCursorTile,
	},
	{
		Key:         "c",
		Description: "Clear both trays",
		Category:    CategorySelection,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m, m.clearTrays() },
	},
	{
		Key:         "y",
		Description: "Copy the selection as text",
		Category:    CategorySelection,
		Handler:     shortcutCopyText,
	},
	{
		Key:         "Y",
		Description: "Copy the card image",
		Category:    CategorySelection,
		Handler:     shortcutCopyImage,
		Condition:   hasCursorTile,
	},

	// Export
	{
		Key:         keys.CtrlS,
		DisplayKey:  "ctrl-s",
		Description: "Export the selection",
		Category:    CategoryExport,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m, m.exportSelection() },
	},
	{
		Key:         "p",
		Description: "Preview the export",
		Category:    CategoryExport,
		Handler:     shortcutPreview,
	},
	{
		Key:         keys.CtrlE,
		DisplayKey:  "ctrl-e",
		Description: "Cycle export format",
		Category:    CategoryExport,
		Handler:     shortcutCycleFormat,
	},

	// General
	{
		Key:         keys.CtrlR,
		DisplayKey:  "ctrl-r",
		Description: "Reload the catalog",
		Category:    CategoryGeneral,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m, m.loadCatalog(m.active()) },
	},
	{
		Key:         "T",
		Description: "Next theme",
		Category:    CategoryGeneral,
		Handler:     shortcutTheme,
	},
	{
		Key:         "n",
		Description: "Toggle capacity notifications",
		Category:    CategoryGeneral,
		Handler:     shortcutToggleNotifications,
	},
	{
		Key:         keys.CtrlL,
		DisplayKey:  "ctrl-l",
		Description: "Redraw the screen",
		Category:    CategoryGeneral,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m, tea.ClearScreen },
	},
	{
		Key:         "q",
		Description: "Quit application",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or its condition failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if m.search.IsActive() {
		return m, nil, false
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if s.Condition != nil && !s.Condition(m) {
			logger.WithComponent("shortcuts").Debug("condition failed", "key", key)
			return m, nil, false
		}
		logger.WithComponent("shortcuts").Debug("executing", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	return m, m.enterSearch()
}

func shortcutFocusTrays(m *Model) (tea.Model, tea.Cmd) {
	if m.focus == FocusTrays {
		m.focusGallery()
	} else {
		m.focusTrays()
	}
	return m, nil
}

func shortcutPrimary(m *Model) (tea.Model, tea.Cmd) {
	return m, m.activateTile(m.gallery.Cursor(), tray.Primary)
}

func shortcutSecondary(m *Model) (tea.Model, tea.Cmd) {
	return m, m.activateTile(m.gallery.Cursor(), tray.Secondary)
}

// snapshot captures the active frame's trays for export and copying
func (m *Model) snapshot() (export.Selection, bool) {
	s := m.active()
	if s == nil {
		return export.Selection{}, false
	}
	return export.Snapshot(s.frame.ID, s.manager, m.trays.Names(), m.now()), true
}

// shortcutCopyText copies the selection through the terminal (OSC 52) and
// the native clipboard
func shortcutCopyText(m *Model) (tea.Model, tea.Cmd) {
	sel, ok := m.snapshot()
	if !ok || sel.Count == 0 {
		return m, m.ShowFlashInfo("Nothing selected")
	}
	text := export.Text(sel)
	native := func() tea.Msg {
		return ClipboardResultMsg{What: "selection", Err: clipboard.WriteText(text)}
	}
	return m, tea.Batch(
		tea.SetClipboard(text),
		native,
		m.ShowFlashSuccess(fmt.Sprintf("Copied %d cards", sel.Count)),
	)
}

// shortcutCopyImage puts the cursor card's image on the native clipboard.
// Only catalogs with local images can be copied.
func shortcutCopyImage(m *Model) (tea.Model, tea.Cmd) {
	t := m.gallery.Cursor()
	path := t.Item.ImagePath
	if path == "" || strings.Contains(path, "://") {
		return m, m.ShowFlashWarning("Only local images can be copied")
	}
	name := t.Item.DisplayName
	return m, func() tea.Msg {
		img, err := clipboard.WriteImageFile(path)
		if err == nil {
			logger.WithComponent("clipboard").Debug("image copied", "path", path, "kb", img.SizeKB())
		}
		return ClipboardResultMsg{What: name, Err: err}
	}
}

// exportSelection writes the active frame's selection in the configured format
func (m *Model) exportSelection() tea.Cmd {
	sel, ok := m.snapshot()
	if !ok {
		return nil
	}
	dir, format := m.config.GetExport()
	if format == "" {
		format = export.FormatJSON
	}
	now := m.now()
	return func() tea.Msg {
		path, err := export.Write(sel, dir, format, now)
		return ExportDoneMsg{Path: path, Count: sel.Count, Err: err}
	}
}

func shortcutPreview(m *Model) (tea.Model, tea.Cmd) {
	sel, ok := m.snapshot()
	if !ok {
		return m, nil
	}
	_, format := m.config.GetExport()

	var data []byte
	var err error
	language := "json"
	if format == export.FormatYAML {
		data, err = export.YAML(sel)
		language = "yaml"
	} else {
		data, err = export.JSON(sel)
	}
	if err != nil {
		return m, m.ShowFlashError(err.Error())
	}

	m.preview.Show(fmt.Sprintf("%s  %s", sel.Frame, sel.Percentage), string(data), language)
	m.footer.SetContext(m.search.IsActive(), true)
	return m, nil
}

var exportFormats = []string{export.FormatJSON, export.FormatYAML, export.FormatXLSX}

func shortcutCycleFormat(m *Model) (tea.Model, tea.Cmd) {
	_, current := m.config.GetExport()
	next := exportFormats[0]
	for i, f := range exportFormats {
		if f == current {
			next = exportFormats[(i+1)%len(exportFormats)]
		}
	}
	m.config.SetExportFormat(next)
	m.saveConfig()
	return m, m.ShowFlashInfo("Export format: " + next)
}

func shortcutTheme(m *Model) (tea.Model, tea.Cmd) {
	next := ui.NextTheme()
	ui.SetTheme(next)
	m.config.SetTheme(string(next))
	m.saveConfig()
	return m, m.ShowFlashInfo("Theme: " + ui.GetTheme(next).Name)
}

func shortcutToggleNotifications(m *Model) (tea.Model, tea.Cmd) {
	enabled := !m.config.GetNotificationsEnabled()
	m.config.SetNotificationsEnabled(enabled)
	m.saveConfig()
	if enabled {
		return m, m.ShowFlashInfo("Capacity notifications on")
	}
	return m, m.ShowFlashInfo("Capacity notifications off")
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, nil
}

// saveConfig persists settings changed from the UI. Failures are logged only.
func (m *Model) saveConfig() {
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Warn("failed to save config", "error", err)
	}
}
