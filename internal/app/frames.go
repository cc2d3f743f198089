package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/cardtray/internal/catalog"
	"github.com/zhubert/cardtray/internal/config"
	"github.com/zhubert/cardtray/internal/gallery"
	"github.com/zhubert/cardtray/internal/layout"
	"github.com/zhubert/cardtray/internal/logger"
	"github.com/zhubert/cardtray/internal/notification"
	"github.com/zhubert/cardtray/internal/tray"
	"github.com/zhubert/cardtray/internal/ui"
)

// frameSession is everything one frame owns: its container, its tray
// manager, and the renderer and filter bound to that manager.
type frameSession struct {
	frame     config.Frame
	container *gallery.Container
	manager   *tray.Manager
	renderer  *gallery.Renderer
	filter    *gallery.FilterController

	items   []catalog.Item
	loading bool
	loadErr error

	// gen numbers loads so a slow earlier result cannot replace a newer one
	gen        int
	cancelLoad context.CancelFunc

	// full is set once a capacity notification went out, cleared when the
	// count drops below capacity again
	full bool

	unsubscribe func()
}

func newFrameSession(f config.Frame) *frameSession {
	capacity := f.Capacity
	if capacity <= 0 {
		capacity = config.DefaultCapacity
	}
	m := tray.NewManager(f.ID, capacity)
	return &frameSession{
		frame:     f,
		container: gallery.NewContainer(f.ID),
		manager:   m,
		renderer:  gallery.NewRenderer(m),
		filter:    gallery.NewFilterController(m),
	}
}

// membership counts the clones of each item in the session's trays
func (s *frameSession) membership() map[string]ui.Membership {
	members := make(map[string]ui.Membership)
	for _, t := range s.manager.Tray(tray.Left) {
		mm := members[t.Item.ID]
		mm.Left++
		members[t.Item.ID] = mm
	}
	for _, t := range s.manager.Tray(tray.Right) {
		mm := members[t.Item.ID]
		mm.Right++
		members[t.Item.ID] = mm
	}
	return members
}

// onCount receives every recount of a frame's manager
func (m *Model) onCount(s *frameSession, c tray.Count) {
	if m.switcher != nil && m.switcher.IsActive(s.frame.ID) {
		m.footer.SetCount(c)
		m.syncTrayViews()
	}

	switch {
	case c.Full() && !s.full:
		s.full = true
		m.pending = append(m.pending, m.ShowFlashWarning(fmt.Sprintf("%s is full (%s)", s.frame.Title, c.Label())))
		if m.config.GetNotificationsEnabled() {
			title := s.frame.Title
			m.pending = append(m.pending, func() tea.Msg {
				if err := notification.CapacityReached(title, c.Count, c.Capacity); err != nil {
					logger.WithComponent("app").Warn("capacity notification failed", "error", err)
				}
				return nil
			})
		}
	case !c.Full():
		s.full = false
	}
}

// syncTrayViews copies the active frame's trays into the tray panel and
// the membership markers into the gallery
func (m *Model) syncTrayViews() {
	s := m.active()
	if s == nil {
		m.trays.SetTrays(nil, nil)
		m.gallery.SetMembership(nil)
		return
	}
	m.trays.SetTrays(s.manager.Tray(tray.Left), s.manager.Tray(tray.Right))
	m.gallery.SetMembership(s.membership())
}

// syncActiveFrame points every view at the visible frame
func (m *Model) syncActiveFrame() {
	var tabs []ui.Tab
	for _, f := range m.switcher.Frames() {
		tabs = append(tabs, ui.Tab{ID: f.ID, Title: f.Title, Active: m.switcher.IsActive(f.ID)})
	}
	m.header.SetTabs(tabs)

	s := m.active()
	if s == nil {
		m.gallery.SetContainer(nil)
		m.gallery.SetStatus("No frames configured", true)
		m.footer.ClearCount()
		m.syncTrayViews()
		return
	}

	m.gallery.SetTitle(s.frame.Title)
	m.gallery.SetContainer(s.container)
	switch {
	case s.loading:
		m.gallery.SetStatus("Loading "+s.frame.Catalog+"...", false)
		m.header.SetStatus("loading")
	case s.loadErr != nil:
		m.gallery.SetStatus(s.loadErr.Error(), true)
		m.header.SetStatus("")
	default:
		m.gallery.SetStatus("", false)
		m.header.SetStatus("")
	}

	m.trays.SetNames(s.frame.PrimaryTray, s.frame.SecondaryTray)
	m.search.SetValue(s.filter.Query())
	m.footer.SetCount(s.manager.Recount())
	m.syncTrayViews()
}

// showFrame switches the visible frame. Unknown IDs are logged and ignored.
func (m *Model) showFrame(id string) {
	if err := m.switcher.Show(id); err != nil {
		logger.WithComponent("app").Warn("frame switch failed", "frame", id, "error", err)
		return
	}
	m.leaveSearch(false)
	m.trays.SetFocused(false)
	m.focus = FocusGallery
	m.gallery.SetFocused(true)
	m.syncActiveFrame()
}

// cycleFrame moves delta frames forward or back, wrapping around
func (m *Model) cycleFrame(delta int) {
	frames := m.switcher.Frames()
	if len(frames) == 0 {
		return
	}
	current := 0
	for i, f := range frames {
		if m.switcher.IsActive(f.ID) {
			current = i
		}
	}
	next := ((current+delta)%len(frames) + len(frames)) % len(frames)
	m.showFrame(frames[next].ID)
}

// applyFilter filters the active frame's gallery by query
func (m *Model) applyFilter(query string) {
	s := m.active()
	if s == nil {
		return
	}
	visible := s.filter.Apply(query, s.container.Tiles())
	m.gallery.Refresh()
	logger.WithComponent("app").Debug("filter applied", "frame", s.frame.ID, "query", query, "visible", visible)
}

// adjustLayout recomputes the grid of every frame's container for the
// gallery's current inner width
func (m *Model) adjustLayout() {
	base, gutter := m.config.GetLayout()
	if base <= 0 {
		base = config.DefaultBaseTileWidth
	}
	if gutter < 0 || gutter >= base {
		gutter = config.DefaultGutter
	}

	containers := make([]*gallery.Container, 0, len(m.sessions))
	for _, f := range m.switcher.Frames() {
		s := m.sessions[f.ID]
		s.container.Width = m.gallery.InnerWidth()
		containers = append(containers, s.container)
	}
	layout.AdjustLayout(containers, base, gutter)
	m.gallery.Refresh()
}

// handleCatalogLoaded applies a load result to its own frame only
func (m *Model) handleCatalogLoaded(msg CatalogLoadedMsg) tea.Cmd {
	log := logger.WithFrame(msg.FrameID)
	if m.ctx.Err() != nil {
		log.Debug("dropping catalog result after close")
		return nil
	}
	s, ok := m.sessions[msg.FrameID]
	if !ok {
		log.Warn("catalog result for unknown frame")
		return nil
	}
	if msg.Gen != s.gen {
		log.Debug("dropping superseded catalog result", "gen", msg.Gen, "current", s.gen)
		return nil
	}

	s.loading = false
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	var cmd tea.Cmd
	if msg.Err != nil {
		s.loadErr = msg.Err
		s.items = nil
		s.renderer.Render(nil, s.container)
		if catalog.IsCanceled(msg.Err) {
			log.Info("catalog load canceled")
		} else {
			log.Error("catalog load failed", "error", msg.Err)
			cmd = m.ShowFlashError(fmt.Sprintf("Failed to load %s: %v", s.frame.Title, msg.Err))
		}
	} else {
		s.loadErr = nil
		s.items = msg.Items
		tiles := s.renderer.Render(msg.Items, s.container)
		if q := s.filter.Query(); q != "" {
			s.filter.Apply(q, tiles)
		}
		log.Info("catalog loaded", "items", len(msg.Items))
	}

	m.adjustLayout()
	if m.switcher.IsActive(s.frame.ID) {
		m.syncActiveFrame()
	}
	return cmd
}

// activateTile runs the tray interaction for t in the active frame
func (m *Model) activateTile(t *tray.Tile, button tray.Button) tea.Cmd {
	s := m.active()
	if s == nil || t == nil {
		return nil
	}
	action, _, err := s.manager.Activate(t, button)
	if err != nil {
		logger.WithComponent("app").Error("activate failed", "tile", t.ID, "error", err)
		return m.ShowFlashError(err.Error())
	}
	if action == tray.ActionAdded {
		m.gallery.SetCursorTile(t)
	}
	logger.WithComponent("app").Debug("tile activated", "item", t.Item.DisplayName, "action", action)
	return nil
}

// clearTrays empties both trays of the active frame
func (m *Model) clearTrays() tea.Cmd {
	s := m.active()
	if s == nil {
		return nil
	}
	removed := 0
	for _, id := range []tray.ID{tray.Left, tray.Right} {
		n, err := s.manager.Clear(id)
		if err != nil {
			return m.ShowFlashError(err.Error())
		}
		removed += n
	}
	if removed == 0 {
		return m.ShowFlashInfo("Trays are already empty")
	}
	return m.ShowFlashInfo(fmt.Sprintf("Removed %d cards", removed))
}
