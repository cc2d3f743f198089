package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/cardtray/internal/catalog"
	"github.com/zhubert/cardtray/internal/config"
	"github.com/zhubert/cardtray/internal/frame"
	"github.com/zhubert/cardtray/internal/logger"
	"github.com/zhubert/cardtray/internal/tray"
	"github.com/zhubert/cardtray/internal/ui"
)

// Focus represents which part of the screen receives navigation keys
type Focus int

const (
	FocusGallery Focus = iota
	FocusTrays
	FocusSearch
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusGallery:
		return "Gallery"
	case FocusTrays:
		return "Trays"
	case FocusSearch:
		return "Search"
	default:
		return "Unknown"
	}
}

// CatalogLoader fetches the items of one catalog source
type CatalogLoader interface {
	Load(ctx context.Context, source string) ([]catalog.Item, error)
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	loader  CatalogLoader
	now     func() time.Time

	header  *ui.Header
	footer  *ui.Footer
	gallery *ui.GalleryView
	trays   *ui.TrayView
	search  *ui.SearchBar
	preview *ui.Preview

	switcher *frame.Switcher
	sessions map[string]*frameSession

	width    int
	height   int
	focus    Focus
	quitting bool

	// ctx is cancelled by Close; catalog loads derive from it
	ctx    context.Context
	cancel context.CancelFunc

	// pending collects commands queued by tray subscribers during Update
	pending []tea.Cmd
}

// CatalogLoadedMsg is sent when a frame's catalog load finishes
type CatalogLoadedMsg struct {
	FrameID string
	Gen     int // load generation of the frame; older generations are dropped
	Items   []catalog.Item
	Err     error
}

// ExportDoneMsg is sent when a selection export has been written
type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}

// ClipboardResultMsg is sent after a native clipboard write
type ClipboardResultMsg struct {
	What string
	Err  error
}

// Option configures a Model
type Option func(*Model)

// WithLoader replaces the catalog loader
func WithLoader(l CatalogLoader) Option {
	return func(m *Model) { m.loader = l }
}

// WithClock replaces the clock used for export timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates a new app model with one session per configured frame
func New(cfg *config.Config, version string, opts ...Option) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		config:   cfg,
		version:  version,
		loader:   catalog.NewLoader(),
		now:      time.Now,
		header:   ui.NewHeader(),
		footer:   ui.NewFooter(),
		gallery:  ui.NewGalleryView(),
		trays:    ui.NewTrayView(),
		search:   ui.NewSearchBar(),
		preview:  ui.NewPreview(),
		sessions: make(map[string]*frameSession),
		focus:    FocusGallery,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(m)
	}

	var frames []frame.Frame
	for _, f := range cfg.GetFrames() {
		s := newFrameSession(f)
		s.unsubscribe = s.manager.Subscribe(func(c tray.Count) { m.onCount(s, c) })
		m.sessions[f.ID] = s
		frames = append(frames, frame.Frame{ID: f.ID, Title: f.Title})
	}
	m.switcher = frame.NewSwitcher(frames...)

	m.syncActiveFrame()
	return m
}

// Init starts loading every frame's catalog
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, f := range m.switcher.Frames() {
		cmds = append(cmds, m.loadCatalog(m.sessions[f.ID]))
	}
	return tea.Batch(cmds...)
}

// Close cancels in-flight loads and detaches tray subscribers. Results that
// arrive afterwards are dropped.
func (m *Model) Close() {
	m.cancel()
	for _, s := range m.sessions {
		if s.unsubscribe != nil {
			s.unsubscribe()
			s.unsubscribe = nil
		}
	}
	logger.WithComponent("app").Debug("model closed")
}

// Focus returns the current focus
func (m *Model) Focus() Focus {
	return m.focus
}

// active returns the session of the visible frame
func (m *Model) active() *frameSession {
	return m.sessions[m.switcher.ActiveID()]
}

// loadCatalog marks s as loading and returns the command that fetches it
func (m *Model) loadCatalog(s *frameSession) tea.Cmd {
	if s == nil {
		return nil
	}
	s.loading = true
	s.loadErr = nil
	if m.switcher != nil && m.switcher.IsActive(s.frame.ID) {
		m.syncActiveFrame()
	}

	// A newer load supersedes the one in flight
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	s.cancelLoad = cancel
	s.gen++

	loader, frameID, source, gen := m.loader, s.frame.ID, s.frame.Catalog, s.gen
	logger.WithComponent("app").Info("loading catalog", "frame", frameID, "source", source, "gen", gen)
	return func() tea.Msg {
		items, err := loader.Load(ctx, source)
		return CatalogLoadedMsg{FrameID: frameID, Gen: gen, Items: items, Err: err}
	}
}
