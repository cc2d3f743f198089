package ui

import (
	"sync"

	"github.com/zhubert/cardtray/internal/logger"
)

// ViewContext holds centralized layout calculations and provides debug logging.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	SearchHeight  int
	FooterHeight  int
	ContentHeight int
	ContentTop    int // first terminal row of the panels
	GalleryWidth  int
	TrayWidth     int

	mu sync.Mutex
}

// Global view context instance
var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			SearchHeight: SearchHeight,
			FooterHeight: FooterHeight,
			ContentTop:   HeaderHeight + SearchHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Validate dimensions to prevent negative layout values
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height

	v.HeaderHeight = HeaderHeight
	v.SearchHeight = SearchHeight
	v.FooterHeight = FooterHeight
	v.ContentTop = v.HeaderHeight + v.SearchHeight

	// Content area is everything between the search line and footer
	v.ContentHeight = height - v.ContentTop - v.FooterHeight

	v.TrayWidth = max(width/TrayPanelRatio, MinTrayPanelWidth)
	v.GalleryWidth = width - v.TrayWidth

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"galleryWidth", v.GalleryWidth,
		"trayWidth", v.TrayWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
