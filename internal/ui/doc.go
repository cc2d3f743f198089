// Package ui provides the terminal components of the cardtray TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: frame tabs (1 line)                         │
//	│ Search line (1 line)                                │
//	├───────────────────────────────────┬─────────────────┤
//	│                                   │ Left tray       │
//	│   Gallery grid                    │                 │
//	│   (remaining width)               ├╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┤
//	│                                   │ Right tray      │
//	│                                   │ (1/3 width)     │
//	├───────────────────────────────────┴─────────────────┤
//	│ Footer: bindings or flash, count and percentage     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: singleton holding the layout calculations. All size
// calculations go through it.
//
// Header: one tab per frame with the active one highlighted. TabAt maps a
// click column back to a frame ID.
//
// GalleryView: the source tiles of the active frame laid out by the grid the
// layout package computed for the panel's inner width. TileAt maps panel
// coordinates to a tile; the cursor tile is painted with ultraviolet.
//
// TrayView: both trays as numbered lists. TileAt maps a click to a member.
//
// SearchBar: bubbles textinput feeding the frame's filter on every key.
//
// Footer: key bindings, transient flash messages, and the "current/maximum"
// count with its percentage.
//
// Preview: a viewport overlay with the chroma-highlighted export.
//
// # Styles
//
// Styles are derived from the active Theme in styles.go and rebuilt by
// SetTheme. FormTheme adapts the palette for huh forms.
package ui
