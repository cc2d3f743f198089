package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the frame tab bar in lines
	HeaderHeight = 1

	// SearchHeight is the height of the search line below the header
	SearchHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TrayPanelRatio is the denominator for the tray panel width (1/3 of total width)
	TrayPanelRatio = 3

	// MinTrayPanelWidth keeps tray labels readable on narrow terminals
	MinTrayPanelWidth = 24

	// MinTerminalWidth and MinTerminalHeight bound the layout from below
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Tile geometry inside the gallery grid, in terminal cells
const (
	// TileHeight is the number of lines one tile occupies
	TileHeight = 2

	// RowGap is the blank line between tile rows
	RowGap = 1

	// RowStride is the distance between the tops of two tile rows
	RowStride = TileHeight + RowGap
)

// Preview overlay dimensions
const (
	PreviewWidth  = 72
	PreviewHeight = 24
)

// SearchCharLimit bounds the filter query length
const SearchCharLimit = 64
