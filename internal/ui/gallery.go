package ui

// # Gallery Coordinate System
//
// The gallery panel is drawn with a one-cell border and a title line:
//
//	╭──────────────────────────────╮
//	│ Support Cards  12 shown      │  <- title line (panel y = 1)
//	│ (0,0) grid origin            │  <- first tile line (panel y = 2)
//	│                              │
//	╰──────────────────────────────╯
//
// Mouse events arrive in terminal coordinates. The app subtracts the panel
// origin, and TileAt subtracts the border and the title line, then adds the
// scroll offset to get grid-relative coordinates. A tile in column c starts at
// floor(c * innerWidth / columns) and spans CellWidth cells; the remaining
// cells up to the next column are gutter. Each row of tiles is RowStride
// lines tall, the last RowGap of which are blank.

import (
	"fmt"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/zhubert/cardtray/internal/gallery"
	"github.com/zhubert/cardtray/internal/layout"
	"github.com/zhubert/cardtray/internal/tray"
)

// PanelTitleHeight is the title line inside a bordered panel
const PanelTitleHeight = 1

// Membership counts how many clones of an item sit in each tray
type Membership struct {
	Left  int
	Right int
}

// GalleryView renders a container's visible tiles as a grid and maps panel
// coordinates back to tiles.
type GalleryView struct {
	title     string
	container *gallery.Container
	members   map[string]Membership // keyed by catalog item ID

	width, height int
	cursor        int // index into the visible tiles
	offset        int // first grid line shown
	focused       bool

	status      string
	statusIsErr bool
}

// NewGalleryView creates an empty gallery panel
func NewGalleryView() *GalleryView {
	return &GalleryView{focused: true}
}

// SetSize sets the outer panel size
func (g *GalleryView) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.scrollToCursor()
}

// InnerWidth is the width available to tiles, the width the layout is computed for
func (g *GalleryView) InnerWidth() int {
	return max(g.width-BorderSize, 0)
}

// gridHeight is the number of grid lines visible at once
func (g *GalleryView) gridHeight() int {
	return max(g.height-BorderSize-PanelTitleHeight, 0)
}

// SetTitle sets the panel title
func (g *GalleryView) SetTitle(title string) {
	g.title = title
}

// SetFocused sets whether the gallery draws its focused border and cursor
func (g *GalleryView) SetFocused(focused bool) {
	g.focused = focused
}

// SetContainer shows c, keeping the cursor in range
func (g *GalleryView) SetContainer(c *gallery.Container) {
	if g.container != c {
		g.cursor = 0
		g.offset = 0
	}
	g.container = c
	g.clampCursor()
}

// SetMembership updates the tray markers drawn on source tiles
func (g *GalleryView) SetMembership(members map[string]Membership) {
	g.members = members
}

// SetStatus shows text instead of the grid, e.g. while the catalog loads.
// An empty status shows the grid again.
func (g *GalleryView) SetStatus(status string, isErr bool) {
	g.status = status
	g.statusIsErr = isErr
}

// Refresh re-clamps the cursor after the visible tiles changed (filtering)
func (g *GalleryView) Refresh() {
	g.clampCursor()
}

func (g *GalleryView) grid() layout.Grid {
	if g.container == nil || g.container.Columns <= 0 {
		return layout.Grid{Columns: 1, TileWidth: float64(g.InnerWidth())}
	}
	return layout.Grid{Columns: g.container.Columns, TileWidth: g.container.TileWidth}
}

func (g *GalleryView) visible() []*tray.Tile {
	if g.container == nil {
		return nil
	}
	return g.container.Visible()
}

// columnStart returns the first cell of column col
func (g *GalleryView) columnStart(col int) int {
	cols := g.grid().Columns
	return col * g.InnerWidth() / cols
}

// Cursor returns the tile under the cursor, or nil when nothing is visible
func (g *GalleryView) Cursor() *tray.Tile {
	tiles := g.visible()
	if g.cursor < 0 || g.cursor >= len(tiles) {
		return nil
	}
	return tiles[g.cursor]
}

// CursorIndex returns the cursor position among the visible tiles
func (g *GalleryView) CursorIndex() int {
	return g.cursor
}

// MoveCursor moves the cursor by dx columns and dy rows, stopping at the edges
func (g *GalleryView) MoveCursor(dx, dy int) {
	cols := g.grid().Columns
	g.cursor += dx + dy*cols
	g.clampCursor()
}

// CursorHome moves the cursor to the first tile
func (g *GalleryView) CursorHome() {
	g.cursor = 0
	g.clampCursor()
}

// CursorEnd moves the cursor to the last tile
func (g *GalleryView) CursorEnd() {
	g.cursor = len(g.visible()) - 1
	g.clampCursor()
}

// PageRows is how many tile rows fit in the panel, at least one
func (g *GalleryView) PageRows() int {
	return max(g.gridHeight()/RowStride, 1)
}

// SetCursorTile moves the cursor onto t if it is visible
func (g *GalleryView) SetCursorTile(t *tray.Tile) bool {
	for i, v := range g.visible() {
		if v == t {
			g.cursor = i
			g.scrollToCursor()
			return true
		}
	}
	return false
}

func (g *GalleryView) clampCursor() {
	n := len(g.visible())
	if g.cursor >= n {
		g.cursor = n - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	g.scrollToCursor()
}

// scrollToCursor keeps the cursor row inside the visible lines
func (g *GalleryView) scrollToCursor() {
	h := g.gridHeight()
	if h <= 0 {
		return
	}
	row, _ := g.grid().Position(g.cursor)
	top := row * RowStride
	bottom := top + TileHeight
	if top < g.offset {
		g.offset = top
	}
	if bottom > g.offset+h {
		g.offset = bottom - h
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

// TileAt returns the visible tile at panel coordinates (x, y), or nil when
// the point falls on the border, the title, a gutter or a row gap.
func (g *GalleryView) TileAt(x, y int) *tray.Tile {
	if g.status != "" {
		return nil
	}
	gx := x - 1
	gy := y - 1 - PanelTitleHeight
	if gx < 0 || gy < 0 || gx >= g.InnerWidth() || gy >= g.gridHeight() {
		return nil
	}
	gy += g.offset

	if gy%RowStride >= TileHeight {
		return nil
	}
	row := gy / RowStride

	grid := g.grid()
	cellW := grid.CellWidth()
	for col := grid.Columns - 1; col >= 0; col-- {
		start := g.columnStart(col)
		if gx < start {
			continue
		}
		if gx >= start+cellW {
			return nil
		}
		index := row*grid.Columns + col
		tiles := g.visible()
		if index >= len(tiles) {
			return nil
		}
		return tiles[index]
	}
	return nil
}

// Monogram returns the first grapheme of the first two words of name,
// upper-cased, so "Kitasan Black" becomes "KB".
func Monogram(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(word, -1)
		b.WriteString(strings.ToUpper(cluster))
		if uniseg.GraphemeClusterCount(b.String()) == 2 {
			break
		}
	}
	return b.String()
}

// tileLines renders the TileHeight lines of one tile, each exactly width cells
func (g *GalleryView) tileLines(t *tray.Tile, width int) []string {
	head := TileMonogramStyle.Render(Monogram(t.Item.DisplayName))
	if m, ok := g.members[t.Item.ID]; ok {
		if m.Left > 0 {
			head += " " + TileMarkerLeftStyle.Render(fmt.Sprintf("●%d", m.Left))
		}
		if m.Right > 0 {
			head += " " + TileMarkerRightStyle.Render(fmt.Sprintf("●%d", m.Right))
		}
	}
	name := TileNameStyle.Render(ansi.Truncate(t.Item.DisplayName, width, "…"))
	return []string{fitCells(head, width), fitCells(name, width)}
}

// fitCells truncates or pads s to exactly width terminal cells
func fitCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// gridLines renders every tile row, including row gaps
func (g *GalleryView) gridLines() []string {
	tiles := g.visible()
	grid := g.grid()
	cellW := grid.CellWidth()
	rows := grid.Rows(len(tiles))
	innerW := g.InnerWidth()

	lines := make([]string, 0, rows*RowStride)
	for row := 0; row < rows; row++ {
		rowLines := make([]strings.Builder, TileHeight)
		cursorX := 0
		for col := 0; col < grid.Columns; col++ {
			index := row*grid.Columns + col
			if index >= len(tiles) {
				break
			}
			start := g.columnStart(col)
			tl := g.tileLines(tiles[index], min(cellW, innerW-start))
			for i := range rowLines {
				rowLines[i].WriteString(strings.Repeat(" ", max(start-cursorX, 0)))
				rowLines[i].WriteString(tl[i])
			}
			cursorX = start + min(cellW, innerW-start)
		}
		for i := range rowLines {
			lines = append(lines, rowLines[i].String())
		}
		for range RowGap {
			lines = append(lines, "")
		}
	}
	return lines
}

// cursorView paints the cursor tile's cells using an ultraviolet screen buffer
func (g *GalleryView) cursorView(view string, width, height int) string {
	if !g.focused || g.Cursor() == nil || width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	row, col := g.grid().Position(g.cursor)
	x0 := g.columnStart(col)
	x1 := min(x0+g.grid().CellWidth(), width)
	y0 := row*RowStride - g.offset

	bg := TileCursorStyle.GetBackground()
	fg := TileCursorStyle.GetForeground()
	for y := max(y0, 0); y < y0+TileHeight && y < height; y++ {
		for x := x0; x < x1; x++ {
			cell := scr.CellAt(x, y)
			if cell != nil {
				cell = cell.Clone()
				cell.Style.Bg = bg
				cell.Style.Fg = fg
				scr.SetCell(x, y, cell)
			}
		}
	}
	return scr.Render()
}

// View renders the gallery panel
func (g *GalleryView) View() string {
	innerW := g.InnerWidth()
	h := g.gridHeight()

	title := PanelTitleStyle.Render(g.title)
	if g.status == "" {
		title += StatusEmptyStyle.Render(fmt.Sprintf("%d shown", len(g.visible())))
	}

	var body string
	switch {
	case g.status != "" && g.statusIsErr:
		body = StatusErrorStyle.Render(ansi.Wrap(g.status, innerW, ""))
	case g.status != "":
		body = StatusLoadingStyle.Render(g.status)
	case len(g.visible()) == 0:
		body = StatusEmptyStyle.Render("No cards match")
	default:
		lines := g.gridLines()
		end := min(g.offset+h, len(lines))
		start := min(g.offset, end)
		body = g.cursorView(strings.Join(lines[start:end], "\n"), innerW, h)
	}

	content := fitCells(title, innerW) + "\n" + body
	style := PanelStyle
	if g.focused {
		style = PanelFocusedStyle
	}
	return style.
		Width(g.width).
		Height(g.height).
		MaxHeight(g.height).
		Render(content)
}
