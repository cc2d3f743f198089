package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zhubert/cardtray/internal/tray"
)

// indexWidth is the "NNN " prefix before each member name
const indexWidth = 4

// TrayView renders both trays of a frame stacked vertically, left tray on top.
type TrayView struct {
	width, height int
	names         map[tray.ID]string
	members       map[tray.ID][]*tray.Tile
	offsets       map[tray.ID]int

	focused    bool
	cursorTray tray.ID
	cursor     int
}

// NewTrayView creates an empty tray panel
func NewTrayView() *TrayView {
	return &TrayView{
		names:      map[tray.ID]string{tray.Left: "Left", tray.Right: "Right"},
		members:    map[tray.ID][]*tray.Tile{},
		offsets:    map[tray.ID]int{},
		cursorTray: tray.Left,
	}
}

// SetSize sets the outer panel size
func (v *TrayView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampOffsets()
	v.scrollToCursor()
}

// SetNames sets the labels of the two trays; empty labels keep the defaults
func (v *TrayView) SetNames(left, right string) {
	if left != "" {
		v.names[tray.Left] = left
	}
	if right != "" {
		v.names[tray.Right] = right
	}
}

// Name returns the label of a tray
func (v *TrayView) Name(id tray.ID) string {
	return v.names[id]
}

// Names returns both labels keyed by tray
func (v *TrayView) Names() map[tray.ID]string {
	return map[tray.ID]string{tray.Left: v.names[tray.Left], tray.Right: v.names[tray.Right]}
}

// SetTrays replaces the members shown in each tray
func (v *TrayView) SetTrays(left, right []*tray.Tile) {
	v.members[tray.Left] = left
	v.members[tray.Right] = right
	v.clampOffsets()
	v.clampCursor()
}

// SetFocused sets whether keyboard navigation happens in the tray panel
func (v *TrayView) SetFocused(focused bool) {
	v.focused = focused
	if focused {
		v.clampCursor()
	}
}

// IsFocused reports whether the tray panel has focus
func (v *TrayView) IsFocused() bool {
	return v.focused
}

// SwitchTray moves the cursor to the other tray
func (v *TrayView) SwitchTray() {
	if v.cursorTray == tray.Left {
		v.cursorTray = tray.Right
	} else {
		v.cursorTray = tray.Left
	}
	v.clampCursor()
}

// CursorTray returns the tray the cursor is in
func (v *TrayView) CursorTray() tray.ID {
	return v.cursorTray
}

// MoveCursor moves the cursor within its tray
func (v *TrayView) MoveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

// Cursor returns the member under the cursor, or nil if the tray is empty
func (v *TrayView) Cursor() *tray.Tile {
	tiles := v.members[v.cursorTray]
	if v.cursor < 0 || v.cursor >= len(tiles) {
		return nil
	}
	return tiles[v.cursor]
}

func (v *TrayView) clampCursor() {
	n := len(v.members[v.cursorTray])
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.scrollToCursor()
}

// sectionHeights splits the inner height between the two trays
func (v *TrayView) sectionHeights() (left, right int) {
	inner := max(v.height-BorderSize, 0)
	left = inner / 2
	return left, inner - left
}

// sectionTop returns the panel row of a tray's title line
func (v *TrayView) sectionTop(id tray.ID) int {
	if id == tray.Left {
		return 1
	}
	left, _ := v.sectionHeights()
	return 1 + left
}

// visibleRows is how many members fit below a tray's title line
func (v *TrayView) visibleRows(id tray.ID) int {
	left, right := v.sectionHeights()
	if id == tray.Left {
		return max(left-1, 0)
	}
	return max(right-1, 0)
}

// clampOffsets keeps each tray's last page full so shrinking a tray never
// scrolls its members out of view
func (v *TrayView) clampOffsets() {
	for _, id := range []tray.ID{tray.Left, tray.Right} {
		limit := max(len(v.members[id])-v.visibleRows(id), 0)
		v.offsets[id] = max(min(v.offsets[id], limit), 0)
	}
}

func (v *TrayView) scrollToCursor() {
	rows := v.visibleRows(v.cursorTray)
	if rows <= 0 {
		return
	}
	off := v.offsets[v.cursorTray]
	if v.cursor < off {
		off = v.cursor
	}
	if v.cursor >= off+rows {
		off = v.cursor - rows + 1
	}
	v.offsets[v.cursorTray] = max(off, 0)
}

// TileAt returns the tray member at panel coordinates (x, y), or nil.
func (v *TrayView) TileAt(x, y int) *tray.Tile {
	if x < 1 || x > v.width-2 {
		return nil
	}
	for _, id := range []tray.ID{tray.Left, tray.Right} {
		row := y - v.sectionTop(id) - 1
		if row < 0 || row >= v.visibleRows(id) {
			continue
		}
		index := v.offsets[id] + row
		tiles := v.members[id]
		if index < len(tiles) {
			return tiles[index]
		}
		return nil
	}
	return nil
}

// memberLine renders one member as "  1 Name" padded to width cells
func memberLine(i int, t *tray.Tile, width int) string {
	nameWidth := width - indexWidth
	if nameWidth <= 0 {
		return runewidth.FillRight(fmt.Sprintf("%3d", i+1), max(width, 0))
	}
	name := runewidth.Truncate(t.Item.DisplayName, nameWidth, "…")
	return TrayIndexStyle.Render(fmt.Sprintf("%3d ", i+1)) + TrayItemStyle.Render(runewidth.FillRight(name, nameWidth))
}

func (v *TrayView) section(id tray.ID, innerW int) []string {
	titleStyle := TrayLeftTitleStyle
	if id == tray.Right {
		titleStyle = TrayRightTitleStyle
	}
	tiles := v.members[id]
	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", v.names[id], len(tiles)))}

	rows := v.visibleRows(id)
	off := v.offsets[id]
	for i := off; i < len(tiles) && i < off+rows; i++ {
		line := memberLine(i, tiles[i], innerW)
		if v.focused && id == v.cursorTray && i == v.cursor {
			line = TileCursorStyle.Render(runewidth.FillRight(fmt.Sprintf("%3d %s", i+1,
				runewidth.Truncate(tiles[i].Item.DisplayName, max(innerW-indexWidth, 0), "…")), innerW))
		}
		lines = append(lines, line)
	}
	if len(tiles) == 0 && rows > 0 {
		lines = append(lines, StatusEmptyStyle.Render("empty"))
	}
	for len(lines) < rows+1 {
		lines = append(lines, "")
	}
	return lines
}

// View renders the tray panel
func (v *TrayView) View() string {
	innerW := max(v.width-BorderSize, 0)
	lines := append(v.section(tray.Left, innerW), v.section(tray.Right, innerW)...)

	style := PanelStyle
	if v.focused {
		style = PanelFocusedStyle
	}
	return style.
		Width(v.width).
		Height(v.height).
		MaxHeight(v.height).
		Render(strings.Join(lines, "\n"))
}
