// Package layout fits tiles into columns for a given container width.
package layout

import (
	"math"

	"github.com/zhubert/cardtray/internal/gallery"
)

// Grid is the column layout for one container width.
type Grid struct {
	Columns   int
	TileWidth float64
}

// Compute returns the grid for width: as many baseTileWidth columns as fit
// (at least one), each tile taking its share of the width minus gutter.
func Compute(width, baseTileWidth, gutter int) Grid {
	cols := 1
	if baseTileWidth > 0 {
		cols = int(math.Max(1, math.Floor(float64(width)/float64(baseTileWidth))))
	}
	tileWidth := float64(width)/float64(cols) - float64(gutter)
	if tileWidth < 0 {
		tileWidth = 0
	}
	return Grid{Columns: cols, TileWidth: tileWidth}
}

// CellWidth is the tile width rounded down to whole terminal cells, never
// less than one.
func (g Grid) CellWidth() int {
	if w := int(g.TileWidth); w > 0 {
		return w
	}
	return 1
}

// Rows returns how many rows n tiles occupy.
func (g Grid) Rows(n int) int {
	if n <= 0 || g.Columns <= 0 {
		return 0
	}
	return (n + g.Columns - 1) / g.Columns
}

// Position returns the row and column of the tile at index.
func (g Grid) Position(index int) (row, col int) {
	if g.Columns <= 0 {
		return index, 0
	}
	return index / g.Columns, index % g.Columns
}

// AdjustLayout recomputes the grid of every container from its current
// width. It keeps no state of its own; calling it twice is harmless.
func AdjustLayout(containers []*gallery.Container, baseTileWidth, gutter int) {
	for _, c := range containers {
		if c == nil {
			continue
		}
		g := Compute(c.Width, baseTileWidth, gutter)
		c.Columns = g.Columns
		c.TileWidth = g.TileWidth
	}
}
