// Package gallery turns catalog items into source tiles and filters them.
package gallery

import (
	"github.com/zhubert/cardtray/internal/catalog"
	"github.com/zhubert/cardtray/internal/logger"
	"github.com/zhubert/cardtray/internal/tray"
)

// Container holds the tiles rendered for one panel together with the
// layout computed for its current width.
type Container struct {
	ID        string
	Width     int
	Columns   int
	TileWidth float64

	tiles []*tray.Tile
}

// NewContainer creates an empty container.
func NewContainer(id string) *Container {
	return &Container{ID: id}
}

// Tiles returns the container's tiles in render order.
func (c *Container) Tiles() []*tray.Tile {
	return c.tiles
}

// Visible returns the tiles the filter has not hidden.
func (c *Container) Visible() []*tray.Tile {
	visible := make([]*tray.Tile, 0, len(c.tiles))
	for _, t := range c.tiles {
		if !t.Hidden {
			visible = append(visible, t)
		}
	}
	return visible
}

// Len returns the number of tiles in the container.
func (c *Container) Len() int {
	return len(c.tiles)
}

// Renderer creates source tiles and registers them with a tray manager.
type Renderer struct {
	manager *tray.Manager
}

// NewRenderer creates a renderer bound to manager.
func NewRenderer(manager *tray.Manager) *Renderer {
	return &Renderer{manager: manager}
}

// Render replaces target's tiles with one source tile per item. Rendering
// the same items again yields fresh tiles; the previous ones are
// unregistered.
func (r *Renderer) Render(items []catalog.Item, target *Container) []*tray.Tile {
	for _, old := range target.tiles {
		r.manager.Unregister(old)
	}

	tiles := make([]*tray.Tile, len(items))
	for i, item := range items {
		t := tray.NewSourceTile(item)
		r.manager.Register(t)
		tiles[i] = t
	}
	target.tiles = tiles

	logger.WithComponent("gallery").Debug("rendered", "container", target.ID, "tiles", len(tiles))
	return tiles
}
