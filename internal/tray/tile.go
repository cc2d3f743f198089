package tray

import (
	"github.com/google/uuid"
	"github.com/zhubert/cardtray/internal/catalog"
)

// ID names one of a manager's two trays.
type ID string

const (
	Left  ID = "left"  // tray A, filled by primary activation
	Right ID = "right" // tray B, filled by secondary activation
)

// Valid reports whether id names a tray.
func (id ID) Valid() bool {
	return id == Left || id == Right
}

// Kind tells a gallery source tile apart from a tray member.
type Kind int

const (
	KindSource Kind = iota
	KindMember
)

func (k Kind) String() string {
	if k == KindMember {
		return "member"
	}
	return "source"
}

// Tile is a rendered instance of a catalog item. Its Kind is fixed at
// creation; Tray is set only while a member sits in a tray.
type Tile struct {
	ID     string
	Item   catalog.Item
	Kind   Kind
	Tray   ID
	Origin string // source tile ID a member was cloned from
	Hidden bool   // set by the filter on source tiles
}

// NewSourceTile creates a gallery tile for item.
func NewSourceTile(item catalog.Item) *Tile {
	return &Tile{
		ID:   uuid.NewString(),
		Item: item,
		Kind: KindSource,
	}
}

// IsSource reports whether t is a gallery source tile.
func (t *Tile) IsSource() bool {
	return t != nil && t.Kind == KindSource
}

// InTray reports whether t is a member currently placed in a tray.
func (t *Tile) InTray() bool {
	return t != nil && t.Kind == KindMember && t.Tray != ""
}

func (t *Tile) clone(tray ID) *Tile {
	return &Tile{
		ID:     uuid.NewString(),
		Item:   t.Item,
		Kind:   KindMember,
		Tray:   tray,
		Origin: t.ID,
	}
}
