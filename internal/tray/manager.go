// Package tray keeps the two selection trays of a gallery and the running
// count of what has been picked into them.
//
// A Manager owns the trays of one frame. Source tiles are registered with it
// by the gallery renderer; activating a source clones it into a tray, and
// activating a clone removes it again. Every mutation recounts both trays
// from scratch and publishes the result to subscribers.
package tray

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	pErrors "github.com/zhubert/cardtray/internal/errors"
	"github.com/zhubert/cardtray/internal/logger"
)

// DefaultCapacity is used when a manager is created with a non-positive capacity.
const DefaultCapacity = 200

// Button is the kind of activation a tile received.
type Button int

const (
	Primary   Button = iota // left click or enter
	Secondary               // right click or x
)

// Action is what an activation did.
type Action int

const (
	ActionNone Action = iota
	ActionAdded
	ActionRemoved
)

func (a Action) String() string {
	switch a {
	case ActionAdded:
		return "added"
	case ActionRemoved:
		return "removed"
	default:
		return "none"
	}
}

// Manager owns two trays, the tile registry and the count subscribers.
type Manager struct {
	mu       sync.Mutex
	name     string
	capacity int
	trays    map[ID][]*Tile
	registry map[string]*Tile
	subs     map[int]func(Count)
	nextSub  int
	log      *slog.Logger
}

// NewManager creates a manager for the named frame.
func NewManager(name string, capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		name:     name,
		capacity: capacity,
		trays: map[ID][]*Tile{
			Left:  {},
			Right: {},
		},
		registry: make(map[string]*Tile),
		subs:     make(map[int]func(Count)),
		log:      logger.WithComponent("tray").With("frame", name),
	}
}

// Name returns the frame name the manager was created for.
func (m *Manager) Name() string {
	return m.name
}

// Capacity returns the combined capacity of both trays.
func (m *Manager) Capacity() int {
	return m.capacity
}

// Register makes a tile resolvable by ID.
func (m *Manager) Register(t *Tile) {
	if t == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry[t.ID] = t
}

// Unregister forgets a source tile. Tray members are only forgotten by removal.
func (m *Manager) Unregister(t *Tile) {
	if t == nil || t.Kind != KindSource {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.registry, t.ID)
}

// Resolve looks up a registered tile.
func (m *Manager) Resolve(id string) (*Tile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.registry[id]
	return t, ok
}

// AddToTray clones source into tray and returns the clone. The source is
// left untouched and may be added any number of times.
func (m *Manager) AddToTray(source *Tile, tray ID) (*Tile, error) {
	if source == nil {
		return nil, pErrors.E(pErrors.Op("tray.AddToTray"), pErrors.KindInvalid, "nil tile")
	}
	if !source.IsSource() {
		return nil, pErrors.NotSourceTile(source.ID)
	}
	if !tray.Valid() {
		return nil, pErrors.TrayNotFound(string(tray))
	}

	m.mu.Lock()
	member := source.clone(tray)
	m.trays[tray] = append(m.trays[tray], member)
	m.registry[member.ID] = member
	count := m.recountLocked()
	m.mu.Unlock()

	m.log.Debug("tile added", "item", source.Item.DisplayName, "tray", tray, "count", count.Count)
	m.publish(count)
	return member, nil
}

// RemoveFromTray detaches a member from its tray. Removing a tile that is
// not in a tray does nothing and returns false; no recount happens.
func (m *Manager) RemoveFromTray(t *Tile) bool {
	m.mu.Lock()
	if !t.InTray() {
		m.mu.Unlock()
		return false
	}
	tiles := m.trays[t.Tray]
	idx := -1
	for i, member := range tiles {
		if member == t {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	from := t.Tray
	m.trays[from] = append(tiles[:idx:idx], tiles[idx+1:]...)
	delete(m.registry, t.ID)
	t.Tray = ""
	count := m.recountLocked()
	m.mu.Unlock()

	m.log.Debug("tile removed", "item", t.Item.DisplayName, "tray", from, "count", count.Count)
	m.publish(count)
	return true
}

// Activate applies the interaction policy: a source tile is cloned into the
// left tray on Primary and the right tray on Secondary; a tray member is
// removed whatever the button.
func (m *Manager) Activate(t *Tile, button Button) (Action, *Tile, error) {
	if t == nil {
		return ActionNone, nil, pErrors.E(pErrors.Op("tray.Activate"), pErrors.KindInvalid, "nil tile")
	}

	if t.Kind == KindMember {
		if m.RemoveFromTray(t) {
			return ActionRemoved, t, nil
		}
		return ActionNone, t, nil
	}

	target := Left
	if button == Secondary {
		target = Right
	}
	member, err := m.AddToTray(t, target)
	if err != nil {
		return ActionNone, nil, err
	}
	return ActionAdded, member, nil
}

// Clear empties one tray with a single recount. Returns how many tiles were removed.
func (m *Manager) Clear(tray ID) (int, error) {
	if !tray.Valid() {
		return 0, pErrors.E(pErrors.Op("tray.Clear"), pErrors.KindInvalid, fmt.Sprintf("tray %q does not exist", tray))
	}

	m.mu.Lock()
	tiles := m.trays[tray]
	if len(tiles) == 0 {
		m.mu.Unlock()
		return 0, nil
	}
	for _, t := range tiles {
		delete(m.registry, t.ID)
		t.Tray = ""
	}
	m.trays[tray] = []*Tile{}
	count := m.recountLocked()
	m.mu.Unlock()

	m.log.Info("tray cleared", "tray", tray, "removed", len(tiles))
	m.publish(count)
	return len(tiles), nil
}

// Recount computes the aggregate count from the current tray contents.
func (m *Manager) Recount() Count {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recountLocked()
}

func (m *Manager) recountLocked() Count {
	return newCount(len(m.trays[Left])+len(m.trays[Right]), m.capacity)
}

// Refresh republishes the current count without mutating anything.
func (m *Manager) Refresh() Count {
	count := m.Recount()
	m.publish(count)
	return count
}

// Tray returns a copy of a tray's tiles in insertion order.
func (m *Manager) Tray(tray ID) []*Tile {
	m.mu.Lock()
	defer m.mu.Unlock()

	tiles := make([]*Tile, len(m.trays[tray]))
	copy(tiles, m.trays[tray])
	return tiles
}

// Len returns the number of tiles in a tray.
func (m *Manager) Len(tray ID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.trays[tray])
}

// Subscribe registers fn to receive the count after every mutation and
// refresh. The returned func unsubscribes.
func (m *Manager) Subscribe(fn func(Count)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// publish calls subscribers in subscription order, outside the lock.
func (m *Manager) publish(count Count) {
	m.mu.Lock()
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Count), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.subs[id])
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(count)
	}
}
