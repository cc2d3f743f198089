// Package frame tracks which top-level panel is showing.
package frame

import (
	pErrors "github.com/zhubert/cardtray/internal/errors"
	"github.com/zhubert/cardtray/internal/logger"
)

// Frame is one selectable panel.
type Frame struct {
	ID    string
	Title string
}

// Switcher holds a fixed set of frames with exactly one active.
type Switcher struct {
	frames []Frame
	active int
}

// NewSwitcher creates a switcher over frames; the first frame starts active.
func NewSwitcher(frames ...Frame) *Switcher {
	return &Switcher{frames: frames}
}

// Frames returns the frames in display order.
func (s *Switcher) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Active returns the visible frame. ok is false only when there are no frames.
func (s *Switcher) Active() (f Frame, ok bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[s.active], true
}

// ActiveID returns the ID of the visible frame, or "" when there are none.
func (s *Switcher) ActiveID() string {
	f, _ := s.Active()
	return f.ID
}

// IsActive reports whether id is the visible frame.
func (s *Switcher) IsActive(id string) bool {
	f, ok := s.Active()
	return ok && f.ID == id
}

// Show makes id the visible frame. An unknown id leaves the state unchanged.
func (s *Switcher) Show(id string) error {
	for i, f := range s.frames {
		if f.ID == id {
			if i != s.active {
				logger.WithComponent("frame").Debug("frame shown", "from", s.frames[s.active].ID, "to", id)
			}
			s.active = i
			return nil
		}
	}
	return pErrors.FrameNotFound(id)
}

// Next shows the frame after the active one, wrapping around, and returns it.
func (s *Switcher) Next() Frame {
	if len(s.frames) == 0 {
		return Frame{}
	}
	s.active = (s.active + 1) % len(s.frames)
	return s.frames[s.active]
}

// ShowIndex shows the frame at position i (0-based).
func (s *Switcher) ShowIndex(i int) error {
	if i < 0 || i >= len(s.frames) {
		return pErrors.E(pErrors.Op("frame.ShowIndex"), pErrors.KindNotFound, "no frame at that position")
	}
	return s.Show(s.frames[i].ID)
}
