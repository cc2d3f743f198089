package frame

import (
	"os"
	"testing"

	pErrors "github.com/zhubert/cardtray/internal/errors"
	"github.com/zhubert/cardtray/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

func newTestSwitcher() *Switcher {
	return NewSwitcher(
		Frame{ID: "cards", Title: "Support Cards"},
		Frame{ID: "catalog", Title: "Catalog"},
	)
}

func TestSwitcher_StartsOnFirstFrame(t *testing.T) {
	s := newTestSwitcher()

	if s.ActiveID() != "cards" {
		t.Errorf("Expected cards to be active, got %q", s.ActiveID())
	}
	if !s.IsActive("cards") || s.IsActive("catalog") {
		t.Error("Exactly the first frame should be active")
	}
}

func TestSwitcher_Show(t *testing.T) {
	s := newTestSwitcher()

	if err := s.Show("catalog"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	active := 0
	for _, f := range s.Frames() {
		if s.IsActive(f.ID) {
			active++
		}
	}
	if active != 1 || !s.IsActive("catalog") {
		t.Errorf("Expected only catalog active, got %d active", active)
	}

	// Showing the active frame again is allowed
	if err := s.Show("catalog"); err != nil {
		t.Errorf("Re-showing the active frame failed: %v", err)
	}
}

func TestSwitcher_ShowUnknown(t *testing.T) {
	s := newTestSwitcher()
	s.Show("catalog")

	err := s.Show("settings")
	if !pErrors.Is(err, pErrors.KindNotFound) {
		t.Errorf("Expected KindNotFound, got %v", err)
	}
	if s.ActiveID() != "catalog" {
		t.Errorf("Unknown frame should not change the active frame, got %q", s.ActiveID())
	}
}

func TestSwitcher_NextWraps(t *testing.T) {
	s := newTestSwitcher()

	if f := s.Next(); f.ID != "catalog" {
		t.Errorf("Expected catalog, got %q", f.ID)
	}
	if f := s.Next(); f.ID != "cards" {
		t.Errorf("Expected wrap to cards, got %q", f.ID)
	}
}

func TestSwitcher_ShowIndex(t *testing.T) {
	s := newTestSwitcher()

	if err := s.ShowIndex(1); err != nil || s.ActiveID() != "catalog" {
		t.Errorf("Expected catalog active, got %q (%v)", s.ActiveID(), err)
	}
	if err := s.ShowIndex(5); !pErrors.Is(err, pErrors.KindNotFound) {
		t.Errorf("Expected KindNotFound, got %v", err)
	}
}

func TestSwitcher_Empty(t *testing.T) {
	s := NewSwitcher()

	if _, ok := s.Active(); ok {
		t.Error("Empty switcher should have no active frame")
	}
	if s.IsActive("") {
		t.Error("Empty switcher should report nothing active")
	}
	if f := s.Next(); f.ID != "" {
		t.Errorf("Expected zero frame, got %+v", f)
	}
}
