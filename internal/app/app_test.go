package app

import (
	"os"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/cardtray/internal/config"
	"github.com/zhubert/cardtray/internal/ui"
)

func TestNew_DefaultThemeInitialization(t *testing.T) {
	ui.SetTheme(ui.DefaultTheme)

	_ = New(testConfig(t), "test-version")

	currentTheme := ui.CurrentTheme()
	if currentTheme.Name != "Dark Purple" {
		t.Errorf("Expected default theme to be Dark Purple, got %s", currentTheme.Name)
	}
}

func TestNew_SavedThemeInitialization(t *testing.T) {
	t.Cleanup(func() { ui.SetTheme(ui.DefaultTheme) })

	cfg := testConfig(t)
	cfg.SetTheme(string(ui.ThemeNord))

	_ = New(cfg, "test-version")

	currentTheme := ui.CurrentTheme()
	if currentTheme.Name != "Nord" {
		t.Errorf("Expected theme to be Nord, got %s", currentTheme.Name)
	}
}

func TestNew_OneSessionPerFrame(t *testing.T) {
	cfg := testConfig(t)
	m := New(cfg, "test-version")
	defer m.Close()

	frames := cfg.GetFrames()
	if len(m.sessions) != len(frames) {
		t.Fatalf("Expected %d sessions, got %d", len(frames), len(m.sessions))
	}
	for _, f := range frames {
		s, ok := m.sessions[f.ID]
		if !ok {
			t.Errorf("Expected a session for frame %q", f.ID)
			continue
		}
		if got := s.manager.Capacity(); got != config.DefaultCapacity {
			t.Errorf("Frame %q: expected capacity %d, got %d", f.ID, config.DefaultCapacity, got)
		}
	}
	if got := m.switcher.ActiveID(); got != frames[0].ID {
		t.Errorf("Expected first frame %q to be active, got %q", frames[0].ID, got)
	}
}

func TestInit_LoadsEveryFrame(t *testing.T) {
	loader := newFakeLoader()
	m := testModel(t, testConfig(t), loader)

	for _, s := range m.sessions {
		if s.loading {
			t.Errorf("Expected frame %q not to be loading before Init", s.frame.ID)
		}
	}

	cmd := m.Init()
	if !m.sessions["cards"].loading || !m.sessions["catalog"].loading {
		t.Error("Expected every frame to be loading after Init")
	}

	deliver(m, cmd)
	if len(loader.calls) != 2 {
		t.Errorf("Expected 2 loads, got %d", len(loader.calls))
	}
	for _, s := range m.sessions {
		if s.loading {
			t.Errorf("Expected frame %q to finish loading", s.frame.ID)
		}
	}
}

func TestView_ShowsLoadingUntilSized(t *testing.T) {
	m := New(testConfig(t), "test-version")
	defer m.Close()

	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("Expected Loading..., got %q", got)
	}

	v := m.View()
	if !v.AltScreen {
		t.Error("Expected alt screen")
	}
	if v.MouseMode != tea.MouseModeCellMotion {
		t.Error("Expected cell motion mouse mode")
	}
}

func TestView_RendersPanels(t *testing.T) {
	loader := newFakeLoader()
	loader.items["support_cards.json"] = testItems("Kitasan Black", "Satono Diamond")
	m := loadedModel(t, loader)

	view := m.RenderToString()
	for _, want := range []string{"cardtray", "Support Cards", "Kitasan Black", "Left (0)", "Right (0)", "0/200"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestUpdate_ResizeRecomputesLayout(t *testing.T) {
	loader := newFakeLoader()
	loader.items["support_cards.json"] = testItems("A", "B", "C")
	m := loadedModel(t, loader)

	for id, s := range m.sessions {
		if s.container.Columns != 3 {
			t.Errorf("Frame %q: expected 3 columns at %d cells, got %d", id, testWidth, s.container.Columns)
		}
		if s.container.TileWidth != 24 {
			t.Errorf("Frame %q: expected tile width 24, got %v", id, s.container.TileWidth)
		}
	}

	// 60 wide leaves a 36 cell gallery, 34 inside the border
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	for id, s := range m.sessions {
		if s.container.Width != 34 {
			t.Errorf("Frame %q: expected width 34, got %d", id, s.container.Width)
		}
		if s.container.Columns != 1 {
			t.Errorf("Frame %q: expected 1 column, got %d", id, s.container.Columns)
		}
		if s.container.TileWidth != 32 {
			t.Errorf("Frame %q: expected tile width 32, got %v", id, s.container.TileWidth)
		}
	}
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := loadedModel(t, newFakeLoader())

	if !hasQuit(press(m, "ctrl+c")) {
		t.Error("Expected ctrl+c to quit")
	}
}

func TestUpdate_ExportDone(t *testing.T) {
	m := loadedModel(t, newFakeLoader())

	m.Update(ExportDoneMsg{Path: "out.json", Count: 3})
	if !m.footer.HasFlash() {
		t.Error("Expected a success flash")
	}

	m.footer.ClearFlash()
	m.Update(ExportDoneMsg{Err: os.ErrPermission})
	if !m.footer.HasFlash() {
		t.Error("Expected an error flash")
	}
}

func TestUpdate_FlashTickClearsExpired(t *testing.T) {
	m := loadedModel(t, newFakeLoader())

	m.footer.SetFlashWithDuration("gone", ui.FlashInfo, 0)
	m.Update(ui.FlashTickMsg{})
	if m.footer.HasFlash() {
		t.Error("Expected the expired flash to be cleared")
	}
}

func TestFocus_String(t *testing.T) {
	tests := []struct {
		focus Focus
		want  string
	}{
		{FocusGallery, "Gallery"},
		{FocusTrays, "Trays"},
		{FocusSearch, "Search"},
		{Focus(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.focus.String(); got != tt.want {
			t.Errorf("Focus(%d).String() = %q, want %q", tt.focus, got, tt.want)
		}
	}
}
