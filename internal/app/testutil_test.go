package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/cardtray/internal/catalog"
	"github.com/zhubert/cardtray/internal/config"
	pErrors "github.com/zhubert/cardtray/internal/errors"
	"github.com/zhubert/cardtray/internal/keys"
	"github.com/zhubert/cardtray/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	os.Exit(m.Run())
}

// Terminal coordinates of tiles for a 120x40 terminal with the default
// layout: the gallery is 80 wide (78 inner, 3 columns of 24 cells starting
// at 0, 26 and 52) and the panels start on row 2.
const (
	testWidth  = 120
	testHeight = 40

	firstTileRow  = 4  // content top + border + title line
	tileColumn0   = 1  // border + column start
	tileColumn1   = 27 // border + 26
	tileColumn2   = 53 // border + 52
	trayColumn    = 82 // inside the tray panel border
	leftTrayRow   = 4  // first member below the left tray title
	rightTrayRow  = 21 // first member below the right tray title
	gutterColumn  = 25 // between column 0 and column 1
	rowGapRow     = 6  // blank line after the first tile row
	secondTileRow = 7
)

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// fakeLoader serves catalogs from memory keyed by source
type fakeLoader struct {
	mu    sync.Mutex
	items map[string][]catalog.Item
	errs  map[string]error
	calls []string
	gate  chan struct{} // when set, Load blocks until it is closed or ctx ends
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		items: make(map[string][]catalog.Item),
		errs:  make(map[string]error),
	}
}

func (f *fakeLoader) Load(ctx context.Context, source string) ([]catalog.Item, error) {
	f.mu.Lock()
	f.calls = append(f.calls, source)
	gate := f.gate
	items, err := f.items[source], f.errs[source]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, pErrors.CatalogCanceled(source, ctx.Err())
		}
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func testItems(names ...string) []catalog.Item {
	items := make([]catalog.Item, len(names))
	for i, name := range names {
		items[i] = catalog.Item{
			ID:          name + "-id",
			DisplayName: name,
			ImagePath:   filepath.Join("images", name+".png"),
			AltText:     name,
		}
	}
	return items
}

// testConfig loads default settings backed by a file in a temp dir
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}
	return cfg
}

// testModel creates a sized model whose frames load from loader
func testModel(t *testing.T, cfg *config.Config, loader *fakeLoader) *Model {
	t.Helper()
	m := New(cfg, "0.0.0-test", WithLoader(loader), WithClock(func() time.Time { return testNow }))
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	t.Cleanup(m.Close)
	return m
}

// loadedModel creates a model and delivers every frame's catalog
func loadedModel(t *testing.T, loader *fakeLoader) *Model {
	t.Helper()
	m := testModel(t, testConfig(t), loader)
	deliver(m, m.Init())
	return m
}

// deliver runs cmd and feeds the catalog results it produces back into m.
// Timers and other commands are not run.
func deliver(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			deliver(m, c)
		}
	case CatalogLoadedMsg:
		m.Update(msg)
	}
}

// loadResult runs cmd and returns the catalog result it produces
func loadResult(t *testing.T, cmd tea.Cmd) CatalogLoadedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a load command")
	}
	switch msg := cmd().(type) {
	case CatalogLoadedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil {
				return loadResult(t, c)
			}
		}
	}
	t.Fatal("Expected a CatalogLoadedMsg")
	return CatalogLoadedMsg{}
}

// click sends a mouse click at terminal coordinates
func click(m *Model, x, y int, button tea.MouseButton) tea.Cmd {
	_, cmd := m.Update(tea.MouseClickMsg{X: x, Y: y, Button: button})
	return cmd
}

// press sends one key
func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText sends each rune of s as a key press
func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Delete:
		return tea.KeyPressMsg{Code: tea.KeyDelete}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case keys.CtrlE:
		return tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// hasQuit reports whether cmd (or a batch it returns) is tea.Quit
func hasQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if hasQuit(c) {
				return true
			}
		}
	}
	return false
}
