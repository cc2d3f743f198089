package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	pErrors "github.com/zhubert/cardtray/internal/errors"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	frames := cfg.GetFrames()
	if len(frames) != 2 {
		t.Fatalf("Expected 2 default frames, got %d", len(frames))
	}
	if frames[0].ID != "cards" || frames[1].ID != "catalog" {
		t.Errorf("Expected frames cards and catalog, got %s and %s", frames[0].ID, frames[1].ID)
	}
	for _, f := range frames {
		if f.Capacity != DefaultCapacity {
			t.Errorf("Expected capacity %d for %s, got %d", DefaultCapacity, f.ID, f.Capacity)
		}
	}

	base, gutter := cfg.GetLayout()
	if base != DefaultBaseTileWidth || gutter != DefaultGutter {
		t.Errorf("Expected layout %d/%d, got %d/%d", DefaultBaseTileWidth, DefaultGutter, base, gutter)
	}
}

func TestLoadFrom_FillsFrameDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"frames":[{"id":"only","catalog":"https://example.com/cards.json"}],"base_tile_width":30}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, ok := cfg.GetFrame("only")
	if !ok {
		t.Fatal("Expected frame 'only' to exist")
	}
	if f.Title != "only" {
		t.Errorf("Expected title to default to ID, got %q", f.Title)
	}
	if f.Capacity != DefaultCapacity {
		t.Errorf("Expected default capacity, got %d", f.Capacity)
	}
	if f.PrimaryTray != "Left" || f.SecondaryTray != "Right" {
		t.Errorf("Expected default tray names, got %q/%q", f.PrimaryTray, f.SecondaryTray)
	}
	if base, _ := cfg.GetLayout(); base != 30 {
		t.Errorf("Expected base tile width 30, got %d", base)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind pErrors.Kind
	}{
		{"malformed json", `{"frames": [`, pErrors.KindConfig},
		{"duplicate frame", `{"frames":[{"id":"a","catalog":"x"},{"id":"a","catalog":"y"}]}`, pErrors.KindInvalid},
		{"empty frame id", `{"frames":[{"id":"","catalog":"x"}]}`, pErrors.KindInvalid},
		{"empty catalog", `{"frames":[{"id":"a"}]}`, pErrors.KindInvalid},
		{"gutter too wide", `{"base_tile_width":4,"gutter":6}`, pErrors.KindInvalid},
		{"unknown export format", `{"export_format":"csv"}`, pErrors.KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !pErrors.Is(err, tt.kind) {
				t.Errorf("Expected kind %v, got %v (%v)", tt.kind, pErrors.GetKind(err), err)
			}
		})
	}
}

func TestConfig_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	cfg.SetTheme("nord")
	cfg.SetNotificationsEnabled(true)
	cfg.SetExportFormat("yaml")

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.GetTheme() != "nord" {
		t.Errorf("Expected theme nord, got %q", reloaded.GetTheme())
	}
	if !reloaded.GetNotificationsEnabled() {
		t.Error("Expected notifications to be enabled")
	}
	if _, format := reloaded.GetExport(); format != "yaml" {
		t.Errorf("Expected export format yaml, got %q", format)
	}
}

func TestConfig_OverridesAreNotSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env := map[string]string{"CARDTRAY_CAPACITY": "7"}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !cfg.OverrideCatalog("cards", "/tmp/one-off.json") {
		t.Fatal("OverrideCatalog should find the cards frame")
	}
	if cfg.OverrideCatalog("missing", "x") {
		t.Error("OverrideCatalog should return false for an unknown frame")
	}

	f, _ := cfg.GetFrame("cards")
	if f.Catalog != "/tmp/one-off.json" || f.Capacity != 7 {
		t.Errorf("Expected overrides in effect, got catalog %q capacity %d", f.Catalog, f.Capacity)
	}

	cfg.SetTheme("nord")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	f, _ = reloaded.GetFrame("cards")
	if f.Catalog != "support_cards.json" {
		t.Errorf("Expected saved catalog support_cards.json, got %q", f.Catalog)
	}
	if f.Capacity != DefaultCapacity {
		t.Errorf("Expected saved capacity %d, got %d", DefaultCapacity, f.Capacity)
	}
	if reloaded.GetTheme() != "nord" {
		t.Errorf("Expected the theme change to be saved, got %q", reloaded.GetTheme())
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := &Config{}
	cfg.ensureInitialized()

	env := map[string]string{
		"CARDTRAY_CATALOG":           "http://localhost/cards.json",
		"CARDTRAY_SECONDARY_CATALOG": "/srv/catalog.json",
		"CARDTRAY_CAPACITY":          "120",
	}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	frames := cfg.GetFrames()
	if frames[0].Catalog != "http://localhost/cards.json" {
		t.Errorf("Expected primary catalog override, got %q", frames[0].Catalog)
	}
	if frames[1].Catalog != "/srv/catalog.json" {
		t.Errorf("Expected secondary catalog override, got %q", frames[1].Catalog)
	}
	for _, f := range frames {
		if f.Capacity != 120 {
			t.Errorf("Expected capacity 120 for %s, got %d", f.ID, f.Capacity)
		}
	}
}

func TestConfig_ApplyEnvRejectsBadCapacity(t *testing.T) {
	cfg := &Config{}
	cfg.ensureInitialized()

	for _, v := range []string{"abc", "0", "-5"} {
		err := cfg.ApplyEnv(func(k string) string {
			if k == "CARDTRAY_CAPACITY" {
				return v
			}
			return ""
		})
		if !pErrors.Is(err, pErrors.KindInvalid) {
			t.Errorf("Expected KindInvalid for %q, got %v", v, err)
		}
	}
}

func TestConfig_GetExportDefaultsDir(t *testing.T) {
	cfg := &Config{}
	cfg.ensureInitialized()

	dir, format := cfg.GetExport()
	if dir != "." {
		t.Errorf("Expected export dir '.', got %q", dir)
	}
	if format != "json" {
		t.Errorf("Expected export format json, got %q", format)
	}
}

func TestConfig_GetFramesReturnsCopy(t *testing.T) {
	cfg := &Config{}
	cfg.ensureInitialized()

	frames := cfg.GetFrames()
	frames[0].Catalog = "mutated"

	if f, _ := cfg.GetFrame(frames[0].ID); f.Catalog == "mutated" {
		t.Error("GetFrames should return a copy")
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := &Config{}
	cfg.ensureInitialized()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetTheme("nord")
			cfg.OverrideCapacity(100)
		}()
		go func() {
			defer wg.Done()
			_ = cfg.GetTheme()
			_ = cfg.GetFrames()
		}()
	}
	wg.Wait()
}
