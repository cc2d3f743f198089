package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/cardtray/internal/config"
)

func TestShowFlash_SetsFooterAndTicks(t *testing.T) {
	m := loadedModel(t, newFakeLoader())

	tests := []struct {
		name string
		show func(string) tea.Cmd
	}{
		{"error", m.ShowFlashError},
		{"warning", m.ShowFlashWarning},
		{"info", m.ShowFlashInfo},
		{"success", m.ShowFlashSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.footer.ClearFlash()
			if cmd := tt.show("hello"); cmd == nil {
				t.Error("Expected a tick command")
			}
			if !m.footer.HasFlash() {
				t.Error("Expected footer to show the flash")
			}
		})
	}
}

func TestSaveConfig_FailureIsLoggedOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	cfg, err := config.LoadFrom(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}
	// A regular file where the config directory should be makes Save fail
	if err := os.WriteFile(dir, nil, 0644); err != nil {
		t.Fatalf("Expected to create blocker file, got %v", err)
	}
	m := testModel(t, cfg, newFakeLoader())

	press(m, "n")
	if !cfg.GetNotificationsEnabled() {
		t.Error("Expected the setting to change even though saving failed")
	}
}
