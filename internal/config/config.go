// Package config loads and saves the cardtray settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	pErrors "github.com/zhubert/cardtray/internal/errors"
)

const (
	// DefaultCapacity is the tray capacity a frame gets when none is configured
	DefaultCapacity = 200

	// DefaultBaseTileWidth is the nominal tile width in terminal cells
	DefaultBaseTileWidth = 24

	// DefaultGutter is the horizontal space between tiles in terminal cells
	DefaultGutter = 2
)

// Frame describes one top-level panel: its catalog and the trays it owns.
type Frame struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Catalog       string `json:"catalog"`                  // URL or path of the catalog JSON
	Capacity      int    `json:"capacity,omitempty"`       // Combined capacity of both trays
	PrimaryTray   string `json:"primary_tray,omitempty"`   // Label of tray A
	SecondaryTray string `json:"secondary_tray,omitempty"` // Label of tray B
}

// Config holds the application configuration
type Config struct {
	Frames               []Frame `json:"frames"`
	BaseTileWidth        int     `json:"base_tile_width,omitempty"`
	Gutter               int     `json:"gutter,omitempty"`
	Theme                string  `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool    `json:"notifications_enabled,omitempty"` // Desktop notification when a frame reaches capacity
	ExportDir            string  `json:"export_dir,omitempty"`            // Where selection exports are written
	ExportFormat         string  `json:"export_format,omitempty"`         // json, yaml or xlsx

	mu        sync.RWMutex
	filePath  string
	overrides map[string]frameOverride // session-only, never saved
}

// frameOverride holds values layered over a saved frame for this run only
type frameOverride struct {
	catalog  string
	capacity int
}

// effective returns f with its session overrides applied. Callers hold c.mu.
func (c *Config) effective(f Frame) Frame {
	o, ok := c.overrides[f.ID]
	if !ok {
		return f
	}
	if o.catalog != "" {
		f.Catalog = o.catalog
	}
	if o.capacity > 0 {
		f.Capacity = o.capacity
	}
	return f
}

func (c *Config) overrideLocked(id string, apply func(*frameOverride)) {
	if c.overrides == nil {
		c.overrides = make(map[string]frameOverride)
	}
	o := c.overrides[id]
	apply(&o)
	c.overrides[id] = o
}

// DefaultFrames returns the frames used when the config file has none.
func DefaultFrames() []Frame {
	return []Frame{
		{
			ID:            "cards",
			Title:         "Support Cards",
			Catalog:       "support_cards.json",
			Capacity:      DefaultCapacity,
			PrimaryTray:   "Left",
			SecondaryTray: "Right",
		},
		{
			ID:            "catalog",
			Title:         "Catalog",
			Catalog:       "catalog.json",
			Capacity:      DefaultCapacity,
			PrimaryTray:   "Left",
			SecondaryTray: "Right",
		},
	}
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cardtray"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	// Defaults must be filled in before Validate() since Validate() only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills in defaults for anything the file left out.
//
// Thread-safety: only call during single-threaded initialization, before the
// Config is shared.
func (c *Config) ensureInitialized() {
	if len(c.Frames) == 0 {
		c.Frames = DefaultFrames()
	}
	for i := range c.Frames {
		f := &c.Frames[i]
		if f.Capacity <= 0 {
			f.Capacity = DefaultCapacity
		}
		if f.Title == "" {
			f.Title = f.ID
		}
		if f.PrimaryTray == "" {
			f.PrimaryTray = "Left"
		}
		if f.SecondaryTray == "" {
			f.SecondaryTray = "Right"
		}
	}
	if c.BaseTileWidth <= 0 {
		c.BaseTileWidth = DefaultBaseTileWidth
	}
	if c.Gutter <= 0 {
		c.Gutter = DefaultGutter
	}
	if c.ExportFormat == "" {
		c.ExportFormat = "json"
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seenIDs := make(map[string]bool)
	for _, f := range c.Frames {
		if f.ID == "" {
			return pErrors.ConfigInvalid("frame with empty ID found")
		}
		if seenIDs[f.ID] {
			return pErrors.ConfigInvalid(fmt.Sprintf("duplicate frame ID: %s", f.ID))
		}
		seenIDs[f.ID] = true

		if f.Catalog == "" {
			return pErrors.ConfigInvalid(fmt.Sprintf("frame %s has empty catalog", f.ID))
		}
	}

	if c.BaseTileWidth <= c.Gutter {
		return pErrors.ConfigInvalid(fmt.Sprintf("base tile width %d must exceed gutter %d", c.BaseTileWidth, c.Gutter))
	}

	switch c.ExportFormat {
	case "json", "yaml", "xlsx":
	default:
		return pErrors.ConfigInvalid(fmt.Sprintf("unknown export format %q", c.ExportFormat))
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// ApplyEnv overrides frame settings from the environment for this run.
// Values usually come from a .env file loaded at startup and are never saved.
//
//	CARDTRAY_CATALOG            catalog of the first frame
//	CARDTRAY_SECONDARY_CATALOG  catalog of the second frame
//	CARDTRAY_CAPACITY           capacity of every frame
func (c *Config) ApplyEnv(getenv func(string) string) error {
	capacity := 0
	if v := getenv("CARDTRAY_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return pErrors.ConfigInvalid(fmt.Sprintf("CARDTRAY_CAPACITY must be a positive integer, got %q", v))
		}
		capacity = n
	}

	c.mu.RLock()
	ids := make([]string, len(c.Frames))
	for i, f := range c.Frames {
		ids[i] = f.ID
	}
	c.mu.RUnlock()

	if v := getenv("CARDTRAY_CATALOG"); v != "" && len(ids) > 0 {
		c.OverrideCatalog(ids[0], v)
	}
	if v := getenv("CARDTRAY_SECONDARY_CATALOG"); v != "" && len(ids) > 1 {
		c.OverrideCatalog(ids[1], v)
	}
	if capacity > 0 {
		c.OverrideCapacity(capacity)
	}
	return nil
}

// GetFrames returns a copy of the frames with session overrides applied
func (c *Config) GetFrames() []Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()

	frames := make([]Frame, len(c.Frames))
	for i, f := range c.Frames {
		frames[i] = c.effective(f)
	}
	return frames
}

// GetFrame returns the frame with the given ID, overrides applied
func (c *Config) GetFrame(id string) (Frame, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, f := range c.Frames {
		if f.ID == id {
			return c.effective(f), true
		}
	}
	return Frame{}, false
}

// OverrideCatalog points a frame at a different catalog for this run.
// Returns false if the frame does not exist.
func (c *Config) OverrideCatalog(id, catalog string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.Frames {
		if f.ID == id {
			c.overrideLocked(id, func(o *frameOverride) { o.catalog = catalog })
			return true
		}
	}
	return false
}

// OverrideCapacity sets the capacity of every frame for this run.
func (c *Config) OverrideCapacity(capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.Frames {
		c.overrideLocked(f.ID, func(o *frameOverride) { o.capacity = capacity })
	}
}

// GetLayout returns the base tile width and gutter
func (c *Config) GetLayout() (baseTileWidth, gutter int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BaseTileWidth, c.Gutter
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetExport returns the export directory and format
func (c *Config) GetExport() (dir, format string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir = c.ExportDir
	if dir == "" {
		dir = "."
	}
	return dir, c.ExportFormat
}

// SetExportFormat sets the export format
func (c *Config) SetExportFormat(format string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ExportFormat = format
}
