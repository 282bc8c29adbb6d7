package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/logging"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Browser    BrowserConfig    `json:"browser"`
	Layout     LayoutConfig     `json:"layout"`
	Thumbnails ThumbnailsConfig `json:"thumbnails"`
	Watcher    WatcherConfig    `json:"watcher"`
	Logging    LoggingConfig    `json:"logging"`
	Hotkeys    HotkeysConfig    `json:"hotkeys"`
}

// BrowserConfig holds navigation and presentation defaults
type BrowserConfig struct {
	ViewMode         string `json:"viewMode"`  // "list" | "detail" | "grid"
	SortKey          string `json:"sortKey"`   // "name" | "date"
	SortOrder        string `json:"sortOrder"` // "asc" | "desc"
	HistorySize      int    `json:"historySize"`
	RestoreLastPath  bool   `json:"restoreLastPath"`
	ShowHidden       bool   `json:"showHidden"`
	ReadCapturedTime bool   `json:"readCapturedTime"`
	Locale           string `json:"locale"` // BCP 47 tag for name ordering, "" = und
}

// LayoutConfig holds geometry in device-independent pixels
type LayoutConfig struct {
	GridItemSize    int `json:"gridItemSize"`
	GridGap         int `json:"gridGap"`
	ListRowHeight   int `json:"listRowHeight"`
	DetailRowHeight int `json:"detailRowHeight"`
	OverscanRows    int `json:"overscanRows"`
}

// ThumbnailsConfig holds thumbnail rendering settings
type ThumbnailsConfig struct {
	MaxSize   int    `json:"maxSize"`
	Quality   int    `json:"quality"`
	Workers   int    `json:"workers"`
	DiskCache bool   `json:"diskCache"`
	CachePath string `json:"cachePath,omitempty"` // "" = next to config.json
}

// WatcherConfig controls auto-refresh of the open directory
type WatcherConfig struct {
	Enabled    bool `json:"enabled"`
	DebounceMs int  `json:"debounceMs"`
}

// LoggingConfig mirrors logging.Config
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	Output string `json:"output"`
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // set when the file existed but could not be parsed
}

// NewManager creates a manager for path; "" means ConfigPath().
func NewManager(path string) *Manager {
	if path == "" {
		path = ConfigPath()
	}
	return &Manager{config: DefaultConfig(), path: path}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			ViewMode:         "grid",
			SortKey:          "name",
			SortOrder:        "asc",
			HistorySize:      50,
			RestoreLastPath:  true,
			ReadCapturedTime: true,
		},
		Layout: LayoutConfig{
			GridItemSize:    160,
			GridGap:         8,
			ListRowHeight:   28,
			DetailRowHeight: 56,
			OverscanRows:    3,
		},
		Thumbnails: ThumbnailsConfig{
			MaxSize:   200,
			Quality:   80,
			Workers:   4,
			DiskCache: true,
		},
		Watcher: WatcherConfig{
			Enabled:    true,
			DebounceMs: 300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// ConfigPath returns ~/.config/photogeoview/config.json on every platform.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "photogeoview", "config.json")
}

// Dir returns the directory holding the config file and the app databases.
func (m *Manager) Dir() string {
	return filepath.Dir(m.path)
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the configuration file, creating it with defaults when missing.
// A parse error is recorded and defaults are used.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := logging.Named("config")
	m.parseErr = nil

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Info("creating default config", zap.String("path", m.path))
		m.config = DefaultConfig()
		return m.saveUnlocked()
	}
	if err != nil {
		return err
	}

	// Unmarshal over defaults so missing keys keep their default value.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Warn("config parse error, using defaults", zap.String("path", m.path), zap.Error(err))
		m.parseErr = err
		m.config = DefaultConfig()
		return nil
	}
	cfg.normalize()
	m.config = cfg
	log.Debug("config loaded", zap.String("path", m.path))
	return nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	d := DefaultConfig()
	switch c.Browser.ViewMode {
	case "list", "detail", "grid":
	default:
		c.Browser.ViewMode = d.Browser.ViewMode
	}
	switch c.Browser.SortKey {
	case "name", "date":
	default:
		c.Browser.SortKey = d.Browser.SortKey
	}
	switch c.Browser.SortOrder {
	case "asc", "desc":
	default:
		c.Browser.SortOrder = d.Browser.SortOrder
	}
	if c.Browser.HistorySize <= 0 || c.Browser.HistorySize > d.Browser.HistorySize {
		c.Browser.HistorySize = d.Browser.HistorySize
	}
	if c.Layout.GridItemSize <= 0 {
		c.Layout.GridItemSize = d.Layout.GridItemSize
	}
	if c.Layout.GridGap < 0 {
		c.Layout.GridGap = d.Layout.GridGap
	}
	if c.Layout.ListRowHeight <= 0 {
		c.Layout.ListRowHeight = d.Layout.ListRowHeight
	}
	if c.Layout.DetailRowHeight <= c.Layout.ListRowHeight {
		c.Layout.DetailRowHeight = c.Layout.ListRowHeight * 2
	}
	if c.Layout.OverscanRows < 0 {
		c.Layout.OverscanRows = 0
	}
	if c.Thumbnails.MaxSize <= 0 {
		c.Thumbnails.MaxSize = d.Thumbnails.MaxSize
	}
	if c.Thumbnails.Quality <= 0 || c.Thumbnails.Quality > 100 {
		c.Thumbnails.Quality = d.Thumbnails.Quality
	}
	if c.Thumbnails.Workers <= 0 {
		c.Thumbnails.Workers = d.Thumbnails.Workers
	}
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// Update applies fn to the configuration and saves it.
func (m *Manager) Update(fn func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.config)
	m.config.normalize()
	return m.saveUnlocked()
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// Reset backs up an existing config file and writes fresh defaults.
// It returns the backup path, or "" when there was nothing to back up.
func (m *Manager) Reset() (backupPath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data, err := os.ReadFile(m.path); err == nil {
		stamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(m.path), "config.backup."+stamp+".json")
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}
	m.config = DefaultConfig()
	m.parseErr = nil
	if err := m.saveUnlocked(); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}
	return backupPath, nil
}
