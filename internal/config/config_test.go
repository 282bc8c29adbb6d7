package config

import (
	"os"
	"path/filepath"
	"testing"

	"gioui.org/io/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.json")
	m := NewManager(path)
	require.NoError(t, m.Load())

	_, err := os.Stat(path)
	require.NoError(t, err)
	cfg := m.Get()
	assert.Equal(t, 50, cfg.Browser.HistorySize)
	assert.Equal(t, 160, cfg.Layout.GridItemSize)
	assert.Equal(t, 8, cfg.Layout.GridGap)
	assert.Equal(t, 200, cfg.Thumbnails.MaxSize)
	assert.Equal(t, filepath.Dir(path), m.Dir())
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"browser":{"viewMode":"list","historySize":500}}`), 0o644))

	m := NewManager(path)
	require.NoError(t, m.Load())
	cfg := m.Get()
	assert.Equal(t, "list", cfg.Browser.ViewMode)
	assert.Equal(t, 50, cfg.Browser.HistorySize, "history is capped")
	assert.Equal(t, "name", cfg.Browser.SortKey)
	assert.Equal(t, 28, cfg.Layout.ListRowHeight)
	assert.NoError(t, m.ParseError())
}

func TestLoadParseErrorUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	m := NewManager(path)
	require.NoError(t, m.Load())
	assert.Error(t, m.ParseError())
	assert.Equal(t, *DefaultConfig(), m.Get())
}

func TestNormalizeRejectsUnknownEnums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Browser.ViewMode = "mosaic"
	cfg.Browser.SortOrder = "sideways"
	cfg.Layout.DetailRowHeight = 10
	cfg.normalize()
	assert.Equal(t, "grid", cfg.Browser.ViewMode)
	assert.Equal(t, "asc", cfg.Browser.SortOrder)
	assert.Greater(t, cfg.Layout.DetailRowHeight, cfg.Layout.ListRowHeight)
}

func TestUpdateAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := NewManager(path)
	require.NoError(t, m.Load())

	require.NoError(t, m.Update(func(c *Config) { c.Browser.SortKey = "date" }))
	reloaded := NewManager(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "date", reloaded.Get().Browser.SortKey)

	backup, err := m.Reset()
	require.NoError(t, err)
	assert.FileExists(t, backup)
	assert.Equal(t, "name", m.Get().Browser.SortKey)
}

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		in   string
		want Hotkey
	}{
		{"Alt+Left", Hotkey{Key: key.NameLeftArrow, Modifiers: key.ModAlt}},
		{"Ctrl+Shift+n", Hotkey{Key: "N", Modifiers: key.ModCtrl | key.ModShift}},
		{"F5", Hotkey{Key: key.NameF5}},
		{"Backspace", Hotkey{Key: key.NameDeleteBackward}},
		{"", Hotkey{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHotkey(tt.in))
		})
	}
}

func TestHotkeyMatchesExactModifiers(t *testing.T) {
	h := ParseHotkey("Ctrl+1")
	assert.True(t, h.Matches(key.Event{Name: "1", Modifiers: key.ModCtrl}))
	assert.False(t, h.Matches(key.Event{Name: "1", Modifiers: key.ModCtrl | key.ModShift}))
	assert.False(t, Hotkey{}.Matches(key.Event{Name: "1"}))
	assert.Equal(t, "Ctrl+1", h.String())
}

func TestMatcherFiltersSkipEmpty(t *testing.T) {
	cfg := DefaultHotkeys()
	cfg.SortOrder = ""
	m := NewHotkeyMatcher(cfg)
	assert.Len(t, m.Filters(nil), 10)
}
