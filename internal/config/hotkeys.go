package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// HotkeysConfig holds shortcut strings such as "Alt+Left" or "Ctrl+1".
type HotkeysConfig struct {
	Back       string `json:"back"`
	Forward    string `json:"forward"`
	Up         string `json:"up"`
	Refresh    string `json:"refresh"`
	OpenFolder string `json:"openFolder"`
	ListView   string `json:"listView"`
	DetailView string `json:"detailView"`
	GridView   string `json:"gridView"`
	SortName   string `json:"sortName"`
	SortDate   string `json:"sortDate"`
	SortOrder  string `json:"toggleSortOrder"`
}

// Hotkey represents a parsed keyboard shortcut
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers
}

// ParseHotkey parses a hotkey string like "Ctrl+Shift+N" into a Hotkey struct
func ParseHotkey(s string) Hotkey {
	if s == "" {
		return Hotkey{}
	}

	var mods key.Modifiers
	var rawKey string
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= key.ModCtrl
		case "shift":
			mods |= key.ModShift
		case "alt", "option":
			mods |= key.ModAlt
		case "cmd", "command":
			mods |= key.ModCommand
		case "super", "meta", "win":
			mods |= key.ModSuper
		default:
			rawKey = part
		}
	}
	return Hotkey{Key: parseKeyName(rawKey), Modifiers: mods}
}

var namedKeys = map[string]key.Name{
	"f1": key.NameF1, "f2": key.NameF2, "f3": key.NameF3, "f4": key.NameF4,
	"f5": key.NameF5, "f6": key.NameF6, "f7": key.NameF7, "f8": key.NameF8,
	"f9": key.NameF9, "f10": key.NameF10, "f11": key.NameF11, "f12": key.NameF12,

	"up": key.NameUpArrow, "down": key.NameDownArrow,
	"left": key.NameLeftArrow, "right": key.NameRightArrow,
	"home": key.NameHome, "end": key.NameEnd,
	"pageup": key.NamePageUp, "pagedown": key.NamePageDown,

	"enter": key.NameReturn, "return": key.NameReturn,
	"backspace": key.NameDeleteBackward, "delete": key.NameDeleteForward,
	"escape": key.NameEscape, "esc": key.NameEscape,
	"tab": key.NameTab, "space": key.NameSpace,
}

// parseKeyName converts a key string to Gio's key.Name
func parseKeyName(s string) key.Name {
	if len(s) == 1 {
		return key.Name(strings.ToUpper(s))
	}
	if n, ok := namedKeys[strings.ToLower(s)]; ok {
		return n
	}
	return key.Name(s)
}

// Matches checks a key event against the hotkey with exact modifiers.
func (h Hotkey) Matches(k key.Event) bool {
	if h.Key == "" {
		return false
	}
	return k.Name == h.Key && k.Modifiers == h.Modifiers
}

// IsEmpty returns true if the hotkey is not configured
func (h Hotkey) IsEmpty() bool {
	return h.Key == ""
}

// String returns a human-readable representation of the hotkey
func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}
	var parts []string
	for _, m := range []struct {
		mod  key.Modifiers
		name string
	}{
		{key.ModCtrl, "Ctrl"}, {key.ModCommand, "Cmd"}, {key.ModShift, "Shift"},
		{key.ModAlt, "Alt"}, {key.ModSuper, "Super"},
	} {
		if h.Modifiers.Contain(m.mod) {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, string(h.Key)), "+")
}

// Filter returns a key.Filter that matches this hotkey
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{Focus: focus, Name: h.Key, Required: h.Modifiers}
}

// HotkeyMatcher holds the parsed shortcuts.
type HotkeyMatcher struct {
	Back       Hotkey
	Forward    Hotkey
	Up         Hotkey
	Refresh    Hotkey
	OpenFolder Hotkey
	ListView   Hotkey
	DetailView Hotkey
	GridView   Hotkey
	SortName   Hotkey
	SortDate   Hotkey
	SortOrder  Hotkey
}

// NewHotkeyMatcher creates a matcher from config
func NewHotkeyMatcher(cfg HotkeysConfig) *HotkeyMatcher {
	return &HotkeyMatcher{
		Back:       ParseHotkey(cfg.Back),
		Forward:    ParseHotkey(cfg.Forward),
		Up:         ParseHotkey(cfg.Up),
		Refresh:    ParseHotkey(cfg.Refresh),
		OpenFolder: ParseHotkey(cfg.OpenFolder),
		ListView:   ParseHotkey(cfg.ListView),
		DetailView: ParseHotkey(cfg.DetailView),
		GridView:   ParseHotkey(cfg.GridView),
		SortName:   ParseHotkey(cfg.SortName),
		SortDate:   ParseHotkey(cfg.SortDate),
		SortOrder:  ParseHotkey(cfg.SortOrder),
	}
}

// Filters returns key filters for every configured shortcut.
func (m *HotkeyMatcher) Filters(focus event.Tag) []event.Filter {
	var out []event.Filter
	for _, h := range []Hotkey{
		m.Back, m.Forward, m.Up, m.Refresh, m.OpenFolder,
		m.ListView, m.DetailView, m.GridView, m.SortName, m.SortDate, m.SortOrder,
	} {
		if !h.IsEmpty() {
			out = append(out, h.Filter(focus))
		}
	}
	return out
}
