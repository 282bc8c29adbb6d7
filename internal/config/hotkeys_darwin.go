//go:build darwin

package config

// DefaultHotkeys returns the macOS shortcuts, Cmd for navigation.
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Back:       "Cmd+Left",
		Forward:    "Cmd+Right",
		Up:         "Cmd+Up",
		Refresh:    "Cmd+R",
		OpenFolder: "Cmd+O",
		ListView:   "Cmd+1",
		DetailView: "Cmd+2",
		GridView:   "Cmd+3",
		SortName:   "Cmd+Shift+N",
		SortDate:   "Cmd+Shift+D",
		SortOrder:  "Cmd+Shift+R",
	}
}
