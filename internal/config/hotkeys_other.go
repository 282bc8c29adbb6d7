//go:build !darwin

package config

// DefaultHotkeys returns the Windows/Linux shortcuts, Alt for navigation.
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Back:       "Alt+Left",
		Forward:    "Alt+Right",
		Up:         "Alt+Up",
		Refresh:    "F5",
		OpenFolder: "Ctrl+O",
		ListView:   "Ctrl+1",
		DetailView: "Ctrl+2",
		GridView:   "Ctrl+3",
		SortName:   "Ctrl+Shift+N",
		SortDate:   "Ctrl+Shift+D",
		SortOrder:  "Ctrl+Shift+R",
	}
}
