//go:build !debug

// Package debug provides categorized trace logging.
// This is the no-op version for release builds.
package debug

// Enabled indicates whether debug logging is active
const Enabled = false

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"
	NAV    Category = "NAV"
	SELECT Category = "SELECT"
	VIEW   Category = "VIEW"
	LAYOUT Category = "LAYOUT"
	THUMB  Category = "THUMB"
	FS     Category = "FS"
	STORE  Category = "STORE"
	UI     Category = "UI"
	HOTKEY Category = "HOTKEY"
)

// Log is a no-op in release builds
func Log(cat Category, format string, args ...interface{}) {}

// Enable is a no-op in release builds
func Enable(cat Category) {}

// Disable is a no-op in release builds
func Disable(cat Category) {}

// IsEnabled always returns false in release builds
func IsEnabled(cat Category) bool { return false }

// EnableAll is a no-op in release builds
func EnableAll() {}
