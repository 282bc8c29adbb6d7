//go:build debug

// Package debug provides categorized trace logging.
// Build with -tags debug to enable it.
package debug

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/logging"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"    // Composition root, startup, shutdown
	NAV    Category = "NAV"    // Navigation state machine and history
	SELECT Category = "SELECT" // Active entry and photo selection
	VIEW   Category = "VIEW"   // View mode and sort engine
	LAYOUT Category = "LAYOUT" // Virtual window computation (verbose)
	THUMB  Category = "THUMB"  // Thumbnail materialization and generation
	FS     Category = "FS"     // Discovery and directory watching
	STORE  Category = "STORE"  // Settings persistence
	UI     Category = "UI"     // Rendering and input
	HOTKEY Category = "HOTKEY" // Keyboard handling
)

var (
	enabledCategories = map[Category]bool{
		APP:    true,
		NAV:    true,
		SELECT: true,
		VIEW:   true,
		LAYOUT: false,
		THUMB:  true,
		FS:     true,
		STORE:  true,
		UI:     false,
		HOTKEY: true,
	}
	categoryMu sync.RWMutex
)

func init() {
	// PHOTOGEO_DEBUG=NAV,THUMB or PHOTOGEO_DEBUG=all or PHOTOGEO_DEBUG=none
	if env := os.Getenv("PHOTOGEO_DEBUG"); env != "" {
		applyEnv(env)
	}
}

func applyEnv(env string) {
	categoryMu.Lock()
	defer categoryMu.Unlock()

	env = strings.ToUpper(env)
	switch env {
	case "ALL", "NONE":
		for cat := range enabledCategories {
			enabledCategories[cat] = env == "ALL"
		}
	default:
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
		for _, cat := range strings.Split(env, ",") {
			enabledCategories[Category(strings.TrimSpace(cat))] = true
		}
	}
}

// Log writes a debug entry for the category through the zap logger.
func Log(cat Category, format string, args ...interface{}) {
	if !IsEnabled(cat) {
		return
	}
	logging.L().Debug(fmt.Sprintf(format, args...), zap.String("category", string(cat)))
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables every category including the verbose ones
func EnableAll() {
	applyEnv("ALL")
}
