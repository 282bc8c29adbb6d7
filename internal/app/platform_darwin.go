//go:build darwin

package app

import (
	"context"
	"os/exec"
)

// pickDirectoryNative shows the Finder folder chooser through AppleScript.
// Cancelling makes osascript exit with status 1.
func pickDirectoryNative(ctx context.Context) (string, error) {
	script := `POSIX path of (choose folder with prompt "Open Folder")`
	return runDialog(ctx, exec.CommandContext(ctx, "osascript", "-e", script))
}
