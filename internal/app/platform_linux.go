//go:build linux

package app

import (
	"context"
	"os/exec"
)

// pickDirectoryNative uses zenity on GNOME-like desktops, kdialog on KDE.
func pickDirectoryNative(ctx context.Context) (string, error) {
	switch {
	case hasCommand("zenity"):
		return runDialog(ctx, exec.CommandContext(ctx, "zenity", "--file-selection", "--directory", "--title=Open Folder"))
	case hasCommand("kdialog"):
		return runDialog(ctx, exec.CommandContext(ctx, "kdialog", "--getexistingdirectory", ".", "--title", "Open Folder"))
	}
	return "", errNoDialog
}
