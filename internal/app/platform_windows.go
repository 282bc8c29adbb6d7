//go:build windows

package app

import (
	"context"
	"os/exec"
)

const folderDialogScript = `Add-Type -AssemblyName System.Windows.Forms
$d = New-Object System.Windows.Forms.FolderBrowserDialog
$d.Description = 'Open Folder'
if ($d.ShowDialog() -eq 'OK') { $d.SelectedPath }`

// pickDirectoryNative runs the WinForms folder browser through PowerShell.
// A cancelled dialog prints nothing.
func pickDirectoryNative(ctx context.Context) (string, error) {
	if !hasCommand("powershell") {
		return "", errNoDialog
	}
	return runDialog(ctx, exec.CommandContext(ctx, "powershell", "-NoProfile", "-STA", "-Command", folderDialogScript))
}
