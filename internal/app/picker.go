package app

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/justyntemme/photogeoview/internal/debug"
)

// errNoDialog means the platform has no directory dialog available.
var errNoDialog = errors.New("no native directory dialog")

// DialogPicker asks for a directory with the platform's folder dialog. When
// none is available Fallback runs instead and the pick resolves as
// cancelled.
type DialogPicker struct {
	// Fallback is called from the picking goroutine.
	Fallback func()

	pick func(ctx context.Context) (string, error)
}

func NewDialogPicker() *DialogPicker {
	return &DialogPicker{pick: pickDirectoryNative}
}

func (p *DialogPicker) PickDirectory(ctx context.Context) (string, error) {
	path, err := p.pick(ctx)
	if errors.Is(err, errNoDialog) {
		debug.Log(debug.APP, "no folder dialog, using fallback")
		if p.Fallback != nil {
			p.Fallback()
		}
		return "", nil
	}
	return path, err
}

func hasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// runDialog runs a dialog command and returns the path it printed. Dialog
// tools exit with status 1 when the user cancels.
func runDialog(ctx context.Context, cmd *exec.Cmd) (string, error) {
	out, err := cmd.Output()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) && exit.ExitCode() == 1 {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}
