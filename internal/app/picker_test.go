package app

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogPickerFallsBackWithoutDialog(t *testing.T) {
	called := 0
	p := &DialogPicker{
		Fallback: func() { called++ },
		pick:     func(context.Context) (string, error) { return "", errNoDialog },
	}
	path, err := p.PickDirectory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path, "fallback resolves as cancelled")
	assert.Equal(t, 1, called)
}

func TestDialogPickerPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	p := &DialogPicker{pick: func(context.Context) (string, error) { return "/photos", nil }}
	path, err := p.PickDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/photos", path)

	p.pick = func(context.Context) (string, error) { return "", boom }
	_, err = p.PickDirectory(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRunDialog(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	ctx := context.Background()

	path, err := runDialog(ctx, exec.Command("sh", "-c", "echo '/home/me/My Photos'"))
	require.NoError(t, err)
	assert.Equal(t, "/home/me/My Photos", path)

	path, err = runDialog(ctx, exec.Command("sh", "-c", "exit 1"))
	require.NoError(t, err, "status 1 is a cancel")
	assert.Empty(t, path)

	_, err = runDialog(ctx, exec.Command("sh", "-c", "exit 2"))
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = runDialog(cancelled, exec.CommandContext(cancelled, "sh", "-c", "sleep 5"))
	assert.ErrorIs(t, err, context.Canceled)
}
