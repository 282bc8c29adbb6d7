//go:build !linux && !darwin && !windows

package app

import "context"

func pickDirectoryNative(context.Context) (string, error) {
	return "", errNoDialog
}
