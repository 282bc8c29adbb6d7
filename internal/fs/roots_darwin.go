//go:build darwin

package fs

import (
	"os"
	"path/filepath"
)

// Roots returns home, "/" and the volumes mounted under /Volumes.
func Roots() []Root {
	roots := append(homeRoot(), Root{Name: "/", Path: "/"})

	entries, err := os.ReadDir("/Volumes")
	if err != nil {
		return roots
	}
	for _, e := range entries {
		full := filepath.Join("/Volumes", e.Name())
		// The boot volume is a symlink back to "/".
		if target, err := os.Readlink(full); err == nil && target == "/" {
			continue
		}
		if isDir(full) {
			roots = append(roots, Root{Name: e.Name(), Path: full})
		}
	}
	return roots
}
