package fs

import (
	"os"
	"path/filepath"
)

// Root is a top-level location offered in the root bar.
type Root struct {
	Name string
	Path string
}

// homeRoot returns the user's home directory as a root, if known.
func homeRoot() []Root {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	roots := []Root{{Name: "Home", Path: home}}
	if pics := filepath.Join(home, "Pictures"); isDir(pics) {
		roots = append(roots, Root{Name: "Pictures", Path: pics})
	}
	return roots
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
