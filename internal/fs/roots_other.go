//go:build !linux && !darwin && !windows

package fs

// Roots returns home and "/".
func Roots() []Root {
	return append(homeRoot(), Root{Name: "/", Path: "/"})
}
