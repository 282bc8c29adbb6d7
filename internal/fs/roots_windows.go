//go:build windows

package fs

import "golang.org/x/sys/windows"

// Roots returns home and every drive letter reported by GetLogicalDrives.
func Roots() []Root {
	roots := homeRoot()
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return roots
	}
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		letter := string(rune('A' + i))
		roots = append(roots, Root{Name: letter + ":", Path: letter + `:\`})
	}
	return roots
}
