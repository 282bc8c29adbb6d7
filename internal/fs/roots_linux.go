//go:build linux

package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

var virtualFS = map[string]bool{
	"proc": true, "sysfs": true, "tmpfs": true, "devtmpfs": true, "devpts": true,
	"cgroup": true, "cgroup2": true, "overlay": true, "squashfs": true,
}

// Roots returns home, "/" and user-visible mounts from /proc/mounts.
func Roots() []Root {
	roots := append(homeRoot(), Root{Name: "/", Path: "/"})

	f, err := os.Open("/proc/mounts")
	if err != nil {
		return roots
	}
	defer f.Close()

	seen := map[string]bool{"/": true}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		mount, fsType := fields[1], fields[2]
		if seen[mount] || virtualFS[fsType] {
			continue
		}
		if !strings.HasPrefix(mount, "/media/") && !strings.HasPrefix(mount, "/mnt/") &&
			!strings.HasPrefix(mount, "/run/media/") {
			continue
		}
		seen[mount] = true
		roots = append(roots, Root{Name: filepath.Base(mount), Path: mount})
	}
	return roots
}
