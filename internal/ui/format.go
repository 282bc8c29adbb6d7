package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/justyntemme/photogeoview/internal/photo"
	"github.com/justyntemme/photogeoview/internal/view"
)

func formatSize(n int64) string {
	if n < 0 {
		return ""
	}
	return humanize.Bytes(uint64(n))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// typeLabel is "Folder" or the upper-cased extension.
func typeLabel(it view.Item) string {
	if it.IsDir {
		return "Folder"
	}
	ext := strings.TrimPrefix(filepath.Ext(it.Name), ".")
	if ext == "" {
		return "File"
	}
	return strings.ToUpper(ext)
}

// itemDate is the date shown for an item, with a relative hint for recent ones.
func itemDate(it view.Item, now time.Time) string {
	d, ok := it.Date()
	if !ok {
		return ""
	}
	if now.Sub(d) < 7*24*time.Hour && !d.After(now) {
		return humanize.RelTime(d, now, "ago", "from now")
	}
	return formatDate(d)
}

// photoLines describes a resolved photo for the footer.
func photoLines(rec *photo.Record) []string {
	if rec == nil {
		return nil
	}
	lines := []string{fmt.Sprintf("%s · %s", rec.Filename, formatSize(rec.FileSize))}
	x := rec.Exif
	if x == nil {
		return append(lines, "No EXIF data")
	}
	if x.Width > 0 && x.Height > 0 {
		lines = append(lines, fmt.Sprintf("%d × %d", x.Width, x.Height))
	}
	if x.HasDateTime() {
		lines = append(lines, "Taken "+formatDate(*x.DateTime))
	}
	if x.Camera != nil {
		if cam := strings.TrimSpace(x.Camera.Make + " " + x.Camera.Model); cam != "" {
			lines = append(lines, cam)
		}
	}
	if exp := exposureLine(x.Exposure); exp != "" {
		lines = append(lines, exp)
	}
	if x.HasGPS() {
		gps := fmt.Sprintf("%.5f, %.5f", x.GPS.Lat, x.GPS.Lng)
		if x.GPS.Altitude != nil {
			gps += fmt.Sprintf(" · %s m", humanize.FormatFloat("#,###.#", *x.GPS.Altitude))
		}
		lines = append(lines, gps)
	}
	return lines
}

func exposureLine(e *photo.Exposure) string {
	if e == nil {
		return ""
	}
	var parts []string
	if e.Aperture > 0 {
		parts = append(parts, fmt.Sprintf("f/%.1f", e.Aperture))
	}
	if e.ShutterSpeed != "" {
		parts = append(parts, strings.TrimSuffix(e.ShutterSpeed, "s")+"s")
	}
	if e.ISO > 0 {
		parts = append(parts, fmt.Sprintf("ISO %d", e.ISO))
	}
	if e.FocalLength > 0 {
		parts = append(parts, fmt.Sprintf("%.0f mm", e.FocalLength))
	}
	return strings.Join(parts, "  ")
}
