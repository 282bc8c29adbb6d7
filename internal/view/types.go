// Package view orders directory entries and photo records into the single
// sequence the browser renders.
package view

import (
	"strings"
	"time"

	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/photo"
)

// Mode is the presentation mode.
type Mode int

const (
	List Mode = iota
	Detail
	Grid
)

func (m Mode) String() string {
	switch m {
	case Detail:
		return "detail"
	case Grid:
		return "grid"
	default:
		return "list"
	}
}

// ParseMode accepts "list", "detail" or "grid".
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "list":
		return List, true
	case "detail":
		return Detail, true
	case "grid":
		return Grid, true
	}
	return List, false
}

// SortKey selects the primary comparison.
type SortKey int

const (
	ByName SortKey = iota
	ByDate
)

func (k SortKey) String() string {
	if k == ByDate {
		return "date"
	}
	return "name"
}

// ParseSortKey accepts "name" or "date".
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(s) {
	case "name":
		return ByName, true
	case "date":
		return ByDate, true
	}
	return ByName, false
}

// SortOrder is ascending or descending.
type SortOrder int

const (
	Asc SortOrder = iota
	Desc
)

func (o SortOrder) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// ParseSortOrder accepts "asc" or "desc".
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(s) {
	case "asc":
		return Asc, true
	case "desc":
		return Desc, true
	}
	return Asc, false
}

// State is the presentation state.
type State struct {
	Mode  Mode
	Key   SortKey
	Order SortOrder
}

// Source says which collection the ordered sequence was built from.
type Source int

const (
	FromDirectory Source = iota
	FromPhotos
)

// Item is one renderable element, built from either a directory entry or a
// photo record.
type Item struct {
	Path         string
	Name         string
	IsDir        bool
	Size         int64
	ModTime      time.Time // zero when unknown
	CapturedTime *time.Time
	ExifTime     *time.Time
}

// Date returns the best available date: capture time, then EXIF time, then
// modification time.
func (it Item) Date() (time.Time, bool) {
	switch {
	case it.CapturedTime != nil:
		return *it.CapturedTime, true
	case it.ExifTime != nil:
		return *it.ExifTime, true
	case !it.ModTime.IsZero():
		return it.ModTime, true
	}
	return time.Time{}, false
}

// ItemsFromEntries converts directory entries in their given order.
func ItemsFromEntries(entries []fs.Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{
			Path:         e.Path,
			Name:         e.Name,
			IsDir:        e.IsDir,
			Size:         e.Size,
			ModTime:      e.ModTime,
			CapturedTime: e.CapturedTime,
		}
	}
	return items
}

// ItemsFromRecords converts photo records in their given order.
func ItemsFromRecords(records []*photo.Record) []Item {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		it := Item{Path: r.Path, Name: r.Filename, Size: r.FileSize, ModTime: r.ModTime}
		if r.Exif != nil {
			it.ExifTime = r.Exif.DateTime
		}
		items = append(items, it)
	}
	return items
}

// IndexOf returns the position of path in items, or -1.
func IndexOf(items []Item, path string) int {
	if path == "" {
		return -1
	}
	for i := range items {
		if items[i].Path == path {
			return i
		}
	}
	return -1
}
