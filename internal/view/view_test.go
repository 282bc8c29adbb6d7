package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/photo"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func paths(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Path
	}
	return out
}

func TestSortDirectoriesFirstThenName(t *testing.T) {
	items := []Item{
		{Path: "/p/b.jpg", Name: "b.jpg"},
		{Path: "/p/A", Name: "A", IsDir: true},
		{Path: "/p/a.jpg", Name: "a.jpg"},
	}
	got := NewSorter("").Sort(items, ByName, Asc, true)
	assert.Equal(t, []string{"/p/A", "/p/a.jpg", "/p/b.jpg"}, paths(got))

	got = NewSorter("").Sort(items, ByName, Desc, true)
	assert.Equal(t, []string{"/p/A", "/p/b.jpg", "/p/a.jpg"}, paths(got), "directories stay first when descending")
}

func TestSortNameIsNumericAware(t *testing.T) {
	items := []Item{
		{Path: "10", Name: "IMG_10.jpg"},
		{Path: "2", Name: "IMG_2.jpg"},
		{Path: "1", Name: "img_1.jpg"},
	}
	got := NewSorter("en").Sort(items, ByName, Asc, false)
	assert.Equal(t, []string{"1", "2", "10"}, paths(got))
}

func TestSortIsStable(t *testing.T) {
	same := day(3)
	items := []Item{
		{Path: "first", Name: "x", ModTime: same},
		{Path: "second", Name: "X", ModTime: same},
		{Path: "third", Name: "x", ModTime: same},
	}
	for _, key := range []SortKey{ByName, ByDate} {
		for _, order := range []SortOrder{Asc, Desc} {
			got := NewSorter("").Sort(items, key, order, false)
			assert.Equal(t, []string{"first", "second", "third"}, paths(got), "%s %s", key, order)
		}
	}
}

func TestSortNoDateAlwaysLast(t *testing.T) {
	items := []Item{
		{Path: "undated-1", Name: "u1"},
		{Path: "jan5", Name: "a", ModTime: day(5)},
		{Path: "undated-2", Name: "u2"},
		{Path: "jan1", Name: "b", CapturedTime: ptr(day(1)), ModTime: day(20)},
		{Path: "jan3", Name: "c", ExifTime: ptr(day(3))},
	}
	asc := NewSorter("").Sort(items, ByDate, Asc, false)
	assert.Equal(t, []string{"jan1", "jan3", "jan5", "undated-1", "undated-2"}, paths(asc))

	desc := NewSorter("").Sort(items, ByDate, Desc, false)
	assert.Equal(t, []string{"jan5", "jan3", "jan1", "undated-1", "undated-2"}, paths(desc))
}

func TestSortEmpty(t *testing.T) {
	got := NewSorter("").Sort(nil, ByDate, Desc, true)
	assert.Empty(t, got)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := []Item{{Path: "b", Name: "b"}, {Path: "a", Name: "a"}}
	NewSorter("").Sort(items, ByName, Asc, false)
	assert.Equal(t, "b", items[0].Path)
}

func TestItemDatePrecedence(t *testing.T) {
	it := Item{ModTime: day(9)}
	d, ok := it.Date()
	require.True(t, ok)
	assert.Equal(t, day(9), d)

	it.ExifTime = ptr(day(8))
	d, _ = it.Date()
	assert.Equal(t, day(8), d)

	it.CapturedTime = ptr(day(7))
	d, _ = it.Date()
	assert.Equal(t, day(7), d)

	_, ok = Item{}.Date()
	assert.False(t, ok)
}

func TestEngineNotifiesAndSorts(t *testing.T) {
	e := NewEngine(State{Mode: Grid}, "")
	var changes []Change
	e.OnChange(func(c Change) { changes = append(changes, c) })

	e.SetEntries([]fs.Entry{
		{Path: "/p/b.jpg", Name: "b.jpg", ModTime: day(1)},
		{Path: "/p/A", Name: "A", IsDir: true, ModTime: day(2)},
		{Path: "/p/a.jpg", Name: "a.jpg", ModTime: day(3)},
	})
	require.Len(t, changes, 1)
	assert.Equal(t, ItemsChanged, changes[0].Kind)
	assert.Equal(t, FromDirectory, changes[0].Source)
	assert.Equal(t, []string{"/p/A", "/p/a.jpg", "/p/b.jpg"}, paths(e.Items()))

	assert.True(t, e.SetSort(ByDate, Desc))
	assert.Equal(t, []string{"/p/A", "/p/a.jpg", "/p/b.jpg"}, paths(e.Items()))
	assert.False(t, e.SetSort(ByDate, Desc))

	assert.True(t, e.SetViewMode(List))
	assert.False(t, e.SetViewMode(List))
	require.Len(t, changes, 3)
	assert.Equal(t, ModeChanged, changes[2].Kind)
	assert.Equal(t, List, e.State().Mode)
}

func TestEnginePhotoSourceHasNoDirectoryRule(t *testing.T) {
	e := NewEngine(State{Key: ByDate}, "")
	e.SetPhotos([]*photo.Record{
		{Path: "/x/late.jpg", Filename: "late.jpg", Exif: &photo.Exif{DateTime: ptr(day(9))}},
		nil,
		{Path: "/y/early.jpg", Filename: "early.jpg", ModTime: day(2)},
	})
	assert.Equal(t, FromPhotos, e.Source())
	assert.Equal(t, []string{"/y/early.jpg", "/x/late.jpg"}, paths(e.Items()))
	assert.Equal(t, 1, IndexOf(e.Items(), "/x/late.jpg"))
	assert.Equal(t, -1, IndexOf(e.Items(), ""))

	e.Clear()
	assert.Empty(t, e.Items())
}

func TestParseHelpers(t *testing.T) {
	m, ok := ParseMode("GRID")
	assert.True(t, ok)
	assert.Equal(t, Grid, m)
	_, ok = ParseMode("tiles")
	assert.False(t, ok)

	k, ok := ParseSortKey("date")
	assert.True(t, ok)
	assert.Equal(t, "date", k.String())

	o, ok := ParseSortOrder("desc")
	assert.True(t, ok)
	assert.Equal(t, "desc", o.String())
	assert.Equal(t, "detail", Detail.String())
}
