package view

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders items. It is not safe for concurrent use because the
// collator keeps internal buffers.
type Sorter struct {
	coll *collate.Collator
}

// NewSorter builds a sorter comparing names under the given BCP 47 locale.
// An empty or invalid tag uses the root collation.
func NewSorter(locale string) *Sorter {
	tag := language.Und
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			tag = t
		}
	}
	return &Sorter{coll: collate.New(tag, collate.IgnoreCase, collate.Numeric)}
}

// Sort returns a new slice ordered by key and order. With dirsFirst,
// directories precede files whatever the key. Items without a date always
// follow dated items under ByDate. Ties keep their input order.
func (s *Sorter) Sort(items []Item, key SortKey, order SortOrder, dirsFirst bool) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return s.less(&out[i], &out[j], key, order, dirsFirst)
	})
	return out
}

func (s *Sorter) less(a, b *Item, key SortKey, order SortOrder, dirsFirst bool) bool {
	if dirsFirst && a.IsDir != b.IsDir {
		return a.IsDir
	}

	var c int
	switch key {
	case ByDate:
		ad, aok := a.Date()
		bd, bok := b.Date()
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		c = ad.Compare(bd)
	default:
		c = s.coll.CompareString(a.Name, b.Name)
	}
	if order == Desc {
		c = -c
	}
	return c < 0
}
