package library

import (
	"sort"
	"strings"
	"time"
)

// The query layer is pure: every function takes a full collection snapshot
// and filter state and returns a derived slice, recomputed on each call.
// Nothing here touches the store.

// Direction selects sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// FilterAll is the sentinel that disables one filter dimension.
const FilterAll = "all"

// Search keeps the items whose field set contains query as a
// case-insensitive substring in any field. An empty query matches
// everything.
func Search[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []T
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// MatchFilter reports whether value passes one categorical filter
// dimension. The "all" sentinel (or an empty selection) disables the
// dimension; dimensions compose with AND at the call site.
func MatchFilter(selected, value string) bool {
	return selected == "" || selected == FilterAll || selected == value
}

// Filter keeps the items passing every predicate.
func Filter[T any](items []T, preds ...func(T) bool) []T {
	var out []T
	for _, item := range items {
		ok := true
		for _, pred := range preds {
			if !pred(item) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, item)
		}
	}
	return out
}

// SortBy returns a stably sorted copy. For Desc the comparator is negated,
// so over unique keys desc is the exact reverse of asc; equal keys keep
// their input order either way.
func SortBy[T any](items []T, dir Direction, cmp func(a, b T) int) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// CompareStrings orders case-insensitively.
func CompareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func CompareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func CompareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// PartitionTab keeps the items in the selected single-select tab. The
// "all" sentinel keeps everything. Applied before search and filters.
func PartitionTab[T any](items []T, tab func(T) string, selected string) []T {
	if selected == "" || selected == FilterAll {
		return items
	}
	var out []T
	for _, item := range items {
		if tab(item) == selected {
			out = append(out, item)
		}
	}
	return out
}

// TabCounts tallies items per tab over the unfiltered collection, so tab
// badges stay constant while a search term narrows the visible list.
func TabCounts[T any](items []T, tab func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[tab(item)]++
	}
	return counts
}
