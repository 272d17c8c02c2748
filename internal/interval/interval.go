/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package interval provides minute-of-day arithmetic for schedule windows.
// All operations are pure; windows are half-open [Start, End) in minutes
// from midnight.
package interval

import (
	"fmt"
	"sort"
	"time"
)

// Window is a half-open [Start, End) range in minutes from midnight.
type Window struct {
	Start int
	End   int
}

// Relation classifies how window A lies relative to window B.
type Relation string

const (
	RelationNone     Relation = "none"     // No overlap
	RelationExact    Relation = "exact"    // Identical bounds
	RelationLeft     Relation = "left"     // A overlaps B's left edge
	RelationRight    Relation = "right"    // A overlaps B's right edge
	RelationEnclosed Relation = "enclosed" // A lies strictly within B
	RelationEncloses Relation = "encloses" // A strictly contains B
)

// ParseClock converts an HH:MM wall-clock string to minutes from midnight.
func ParseClock(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", clock)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinuteOfDay normalizes a full timestamp to minutes from midnight; the
// date component round-trips via the caller's retained time.Time.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FromTimes builds a window from two timestamps on the same date.
func FromTimes(start, end time.Time) Window {
	return Window{Start: MinuteOfDay(start), End: MinuteOfDay(end)}
}

// Duration returns the window length in minutes.
func (w Window) Duration() int {
	return w.End - w.Start
}

// Contains reports whether other lies fully inside w.
func (w Window) Contains(other Window) bool {
	return other.Start >= w.Start && other.End <= w.End
}

// Overlaps reports whether two windows intersect. Symmetric.
func Overlaps(a, b Window) bool {
	return a.Start < b.End && a.End > b.Start
}

// Classify returns the boundary relation of a to b. The six cases are
// mutually exclusive: equal-duration non-overlapping windows classify as
// none, identical windows as exact.
func Classify(a, b Window) Relation {
	switch {
	case a.End <= b.Start || a.Start >= b.End:
		return RelationNone
	case a.Start == b.Start && a.End == b.End:
		return RelationExact
	case a.Start <= b.Start && a.End >= b.End:
		return RelationEncloses
	case a.Start >= b.Start && a.End <= b.End:
		return RelationEnclosed
	case a.Start < b.Start:
		return RelationLeft
	default:
		return RelationRight
	}
}

// OverlapMinutes returns the length of the intersection of a and b.
func OverlapMinutes(a, b Window) int {
	start := max(a.Start, b.Start)
	end := min(a.End, b.End)
	if end <= start {
		return 0
	}
	return end - start
}

// Merge collapses adjacent or overlapping windows into a sorted,
// non-overlapping list. O(n log n).
func Merge(windows []Window) []Window {
	if len(windows) == 0 {
		return nil
	}

	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Window{sorted[0]}
	for _, w := range sorted[1:] {
		last := &merged[len(merged)-1]
		if w.Start <= last.End {
			if w.End > last.End {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// Subtract returns the free windows of base after removing the merged busy
// list. Sort-and-sweep, O(n log n).
func Subtract(base Window, busy []Window) []Window {
	var free []Window
	cursor := base.Start

	for _, b := range Merge(busy) {
		if b.End <= base.Start || b.Start >= base.End {
			continue
		}
		if b.Start > cursor {
			free = append(free, Window{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}

	if cursor < base.End {
		free = append(free, Window{Start: cursor, End: base.End})
	}
	return free
}
