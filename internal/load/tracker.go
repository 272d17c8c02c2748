/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package load computes participant load against configured daily and
// weekly ceilings. This is the exact density computation; the search's
// per-leaf density proxy is a separate, intentionally cheaper operation.
package load

import (
	"time"

	"github.com/friendsincode/roundtable/internal/interval"
	"github.com/friendsincode/roundtable/internal/models"
)

// Category buckets a density value for presentation.
type Category string

const (
	CategoryLow       Category = "low"        // density < 0.7
	CategoryMedium    Category = "medium"     // density < 0.9
	CategoryHigh      Category = "high"       // density < 1.0
	CategoryOverLimit Category = "over_limit" // density >= 1.0
)

// PeriodLoad is the load picture for one period (day or week), including
// the proposed window.
type PeriodLoad struct {
	LimitType models.LimitType `json:"limit_type"`
	Max       int              `json:"max"`
	Current   int              `json:"current"`   // Existing load, minutes or count
	Projected int              `json:"projected"` // Including the proposed window
	Density   float64          `json:"density"`   // Projected / Max
	Category  Category         `json:"category"`
}

// Info carries the daily and weekly load for a participant and window.
// A nil period means no limit is configured for it.
type Info struct {
	Daily  *PeriodLoad `json:"daily,omitempty"`
	Weekly *PeriodLoad `json:"weekly,omitempty"`
}

// Compute evaluates a participant's daily and weekly load for a proposed
// [start, end) window against the busy-interval snapshot.
func Compute(p *models.Participant, start, end time.Time, busy []models.BusyInterval) Info {
	info := Info{}

	if p.DailyLimit != nil {
		daily := filterIntervals(busy, func(b models.BusyInterval) bool {
			return models.SameDate(b.StartsAt, start)
		})
		info.Daily = computePeriod(*p.DailyLimit, daily, start, end)
	}
	if p.WeeklyLimit != nil {
		weekStart, weekEnd := weekBounds(start)
		weekly := filterIntervals(busy, func(b models.BusyInterval) bool {
			return !b.StartsAt.Before(weekStart) && b.StartsAt.Before(weekEnd)
		})
		info.Weekly = computePeriod(*p.WeeklyLimit, weekly, start, end)
	}

	return info
}

// WouldExceedLimits reports whether accepting the window would push the
// participant past an enforced limit (density above 1.0).
func WouldExceedLimits(info Info, cfg models.SearchConfig) bool {
	if cfg.RespectDailyLimits && info.Daily != nil && info.Daily.Density > 1.0 {
		return true
	}
	if cfg.RespectWeeklyLimits && info.Weekly != nil && info.Weekly.Density > 1.0 {
		return true
	}
	return false
}

// Categorize buckets a density value.
func Categorize(density float64) Category {
	switch {
	case density < 0.7:
		return CategoryLow
	case density < 0.9:
		return CategoryMedium
	case density < 1.0:
		return CategoryHigh
	default:
		return CategoryOverLimit
	}
}

func computePeriod(limit models.LoadLimit, busy []models.BusyInterval, start, end time.Time) *PeriodLoad {
	period := &PeriodLoad{LimitType: limit.Type, Max: limit.Max}

	switch limit.Type {
	case models.LimitCount:
		period.Current = len(busy)
		period.Projected = period.Current + 1
	default: // duration
		period.Current = mergedMinutes(busy)
		period.Projected = period.Current + int(end.Sub(start).Minutes())
	}

	if limit.Max > 0 {
		period.Density = float64(period.Projected) / float64(limit.Max)
	}
	period.Category = Categorize(period.Density)
	return period
}

// mergedMinutes sums the durations of busy intervals after merging
// same-day overlaps, so double-booked external time is not counted twice.
func mergedMinutes(busy []models.BusyInterval) int {
	byDate := make(map[string][]interval.Window)
	for _, b := range busy {
		key := b.StartsAt.Format("2006-01-02")
		byDate[key] = append(byDate[key], interval.FromTimes(b.StartsAt, b.EndsAt))
	}

	total := 0
	for _, windows := range byDate {
		for _, w := range interval.Merge(windows) {
			total += w.Duration()
		}
	}
	return total
}

func filterIntervals(busy []models.BusyInterval, keep func(models.BusyInterval) bool) []models.BusyInterval {
	var out []models.BusyInterval
	for _, b := range busy {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// weekBounds returns the Sunday-aligned [start, end) week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
	return start, start.AddDate(0, 0, 7)
}
