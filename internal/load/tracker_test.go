/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package load

import (
	"testing"
	"time"

	"github.com/friendsincode/roundtable/internal/models"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday

func busyAt(hour, durationMinutes int) models.BusyInterval {
	start := day.Add(time.Duration(hour) * time.Hour)
	return models.BusyInterval{
		ParticipantID: "p1",
		StartsAt:      start,
		EndsAt:        start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

func TestComputeDurationLimit(t *testing.T) {
	p := &models.Participant{
		ID:         "p1",
		DailyLimit: &models.LoadLimit{Type: models.LimitDuration, Max: 240},
	}
	busy := []models.BusyInterval{busyAt(9, 60), busyAt(11, 60)}

	start := day.Add(13 * time.Hour)
	info := Compute(p, start, start.Add(time.Hour), busy)

	if info.Daily == nil {
		t.Fatal("expected daily load")
	}
	if info.Weekly != nil {
		t.Error("no weekly limit configured, expected nil weekly load")
	}
	if info.Daily.Current != 120 {
		t.Errorf("Current = %d, want 120", info.Daily.Current)
	}
	if info.Daily.Projected != 180 {
		t.Errorf("Projected = %d, want 180", info.Daily.Projected)
	}
	if info.Daily.Density != 0.75 {
		t.Errorf("Density = %f, want 0.75", info.Daily.Density)
	}
	if info.Daily.Category != CategoryMedium {
		t.Errorf("Category = %s, want %s", info.Daily.Category, CategoryMedium)
	}
}

func TestComputeMergesOverlappingBusy(t *testing.T) {
	p := &models.Participant{
		ID:         "p1",
		DailyLimit: &models.LoadLimit{Type: models.LimitDuration, Max: 480},
	}
	// Two 60-minute intervals overlapping by 30: merged load is 90, not 120.
	overlapping := []models.BusyInterval{busyAt(9, 60), {
		ParticipantID: "p1",
		StartsAt:      day.Add(9*time.Hour + 30*time.Minute),
		EndsAt:        day.Add(10*time.Hour + 30*time.Minute),
	}}

	start := day.Add(14 * time.Hour)
	info := Compute(p, start, start.Add(time.Hour), overlapping)
	if info.Daily.Current != 90 {
		t.Errorf("Current = %d, want merged 90", info.Daily.Current)
	}
}

func TestComputeCountLimit(t *testing.T) {
	p := &models.Participant{
		ID:         "p1",
		DailyLimit: &models.LoadLimit{Type: models.LimitCount, Max: 2},
	}
	busy := []models.BusyInterval{busyAt(9, 60)}

	start := day.Add(13 * time.Hour)
	info := Compute(p, start, start.Add(time.Hour), busy)

	if info.Daily.Current != 1 || info.Daily.Projected != 2 {
		t.Errorf("count load = %d/%d, want 1/2", info.Daily.Current, info.Daily.Projected)
	}
	if info.Daily.Density != 1.0 {
		t.Errorf("Density = %f, want 1.0", info.Daily.Density)
	}
	if info.Daily.Category != CategoryOverLimit {
		t.Errorf("Category = %s, want %s", info.Daily.Category, CategoryOverLimit)
	}
}

func TestComputeWeeklyFiltersBySundayWeek(t *testing.T) {
	p := &models.Participant{
		ID:          "p1",
		WeeklyLimit: &models.LoadLimit{Type: models.LimitCount, Max: 5},
	}
	sameWeek := busyAt(9, 60) // Monday, same week
	previousWeek := models.BusyInterval{
		ParticipantID: "p1",
		StartsAt:      day.AddDate(0, 0, -3), // previous Friday
		EndsAt:        day.AddDate(0, 0, -3).Add(time.Hour),
	}

	start := day.AddDate(0, 0, 2).Add(10 * time.Hour) // Wednesday
	info := Compute(p, start, start.Add(time.Hour), []models.BusyInterval{sameWeek, previousWeek})

	if info.Weekly.Current != 1 {
		t.Errorf("weekly Current = %d, want 1 (previous week excluded)", info.Weekly.Current)
	}
}

func TestWouldExceedLimits(t *testing.T) {
	over := Info{Daily: &PeriodLoad{Density: 1.2}}
	under := Info{Daily: &PeriodLoad{Density: 0.8}}
	exactly := Info{Daily: &PeriodLoad{Density: 1.0}}

	cfg := models.DefaultSearchConfig()
	if !WouldExceedLimits(over, cfg) {
		t.Error("density 1.2 should exceed")
	}
	if WouldExceedLimits(under, cfg) {
		t.Error("density 0.8 should not exceed")
	}
	if WouldExceedLimits(exactly, cfg) {
		t.Error("density exactly 1.0 should not exceed")
	}

	cfg.RespectDailyLimits = false
	if WouldExceedLimits(over, cfg) {
		t.Error("daily limit disabled, should not exceed")
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		density float64
		want    Category
	}{
		{0.0, CategoryLow},
		{0.69, CategoryLow},
		{0.7, CategoryMedium},
		{0.89, CategoryMedium},
		{0.9, CategoryHigh},
		{0.99, CategoryHigh},
		{1.0, CategoryOverLimit},
		{1.5, CategoryOverLimit},
	}
	for _, tt := range tests {
		if got := Categorize(tt.density); got != tt.want {
			t.Errorf("Categorize(%f) = %s, want %s", tt.density, got, tt.want)
		}
	}
}
