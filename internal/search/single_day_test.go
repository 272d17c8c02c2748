/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/roundtable/internal/calendar"
	"github.com/friendsincode/roundtable/internal/models"
)

// monday is 2026-03-02, a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func fullWeekHours() map[time.Weekday]models.ClockRange {
	hours := make(map[time.Weekday]models.ClockRange)
	for d := time.Monday; d <= time.Friday; d++ {
		hours[d] = models.ClockRange{Start: "09:00", End: "17:00"}
	}
	return hours
}

func participant(id string) models.Participant {
	return models.Participant{
		ID:        id,
		Name:      id,
		WorkHours: fullWeekHours(),
	}
}

func session(id string, duration, breakAfter, required, order int) models.Session {
	return models.Session{
		ID:                id,
		Title:             id,
		DurationMinutes:   duration,
		BreakAfterMinutes: breakAfter,
		RequiredCount:     required,
		Order:             order,
	}
}

func TestDaySingleSessionSinglePlacement(t *testing.T) {
	// One 60-minute session, one participant free 09:00-17:00, no busy
	// intervals: exactly one combination starting at the default start.
	sessions := []models.Session{session("s1", 60, 0, 1, 0)}
	participants := []models.Participant{participant("p1")}

	combos, truncated, err := Day(context.Background(), monday, sessions, participants, calendar.Snapshot{}, models.DefaultSearchConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if truncated {
		t.Fatal("unexpected truncation")
	}
	if len(combos) != 1 {
		t.Fatalf("got %d combinations, want 1", len(combos))
	}

	want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !combos[0].FirstStart.Equal(want) {
		t.Errorf("FirstStart = %s, want %s", combos[0].FirstStart, want)
	}
	if combos[0].TotalSpanMinutes != 60 {
		t.Errorf("TotalSpanMinutes = %d, want 60", combos[0].TotalSpanMinutes)
	}
}

func TestDayUnavailableParticipantYieldsNoResults(t *testing.T) {
	// One session needing both of the two pooled participants; one has the
	// whole day off, so no combination can form.
	sessions := []models.Session{session("s1", 60, 0, 2, 0)}
	off := participant("p2")
	off.DayOffDates = []time.Time{monday}
	participants := []models.Participant{participant("p1"), off}

	combos, _, err := Day(context.Background(), monday, sessions, participants, calendar.Snapshot{}, models.DefaultSearchConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if len(combos) != 0 {
		t.Errorf("got %d combinations, want 0", len(combos))
	}
}

func TestDayBreakSpacing(t *testing.T) {
	// Two sessions with a 15-minute break on the first: the second slot
	// starts exactly at first end + 15.
	sessions := []models.Session{
		session("s1", 60, 15, 1, 0),
		session("s2", 30, 0, 1, 1),
	}
	participants := []models.Participant{participant("p1"), participant("p2")}

	combos, _, err := Day(context.Background(), monday, sessions, participants, calendar.Snapshot{}, models.DefaultSearchConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if len(combos) == 0 {
		t.Fatal("expected combinations")
	}

	for _, c := range combos {
		first, second := c.Slots[0], c.Slots[1]
		wantStart := first.EndsAt.Add(15 * time.Minute)
		if !second.StartsAt.Equal(wantStart) {
			t.Errorf("second slot starts %s, want %s", second.StartsAt, wantStart)
		}
	}
}

func TestDayDailyCountLimit(t *testing.T) {
	// The participant already has one commitment today and a daily count
	// limit of 1; placements are pruned only while the limit is enforced.
	sessions := []models.Session{session("s1", 60, 0, 1, 0)}
	limited := participant("p1")
	limited.DailyLimit = &models.LoadLimit{Type: models.LimitCount, Max: 1}
	participants := []models.Participant{limited}

	// Early-morning interval: counts toward the daily load but does not
	// overlap the 09:00 slot.
	snapshot := calendar.Snapshot{
		"p1": {{
			ID:            "b1",
			ParticipantID: "p1",
			StartsAt:      time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
			EndsAt:        time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		}},
	}

	cfg := models.DefaultSearchConfig()
	combos, _, err := Day(context.Background(), monday, sessions, participants, snapshot, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if len(combos) != 0 {
		t.Errorf("enforced daily limit: got %d combinations, want 0", len(combos))
	}

	cfg.RespectDailyLimits = false
	combos, _, err = Day(context.Background(), monday, sessions, participants, snapshot, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if len(combos) != 1 {
		t.Errorf("limit disabled: got %d combinations, want 1", len(combos))
	}
}

func TestDayBusyOverlapPrunes(t *testing.T) {
	sessions := []models.Session{session("s1", 60, 0, 1, 0)}
	participants := []models.Participant{participant("p1")}
	snapshot := calendar.Snapshot{
		"p1": {{
			ID:            "b1",
			ParticipantID: "p1",
			StartsAt:      time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			EndsAt:        time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		}},
	}

	combos, _, err := Day(context.Background(), monday, sessions, participants, snapshot, models.DefaultSearchConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if len(combos) != 0 {
		t.Errorf("got %d combinations, want 0 (busy overlap)", len(combos))
	}
}

func TestDayNoParticipantDoubleBookedWithinCombination(t *testing.T) {
	// Back-to-back sessions drawn from the same pool: any accepted
	// combination must not give one participant overlapping windows.
	sessions := []models.Session{
		session("s1", 60, 0, 1, 0),
		session("s2", 60, 0, 1, 1),
	}
	participants := []models.Participant{participant("p1"), participant("p2")}

	combos, _, err := Day(context.Background(), monday, sessions, participants, calendar.Snapshot{}, models.DefaultSearchConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}

	for _, c := range combos {
		for i := 0; i < len(c.Slots); i++ {
			for j := i + 1; j < len(c.Slots); j++ {
				a, b := c.Slots[i], c.Slots[j]
				if !a.StartsAt.Before(b.EndsAt) || !a.EndsAt.After(b.StartsAt) {
					continue // windows disjoint
				}
				for _, pa := range a.Participants {
					for _, pb := range b.Participants {
						if pa.ParticipantID == pb.ParticipantID {
							t.Errorf("participant %s double-booked across overlapping slots", pa.ParticipantID)
						}
					}
				}
			}
		}
	}
}

func TestDayMaxResultsCapsOutput(t *testing.T) {
	sessions := []models.Session{session("s1", 30, 0, 1, 0)}
	participants := []models.Participant{
		participant("p1"), participant("p2"), participant("p3"),
		participant("p4"), participant("p5"),
	}

	cfg := models.DefaultSearchConfig()
	cfg.MaxResults = 2

	combos, _, err := Day(context.Background(), monday, sessions, participants, calendar.Snapshot{}, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if len(combos) != 2 {
		t.Errorf("got %d combinations, want capped 2", len(combos))
	}
}

func TestDayIdempotent(t *testing.T) {
	sessions := []models.Session{
		session("s1", 60, 15, 1, 0),
		session("s2", 30, 0, 1, 1),
	}
	participants := []models.Participant{participant("p1"), participant("p2"), participant("p3")}

	first, _, err := Day(context.Background(), monday, sessions, participants, calendar.Snapshot{}, models.DefaultSearchConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	second, _, err := Day(context.Background(), monday, sessions, participants, calendar.Snapshot{}, models.DefaultSearchConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different ordered results")
	}
}

func TestDayDeadlineTruncates(t *testing.T) {
	sessions := []models.Session{session("s1", 30, 0, 1, 0)}
	participants := []models.Participant{participant("p1"), participant("p2")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already expired

	combos, truncated, err := Day(ctx, monday, sessions, participants, calendar.Snapshot{}, models.DefaultSearchConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if !truncated {
		t.Error("expected truncated flag with an expired context")
	}
	if len(combos) != 0 {
		t.Errorf("expired before exploration: got %d combinations", len(combos))
	}
}

func TestDayValidation(t *testing.T) {
	p := []models.Participant{participant("p1")}
	good := []models.Session{session("s1", 60, 0, 1, 0)}

	tests := []struct {
		name         string
		sessions     []models.Session
		participants []models.Participant
		wantErr      error
	}{
		{name: "no sessions", sessions: nil, participants: p, wantErr: ErrNoSessions},
		{name: "no participants", sessions: good, participants: nil, wantErr: ErrNoParticipants},
		{name: "zero duration", sessions: []models.Session{session("s1", 0, 0, 1, 0)}, participants: p, wantErr: ErrAlgorithm},
		{name: "negative break", sessions: []models.Session{session("s1", 60, -5, 1, 0)}, participants: p, wantErr: ErrAlgorithm},
		{name: "zero required count", sessions: []models.Session{session("s1", 60, 0, 0, 0)}, participants: p, wantErr: ErrAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Day(context.Background(), monday, tt.sessions, tt.participants, calendar.Snapshot{}, models.DefaultSearchConfig(), zerolog.Nop())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Day() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
