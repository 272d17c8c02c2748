/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scenario

import (
	"testing"
	"time"
)

const sample = `
sessions:
  - id: s1
    title: Screen
    duration_minutes: 60
    break_after_minutes: 15
    required_count: 1
    order: 0
  - id: s2
    title: Panel
    duration_minutes: 90
    required_count: 2
    order: 1
    candidate_pool: [p1, p2, p3]
    include_trainees: true

participants:
  - id: p1
    name: Avery
    work_hours:
      monday: {start: "09:00", end: "17:00"}
      tuesday: {start: "09:00", end: "17:00"}
    daily_limit: {type: count, max: 2}
    exclusion_dates: ["2026-12-25"]
  - id: p2
    name: Blake
    trainee: true
  - id: p3
    name: Casey
    day_off_dates: ["2026-03-02"]

busy:
  - participant_id: p1
    starts_at: 2026-03-02T10:00:00Z
    ends_at: 2026-03-02T11:00:00Z
    label: standup

config:
  check_busy_intervals: false
  max_results: 5
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(sc.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sc.Sessions))
	}
	if sc.Sessions[0].BreakAfterMinutes != 15 {
		t.Errorf("break = %d, want 15", sc.Sessions[0].BreakAfterMinutes)
	}
	if len(sc.Sessions[1].CandidatePool) != 3 || !sc.Sessions[1].IncludeTrainees {
		t.Errorf("session 2 pool/trainee flags wrong: %+v", sc.Sessions[1])
	}

	if len(sc.Participants) != 3 {
		t.Fatalf("got %d participants, want 3", len(sc.Participants))
	}

	avery := sc.Participants[0]
	if hours, ok := avery.WorkHours[time.Monday]; !ok || hours.Start != "09:00" {
		t.Errorf("avery monday hours = %+v", avery.WorkHours)
	}
	if avery.DailyLimit == nil || avery.DailyLimit.Max != 2 {
		t.Errorf("avery daily limit = %+v", avery.DailyLimit)
	}
	if len(avery.ExclusionDates) != 1 || avery.ExclusionDates[0].Month() != time.December {
		t.Errorf("avery exclusion dates = %v", avery.ExclusionDates)
	}

	if !sc.Participants[1].Trainee {
		t.Error("blake should be a trainee")
	}
	if len(sc.Participants[2].DayOffDates) != 1 {
		t.Errorf("casey day offs = %v", sc.Participants[2].DayOffDates)
	}

	busy := sc.Snapshot.For("p1")
	if len(busy) != 1 || busy[0].Label != "standup" {
		t.Errorf("p1 busy intervals = %v", busy)
	}
}

func TestParseConfigOmissionMeansEnforced(t *testing.T) {
	sc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	cfg := sc.Config
	if cfg.CheckBusyIntervals {
		t.Error("explicitly disabled flag should stay disabled")
	}
	// Everything omitted stays enforced.
	if !cfg.RespectWorkHours || !cfg.RespectHolidays || !cfg.RespectDayOffs ||
		!cfg.RespectDailyLimits || !cfg.RespectWeeklyLimits || !cfg.ExcludeBlockedTimes {
		t.Errorf("omitted constraint flags must default to enforced: %+v", cfg)
	}
	if cfg.MaxResults != 5 {
		t.Errorf("MaxResults = %d, want 5", cfg.MaxResults)
	}
	if cfg.DayStart != "09:00" {
		t.Errorf("DayStart = %q, want default", cfg.DayStart)
	}
}

func TestParseRejectsBadWeekday(t *testing.T) {
	bad := `
sessions:
  - {id: s1, title: t, duration_minutes: 30, required_count: 1, order: 0}
participants:
  - id: p1
    name: X
    work_hours:
      someday: {start: "09:00", end: "17:00"}
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for unknown weekday")
	}
}

func TestParseRejectsBadLimitType(t *testing.T) {
	bad := `
sessions:
  - {id: s1, title: t, duration_minutes: 30, required_count: 1, order: 0}
participants:
  - id: p1
    name: X
    daily_limit: {type: hours, max: 3}
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for unknown limit type")
	}
}

func TestParseRejectsBadDate(t *testing.T) {
	bad := `
sessions:
  - {id: s1, title: t, duration_minutes: 30, required_count: 1, order: 0}
participants:
  - id: p1
    name: X
    exclusion_dates: ["not-a-date"]
`
	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
