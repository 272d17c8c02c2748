/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// ParticipantAssignment is a participant attached to a placed session.
type ParticipantAssignment struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Trainee       bool   `json:"trainee"`
}

// PlacedSlot is one session placed at a concrete start/end time with its
// resolved participant set.
type PlacedSlot struct {
	SessionID    string                  `json:"session_id"`
	Title        string                  `json:"title"`
	Order        int                     `json:"order"`
	StartsAt     time.Time               `json:"starts_at"`
	EndsAt       time.Time               `json:"ends_at"`
	Participants []ParticipantAssignment `json:"participants"`
}

// Combination is one conflict-free arrangement of all sessions of a round
// on a single calendar date. Slots appear in ascending session order; no
// participant appears twice with overlapping windows.
type Combination struct {
	Date             time.Time    `json:"date"`
	Slots            []PlacedSlot `json:"slots"`
	FirstStart       time.Time    `json:"first_start"`
	LastEnd          time.Time    `json:"last_end"`
	TotalSpanMinutes int          `json:"total_span_minutes"`

	// LoadDensity is the fast count-based density proxy per participant
	// (assigned slot count over the typical-capacity constant). It is
	// intentionally coarser than the load tracker's exact density and
	// exists only for tie-breaking.
	LoadDensity map[string]float64 `json:"load_density"`
}

// ParticipantIDs returns the deduplicated participant ids of the
// combination, in first-appearance order.
func (c Combination) ParticipantIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, slot := range c.Slots {
		for _, a := range slot.Participants {
			if _, ok := seen[a.ParticipantID]; ok {
				continue
			}
			seen[a.ParticipantID] = struct{}{}
			ids = append(ids, a.ParticipantID)
		}
	}
	return ids
}

// Round is a contiguous sub-sequence of sessions intended for the same
// calendar date. The boundary session of a round carries a break at or
// above the day-length threshold, except for the final round.
type Round struct {
	Index    int       `json:"index"`
	Sessions []Session `json:"sessions"`

	// BreakAfterMinutes is the boundary session's break, used to compute
	// the minimum day gap to the next round.
	BreakAfterMinutes int `json:"break_after_minutes"`
}

// RoundPlan binds a round to a concrete date and one accepted combination.
type RoundPlan struct {
	Round       Round       `json:"round"`
	Date        time.Time   `json:"date"`
	Combination Combination `json:"combination"`
}

// MultiDayPlan is an ordered sequence of round plans covering all rounds.
// Round dates are strictly increasing, separated by at least
// ceil(breakAfter/threshold) days.
type MultiDayPlan struct {
	RoundPlans     []RoundPlan `json:"round_plans"`
	RoundCount     int         `json:"round_count"`
	ParticipantIDs []string    `json:"participant_ids"`
}

// FirstStart returns the start time of the plan's first round, or the zero
// time for an empty plan.
func (p MultiDayPlan) FirstStart() time.Time {
	if len(p.RoundPlans) == 0 {
		return time.Time{}
	}
	return p.RoundPlans[0].Combination.FirstStart
}
