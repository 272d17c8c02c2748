/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// LimitType selects how a participant load limit is measured.
type LimitType string

const (
	LimitDuration LimitType = "duration" // Max is minutes of assigned time
	LimitCount    LimitType = "count"    // Max is number of assignments
)

// LoadLimit caps a participant's load for one period (daily or weekly).
type LoadLimit struct {
	Type LimitType `json:"type"`
	Max  int       `json:"max"`
}

// ClockRange is a same-day window in HH:MM wall-clock form.
type ClockRange struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// BlockedRange is an absolute time range a participant must not be
// scheduled into (recruiting blocks, long-running commitments).
type BlockedRange struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Reason   string    `json:"reason,omitempty"`
}

// Participant is an interviewer candidate with individual availability
// rules and load ceilings. Immutable input to a search.
type Participant struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Timezone string `gorm:"type:varchar(64);default:'UTC'" json:"timezone"`

	// WorkHours maps weekday to the participant's working window.
	// A missing weekday means the participant does not work that day.
	WorkHours map[time.Weekday]ClockRange `gorm:"type:jsonb;serializer:json" json:"work_hours,omitempty"`

	DailyLimit  *LoadLimit `gorm:"type:jsonb;serializer:json" json:"daily_limit,omitempty"`
	WeeklyLimit *LoadLimit `gorm:"type:jsonb;serializer:json" json:"weekly_limit,omitempty"`

	// ExclusionDates are company holidays and similar date-level blocks.
	ExclusionDates []time.Time `gorm:"type:jsonb;serializer:json" json:"exclusion_dates,omitempty"`

	// DayOffDates are the participant's own days off.
	DayOffDates []time.Time `gorm:"type:jsonb;serializer:json" json:"day_off_dates,omitempty"`

	BlockedRanges []BlockedRange `gorm:"type:jsonb;serializer:json" json:"blocked_ranges,omitempty"`

	Trainee bool `gorm:"not null;default:false" json:"trainee"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Participant) TableName() string {
	return "participants"
}

// WorkHoursOn returns the configured work window for a weekday, or false
// when the participant has none for that day.
func (p *Participant) WorkHoursOn(day time.Weekday) (ClockRange, bool) {
	r, ok := p.WorkHours[day]
	return r, ok
}

// IsExcludedDate reports whether date matches a configured exclusion date.
func (p *Participant) IsExcludedDate(date time.Time) bool {
	return containsDate(p.ExclusionDates, date)
}

// IsDayOff reports whether date matches a configured day off.
func (p *Participant) IsDayOff(date time.Time) bool {
	return containsDate(p.DayOffDates, date)
}

func containsDate(dates []time.Time, target time.Time) bool {
	for _, d := range dates {
		if SameDate(d, target) {
			return true
		}
	}
	return false
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
