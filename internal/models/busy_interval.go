/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// BusyInterval is a participant-scoped external commitment, supplied to a
// search as part of a pre-fetched snapshot. The engine never mutates these.
type BusyInterval struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantID string    `gorm:"type:uuid;index:idx_busy_intervals_participant;not null" json:"participant_id"`
	StartsAt      time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt        time.Time `gorm:"not null" json:"ends_at"`
	Label         string    `gorm:"type:varchar(255)" json:"label,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (BusyInterval) TableName() string {
	return "busy_intervals"
}

// Overlaps reports whether the interval intersects [start, end).
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.StartsAt.Before(end) && b.EndsAt.After(start)
}

// OnDate reports whether the interval starts on the given calendar date.
func (b BusyInterval) OnDate(date time.Time) bool {
	return SameDate(b.StartsAt, date)
}
