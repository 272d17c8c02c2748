/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

// ConflictKind tags a structured conflict record. Conflicts are expected
// negative outcomes of constraint evaluation, never errors.
type ConflictKind string

const (
	ConflictWorkHours       ConflictKind = "work_hours"
	ConflictHoliday         ConflictKind = "holiday"
	ConflictDayOff          ConflictKind = "day_off"
	ConflictRecruitingBlock ConflictKind = "recruiting_block"
	ConflictBusyInterval    ConflictKind = "busy_interval"
	ConflictDailyLimit      ConflictKind = "daily_limit"
	ConflictWeeklyLimit     ConflictKind = "weekly_limit"
)

// Conflict explains why a participant cannot take a proposed window.
type Conflict struct {
	Kind          ConflictKind `json:"kind"`
	ParticipantID string       `json:"participant_id"`
	Message       string       `json:"message"`
}
