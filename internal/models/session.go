/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// Session is one schedulable interview stage. Sessions are immutable once
// submitted to a search; `Order` is a strict total ordering key across the
// sessions of a single request.
type Session struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Title string `gorm:"type:varchar(255);not null" json:"title"`

	DurationMinutes int `gorm:"not null" json:"duration_minutes"`

	// BreakAfterMinutes is how long after this session ends the next
	// session may start. A value at or above the day-length threshold
	// pushes the next session onto a later calendar date.
	BreakAfterMinutes int `gorm:"not null;default:0" json:"break_after_minutes"`

	// RequiredCount is how many participants must attend.
	RequiredCount int `gorm:"not null;default:1" json:"required_count"`

	Order int `gorm:"column:sort_order;not null;index" json:"order"`

	// CandidatePool restricts which participants may be assigned.
	// Empty means every participant in the request is a candidate.
	CandidatePool []string `gorm:"type:jsonb;serializer:json" json:"candidate_pool,omitempty"`

	// IncludeTrainees enables the trainee augmentation pass for this
	// session's candidate combinations.
	IncludeTrainees bool `gorm:"not null;default:false" json:"include_trainees"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}
