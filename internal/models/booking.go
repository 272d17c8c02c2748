/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// BookingKind distinguishes single-day and multi-day bookings.
type BookingKind string

const (
	BookingSingleDay BookingKind = "single_day"
	BookingMultiDay  BookingKind = "multi_day"
)

// BookingStatus tracks a booking's lifecycle.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking persists one accepted schedule (a Combination or a MultiDayPlan).
// Persistence is a calling-layer concern; the search engine never touches
// these records.
type Booking struct {
	ID     string        `gorm:"type:uuid;primaryKey" json:"id"`
	Kind   BookingKind   `gorm:"type:varchar(16);not null" json:"kind"`
	Status BookingStatus `gorm:"type:varchar(16);not null;default:'confirmed';index" json:"status"`

	// RoundCount is 1 for single-day bookings.
	RoundCount int `gorm:"not null;default:1" json:"round_count"`

	ParticipantIDs []string `gorm:"type:jsonb;serializer:json" json:"participant_ids"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Slots []BookingSlot `gorm:"foreignKey:BookingID" json:"slots,omitempty"`
}

// TableName returns the table name for GORM.
func (Booking) TableName() string {
	return "bookings"
}

// BookingSlot is one placed session within a booking.
type BookingSlot struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID string `gorm:"type:uuid;index:idx_booking_slots_booking;not null" json:"booking_id"`

	SessionID  string    `gorm:"type:uuid;not null" json:"session_id"`
	Title      string    `gorm:"type:varchar(255)" json:"title"`
	RoundIndex int       `gorm:"not null;default:0" json:"round_index"`
	StartsAt   time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt     time.Time `gorm:"not null" json:"ends_at"`

	Participants []ParticipantAssignment `gorm:"type:jsonb;serializer:json" json:"participants"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (BookingSlot) TableName() string {
	return "booking_slots"
}
