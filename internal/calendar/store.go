/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package calendar

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/friendsincode/roundtable/internal/models"
)

// StoreProvider reads busy intervals from the database. Confirmed booking
// slots are materialized into the busy_intervals table, so one query covers
// both external calendar imports and our own bookings.
type StoreProvider struct {
	db *gorm.DB
}

// NewStoreProvider wraps a database handle.
func NewStoreProvider(db *gorm.DB) *StoreProvider {
	return &StoreProvider{db: db}
}

// BusyIntervals loads every stored interval overlapping [from, to] for the
// given participants, grouped by participant and ordered by start time.
func (p *StoreProvider) BusyIntervals(ctx context.Context, participantIDs []string, from, to time.Time) (Snapshot, error) {
	if len(participantIDs) == 0 {
		return Snapshot{}, nil
	}

	var rows []models.BusyInterval
	err := p.db.WithContext(ctx).
		Where("participant_id IN ?", participantIDs).
		Where("starts_at < ? AND ends_at > ?", to, from).
		Order("participant_id, starts_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load busy intervals: %w", err)
	}

	snapshot := make(Snapshot, len(participantIDs))
	for _, row := range rows {
		snapshot[row.ParticipantID] = append(snapshot[row.ParticipantID], row)
	}
	return snapshot, nil
}
