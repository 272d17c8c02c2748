/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package calendar supplies busy-interval snapshots to the search engine.
// The engine consumes a snapshot as a pure, pre-computed input: retrieval
// completes before a search begins, and the snapshot must not change for
// the duration of one invocation.
package calendar

import (
	"context"
	"time"

	"github.com/friendsincode/roundtable/internal/models"
)

// Snapshot maps participant id to that participant's busy intervals,
// ordered by start time. A missing entry means "no known busy time".
type Snapshot map[string][]models.BusyInterval

// For returns the busy intervals of one participant.
func (s Snapshot) For(participantID string) []models.BusyInterval {
	return s[participantID]
}

// Provider fetches busy intervals for a participant set and date range.
type Provider interface {
	BusyIntervals(ctx context.Context, participantIDs []string, from, to time.Time) (Snapshot, error)
}

// StaticProvider serves a fixed snapshot. Used by tests and file-driven
// CLI runs where the busy intervals arrive with the scenario.
type StaticProvider struct {
	snapshot Snapshot
}

// NewStaticProvider wraps an immutable snapshot.
func NewStaticProvider(snapshot Snapshot) *StaticProvider {
	return &StaticProvider{snapshot: snapshot}
}

// BusyIntervals returns the subset of the snapshot matching the requested
// participants and range.
func (p *StaticProvider) BusyIntervals(_ context.Context, participantIDs []string, from, to time.Time) (Snapshot, error) {
	out := make(Snapshot, len(participantIDs))
	for _, id := range participantIDs {
		for _, b := range p.snapshot[id] {
			if b.StartsAt.Before(to) && b.EndsAt.After(from) {
				out[id] = append(out[id], b)
			}
		}
	}
	return out, nil
}
