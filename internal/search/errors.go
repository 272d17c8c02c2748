/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/friendsincode/roundtable/internal/models"
)

var (
	// ErrNoSessions indicates an empty session list was submitted.
	ErrNoSessions = errors.New("no sessions provided")

	// ErrNoParticipants indicates an empty participant list was submitted.
	ErrNoParticipants = errors.New("no participants provided")

	// ErrInvalidDateRange indicates a malformed or inverted date range.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrAlgorithm indicates an internal invariant violation, a
	// programming-error-class fault that aborts the call.
	ErrAlgorithm = errors.New("scheduling invariant violated")
)

// validateInputs runs the setup-time checks. Fatal problems surface here,
// before recursion begins; everything discovered during the search itself
// only prunes branches.
func validateInputs(sessions []models.Session, participants []models.Participant) error {
	if len(sessions) == 0 {
		return ErrNoSessions
	}
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	for _, s := range sessions {
		if s.DurationMinutes <= 0 {
			return fmt.Errorf("%w: session %s has non-positive duration %d", ErrAlgorithm, s.ID, s.DurationMinutes)
		}
		if s.BreakAfterMinutes < 0 {
			return fmt.Errorf("%w: session %s has negative break %d", ErrAlgorithm, s.ID, s.BreakAfterMinutes)
		}
		if s.RequiredCount <= 0 {
			return fmt.Errorf("%w: session %s requires %d participants", ErrAlgorithm, s.ID, s.RequiredCount)
		}
	}
	return nil
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: range bounds must be set", ErrInvalidDateRange)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: %s ends before it starts (%s)", ErrInvalidDateRange,
			to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return nil
}
