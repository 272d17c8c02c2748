/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package availability decides whether a participant can take a proposed
// window. Every check is individually toggleable; the evaluator reports
// the full conflict list, not just the first hit, so callers can surface
// all reasons at once.
package availability

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/roundtable/internal/interval"
	"github.com/friendsincode/roundtable/internal/models"
)

// Result is the outcome of evaluating one participant for one window.
type Result struct {
	Available bool
	Conflicts []models.Conflict
}

// Evaluator runs the per-participant availability checks.
type Evaluator struct {
	logger zerolog.Logger
}

// New creates an availability evaluator.
func New(logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		logger: logger.With().Str("component", "availability").Logger(),
	}
}

// Evaluate checks a participant against a proposed [start, end) window.
// Conflicts are expected negative outcomes, never errors.
func (e *Evaluator) Evaluate(p *models.Participant, start, end time.Time, cfg models.SearchConfig) Result {
	var conflicts []models.Conflict

	if cfg.RespectWorkHours {
		if c := e.checkWorkHours(p, start, end); c != nil {
			conflicts = append(conflicts, *c)
		}
	}
	if cfg.RespectHolidays && p.IsExcludedDate(start) {
		conflicts = append(conflicts, models.Conflict{
			Kind:          models.ConflictHoliday,
			ParticipantID: p.ID,
			Message:       fmt.Sprintf("%s is an exclusion date for %s", start.Format("2006-01-02"), p.Name),
		})
	}
	if cfg.RespectDayOffs && p.IsDayOff(start) {
		conflicts = append(conflicts, models.Conflict{
			Kind:          models.ConflictDayOff,
			ParticipantID: p.ID,
			Message:       fmt.Sprintf("%s has a day off on %s", p.Name, start.Format("2006-01-02")),
		})
	}
	if cfg.ExcludeBlockedTimes {
		conflicts = append(conflicts, e.checkBlockedRanges(p, start, end)...)
	}

	return Result{Available: len(conflicts) == 0, Conflicts: conflicts}
}

func (e *Evaluator) checkWorkHours(p *models.Participant, start, end time.Time) *models.Conflict {
	day := start.Weekday()
	hours, ok := p.WorkHoursOn(day)
	if !ok {
		return &models.Conflict{
			Kind:          models.ConflictWorkHours,
			ParticipantID: p.ID,
			Message:       fmt.Sprintf("%s has no work hours configured for %s", p.Name, day),
		}
	}

	workStart, err := interval.ParseClock(hours.Start)
	if err != nil {
		e.logger.Debug().Err(err).Str("participant", p.ID).Msg("invalid work hours start")
		return &models.Conflict{
			Kind:          models.ConflictWorkHours,
			ParticipantID: p.ID,
			Message:       fmt.Sprintf("%s has an invalid work hours range on %s", p.Name, day),
		}
	}
	workEnd, err := interval.ParseClock(hours.End)
	if err != nil {
		e.logger.Debug().Err(err).Str("participant", p.ID).Msg("invalid work hours end")
		return &models.Conflict{
			Kind:          models.ConflictWorkHours,
			ParticipantID: p.ID,
			Message:       fmt.Sprintf("%s has an invalid work hours range on %s", p.Name, day),
		}
	}

	window := interval.FromTimes(start, end)
	if !(interval.Window{Start: workStart, End: workEnd}).Contains(window) {
		return &models.Conflict{
			Kind:          models.ConflictWorkHours,
			ParticipantID: p.ID,
			Message: fmt.Sprintf("window %s-%s falls outside %s's work hours %s-%s on %s",
				interval.FormatClock(window.Start), interval.FormatClock(window.End),
				p.Name, hours.Start, hours.End, day),
		}
	}
	return nil
}

func (e *Evaluator) checkBlockedRanges(p *models.Participant, start, end time.Time) []models.Conflict {
	var conflicts []models.Conflict
	for _, blocked := range p.BlockedRanges {
		if start.Before(blocked.EndsAt) && end.After(blocked.StartsAt) {
			msg := fmt.Sprintf("window overlaps a blocked range for %s (%s to %s)",
				p.Name, blocked.StartsAt.Format(time.RFC3339), blocked.EndsAt.Format(time.RFC3339))
			if blocked.Reason != "" {
				msg += ": " + blocked.Reason
			}
			conflicts = append(conflicts, models.Conflict{
				Kind:          models.ConflictRecruitingBlock,
				ParticipantID: p.ID,
				Message:       msg,
			})
		}
	}
	return conflicts
}
