/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/roundtable/internal/calendar"
	"github.com/friendsincode/roundtable/internal/models"
	"github.com/friendsincode/roundtable/internal/telemetry"
)

// MultiDay finds plans that place every round of the session list on a
// distinct calendar date within [from, to], with disjoint participant sets
// across rounds. The returned flag reports deadline truncation; a truncated
// search still returns the plans accepted so far.
func MultiDay(ctx context.Context, from, to time.Time, sessions []models.Session, participants []models.Participant, snapshot calendar.Snapshot, cfg models.SearchConfig, logger zerolog.Logger) ([]models.MultiDayPlan, bool, error) {
	if err := validateInputs(sessions, participants); err != nil {
		return nil, false, err
	}
	if err := validateRange(from, to); err != nil {
		return nil, false, err
	}
	cfg = normalizeConfig(cfg)

	run := &multiDayRun{
		from:         midnight(from),
		to:           midnight(to),
		rounds:       GroupRounds(sessions, cfg.DayLengthThresholdMinutes),
		participants: participants,
		snapshot:     snapshot,
		cfg:          cfg,
		logger:       logger.With().Str("component", "multi_day_search").Logger(),
	}

	run.placeRound(ctx, 0, time.Time{}, nil, make(map[string]struct{}))
	SortPlans(run.results, cfg.BalanceLoad)
	return run.results, run.truncated, nil
}

type multiDayRun struct {
	from         time.Time
	to           time.Time
	rounds       []models.Round
	participants []models.Participant
	snapshot     calendar.Snapshot
	cfg          models.SearchConfig
	logger       zerolog.Logger

	results   []models.MultiDayPlan
	truncated bool
}

// placeRound explores candidate dates for round idx. prevDate is the date
// of the previous round's placement (zero for the first round); used holds
// the participant ids consumed by earlier rounds on this branch.
func (r *multiDayRun) placeRound(ctx context.Context, idx int, prevDate time.Time, plans []models.RoundPlan, used map[string]struct{}) {
	if r.truncated || len(r.results) >= r.cfg.MaxResults {
		return
	}
	if idx == len(r.rounds) {
		r.emit(plans)
		return
	}

	lower := r.from
	if idx > 0 {
		gap := dayGap(r.rounds[idx-1].BreakAfterMinutes, r.cfg.DayLengthThresholdMinutes)
		lower = prevDate.AddDate(0, 0, gap)
	}

	round := r.rounds[idx]
	for date := lower; !date.After(r.to); date = date.AddDate(0, 0, 1) {
		select {
		case <-ctx.Done():
			r.truncated = true
			return
		default:
		}
		if len(r.results) >= r.cfg.MaxResults {
			return
		}

		combinations, truncated, err := Day(ctx, date, round.Sessions, r.participants, r.snapshot, r.cfg, r.logger)
		if err != nil {
			// Input validation already passed at the top level, so a
			// per-date failure is an invariant violation; skip the date.
			r.logger.Error().Err(err).Time("date", date).Int("round", round.Index).
				Msg("day search failed inside multi-day recursion")
			continue
		}
		if truncated {
			r.truncated = true
		}

		for _, c := range combinations {
			if len(r.results) >= r.cfg.MaxResults || r.truncated {
				return
			}
			if reusesParticipants(c, used) {
				telemetry.BranchesPrunedTotal.WithLabelValues(telemetry.GateReuse).Inc()
				continue
			}

			ids := c.ParticipantIDs()
			for _, id := range ids {
				used[id] = struct{}{}
			}
			plan := models.RoundPlan{Round: round, Date: date, Combination: c}
			r.placeRound(ctx, idx+1, date, append(plans, plan), used)
			for _, id := range ids {
				delete(used, id)
			}
			if r.truncated {
				return
			}
		}
	}
}

// emit records one complete plan with a sorted union of participant ids.
func (r *multiDayRun) emit(plans []models.RoundPlan) {
	roundPlans := make([]models.RoundPlan, len(plans))
	copy(roundPlans, plans)

	seen := make(map[string]struct{})
	var ids []string
	for _, rp := range roundPlans {
		for _, id := range rp.Combination.ParticipantIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	r.results = append(r.results, models.MultiDayPlan{
		RoundPlans:     roundPlans,
		RoundCount:     len(roundPlans),
		ParticipantIDs: ids,
	})
	telemetry.PlansAcceptedTotal.Inc()
}

// reusesParticipants reports whether any participant of the combination
// was already consumed by an earlier round. Identity only; time windows
// are irrelevant because rounds live on different dates.
func reusesParticipants(c models.Combination, used map[string]struct{}) bool {
	for _, slot := range c.Slots {
		for _, a := range slot.Participants {
			if _, ok := used[a.ParticipantID]; ok {
				return true
			}
		}
	}
	return false
}

// dayGap converts a round-boundary break into a minimum calendar-day gap,
// rounding up so a break of one threshold still advances a full day.
func dayGap(breakAfterMinutes, thresholdMinutes int) int {
	if breakAfterMinutes <= 0 || thresholdMinutes <= 0 {
		return 1
	}
	return (breakAfterMinutes + thresholdMinutes - 1) / thresholdMinutes
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
