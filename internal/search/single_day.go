/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package search implements the backtracking engines that place sessions
// in time: the single-day search over session combinations and the
// multi-day search over rounds. Both are synchronous, depth-first, and
// deterministic: identical inputs and an unchanged busy-interval snapshot
// yield an identical ordered result list.
package search

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/roundtable/internal/availability"
	"github.com/friendsincode/roundtable/internal/calendar"
	"github.com/friendsincode/roundtable/internal/combo"
	"github.com/friendsincode/roundtable/internal/interval"
	"github.com/friendsincode/roundtable/internal/load"
	"github.com/friendsincode/roundtable/internal/models"
	"github.com/friendsincode/roundtable/internal/telemetry"
)

// Day finds every valid same-day placement of the given sessions on date,
// ranked by earliest start and lowest mean participant density. The
// returned flag reports whether the search was truncated by the context
// deadline; a truncated search still returns the results accepted so far.
func Day(ctx context.Context, date time.Time, sessions []models.Session, participants []models.Participant, snapshot calendar.Snapshot, cfg models.SearchConfig, logger zerolog.Logger) ([]models.Combination, bool, error) {
	if err := validateInputs(sessions, participants); err != nil {
		return nil, false, err
	}
	cfg = normalizeConfig(cfg)

	run, err := newDayRun(date, sessions, participants, snapshot, cfg, logger)
	if err != nil {
		return nil, false, err
	}

	run.place(ctx, 0, nil)
	SortCombinations(run.results, cfg.BalanceLoad)
	return run.results, run.truncated, nil
}

// normalizeConfig fills zero-valued numeric parameters with defaults so a
// partially-populated config behaves like an enforced one.
func normalizeConfig(cfg models.SearchConfig) models.SearchConfig {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = models.DefaultMaxResults
	}
	if cfg.DayStart == "" {
		cfg.DayStart = models.DefaultDayStart
	}
	if cfg.DayLengthThresholdMinutes <= 0 {
		cfg.DayLengthThresholdMinutes = models.DefaultDayThresholdMins
	}
	if cfg.TypicalCapacity <= 0 {
		cfg.TypicalCapacity = models.DefaultTypicalCapacity
	}
	return cfg
}

type dayRun struct {
	date     time.Time // midnight of the target date
	dayStart int       // minutes from midnight for the first session
	sessions []models.Session
	byID     map[string]*models.Participant
	combos   [][][]string // per session: candidate id subsets, generation order
	snapshot calendar.Snapshot
	cfg      models.SearchConfig
	eval     *availability.Evaluator
	logger   zerolog.Logger

	results   []models.Combination
	truncated bool
}

func newDayRun(date time.Time, sessions []models.Session, participants []models.Participant, snapshot calendar.Snapshot, cfg models.SearchConfig, logger zerolog.Logger) (*dayRun, error) {
	dayStart, err := interval.ParseClock(cfg.DayStart)
	if err != nil {
		return nil, err
	}

	ordered := make([]models.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	byID := make(map[string]*models.Participant, len(participants))
	allIDs := make([]string, 0, len(participants))
	for i := range participants {
		p := &participants[i]
		byID[p.ID] = p
		allIDs = append(allIDs, p.ID)
	}

	run := &dayRun{
		date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		dayStart: dayStart,
		sessions: ordered,
		byID:     byID,
		snapshot: snapshot,
		cfg:      cfg,
		eval:     availability.New(logger),
		logger:   logger.With().Str("component", "day_search").Logger(),
	}

	// Pre-generate each session's candidate combinations. The search
	// explores them in generation order, which fixes tie-breaking.
	run.combos = make([][][]string, len(ordered))
	for i, s := range ordered {
		pool := s.CandidatePool
		if len(pool) == 0 {
			pool = allIDs
		}
		var regulars, trainees []string
		for _, id := range pool {
			p, ok := byID[id]
			if !ok {
				continue
			}
			if p.Trainee {
				trainees = append(trainees, id)
			} else {
				regulars = append(regulars, id)
			}
		}
		includeTrainees := s.IncludeTrainees && cfg.IncludeTrainingParticipants
		run.combos[i] = combo.Generate(regulars, trainees, s.RequiredCount, includeTrainees)
	}

	return run, nil
}

// place advances the backtracking state machine at session index idx.
// Each branch reads only immutable inputs and writes only branch-local
// accumulators; a pruned branch stays pruned.
func (r *dayRun) place(ctx context.Context, idx int, slots []models.PlacedSlot) {
	if r.truncated || len(r.results) >= r.cfg.MaxResults {
		return
	}
	if idx == len(r.sessions) {
		r.emit(slots)
		return
	}

	session := r.sessions[idx]
	var start time.Time
	if idx == 0 {
		start = r.date.Add(time.Duration(r.dayStart) * time.Minute)
	} else {
		prevBreak := time.Duration(r.sessions[idx-1].BreakAfterMinutes) * time.Minute
		start = slots[idx-1].EndsAt.Add(prevBreak)
	}
	end := start.Add(time.Duration(session.DurationMinutes) * time.Minute)

	for _, ids := range r.combos[idx] {
		select {
		case <-ctx.Done():
			r.truncated = true
			return
		default:
		}
		if len(r.results) >= r.cfg.MaxResults {
			return
		}

		assignments, ok := r.admit(ids, start, end)
		if !ok {
			continue
		}

		slot := models.PlacedSlot{
			SessionID:    session.ID,
			Title:        session.Title,
			Order:        session.Order,
			StartsAt:     start,
			EndsAt:       end,
			Participants: assignments,
		}
		r.place(ctx, idx+1, append(slots, slot))
		if r.truncated {
			return
		}
	}
}

// admit validates one candidate combination for the window. All gates
// must pass for every participant or the branch is pruned; there is no
// partial accept.
func (r *dayRun) admit(ids []string, start, end time.Time) ([]models.ParticipantAssignment, bool) {
	assignments := make([]models.ParticipantAssignment, 0, len(ids))
	for _, id := range ids {
		p, ok := r.byID[id]
		if !ok {
			return nil, false
		}

		if res := r.eval.Evaluate(p, start, end, r.cfg); !res.Available {
			telemetry.BranchesPrunedTotal.WithLabelValues(telemetry.GateAvailability).Inc()
			return nil, false
		}

		if r.cfg.CheckBusyIntervals && anyOverlap(r.snapshot.For(id), start, end) {
			telemetry.BranchesPrunedTotal.WithLabelValues(telemetry.GateBusyOverlap).Inc()
			return nil, false
		}

		if r.cfg.RespectDailyLimits || r.cfg.RespectWeeklyLimits {
			info := load.Compute(p, start, end, r.snapshot.For(id))
			if load.WouldExceedLimits(info, r.cfg) {
				telemetry.BranchesPrunedTotal.WithLabelValues(telemetry.GateLoadLimit).Inc()
				return nil, false
			}
		}

		assignments = append(assignments, models.ParticipantAssignment{
			ParticipantID: p.ID,
			Name:          p.Name,
			Email:         p.Email,
			Trainee:       p.Trainee,
		})
	}
	return assignments, true
}

// emit records one complete combination. The per-participant density here
// is the coarse count-based proxy (assigned slots over typical capacity),
// computed once per accepted leaf; the load tracker's exact density is a
// separate, more expensive operation.
func (r *dayRun) emit(slots []models.PlacedSlot) {
	placed := make([]models.PlacedSlot, len(slots))
	copy(placed, slots)

	counts := make(map[string]int)
	for _, slot := range placed {
		for _, a := range slot.Participants {
			counts[a.ParticipantID]++
		}
	}
	density := make(map[string]float64, len(counts))
	for id, n := range counts {
		density[id] = float64(n) / float64(r.cfg.TypicalCapacity)
	}

	first := placed[0].StartsAt
	last := placed[len(placed)-1].EndsAt

	r.results = append(r.results, models.Combination{
		Date:             r.date,
		Slots:            placed,
		FirstStart:       first,
		LastEnd:          last,
		TotalSpanMinutes: int(last.Sub(first).Minutes()),
		LoadDensity:      density,
	})
	telemetry.CombinationsAcceptedTotal.Inc()
}

func anyOverlap(busy []models.BusyInterval, start, end time.Time) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
