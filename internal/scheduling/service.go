/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package scheduling is the orchestration layer above the search engine:
// it snapshots busy intervals, runs the requested search, records
// telemetry, and announces outcomes on the event bus. Transport layers and
// the CLI talk to this package, never to internal/search directly.
package scheduling

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/roundtable/internal/availability"
	"github.com/friendsincode/roundtable/internal/calendar"
	"github.com/friendsincode/roundtable/internal/events"
	"github.com/friendsincode/roundtable/internal/load"
	"github.com/friendsincode/roundtable/internal/models"
	"github.com/friendsincode/roundtable/internal/search"
	"github.com/friendsincode/roundtable/internal/telemetry"
)

// Publisher is the event sink the service announces outcomes on.
type Publisher interface {
	Publish(eventType events.EventType, payload events.Payload)
}

// Service coordinates snapshot retrieval, search execution and event
// publication for one scheduling request.
type Service struct {
	provider calendar.Provider
	bus      Publisher
	eval     *availability.Evaluator
	logger   zerolog.Logger
}

// NewService creates a scheduling service. bus may be nil for callers that
// do not need event fan-out (tests, one-shot CLI verification).
func NewService(provider calendar.Provider, bus Publisher, logger zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		bus:      bus,
		eval:     availability.New(logger),
		logger:   logger.With().Str("component", "scheduling").Logger(),
	}
}

// DayResult is the outcome of a single-day search.
type DayResult struct {
	Combinations []models.Combination `json:"combinations"`
	Truncated    bool                 `json:"truncated"`
}

// RangeResult is the outcome of a multi-day search.
type RangeResult struct {
	Plans     []models.MultiDayPlan `json:"plans"`
	Truncated bool                  `json:"truncated"`
}

// SearchDay finds conflict-free same-day placements of the sessions on the
// given date.
func (s *Service) SearchDay(ctx context.Context, date time.Time, sessions []models.Session, participants []models.Participant, cfg models.SearchConfig) (*DayResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "scheduling", "search_day")
	defer span.End()
	started := time.Now()

	snapshot, err := s.snapshot(ctx, participants, date, date, cfg)
	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.SearchesTotal.WithLabelValues("day", "error").Inc()
		return nil, err
	}

	combinations, truncated, err := search.Day(ctx, date, sessions, participants, snapshot, cfg, s.logger)
	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.SearchesTotal.WithLabelValues("day", "error").Inc()
		return nil, err
	}

	telemetry.AddSpanAttributes(span, map[string]any{"results": len(combinations), "truncated": truncated})
	s.finish("day", started, len(combinations), truncated, events.Payload{
		"mode":      "day",
		"date":      date.Format("2006-01-02"),
		"results":   len(combinations),
		"truncated": truncated,
	})
	return &DayResult{Combinations: combinations, Truncated: truncated}, nil
}

// SearchRange finds multi-day plans placing every round of the session
// list within [from, to].
func (s *Service) SearchRange(ctx context.Context, from, to time.Time, sessions []models.Session, participants []models.Participant, cfg models.SearchConfig) (*RangeResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "scheduling", "search_range")
	defer span.End()
	started := time.Now()

	snapshot, err := s.snapshot(ctx, participants, from, to, cfg)
	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.SearchesTotal.WithLabelValues("range", "error").Inc()
		return nil, err
	}

	plans, truncated, err := search.MultiDay(ctx, from, to, sessions, participants, snapshot, cfg, s.logger)
	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.SearchesTotal.WithLabelValues("range", "error").Inc()
		return nil, err
	}

	telemetry.AddSpanAttributes(span, map[string]any{"results": len(plans), "truncated": truncated})
	s.finish("range", started, len(plans), truncated, events.Payload{
		"mode":      "range",
		"from":      from.Format("2006-01-02"),
		"to":        to.Format("2006-01-02"),
		"results":   len(plans),
		"truncated": truncated,
	})
	return &RangeResult{Plans: plans, Truncated: truncated}, nil
}

// Verification is the full availability picture for one participant and
// window. Available being false is a normal outcome, never an error.
type Verification struct {
	ParticipantID string            `json:"participant_id"`
	Available     bool              `json:"available"`
	Conflicts     []models.Conflict `json:"conflicts,omitempty"`
	Load          load.Info         `json:"load"`
}

// Verify checks one participant against one window and reports every
// conflict plus the load picture. It errors only on snapshot retrieval
// failure, not on unavailability.
func (s *Service) Verify(ctx context.Context, p models.Participant, start, end time.Time, cfg models.SearchConfig) (*Verification, error) {
	ctx, span := telemetry.StartSpan(ctx, "scheduling", "verify")
	defer span.End()

	snapshot, err := s.snapshot(ctx, []models.Participant{p}, start, end, cfg)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	busy := snapshot.For(p.ID)

	res := s.eval.Evaluate(&p, start, end, cfg)
	conflicts := res.Conflicts

	if cfg.CheckBusyIntervals {
		for _, b := range busy {
			if b.Overlaps(start, end) {
				conflicts = append(conflicts, models.Conflict{
					Kind:          models.ConflictBusyInterval,
					ParticipantID: p.ID,
					Message: "window overlaps a busy interval from " +
						b.StartsAt.Format(time.RFC3339) + " to " + b.EndsAt.Format(time.RFC3339),
				})
			}
		}
	}

	info := load.Compute(&p, start, end, busy)
	if load.WouldExceedLimits(info, cfg) {
		if cfg.RespectDailyLimits && info.Daily != nil && info.Daily.Density > 1.0 {
			conflicts = append(conflicts, models.Conflict{
				Kind:          models.ConflictDailyLimit,
				ParticipantID: p.ID,
				Message:       "window would exceed the daily load limit",
			})
		}
		if cfg.RespectWeeklyLimits && info.Weekly != nil && info.Weekly.Density > 1.0 {
			conflicts = append(conflicts, models.Conflict{
				Kind:          models.ConflictWeeklyLimit,
				ParticipantID: p.ID,
				Message:       "window would exceed the weekly load limit",
			})
		}
	}

	return &Verification{
		ParticipantID: p.ID,
		Available:     len(conflicts) == 0,
		Conflicts:     conflicts,
		Load:          info,
	}, nil
}

// snapshot retrieves busy intervals for all participants up front. The
// fetch happens whenever any flag consumes the snapshot: overlap checking
// and both load limits each read from it independently. Retrieval is
// skipped only when none of the three is enforced.
func (s *Service) snapshot(ctx context.Context, participants []models.Participant, from, to time.Time, cfg models.SearchConfig) (calendar.Snapshot, error) {
	needed := cfg.CheckBusyIntervals || cfg.RespectDailyLimits || cfg.RespectWeeklyLimits
	if !needed || s.provider == nil {
		return calendar.Snapshot{}, nil
	}
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}
	lo, hi := snapshotBounds(from, to, cfg)
	return s.provider.BusyIntervals(ctx, ids, lo, hi)
}

// snapshotBounds widens [from, to] to the range load computation needs:
// daily limits read the whole calendar day, weekly limits the whole
// Sunday-aligned week. The window bounds alone are never enough.
func snapshotBounds(from, to time.Time, cfg models.SearchConfig) (time.Time, time.Time) {
	lo := midnight(from)
	hi := midnight(to).AddDate(0, 0, 1)
	if cfg.RespectWeeklyLimits {
		lo = lo.AddDate(0, 0, -int(lo.Weekday()))
		last := midnight(to)
		hi = last.AddDate(0, 0, 7-int(last.Weekday()))
	}
	return lo, hi
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *Service) finish(mode string, started time.Time, results int, truncated bool, payload events.Payload) {
	outcome := "ok"
	if truncated {
		outcome = "truncated"
	}
	telemetry.SearchesTotal.WithLabelValues(mode, outcome).Inc()
	telemetry.SearchDuration.WithLabelValues(mode).Observe(time.Since(started).Seconds())

	s.logger.Info().
		Str("mode", mode).
		Int("results", results).
		Bool("truncated", truncated).
		Dur("elapsed", time.Since(started)).
		Msg("search completed")

	if s.bus != nil {
		s.bus.Publish(events.EventSearchCompleted, payload)
		if truncated {
			s.bus.Publish(events.EventSearchTruncated, payload)
		}
	}
}
