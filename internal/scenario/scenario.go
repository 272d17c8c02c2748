/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package scenario loads scheduling requests from YAML files for the CLI
// and for seeding a database. The file format mirrors the domain models
// but keeps everything human-writable: weekday names, HH:MM clocks, and
// YYYY-MM-DD dates.
package scenario

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/roundtable/internal/calendar"
	"github.com/friendsincode/roundtable/internal/models"
)

const dateLayout = "2006-01-02"

// File is the top-level YAML document.
type File struct {
	Sessions     []SessionSpec     `yaml:"sessions"`
	Participants []ParticipantSpec `yaml:"participants"`
	Busy         []BusySpec        `yaml:"busy,omitempty"`
	Config       ConfigSpec        `yaml:"config,omitempty"`
}

// SessionSpec describes one session.
type SessionSpec struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	DurationMinutes int      `yaml:"duration_minutes"`
	BreakAfter      int      `yaml:"break_after_minutes"`
	RequiredCount   int      `yaml:"required_count"`
	Order           int      `yaml:"order"`
	CandidatePool   []string `yaml:"candidate_pool,omitempty"`
	IncludeTrainees bool     `yaml:"include_trainees,omitempty"`
}

// ParticipantSpec describes one participant.
type ParticipantSpec struct {
	ID             string               `yaml:"id"`
	Name           string               `yaml:"name"`
	Email          string               `yaml:"email,omitempty"`
	Timezone       string               `yaml:"timezone,omitempty"`
	WorkHours      map[string]ClockSpec `yaml:"work_hours,omitempty"` // keyed by weekday name
	DailyLimit     *LimitSpec           `yaml:"daily_limit,omitempty"`
	WeeklyLimit    *LimitSpec           `yaml:"weekly_limit,omitempty"`
	ExclusionDates []string             `yaml:"exclusion_dates,omitempty"` // YYYY-MM-DD
	DayOffDates    []string             `yaml:"day_off_dates,omitempty"`
	BlockedRanges  []BlockedSpec        `yaml:"blocked_ranges,omitempty"`
	Trainee        bool                 `yaml:"trainee,omitempty"`
}

// ClockSpec is an HH:MM window.
type ClockSpec struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// LimitSpec is a daily or weekly load ceiling.
type LimitSpec struct {
	Type string `yaml:"type"` // duration | count
	Max  int    `yaml:"max"`
}

// BlockedSpec is an absolute blocked range.
type BlockedSpec struct {
	StartsAt time.Time `yaml:"starts_at"`
	EndsAt   time.Time `yaml:"ends_at"`
	Reason   string    `yaml:"reason,omitempty"`
}

// BusySpec is one external busy interval.
type BusySpec struct {
	ParticipantID string    `yaml:"participant_id"`
	StartsAt      time.Time `yaml:"starts_at"`
	EndsAt        time.Time `yaml:"ends_at"`
	Label         string    `yaml:"label,omitempty"`
}

// ConfigSpec mirrors the search config. Constraint flags are pointers so
// an omitted flag defaults to enforced rather than to false.
type ConfigSpec struct {
	RespectWorkHours    *bool `yaml:"respect_work_hours,omitempty"`
	RespectHolidays     *bool `yaml:"respect_holidays,omitempty"`
	RespectDayOffs      *bool `yaml:"respect_day_offs,omitempty"`
	RespectDailyLimits  *bool `yaml:"respect_daily_limits,omitempty"`
	RespectWeeklyLimits *bool `yaml:"respect_weekly_limits,omitempty"`
	CheckBusyIntervals  *bool `yaml:"check_busy_intervals,omitempty"`
	ExcludeBlockedTimes *bool `yaml:"exclude_blocked_times,omitempty"`
	BalanceLoad         *bool `yaml:"balance_load,omitempty"`
	IncludeTrainees     *bool `yaml:"include_training_participants,omitempty"`

	MaxResults      int    `yaml:"max_results,omitempty"`
	DayStart        string `yaml:"day_start,omitempty"`
	DayThreshold    int    `yaml:"day_length_threshold_minutes,omitempty"`
	TypicalCapacity int    `yaml:"typical_capacity,omitempty"`
}

// Load reads and converts a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse converts raw YAML into domain models.
func Parse(data []byte) (*Scenario, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return file.convert()
}

// Scenario is a fully converted scheduling request.
type Scenario struct {
	Sessions     []models.Session
	Participants []models.Participant
	Snapshot     calendar.Snapshot
	Config       models.SearchConfig
}

func (f File) convert() (*Scenario, error) {
	s := &Scenario{
		Snapshot: make(calendar.Snapshot),
		Config:   f.Config.toConfig(),
	}

	for _, spec := range f.Sessions {
		s.Sessions = append(s.Sessions, models.Session{
			ID:                spec.ID,
			Title:             spec.Title,
			DurationMinutes:   spec.DurationMinutes,
			BreakAfterMinutes: spec.BreakAfter,
			RequiredCount:     spec.RequiredCount,
			Order:             spec.Order,
			CandidatePool:     spec.CandidatePool,
			IncludeTrainees:   spec.IncludeTrainees,
		})
	}

	for _, spec := range f.Participants {
		p, err := spec.toParticipant()
		if err != nil {
			return nil, err
		}
		s.Participants = append(s.Participants, *p)
	}

	for i, spec := range f.Busy {
		s.Snapshot[spec.ParticipantID] = append(s.Snapshot[spec.ParticipantID], models.BusyInterval{
			ID:            fmt.Sprintf("busy-%d", i),
			ParticipantID: spec.ParticipantID,
			StartsAt:      spec.StartsAt,
			EndsAt:        spec.EndsAt,
			Label:         spec.Label,
		})
	}

	return s, nil
}

func (spec ParticipantSpec) toParticipant() (*models.Participant, error) {
	p := &models.Participant{
		ID:       spec.ID,
		Name:     spec.Name,
		Email:    spec.Email,
		Timezone: spec.Timezone,
		Trainee:  spec.Trainee,
	}

	if len(spec.WorkHours) > 0 {
		p.WorkHours = make(map[time.Weekday]models.ClockRange, len(spec.WorkHours))
		for dayName, clock := range spec.WorkHours {
			day, err := parseWeekday(dayName)
			if err != nil {
				return nil, fmt.Errorf("participant %s: %w", spec.ID, err)
			}
			p.WorkHours[day] = models.ClockRange{Start: clock.Start, End: clock.End}
		}
	}

	if spec.DailyLimit != nil {
		limit, err := spec.DailyLimit.toLimit()
		if err != nil {
			return nil, fmt.Errorf("participant %s daily limit: %w", spec.ID, err)
		}
		p.DailyLimit = limit
	}
	if spec.WeeklyLimit != nil {
		limit, err := spec.WeeklyLimit.toLimit()
		if err != nil {
			return nil, fmt.Errorf("participant %s weekly limit: %w", spec.ID, err)
		}
		p.WeeklyLimit = limit
	}

	var err error
	if p.ExclusionDates, err = parseDates(spec.ExclusionDates); err != nil {
		return nil, fmt.Errorf("participant %s exclusion dates: %w", spec.ID, err)
	}
	if p.DayOffDates, err = parseDates(spec.DayOffDates); err != nil {
		return nil, fmt.Errorf("participant %s day-off dates: %w", spec.ID, err)
	}

	for _, blocked := range spec.BlockedRanges {
		p.BlockedRanges = append(p.BlockedRanges, models.BlockedRange{
			StartsAt: blocked.StartsAt,
			EndsAt:   blocked.EndsAt,
			Reason:   blocked.Reason,
		})
	}

	return p, nil
}

func (spec LimitSpec) toLimit() (*models.LoadLimit, error) {
	switch models.LimitType(spec.Type) {
	case models.LimitDuration, models.LimitCount:
		return &models.LoadLimit{Type: models.LimitType(spec.Type), Max: spec.Max}, nil
	default:
		return nil, fmt.Errorf("unknown limit type %q", spec.Type)
	}
}

func (c ConfigSpec) toConfig() models.SearchConfig {
	cfg := models.DefaultSearchConfig()

	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&cfg.RespectWorkHours, c.RespectWorkHours)
	setBool(&cfg.RespectHolidays, c.RespectHolidays)
	setBool(&cfg.RespectDayOffs, c.RespectDayOffs)
	setBool(&cfg.RespectDailyLimits, c.RespectDailyLimits)
	setBool(&cfg.RespectWeeklyLimits, c.RespectWeeklyLimits)
	setBool(&cfg.CheckBusyIntervals, c.CheckBusyIntervals)
	setBool(&cfg.ExcludeBlockedTimes, c.ExcludeBlockedTimes)
	setBool(&cfg.BalanceLoad, c.BalanceLoad)
	setBool(&cfg.IncludeTrainingParticipants, c.IncludeTrainees)

	if c.MaxResults > 0 {
		cfg.MaxResults = c.MaxResults
	}
	if c.DayStart != "" {
		cfg.DayStart = c.DayStart
	}
	if c.DayThreshold > 0 {
		cfg.DayLengthThresholdMinutes = c.DayThreshold
	}
	if c.TypicalCapacity > 0 {
		cfg.TypicalCapacity = c.TypicalCapacity
	}
	return cfg
}

func parseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(name) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
}

func parseDates(raw []string) ([]time.Time, error) {
	var dates []time.Time
	for _, r := range raw {
		d, err := time.Parse(dateLayout, r)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", r, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}
