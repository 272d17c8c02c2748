/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

// SearchConfig is the flat set of toggles passed into every search call.
// The zero value is NOT safe; use DefaultSearchConfig so omitted constraint
// flags default to enforced.
type SearchConfig struct {
	RespectWorkHours    bool `json:"respect_work_hours"`
	RespectHolidays     bool `json:"respect_holidays"`
	RespectDayOffs      bool `json:"respect_day_offs"`
	RespectDailyLimits  bool `json:"respect_daily_limits"`
	RespectWeeklyLimits bool `json:"respect_weekly_limits"`
	CheckBusyIntervals  bool `json:"check_busy_intervals"`
	ExcludeBlockedTimes bool `json:"exclude_blocked_times"`

	// BalanceLoad affects tie-break emphasis only: when disabled, equal
	// start times keep generation order instead of sorting by density.
	BalanceLoad bool `json:"balance_load"`

	// IncludeTrainingParticipants enables the trainee augmentation pass
	// for sessions that opt in.
	IncludeTrainingParticipants bool `json:"include_training_participants"`

	// MaxResults caps the accepted result count; the search unwinds once
	// it is reached.
	MaxResults int `json:"max_results"`

	// DayStart is the HH:MM wall-clock start for a day's first session.
	DayStart string `json:"day_start"`

	// DayLengthThresholdMinutes is the break length at which consecutive
	// sessions split into separate rounds (calendar dates).
	DayLengthThresholdMinutes int `json:"day_length_threshold_minutes"`

	// TypicalCapacity is the fixed slot count used by the fast density
	// proxy (assigned slots / TypicalCapacity).
	TypicalCapacity int `json:"typical_capacity"`
}

// Default search parameters. All constraint flags default to enforced.
const (
	DefaultMaxResults       = 10
	DefaultDayStart         = "09:00"
	DefaultDayThresholdMins = 1440
	DefaultTypicalCapacity  = 10
)

// DefaultSearchConfig returns the enforced-everything configuration.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		RespectWorkHours:            true,
		RespectHolidays:             true,
		RespectDayOffs:              true,
		RespectDailyLimits:          true,
		RespectWeeklyLimits:         true,
		CheckBusyIntervals:          true,
		ExcludeBlockedTimes:         true,
		BalanceLoad:                 true,
		IncludeTrainingParticipants: false,
		MaxResults:                  DefaultMaxResults,
		DayStart:                    DefaultDayStart,
		DayLengthThresholdMinutes:   DefaultDayThresholdMins,
		TypicalCapacity:             DefaultTypicalCapacity,
	}
}
