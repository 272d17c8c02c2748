/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

import (
	"testing"
	"time"

	"github.com/friendsincode/roundtable/internal/models"
)

func comboAt(start time.Time, densities map[string]float64) models.Combination {
	return models.Combination{FirstStart: start, LoadDensity: densities}
}

func TestSortCombinationsByStart(t *testing.T) {
	later := comboAt(time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), nil)
	earlier := comboAt(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), nil)

	combos := []models.Combination{later, earlier}
	SortCombinations(combos, false)

	if !combos[0].FirstStart.Equal(earlier.FirstStart) {
		t.Errorf("first combination starts %s, want %s", combos[0].FirstStart, earlier.FirstStart)
	}
}

func TestSortCombinationsDensityTieBreak(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	heavy := comboAt(start, map[string]float64{"p1": 0.9})
	light := comboAt(start, map[string]float64{"p1": 0.1})

	combos := []models.Combination{heavy, light}
	SortCombinations(combos, true)
	if combos[0].LoadDensity["p1"] != 0.1 {
		t.Error("balance-load tie-break did not prefer the lighter combination")
	}

	// Without balance-load the stable sort keeps generation order.
	combos = []models.Combination{heavy, light}
	SortCombinations(combos, false)
	if combos[0].LoadDensity["p1"] != 0.9 {
		t.Error("tie without balance-load should keep generation order")
	}
}

func TestSortPlans(t *testing.T) {
	planAt := func(start time.Time, density float64) models.MultiDayPlan {
		return models.MultiDayPlan{
			RoundPlans: []models.RoundPlan{{
				Combination: comboAt(start, map[string]float64{"p1": density}),
			}},
			RoundCount: 1,
		}
	}

	early := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	plans := []models.MultiDayPlan{planAt(late, 0.1), planAt(early, 0.9), planAt(early, 0.2)}
	SortPlans(plans, true)

	if !plans[0].FirstStart().Equal(early) {
		t.Fatal("plans not sorted by first start")
	}
	if plans[0].RoundPlans[0].Combination.LoadDensity["p1"] != 0.2 {
		t.Error("equal starts not tie-broken by mean density")
	}
	if !plans[2].FirstStart().Equal(late) {
		t.Error("latest plan not last")
	}
}

func TestMeanDensity(t *testing.T) {
	if got := meanDensity(nil); got != 0 {
		t.Errorf("meanDensity(nil) = %f, want 0", got)
	}
	if got := meanDensity(map[string]float64{"a": 0.25, "b": 0.75}); got != 0.5 {
		t.Errorf("meanDensity = %f, want 0.5", got)
	}
}
