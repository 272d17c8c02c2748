/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

import (
	"sort"
	"time"

	"github.com/friendsincode/roundtable/internal/models"
)

// The ranker is a pure comparator contract shared by both searches:
// primary key is ISO-comparable start time ordering, secondary key is the
// mean of the per-participant density values. The sorts are stable, so
// remaining ties keep generation order.

// SortCombinations ranks single-day results in place. The density
// tie-break applies only when load balancing is requested; with
// balanceLoad false the secondary key deliberately degrades to
// generation order, leaving equal-start results as the search found
// them.
func SortCombinations(combinations []models.Combination, balanceLoad bool) {
	sort.SliceStable(combinations, func(i, j int) bool {
		a, b := combinations[i], combinations[j]
		ka, kb := startKey(a.FirstStart), startKey(b.FirstStart)
		if ka != kb {
			return ka < kb
		}
		if !balanceLoad {
			return false
		}
		return meanDensity(a.LoadDensity) < meanDensity(b.LoadDensity)
	})
}

// SortPlans ranks multi-day results in place: first round's start time,
// then mean density across all rounds.
func SortPlans(plans []models.MultiDayPlan, balanceLoad bool) {
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		ka, kb := startKey(a.FirstStart()), startKey(b.FirstStart())
		if ka != kb {
			return ka < kb
		}
		if !balanceLoad {
			return false
		}
		return planMeanDensity(a) < planMeanDensity(b)
	})
}

func startKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func meanDensity(densities map[string]float64) float64 {
	if len(densities) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range densities {
		sum += d
	}
	return sum / float64(len(densities))
}

func planMeanDensity(plan models.MultiDayPlan) float64 {
	sum := 0.0
	count := 0
	for _, rp := range plan.RoundPlans {
		for _, d := range rp.Combination.LoadDensity {
			sum += d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
