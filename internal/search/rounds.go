/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

import (
	"sort"

	"github.com/friendsincode/roundtable/internal/models"
)

// GroupRounds partitions sessions into rounds (same-day clusters) in a
// single linear pass over the order-sorted list. A session whose break
// reaches the day-length threshold closes its round; trailing sessions
// form the final round. Deterministic, O(n) after the sort.
func GroupRounds(sessions []models.Session, thresholdMinutes int) []models.Round {
	if len(sessions) == 0 {
		return nil
	}

	ordered := make([]models.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	var rounds []models.Round
	current := models.Round{Index: 0}

	for _, s := range ordered {
		current.Sessions = append(current.Sessions, s)
		if s.BreakAfterMinutes >= thresholdMinutes {
			current.BreakAfterMinutes = s.BreakAfterMinutes
			rounds = append(rounds, current)
			current = models.Round{Index: len(rounds)}
		}
	}
	if len(current.Sessions) > 0 {
		rounds = append(rounds, current)
	}
	return rounds
}
