/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package search

import (
	"testing"

	"github.com/friendsincode/roundtable/internal/models"
)

func TestGroupRoundsThresholdSplits(t *testing.T) {
	// A break at the threshold closes the round.
	sessions := []models.Session{
		session("s1", 60, 1440, 1, 0),
		session("s2", 60, 0, 1, 1),
	}

	rounds := GroupRounds(sessions, 1440)
	if len(rounds) != 2 {
		t.Fatalf("got %d rounds, want 2", len(rounds))
	}
	if len(rounds[0].Sessions) != 1 || rounds[0].Sessions[0].ID != "s1" {
		t.Errorf("round 0 = %v, want [s1]", rounds[0].Sessions)
	}
	if len(rounds[1].Sessions) != 1 || rounds[1].Sessions[0].ID != "s2" {
		t.Errorf("round 1 = %v, want [s2]", rounds[1].Sessions)
	}
	if rounds[0].BreakAfterMinutes != 1440 {
		t.Errorf("round 0 boundary break = %d, want 1440", rounds[0].BreakAfterMinutes)
	}
	if rounds[0].Index != 0 || rounds[1].Index != 1 {
		t.Errorf("round indices = %d, %d, want 0, 1", rounds[0].Index, rounds[1].Index)
	}
}

func TestGroupRoundsBelowThresholdSingleRound(t *testing.T) {
	// No break reaches the threshold: exactly one round with all sessions.
	sessions := []models.Session{
		session("s1", 60, 15, 1, 0),
		session("s2", 60, 120, 1, 1),
		session("s3", 60, 0, 1, 2),
	}

	rounds := GroupRounds(sessions, 1440)
	if len(rounds) != 1 {
		t.Fatalf("got %d rounds, want 1", len(rounds))
	}
	if len(rounds[0].Sessions) != len(sessions) {
		t.Errorf("round holds %d sessions, want %d", len(rounds[0].Sessions), len(sessions))
	}
}

func TestGroupRoundsSortsByOrder(t *testing.T) {
	sessions := []models.Session{
		session("s2", 60, 0, 1, 1),
		session("s1", 60, 1440, 1, 0),
	}

	rounds := GroupRounds(sessions, 1440)
	if len(rounds) != 2 {
		t.Fatalf("got %d rounds, want 2", len(rounds))
	}
	if rounds[0].Sessions[0].ID != "s1" {
		t.Errorf("first round starts with %s, want s1 (sorted by order)", rounds[0].Sessions[0].ID)
	}
}

func TestGroupRoundsTrailingBoundaryNoEmptyRound(t *testing.T) {
	// A threshold break on the last session must not create an empty
	// trailing round.
	sessions := []models.Session{session("s1", 60, 1440, 1, 0)}

	rounds := GroupRounds(sessions, 1440)
	if len(rounds) != 1 {
		t.Fatalf("got %d rounds, want 1", len(rounds))
	}
}

func TestGroupRoundsEmpty(t *testing.T) {
	if rounds := GroupRounds(nil, 1440); rounds != nil {
		t.Errorf("GroupRounds(nil) = %v, want nil", rounds)
	}
}
