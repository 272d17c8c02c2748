/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/roundtable/internal/calendar"
	"github.com/friendsincode/roundtable/internal/scenario"
	"github.com/friendsincode/roundtable/internal/scheduling"
)

var verifyFlags struct {
	scenarioPath  string
	participantID string
	start         string
	end           string
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check one participant against one time window",
	Long:  "Report every conflict and the load picture for a participant and a proposed window. Unavailability is a normal result, not an error.",
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFlags.scenarioPath, "scenario", "", "path to the scenario YAML file (required)")
	verifyCmd.Flags().StringVar(&verifyFlags.participantID, "participant", "", "participant id (required)")
	verifyCmd.Flags().StringVar(&verifyFlags.start, "start", "", "window start, RFC3339 (required)")
	verifyCmd.Flags().StringVar(&verifyFlags.end, "end", "", "window end, RFC3339 (required)")
	_ = verifyCmd.MarkFlagRequired("scenario")
	_ = verifyCmd.MarkFlagRequired("participant")
	_ = verifyCmd.MarkFlagRequired("start")
	_ = verifyCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	sc, err := scenario.Load(verifyFlags.scenarioPath)
	if err != nil {
		return err
	}

	start, err := time.Parse(time.RFC3339, verifyFlags.start)
	if err != nil {
		return fmt.Errorf("bad --start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, verifyFlags.end)
	if err != nil {
		return fmt.Errorf("bad --end: %w", err)
	}

	found := -1
	for i := range sc.Participants {
		if sc.Participants[i].ID == verifyFlags.participantID {
			found = i
			break
		}
	}
	if found < 0 {
		return fmt.Errorf("participant %q not in scenario", verifyFlags.participantID)
	}

	service := scheduling.NewService(calendar.NewStaticProvider(sc.Snapshot), nil, logger)
	verification, err := service.Verify(cmd.Context(), sc.Participants[found], start, end, sc.Config)
	if err != nil {
		return err
	}
	return printJSON(verification)
}
