/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/friendsincode/roundtable/internal/db"
	"github.com/friendsincode/roundtable/internal/models"
	"github.com/friendsincode/roundtable/internal/scenario"
)

var importFlags struct {
	scenarioPath string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a scenario file into the database",
	Long:  "Load the scenario's sessions, participants and busy intervals into the configured database so searches can run against stored data.",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFlags.scenarioPath, "scenario", "", "path to the scenario YAML file (required)")
	_ = importCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	sc, err := scenario.Load(importFlags.scenarioPath)
	if err != nil {
		return err
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			logger.Warn().Err(err).Msg("close database")
		}
	}()

	if err := db.Migrate(conn); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	sessions, participants, busy := 0, 0, 0

	for _, s := range sc.Sessions {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if err := conn.WithContext(cmd.Context()).Save(&s).Error; err != nil {
			return fmt.Errorf("import session %s: %w", s.Title, err)
		}
		sessions++
	}

	for _, p := range sc.Participants {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if err := conn.WithContext(cmd.Context()).Save(&p).Error; err != nil {
			return fmt.Errorf("import participant %s: %w", p.Name, err)
		}
		participants++
	}

	for _, intervals := range sc.Snapshot {
		for _, b := range intervals {
			record := models.BusyInterval{
				ID:            uuid.NewString(),
				ParticipantID: b.ParticipantID,
				StartsAt:      b.StartsAt,
				EndsAt:        b.EndsAt,
				Label:         b.Label,
			}
			if err := conn.WithContext(cmd.Context()).Create(&record).Error; err != nil {
				return fmt.Errorf("import busy interval for %s: %w", b.ParticipantID, err)
			}
			busy++
		}
	}

	logger.Info().
		Int("sessions", sessions).
		Int("participants", participants).
		Int("busy_intervals", busy).
		Msg("scenario imported")
	return nil
}
