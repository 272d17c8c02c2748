/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.DBBackend != DatabaseSQLite {
		t.Errorf("DBBackend = %q, want sqlite", cfg.DBBackend)
	}
	if cfg.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want 10", cfg.MaxResults)
	}
	if cfg.DayStart != "09:00" {
		t.Errorf("DayStart = %q, want 09:00", cfg.DayStart)
	}
	if cfg.SearchTimeout != 30*time.Second {
		t.Errorf("SearchTimeout = %s, want 30s", cfg.SearchTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ROUNDTABLE_ENV", "production")
	t.Setenv("ROUNDTABLE_DB_BACKEND", "postgres")
	t.Setenv("ROUNDTABLE_DB_DSN", "host=localhost dbname=roundtable")
	t.Setenv("ROUNDTABLE_JWT_SIGNING_KEY", "prod-key")
	t.Setenv("ROUNDTABLE_MAX_RESULTS", "25")
	t.Setenv("ROUNDTABLE_TRACING_ENABLED", "true")
	t.Setenv("ROUNDTABLE_TRACING_SAMPLE_RATE", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBBackend != DatabasePostgres {
		t.Errorf("DBBackend = %q, want postgres", cfg.DBBackend)
	}
	if cfg.MaxResults != 25 {
		t.Errorf("MaxResults = %d, want 25", cfg.MaxResults)
	}
	if !cfg.TracingEnabled || cfg.TracingSampleRate != 0.5 {
		t.Errorf("tracing = %v/%f", cfg.TracingEnabled, cfg.TracingSampleRate)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ROUNDTABLE_DB_BACKEND", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestLoadProductionRequiresSigningKey(t *testing.T) {
	t.Setenv("ROUNDTABLE_ENV", "production")
	t.Setenv("ROUNDTABLE_JWT_SIGNING_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing signing key in production")
	}
}

func TestSearchDefaults(t *testing.T) {
	t.Setenv("ROUNDTABLE_DAY_START", "08:30")
	t.Setenv("ROUNDTABLE_TYPICAL_CAPACITY", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	search := cfg.SearchDefaults()
	if search.DayStart != "08:30" {
		t.Errorf("DayStart = %q, want 08:30", search.DayStart)
	}
	if search.TypicalCapacity != 4 {
		t.Errorf("TypicalCapacity = %d, want 4", search.TypicalCapacity)
	}
	if !search.RespectWorkHours || !search.CheckBusyIntervals {
		t.Error("constraint flags must default to enforced")
	}
}
