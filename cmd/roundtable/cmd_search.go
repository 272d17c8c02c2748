/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/friendsincode/roundtable/internal/booking"
	"github.com/friendsincode/roundtable/internal/calendar"
	"github.com/friendsincode/roundtable/internal/db"
	"github.com/friendsincode/roundtable/internal/eventbus"
	"github.com/friendsincode/roundtable/internal/events"
	"github.com/friendsincode/roundtable/internal/models"
	"github.com/friendsincode/roundtable/internal/scenario"
	"github.com/friendsincode/roundtable/internal/scheduling"
	"github.com/friendsincode/roundtable/internal/selfservice"
	"github.com/friendsincode/roundtable/internal/telemetry"
	"github.com/friendsincode/roundtable/internal/version"
)

var searchFlags struct {
	scenarioPath string
	date         string
	from         string
	to           string
	multiDay     bool
	store        bool
	book         bool
	invites      bool
	metricsBind  string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a scheduling search over a scenario file",
	Long:  "Search for conflict-free placements of the scenario's sessions, single-day or multi-day, and print the ranked results as JSON.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchFlags.scenarioPath, "scenario", "", "path to the scenario YAML file (required)")
	searchCmd.Flags().StringVar(&searchFlags.date, "date", "", "target date for a single-day search (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchFlags.from, "from", "", "range start for a multi-day search (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchFlags.to, "to", "", "range end for a multi-day search (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchFlags.multiDay, "multi-day", false, "run the multi-day round search")
	searchCmd.Flags().BoolVar(&searchFlags.store, "store", false, "read busy intervals from the database instead of the scenario file")
	searchCmd.Flags().BoolVar(&searchFlags.book, "book", false, "persist the top result as a confirmed booking")
	searchCmd.Flags().BoolVar(&searchFlags.invites, "invites", false, "issue self-service invite links when booking")
	searchCmd.Flags().StringVar(&searchFlags.metricsBind, "metrics", "", "serve Prometheus metrics on this address during the run")
	_ = searchCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(searchCmd)
}

// searchEnv holds the wired dependencies of one search invocation.
type searchEnv struct {
	service *scheduling.Service
	bus     scheduling.Publisher
	conn    *gorm.DB
	cache   *calendar.CachedProvider
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	sc, err := scenario.Load(searchFlags.scenarioPath)
	if err != nil {
		return err
	}

	tracerProvider, err := telemetry.InitTracer(cmd.Context(), telemetry.TracerConfig{
		ServiceName:    "roundtable",
		ServiceVersion: version.Version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown tracer provider")
		}
	}()

	if searchFlags.metricsBind != "" {
		go serveMetrics(searchFlags.metricsBind)
	}

	bus := eventbus.Connect(cfg.NATSURL, events.NewBus(), logger)
	defer func() {
		if err := bus.Drain(); err != nil {
			logger.Warn().Err(err).Msg("drain event bus")
		}
	}()

	env := &searchEnv{bus: bus}

	// Busy intervals come from the scenario file unless --store asks for
	// the persisted records, optionally behind the Redis cache.
	provider := calendar.Provider(calendar.NewStaticProvider(sc.Snapshot))
	if searchFlags.store || searchFlags.book {
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
		env.conn = conn
	}
	if searchFlags.store {
		provider = calendar.NewStoreProvider(env.conn)
		if cfg.CacheEnabled {
			cache := calendar.NewCachedProvider(provider, calendar.CacheConfig{
				RedisAddr:      cfg.RedisAddr,
				RedisPassword:  cfg.RedisPassword,
				RedisDB:        cfg.RedisDB,
				BusyTTL:        calendar.DefaultBusyTTL,
				DisableOnError: true,
			}, logger)
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn().Err(err).Msg("close cache")
				}
			}()
			env.cache = cache
			provider = cache
		}
	}

	env.service = scheduling.NewService(provider, bus, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SearchTimeout)
	defer cancel()

	if searchFlags.multiDay {
		return runMultiDaySearch(ctx, env, sc)
	}
	return runDaySearch(ctx, env, sc)
}

func runDaySearch(ctx context.Context, env *searchEnv, sc *scenario.Scenario) error {
	if searchFlags.date == "" {
		return fmt.Errorf("--date is required for a single-day search")
	}
	date, err := time.Parse("2006-01-02", searchFlags.date)
	if err != nil {
		return fmt.Errorf("bad --date: %w", err)
	}

	result, err := env.service.SearchDay(ctx, date, sc.Sessions, sc.Participants, sc.Config)
	if err != nil {
		return err
	}

	if searchFlags.book && len(result.Combinations) > 0 {
		if err := bookTop(env, func(svc *booking.Service) (*models.Booking, error) {
			return svc.Book(ctx, result.Combinations[0])
		}); err != nil {
			return err
		}
	}

	return printJSON(result)
}

func runMultiDaySearch(ctx context.Context, env *searchEnv, sc *scenario.Scenario) error {
	if searchFlags.from == "" || searchFlags.to == "" {
		return fmt.Errorf("--from and --to are required for a multi-day search")
	}
	from, err := time.Parse("2006-01-02", searchFlags.from)
	if err != nil {
		return fmt.Errorf("bad --from: %w", err)
	}
	to, err := time.Parse("2006-01-02", searchFlags.to)
	if err != nil {
		return fmt.Errorf("bad --to: %w", err)
	}

	result, err := env.service.SearchRange(ctx, from, to, sc.Sessions, sc.Participants, sc.Config)
	if err != nil {
		return err
	}

	if searchFlags.book && len(result.Plans) > 0 {
		if err := bookTop(env, func(svc *booking.Service) (*models.Booking, error) {
			return svc.BookPlan(ctx, result.Plans[0])
		}); err != nil {
			return err
		}
	}

	return printJSON(result)
}

// bookTop persists the top-ranked result and optionally issues invites.
func bookTop(env *searchEnv, persist func(*booking.Service) (*models.Booking, error)) error {
	var invalidator booking.Invalidator
	if env.cache != nil {
		invalidator = env.cache
	}

	booked, err := persist(booking.NewService(env.conn, env.bus, invalidator, logger))
	if err != nil {
		return err
	}

	if searchFlags.invites {
		issuer := selfservice.NewIssuer([]byte(cfg.JWTSigningKey), cfg.BaseURL, cfg.InviteTTL, env.bus, logger)
		invites, err := issuer.IssueForBooking(booked)
		if err != nil {
			return fmt.Errorf("issue invites: %w", err)
		}
		for _, invite := range invites {
			logger.Info().
				Str("participant", invite.ParticipantID).
				Str("url", invite.URL).
				Msg("invite link")
		}
	}
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())
	logger.Info().Str("addr", addr).Msg("metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn().Err(err).Msg("metrics server stopped")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
