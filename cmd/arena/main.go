package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/config"
	"github.com/udisondev/encounter/internal/data"
	"github.com/udisondev/encounter/internal/db"
	"github.com/udisondev/encounter/internal/game/raid"
	"github.com/udisondev/encounter/internal/sim"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := config.Path()
	cfg, err := config.LoadArena(cfgPath)
	if err != nil {
		return fmt.Errorf("loading arena config: %w", err)
	}

	logLevel := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("arena starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick_rate", cfg.TickRate)

	reg, err := loadDefinitions(cfg.DataPath)
	if err != nil {
		return err
	}

	var store raid.Store
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		store = &ledgerStoreAdapter{repo: database.Encounters()}
	}

	s := sim.New(cfg, reg, store)
	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("initializing simulation: %w", err)
	}
	defer s.Shutdown()

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stopLoop := context.WithCancel(gctx)
	defer stopLoop()

	g.Go(func() error {
		// The encounter may end on its own; stop the watcher with it.
		defer stopLoop()
		if err := s.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation loop: %w", err)
		}
		return nil
	})

	if cfg.WatchData && cfg.DataPath != "" {
		g.Go(func() error {
			slog.Info("watching encounter definitions", "path", cfg.DataPath)
			if err := watchDefinitions(loopCtx, cfg.DataPath, s); err != nil {
				return fmt.Errorf("definitions watcher: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("arena error: %w", err)
	}

	for _, o := range s.Ledger().Outcomes() {
		slog.Info("boss kill",
			"boss", o.BossID,
			"killer", o.Killer,
			"phase", o.Phase,
			"duration", o.Duration)
	}
	return nil
}

// loadDefinitions reads path, or the embedded definitions when path is
// empty.
func loadDefinitions(path string) (*data.Registry, error) {
	if path == "" {
		reg, err := data.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("loading definitions: %w", err)
		}
		slog.Info("encounter definitions loaded", "source", "embedded")
		return reg, nil
	}
	reg, err := data.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading definitions: %w", err)
	}
	slog.Info("encounter definitions loaded", "source", path)
	return reg, nil
}

// watchDefinitions reloads path on change and hands valid definitions to
// the simulation. Invalid files are logged and ignored.
func watchDefinitions(ctx context.Context, path string, s *sim.Simulation) error {
	w, err := data.NewWatcher(filepath.Dir(path))
	if err != nil {
		return err
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			reg, err := data.Load(path)
			if err != nil {
				slog.Warn("definitions reload rejected", "changed", name, "error", err)
				continue
			}
			s.RequestReload(reg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("definitions watcher error", "error", err)
		}
	}
}
