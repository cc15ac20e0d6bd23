// Command nemisd applies the NEMIS schema migrations and optionally runs the
// periodic election-status sweep. It exposes no network surface: the
// enforcement core is consumed as a library by the application layer.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/benmoussati/nemis/internal/config"
	"github.com/benmoussati/nemis/internal/migrate"
	"github.com/benmoussati/nemis/internal/repository/postgres"
	"github.com/benmoussati/nemis/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and drives the status sweep
// until interrupted.
func main() {
	cfgPath := flag.String("config", "", "path to YAML config (env-only when empty)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.Duration("sweepInterval", cfg.SweepInterval),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	clock := clockwork.NewRealClock()
	elections := service.NewElectionService(postgres.NewElectionRepo(db), clock)

	if cfg.SweepInterval <= 0 {
		logger.Info("sweep disabled, migrations applied; exiting")
		return
	}

	ticker := clock.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown complete")
			return
		case <-ticker.Chan():
			moved, err := elections.SyncStatuses(ctx)
			if err != nil {
				logger.Error("status sweep", zap.Error(err))
				continue
			}
			if moved > 0 {
				logger.Info("status sweep advanced elections", zap.Int64("count", moved))
			}
		}
	}
}
