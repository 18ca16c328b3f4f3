// Command sweep runs one credit expiry pass and exits. It is meant for cron;
// the exit status is non-zero when the sweep could not run.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"studio-booking/cmd/bootstrap"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	if err := requirePersistentStore(cfg); err != nil {
		slog.Error("refusing to run credit sweep", "error", err)
		return 1
	}

	var (
		creditCommands commands.CreditCommands
		clk            clock.Clock
		logger         *slog.Logger
	)
	app := fx.New(
		bootstrap.SweepModule(cfg),
		fx.Populate(&creditCommands, &clk, &logger),
		fx.NopLogger,
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		slog.Error("failed to start sweep", "error", err)
		return 1
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Warn("failed to stop sweep cleanly", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sweep.LeaseTTL)
	defer cancel()

	result, err := creditCommands.ExpireCredits(ctx, clk.Now())
	if err != nil {
		logger.Error("credit sweep failed", "error", err)
		return 1
	}

	logger.Info("credit sweep finished",
		slog.Int64("total_expired", result.TotalExpired),
		slog.Int("affected_accounts", result.AffectedAccounts),
		slog.Int("batches_expired", result.BatchesExpired),
		slog.Int("failures", result.Failures),
		slog.Int("skipped", result.Skipped),
	)
	if result.Failures > 0 {
		return 2
	}
	return 0
}

// requirePersistentStore rejects the memory driver: a fresh in-process store
// has nothing to sweep, and a zero result would look like success to cron.
func requirePersistentStore(cfg config.Config) error {
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("STORE_DRIVER must be %q for the sweep binary, got %q", config.StoreDriverPostgres, cfg.Store.Driver)
	}
	return nil
}
