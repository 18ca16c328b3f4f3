package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const dbStartupTimeout = 10 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB opens the pool for STORE_DRIVER=postgres and refuses to start
// against a database the migrations have not been applied to.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbStartupTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.RequireSchema(ctx, pool); err != nil {
		cleanup()
		return nil, err
	}

	logger.Info("database pool ready",
		slog.String("host", cfg.DB.Host),
		slog.String("database", cfg.DB.DBName),
		slog.Int("max_conns", int(pool.Config().MaxConns)))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cleanup()
			return nil
		},
	})
	return pool, nil
}
