package components

import (
	"context"
	"log/slog"
	"time"

	"studio-booking/internal/infra/lease"
	"studio-booking/internal/infra/notify"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var AdapterModule = fx.Module("adapter",
	fx.Provide(
		NewNotifier,
		NewSweepLease,
	),
)

// NewNotifier publishes to RabbitMQ when AMQP_URL is set and logs otherwise.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (commands.Notifier, error) {
	if cfg.AMQP.URL == "" {
		return notify.NewLogNotifier(logger), nil
	}

	n, err := notify.NewAMQPNotifier(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return n.Close()
		},
	})
	logger.Info("publishing events to rabbitmq", slog.String("exchange", cfg.AMQP.Exchange))
	return n, nil
}

// NewSweepLease returns nil without REDIS_ADDR; sweeps then run uncoordinated.
func NewSweepLease(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (commands.SweepLease, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := lease.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return lease.NewRedisLease(client, lease.DefaultSweepKey, logger), nil
}
