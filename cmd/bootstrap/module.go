package bootstrap

import (
	"studio-booking/cmd/bootstrap/components"
	"studio-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// Module wires the HTTP service. The store driver decides whether a
// Postgres pool is opened at all.
func Module(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		LoggerModule,
		TracingModule,
		JWTModule,
		PersistenceModule(cfg.Store.Driver),
		components.AdapterModule,
		components.UseCaseModule,
		components.HandlerModule,
	)
}

// SweepModule is the subset the one-shot sweep binary needs.
func SweepModule(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		LoggerModule,
		TracingModule,
		PersistenceModule(cfg.Store.Driver),
		components.AdapterModule,
		components.UseCaseModule,
	)
}

func PersistenceModule(driver string) fx.Option {
	if driver == config.StoreDriverMemory {
		return components.MemoryModule
	}
	return fx.Options(DBModule, components.PostgresModule)
}
