package components

import (
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/memstore"
	"studio-booking/internal/infra/readstore"
	"studio-booking/internal/infra/uow"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/queries"
	"studio-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PostgresModule = fx.Module("persistence/postgres",
	baseOption,
	readstoreModule,
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

var MemoryModule = fx.Module("persistence/memory",
	fx.Provide(
		NewRetryPolicy,
		fx.Annotate(
			memstore.New,
			fx.As(fx.Self()),
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			memstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			memstore.NewCreditReadStore,
			fx.As(new(queries.CreditReadStore)),
		),
	),
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
	NewRetryPolicy,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingReadQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Credit
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.CreditReadQueries)),
		),
		fx.Annotate(
			readstore.NewCreditReadStore,
			fx.As(new(queries.CreditReadStore)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *db.Queries {
	return db.New()
}

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewRetryPolicy(cfg config.Config) shared.RetryPolicy {
	return shared.RetryPolicy{
		MaxAttempts: cfg.Store.MaxAttempts,
		Base:        cfg.Store.RetryBackoff,
	}
}
