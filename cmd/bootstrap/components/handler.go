package components

import (
	"log/slog"

	"studio-booking/internal/handler"
	"studio-booking/internal/handler/api"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewCreditHandler,
		NewSweepHandler,
		middleware.NewAuthMiddleware,
		func(b *api.BookingHandler, c *api.CreditHandler, s *api.SweepHandler) handler.Handlers {
			return handler.Handlers{Booking: b, Credit: c, Sweep: s}
		},
	),
	fx.Invoke(handler.NewRouter),
)

func NewSweepHandler(creditCommands commands.CreditCommands, clk clock.Clock, cfg config.Config, logger *slog.Logger) *api.SweepHandler {
	return api.NewSweepHandler(creditCommands, clk, cfg.Sweep.SchedulerToken, logger)
}
