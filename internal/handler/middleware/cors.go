package middleware

import (
	"log/slog"
	"net/http"

	"studio-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SchedulerTokenHeader authenticates the credit expiry trigger.
const SchedulerTokenHeader = "X-Scheduler-Token"

// NewCORSMiddleware builds the browser policy. The scheduler header is never
// allowed cross origin; the sweep endpoint is called server to server.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	headers := make([]string, 0, len(cfg.AllowHeaders))
	for _, h := range cfg.AllowHeaders {
		if http.CanonicalHeaderKey(h) == SchedulerTokenHeader {
			continue
		}
		headers = append(headers, h)
	}

	logger.Info("CORS middleware initialized",
		slog.Any("allow_origins", cfg.AllowOrigins),
		slog.Bool("allow_credentials", cfg.AllowCredentials))

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     headers,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
