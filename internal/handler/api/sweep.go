package api

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const SchedulerTokenHeader = middleware.SchedulerTokenHeader

type SweepHandler struct {
	commands commands.CreditCommands
	clock    clock.Clock
	token    string
	logger   *slog.Logger
}

// NewSweepHandler rejects every call when token is empty.
func NewSweepHandler(creditCommands commands.CreditCommands, clk clock.Clock, token string, logger *slog.Logger) *SweepHandler {
	return &SweepHandler{
		commands: creditCommands,
		clock:    clk,
		token:    token,
		logger:   logger,
	}
}

// @Summary Expire credits
// @Description Scheduler entry point for the credit expiry sweep
// @Tags internal
// @Produce json
// @Param X-Scheduler-Token header string true "Scheduler token"
// @Success 200 {object} resdto.ExpireCreditsResponse
// @Failure 401 {object} resdto.SweepErrorResponse
// @Failure 500 {object} resdto.SweepErrorResponse
// @Failure 503 {object} resdto.SweepErrorResponse
// @Router /internal/credits/expire [post]
func (h *SweepHandler) ExpireCredits(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("credit sweep panicked", slog.String("panic", fmt.Sprint(r)))
			c.AbortWithStatusJSON(http.StatusInternalServerError, resdto.SweepErrorResponse{Error: "Internal server error"})
		}
	}()

	if !h.authorized(c.GetHeader(SchedulerTokenHeader)) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, resdto.SweepErrorResponse{Error: "Invalid scheduler token"})
		return
	}

	result, err := h.commands.ExpireCredits(c.Request.Context(), h.clock.Now())
	if err != nil {
		status, msg := httperr.Status(err)
		h.logger.Error("credit sweep failed", slog.Int("status", status), slog.String("error", err.Error()))
		c.AbortWithStatusJSON(status, resdto.SweepErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, resdto.FromExpireResult(result))
}

func (h *SweepHandler) authorized(got string) bool {
	if h.token == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
