package api

import (
	"net/http"

	reqdto "studio-booking/internal/handler/dto/request"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	commands commands.CreditCommands
	queries  queries.CreditQueries
	clock    clock.Clock
}

func NewCreditHandler(creditCommands commands.CreditCommands, creditQueries queries.CreditQueries, clk clock.Clock) *CreditHandler {
	return &CreditHandler{
		commands: creditCommands,
		queries:  creditQueries,
		clock:    clk,
	}
}

// @Summary Grant credits
// @Description Add a credit batch to an account's ledger with this provider
// @Tags provider
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param request body reqdto.GrantCreditsRequest true "Grant request"
// @Success 201 {object} resdto.BatchResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /providers/{providerId}/credits/grants [post]
func (h *CreditHandler) GrantCredits(c *gin.Context) {
	providerID, ok := pathUUID(c, middleware.ProviderIDParam, "provider")
	if !ok {
		return
	}

	var req reqdto.GrantCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	b, err := h.commands.GrantCredits(c.Request.Context(), req.ToInput(providerID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBatch(b, h.clock.Now()))
}

// @Summary Consume credits
// @Description Draw credits from the soonest-expiring batches first
// @Tags provider
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param request body reqdto.ConsumeCreditsRequest true "Consume request"
// @Success 200 {object} resdto.ConsumptionResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /providers/{providerId}/credits/consume [post]
func (h *CreditHandler) ConsumeCredits(c *gin.Context) {
	providerID, ok := pathUUID(c, middleware.ProviderIDParam, "provider")
	if !ok {
		return
	}

	var req reqdto.ConsumeCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	consumption, err := h.commands.ConsumeCredits(c.Request.Context(), req.ToInput(providerID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromConsumption(consumption))
}

// @Summary Get credit balance
// @Description Credits the caller can still spend with a provider
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Success 200 {object} resdto.BalanceResponse
// @Failure 400 {object} httperr.Response
// @Router /credits/{providerId}/balance [get]
func (h *CreditHandler) GetBalance(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	providerID, ok := pathUUID(c, middleware.ProviderIDParam, "provider")
	if !ok {
		return
	}

	balance, err := h.queries.AvailableBalance(c.Request.Context(), accountID, providerID, h.clock.Now())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBalanceView(balance))
}

// @Summary List credit batches
// @Description The caller's whole ledger with a provider, in consumption order
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Success 200 {array} resdto.BatchResponse
// @Failure 400 {object} httperr.Response
// @Router /credits/{providerId}/batches [get]
func (h *CreditHandler) ListBatches(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	providerID, ok := pathUUID(c, middleware.ProviderIDParam, "provider")
	if !ok {
		return
	}

	views, err := h.queries.ListBatches(c.Request.Context(), accountID, providerID, h.clock.Now())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBatchViews(views))
}
