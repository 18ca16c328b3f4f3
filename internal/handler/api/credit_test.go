//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"studio-booking/internal/domain/credit"
	"studio-booking/internal/handler/api"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/handler/validation"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"
	"studio-booking/tests/common/builder"
	"studio-booking/tests/common/httptest"
	"studio-booking/tests/common/testutil"
	commandsmock "studio-booking/tests/mock/commands"
	queriesmock "studio-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CreditHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCreditCommands
	mockQueries  *queriesmock.MockCreditQueries
	clock        *clock.MockClock
	accountID    uuid.UUID
	providerID   uuid.UUID
}

func (s *CreditHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(validation.Register())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCreditCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCreditQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	handler := api.NewCreditHandler(s.mockCommands, s.mockQueries, s.clock)
	s.accountID = uuid.New()
	s.providerID = uuid.New()

	auth := fakeAuth(s.accountID, s.providerID)
	requireProvider := middleware.NewAuthMiddleware(nil).RequireProvider()

	s.router.POST("/providers/:providerId/credits/grants", auth, requireProvider, handler.GrantCredits)
	s.router.POST("/providers/:providerId/credits/consume", auth, requireProvider, handler.ConsumeCredits)
	s.router.GET("/credits/:providerId/balance", auth, handler.GetBalance)
	s.router.GET("/credits/:providerId/batches", auth, handler.ListBatches)
}

func (s *CreditHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCreditHandlerSuite(t *testing.T) {
	suite.Run(t, new(CreditHandlerTestSuite))
}

// ================================================================================
// TestGrantCredits
// ================================================================================

func (s *CreditHandlerTestSuite) TestGrantCredits() {
	url := "/providers/" + s.providerID.String() + "/credits/grants"
	b := builder.NewCreditBatchBuilder().WithLedger(uuid.New(), s.providerID)
	reqBody := b.BuildGrantRequestDTO()

	s.Run("success: returns 201 with the new batch", func() {
		s.mockCommands.EXPECT().GrantCredits(gomock.Any(), commands.GrantInput{
			AccountID:  b.AccountID,
			ProviderID: s.providerID,
			Amount:     10,
			ValidDays:  30,
			SourceID:   "order-1001",
		}).Return(b.BuildDomain(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(b.ID, body.ID)
		s.Equal(int64(10), body.AmountRemaining)
		s.Equal(string(credit.StateActive), body.State)
	})

	cases := []struct {
		name   string
		mutate func(m map[string]any)
		msg    string
	}{
		{name: "amount zero", mutate: testutil.Field("amount", 0), msg: "amount is required"},
		{name: "amount negative", mutate: testutil.Field("amount", -5), msg: "amount must be greater than 0"},
		{name: "validity negative", mutate: testutil.Field("validDays", -1), msg: "validDays must be greater than 0"},
		{name: "missing account", mutate: testutil.Field("accountId", nil), msg: "accountId is required"},
	}
	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.msg)
			})
		}
	})

	s.Run("error: 403 for a provider outside the token", func() {
		other := "/providers/" + uuid.NewString() + "/credits/grants"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, other, reqBody, "bearer-token")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

// ================================================================================
// TestConsumeCredits
// ================================================================================

func (s *CreditHandlerTestSuite) TestConsumeCredits() {
	url := "/providers/" + s.providerID.String() + "/credits/consume"
	b := builder.NewCreditBatchBuilder().WithLedger(uuid.New(), s.providerID)

	s.Run("success: returns the allocations", func() {
		s.mockCommands.EXPECT().ConsumeCredits(gomock.Any(), commands.ConsumeInput{
			AccountID:  b.AccountID,
			ProviderID: s.providerID,
			Amount:     4,
		}).Return(b.BuildConsumption(4), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildConsumeRequestDTO(4), "bearer-token")

		var body resdto.ConsumptionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(4), body.Amount)
		s.Require().Len(body.Allocations, 1)
		s.Equal(b.ID, body.Allocations[0].BatchID)
		s.Equal(int64(6), body.Allocations[0].RemainingAfter)
	})

	s.Run("error: 402 when the balance is short", func() {
		s.mockCommands.EXPECT().ConsumeCredits(gomock.Any(), gomock.Any()).Return(nil, credit.ErrInsufficientCredits).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildConsumeRequestDTO(40), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "Insufficient credits")
	})

	s.Run("error: 400 on non-positive amount", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildConsumeRequestDTO(-1), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "amount must be greater than 0")
	})
}

// ================================================================================
// TestBalanceAndBatches
// ================================================================================

func (s *CreditHandlerTestSuite) TestGetBalance() {
	url := "/credits/" + s.providerID.String() + "/balance"

	s.Run("success: reads the caller's ledger at the current time", func() {
		s.mockQueries.EXPECT().AvailableBalance(gomock.Any(), s.accountID, s.providerID, s.clock.Now()).
			Return(&queries.BalanceView{AccountID: s.accountID, ProviderID: s.providerID, Available: 7, AsOf: s.clock.Now()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BalanceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(7), body.Available)
		s.Equal(s.accountID, body.AccountID)
	})

	s.Run("error: 400 on malformed provider id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/credits/nope/balance", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid provider ID format")
	})
}

func (s *CreditHandlerTestSuite) TestListBatches() {
	url := "/credits/" + s.providerID.String() + "/batches"
	now := s.clock.Now()

	s.Run("success: includes expired batches with their state", func() {
		views := []*queries.BatchView{
			builder.NewCreditBatchBuilder().WithLedger(s.accountID, s.providerID).AsExpired().BuildView(now),
			builder.NewCreditBatchBuilder().WithLedger(s.accountID, s.providerID).BuildView(now),
		}
		s.mockQueries.EXPECT().ListBatches(gomock.Any(), s.accountID, s.providerID, now).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []resdto.BatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("expired", body[0].State)
		s.Equal(int64(10), body[0].AmountForfeited)
		s.Equal("active", body[1].State)
	})
}
