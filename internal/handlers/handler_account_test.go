package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/apperrors"
	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	portssvc "github.com/SscSPs/money_transfer_service/internal/core/ports/services"
	"github.com/SscSPs/money_transfer_service/internal/dto"
	"github.com/SscSPs/money_transfer_service/internal/handlers"
	"github.com/SscSPs/money_transfer_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetAccountBalance(ctx context.Context, accountNumber string) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}

func (m *MockLedgerService) GetHistory(ctx context.Context, accountNumber string) (*domain.AccountHistory, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountHistory), args.Error(1)
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Deposit(ctx context.Context, req dto.DepositRequest) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, req dto.WithdrawRequest) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}

func (m *MockLedgerService) DeleteAccount(ctx context.Context, req dto.DeleteAccountRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockLedgerService) Transfer(ctx context.Context, req dto.TransferRequest) (*domain.TransferResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite Setup ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockLedgerService
}

func (suite *AccountHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.mockService = new(MockLedgerService)
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{Ledger: suite.mockService}, nil)
}

func (suite *AccountHandlerTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (suite *AccountHandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"UP"}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	cred := domain.Credential{PasswordHash: "h", Salt: "s"}
	acc, err := domain.RestoreAccount(domain.AccountState{
		ID: 7, AccountNumber: "110-123-456789", OwnerName: "Jane Doe", Balance: 50000, Status: domain.StatusActive, Credential: cred,
	})
	suite.Require().NoError(err)

	suite.mockService.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.OwnerName == "Jane Doe" && req.Password == "1234" && req.InitialBalance.Equal(decimal.NewFromInt(50000))
	})).Return(acc, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"ownerName":"Jane Doe","password":"1234","initialBalance":50000}`)
	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CreateAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.AccountID)
	suite.Equal("110-123-456789", resp.AccountNumber)
	suite.Equal(int64(50000), resp.Balance)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ValidationErrors() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"ownerName":"","password":"12a4","initialBalance":10.5}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	resp := suite.decodeError(w)
	suite.Equal("INVALID_INPUT_VALUE", resp.Code)
	fields := map[string]string{}
	for _, f := range resp.Fields {
		fields[f.Field] = f.Reason
	}
	suite.Equal("is required", fields["ownerName"])
	suite.Equal("must be exactly 4 digits", fields["password"])
	suite.Equal("must not have a fractional part", fields["initialBalance"])
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"ownerName":`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_INPUT_VALUE", suite.decodeError(w).Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_NegativeBalanceIsBusinessError() {
	suite.mockService.On("CreateAccount", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidInitialBalance).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"ownerName":"Jane","password":"1234","initialBalance":-5}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_INITIAL_BALANCE", suite.decodeError(w).Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingBalanceIsBusinessError() {
	suite.mockService.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.InitialBalance == nil
	})).Return(nil, apperrors.ErrInvalidInitialBalance).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"ownerName":"Jane","password":"1234"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_INITIAL_BALANCE", suite.decodeError(w).Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalance() {
	suite.mockService.On("GetAccountBalance", mock.Anything, "110-123-456789").
		Return(&domain.BalanceSnapshot{AccountNumber: "110-123-456789", OwnerName: "Jane", Balance: 1200}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/110-123-456789/balance", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ownerName":"Jane","balance":1200}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestGetBalance_NotFound() {
	suite.mockService.On("GetAccountBalance", mock.Anything, "110-123-456789").
		Return(nil, fmt.Errorf("lookup: %w", apperrors.ErrAccountNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/110-123-456789/balance", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("ACCOUNT_NOT_FOUND", suite.decodeError(w).Code)
}

func (suite *AccountHandlerTestSuite) TestGetBalance_MalformedAccountNumber() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/12345/balance", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Require().Len(resp.Fields, 1)
	suite.Equal("accountNumber", resp.Fields[0].Field)
}

func (suite *AccountHandlerTestSuite) TestGetHistory() {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	suite.mockService.On("GetHistory", mock.Anything, "110-123-456789").Return(&domain.AccountHistory{
		AccountNumber: "110-123-456789",
		Entries: []domain.HistoryEntry{
			{Type: domain.TransferSend, Amount: 15000, Fee: 150, TransactedAt: at,
				Counterparty: &domain.Counterparty{AccountNumber: "110-456-789012", OwnerName: domain.DeletedOwnerPlaceholder}},
			{Type: domain.Deposit, Amount: 50000, TransactedAt: at.Add(-time.Hour)},
		},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/110-123-456789/history", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.HistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 2)
	suite.Equal(domain.TransferSend, resp.Transactions[0].Type)
	suite.Equal("(deleted account)", resp.Transactions[0].CounterpartyOwnerName)
	suite.Equal(int64(150), resp.Transactions[0].Fee)
	suite.Empty(resp.Transactions[1].CounterpartyAccountNumber)
	suite.NotContains(w.Body.String(), `"counterpartyAccountNumber":""`)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount() {
	suite.mockService.On("DeleteAccount", mock.Anything, dto.DeleteAccountRequest{AccountNumber: "110-123-456789", Password: "1234"}).
		Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/110-123-456789", `{"password":"1234"}`)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_BalanceNotZero() {
	suite.mockService.On("DeleteAccount", mock.Anything, mock.Anything).Return(apperrors.ErrBalanceNotZero).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/110-123-456789", `{"password":"1234"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("BALANCE_NOT_ZERO", suite.decodeError(w).Code)
}

func (suite *AccountHandlerTestSuite) TestDeposit() {
	suite.mockService.On("Deposit", mock.Anything, mock.MatchedBy(func(req dto.DepositRequest) bool {
		return req.AccountNumber == "110-123-456789" && req.Amount.Equal(decimal.NewFromInt(100000))
	})).Return(&domain.BalanceSnapshot{AccountNumber: "110-123-456789", Balance: 100000}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/deposit", `{"accountNumber":"110-123-456789","amount":100000}`)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"accountNumber":"110-123-456789","finalBalance":100000}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestWithdraw_LimitExceeded() {
	suite.mockService.On("Withdraw", mock.Anything, mock.Anything).Return(nil, apperrors.ErrWithdrawDailyLimitExceeded).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/withdraw", `{"accountNumber":"110-123-456789","password":"1234","amount":30000}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("WITHDRAW_DAILY_LIMIT_EXCEEDED", suite.decodeError(w).Code)
}

func (suite *AccountHandlerTestSuite) TestTransfer() {
	suite.mockService.On("Transfer", mock.Anything, mock.MatchedBy(func(req dto.TransferRequest) bool {
		return req.FromAccountNumber == "110-123-456789" && req.ToAccountNumber == "110-456-789012"
	})).Return(&domain.TransferResult{
		From:              domain.BalanceSnapshot{AccountNumber: "110-123-456789", Balance: 84850},
		To:                domain.BalanceSnapshot{AccountNumber: "110-456-789012", Balance: 65000},
		TransferredAmount: 15000,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/transfer",
		`{"fromAccountNumber":"110-123-456789","password":"1234","toAccountNumber":"110-456-789012","amount":15000}`)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"fromAccountNumber":"110-123-456789","fromAccountBalance":84850,"toAccountNumber":"110-456-789012","toAccountBalance":65000,"transferredAmount":15000}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestTransfer_LockTimeoutIsRetryable() {
	suite.mockService.On("Transfer", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("account 3: %w", apperrors.ErrLockTimeout)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/transfer",
		`{"fromAccountNumber":"110-123-456789","password":"1234","toAccountNumber":"110-456-789012","amount":15000}`)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("1", w.Header().Get("Retry-After"))
	suite.Equal("SERVICE_BUSY", suite.decodeError(w).Code)
}

func (suite *AccountHandlerTestSuite) TestTransfer_UnexpectedErrorIsHidden() {
	suite.mockService.On("Transfer", mock.Anything, mock.Anything).Return(nil, errors.New("pq: connection refused")).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/transfer",
		`{"fromAccountNumber":"110-123-456789","password":"1234","toAccountNumber":"110-456-789012","amount":15000}`)
	suite.Equal(http.StatusInternalServerError, w.Code)
	resp := suite.decodeError(w)
	suite.Equal("INTERNAL_SERVER_ERROR", resp.Code)
	suite.NotContains(resp.Message, "connection refused")
}

func (suite *AccountHandlerTestSuite) TestTransfer_MalformedAccountNumber() {
	w := suite.do(http.MethodPost, "/api/v1/accounts/transfer",
		`{"fromAccountNumber":"110123456789","password":"1234","toAccountNumber":"110-456-789012","amount":15000}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Require().Len(resp.Fields, 1)
	suite.Equal("fromAccountNumber", resp.Fields[0].Field)
	suite.Equal("must match PPP-DDD-DDDDDD", resp.Fields[0].Reason)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
