package withdraw

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mxtmdev/investment-platform/internal/http/middlewarectx"
	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/services/funds"
)

type FundsServiceMock struct {
	mock.Mock
}

func (m *FundsServiceMock) SubmitWithdrawal(ctx context.Context, email, name string, req funds.WithdrawalRequest) (*models.TransactionRecord, error) {
	args := m.Called(ctx, email, name, req)
	tx, _ := args.Get(0).(*models.TransactionRecord)
	return tx, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newAuthedRequest(body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/withdraw", bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	ctx = context.WithValue(ctx, middlewarectx.UserEmail, "alice@x.com")
	ctx = context.WithValue(ctx, middlewarectx.UserName, "Alice")
	return req.WithContext(ctx)
}

func TestWithdrawHandler_ServeHTTP(t *testing.T) {
	pendingTx := &models.TransactionRecord{
		ID:     "tx_1700000000000_abc1234",
		Status: models.TransactionStatusPending,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockTx         *models.TransactionRecord
		mockErr        error
		expectMockCall bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name: "valid crypto withdrawal",
			requestBody: Request{
				Amount: 400, Currency: "USD", Method: "bitcoin", WalletAddress: "bc1qxyz",
			},
			mockTx:         pendingTx,
			expectMockCall: true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name: "valid bank transfer",
			requestBody: Request{
				Amount: 400, Currency: "USD", Method: "bank_transfer",
				BankName: "Big Bank", AccountNumber: "12345678", AccountName: "Alice Smith",
			},
			mockTx:         pendingTx,
			expectMockCall: true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name: "bank transfer without details",
			requestBody: Request{
				Amount: 400, Currency: "USD", Method: "bank_transfer",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "bank details are required for bank transfers",
			wantStatus:     "Error",
		},
		{
			name: "crypto withdrawal without wallet",
			requestBody: Request{
				Amount: 400, Currency: "USD", Method: "bitcoin",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "wallet address is required",
			wantStatus:     "Error",
		},
		{
			name: "insufficient balance",
			requestBody: Request{
				Amount: 4000000, Currency: "USD", Method: "bitcoin", WalletAddress: "bc1qxyz",
			},
			mockErr:        funds.ErrInsufficientBalance,
			expectMockCall: true,
			wantStatusCode: http.StatusConflict,
			wantError:      "insufficient balance",
			wantStatus:     "Error",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fundsMock := new(FundsServiceMock)
			handler := New(newNoopLogger(), fundsMock)

			if tt.expectMockCall {
				fundsMock.On("SubmitWithdrawal", mock.Anything, "alice@x.com", "Alice", mock.Anything).
					Return(tt.mockTx, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, newAuthedRequest(bodyBytes))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			fundsMock.AssertExpectations(t)
		})
	}
}

func TestWithdrawHandler_PassesBankDetails(t *testing.T) {
	fundsMock := new(FundsServiceMock)
	handler := New(newNoopLogger(), fundsMock)

	fundsMock.On("SubmitWithdrawal", mock.Anything, "alice@x.com", "Alice", mock.MatchedBy(func(req funds.WithdrawalRequest) bool {
		return req.BankDetails != nil &&
			req.BankDetails.BankName == "Big Bank" &&
			req.BankDetails.AccountNumber == "12345678" &&
			req.WalletAddress == ""
	})).Return(&models.TransactionRecord{ID: "tx_1", Status: models.TransactionStatusPending}, nil).Once()

	body, _ := json.Marshal(Request{
		Amount: 400, Currency: "USD", Method: "bank_transfer",
		BankName: "Big Bank", AccountNumber: "12345678", AccountName: "Alice Smith",
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	fundsMock.AssertExpectations(t)
}
