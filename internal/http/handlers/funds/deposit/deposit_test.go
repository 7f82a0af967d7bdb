package deposit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

func (m *FundsServiceMock) SubmitDeposit(ctx context.Context, email, name string, req funds.DepositRequest) (*models.TransactionRecord, error) {
	args := m.Called(ctx, email, name, req)
	tx, _ := args.Get(0).(*models.TransactionRecord)
	return tx, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newAuthedRequest(body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/deposit", bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	ctx = context.WithValue(ctx, middlewarectx.UserEmail, "alice@x.com")
	ctx = context.WithValue(ctx, middlewarectx.UserName, "Alice")
	return req.WithContext(ctx)
}

func TestDepositHandler_ServeHTTP(t *testing.T) {
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
			name:           "valid deposit",
			requestBody:    Request{Amount: 500, Currency: "USD", Method: "bitcoin"},
			mockTx:         pendingTx,
			expectMockCall: true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "amount below minimum",
			requestBody:    Request{Amount: 10, Currency: "USD", Method: "bitcoin"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Amount must be at least 50",
			wantStatus:     "Error",
		},
		{
			name:           "service failure",
			requestBody:    Request{Amount: 500, Currency: "USD", Method: "bitcoin"},
			mockErr:        errors.New("store error"),
			expectMockCall: true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to submit deposit",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fundsMock := new(FundsServiceMock)
			handler := New(newNoopLogger(), fundsMock)

			if tt.expectMockCall {
				body := tt.requestBody.(Request)
				fundsMock.On("SubmitDeposit", mock.Anything, "alice@x.com", "Alice", funds.DepositRequest{
					Amount:   body.Amount,
					Currency: body.Currency,
					Method:   body.Method,
				}).Return(tt.mockTx, tt.mockErr).Once()
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
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, pendingTx.ID, data["transaction_id"])
				assert.Equal(t, models.TransactionStatusPending, data["status"])
			}

			fundsMock.AssertExpectations(t)
		})
	}
}
