package register

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

	"github.com/mxtmdev/investment-platform/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, name, email, rawPassword, country string) (string, error) {
	args := m.Called(ctx, name, email, rawPassword, country)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	validBody := Request{
		FullName:        "Alice Smith",
		Email:           "alice@x.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Country:         "US",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockToken      string
		mockErr        error
		expectMockCall bool
		wantStatusCode int
		wantData       map[string]any
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid registration",
			requestBody:    validBody,
			mockToken:      "jwt-token-123",
			expectMockCall: true,
			wantStatusCode: http.StatusOK,
			wantData: map[string]any{
				"token":   "jwt-token-123",
				"email":   "alice@x.com",
				"message": "user created successfully",
			},
			wantStatus: "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "password mismatch",
			requestBody: Request{
				FullName:        "Alice Smith",
				Email:           "alice@x.com",
				Password:        "password123",
				ConfirmPassword: "different",
				Country:         "US",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field ConfirmPassword must match Password",
			wantStatus:     "Error",
		},
		{
			name: "short password",
			requestBody: Request{
				FullName:        "Alice Smith",
				Email:           "alice@x.com",
				Password:        "abc",
				ConfirmPassword: "abc",
				Country:         "US",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is too short",
			wantStatus:     "Error",
		},
		{
			name:           "duplicate email",
			requestBody:    validBody,
			mockErr:        auth.ErrUserExists,
			expectMockCall: true,
			wantStatusCode: http.StatusConflict,
			wantError:      "user with this email already exists",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			if tt.expectMockCall {
				req := tt.requestBody.(Request)
				authMock.On("Register", mock.Anything, req.FullName, req.Email, req.Password, req.Country).
					Return(tt.mockToken, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

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

			if tt.wantData != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				for k, v := range tt.wantData {
					assert.Equal(t, v, data[k])
				}
			}

			authMock.AssertExpectations(t)
		})
	}
}
