package invest_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/services/invest"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) FindUserByEmail(ctx context.Context, email string) *models.UserRecord {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.UserRecord)
}

func (m *RepoMock) AppendToInvestments(ctx context.Context, inv models.InvestmentRecord) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *RepoMock) AppendInvestment(ctx context.Context, email string, inv models.InvestmentRecord) error {
	args := m.Called(ctx, email, inv)
	return args.Error(0)
}

func (m *RepoMock) AdjustBalance(ctx context.Context, email string, delta float64) error {
	args := m.Called(ctx, email, delta)
	return args.Error(0)
}

func (m *RepoMock) UserInvestments(ctx context.Context, email string) []models.InvestmentRecord {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.InvestmentRecord)
}

func (m *RepoMock) ListAllInvestments(ctx context.Context) []models.InvestmentRecord {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.InvestmentRecord)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestInvestService_Open(t *testing.T) {
	user := &models.UserRecord{Email: "alice@x.com", Name: "Alice", Balance: 10000}

	tests := []struct {
		name       string
		req        invest.OpenRequest
		setupMocks func(r *RepoMock)
		wantProfit float64
		wantErr    error
	}{
		{
			name: "growth plan for six months",
			req:  invest.OpenRequest{Plan: "growth", Amount: 1000, DurationMonths: 6},
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "alice@x.com").Return(user).Once()
				r.On("AppendToInvestments", mock.Anything, mock.MatchedBy(func(inv models.InvestmentRecord) bool {
					return inv.Plan == "growth" &&
						inv.Status == models.InvestmentStatusActive &&
						inv.Duration == "6 months" &&
						inv.ID != ""
				})).Return(nil).Once()
				r.On("AppendInvestment", mock.Anything, "alice@x.com", mock.Anything).Return(nil).Once()
				r.On("AdjustBalance", mock.Anything, "alice@x.com", float64(-1000)).Return(nil).Once()
			},
			wantProfit: 1000 * 0.08 * 6,
		},
		{
			name:       "unknown plan",
			req:        invest.OpenRequest{Plan: "diamond", Amount: 1000, DurationMonths: 6},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    invest.ErrUnknownPlan,
		},
		{
			name: "insufficient balance",
			req:  invest.OpenRequest{Plan: "starter", Amount: 50000, DurationMonths: 3},
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "alice@x.com").Return(user).Once()
			},
			wantErr: invest.ErrInsufficientBalance,
		},
		{
			name: "unknown user",
			req:  invest.OpenRequest{Plan: "starter", Amount: 100, DurationMonths: 3},
			setupMocks: func(r *RepoMock) {
				r.On("FindUserByEmail", mock.Anything, "alice@x.com").Return(nil).Once()
			},
			wantErr: invest.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := invest.New(repo, newNoopLogger())
			tt.setupMocks(repo)

			inv, err := svc.Open(context.Background(), "alice@x.com", "Alice", tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.InDelta(t, tt.wantProfit, inv.Profit, 1e-9)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestInvestService_ListUser(t *testing.T) {
	repo := new(RepoMock)
	svc := invest.New(repo, newNoopLogger())

	want := []models.InvestmentRecord{{ID: "inv-1", Plan: "starter"}}
	repo.On("UserInvestments", mock.Anything, "alice@x.com").Return(want).Once()

	got := svc.ListUser(context.Background(), "alice@x.com")
	assert.Equal(t, want, got)
}
