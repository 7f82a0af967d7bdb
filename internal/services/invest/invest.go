// Package invest содержит бизнес-логику открытия и просмотра инвестиций.
package invest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mxtmdev/investment-platform/internal/models"
)

// Ошибки уровня бизнес-логики, различаемые обработчиками.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnknownPlan         = errors.New("unknown investment plan")
)

// planRates — месячная доходность инвестиционных планов.
var planRates = map[string]float64{
	"starter": 0.05,
	"growth":  0.08,
	"premium": 0.12,
}

// Repository описывает операции хранилища, используемые сервисом.
type Repository interface {
	FindUserByEmail(ctx context.Context, email string) *models.UserRecord
	AppendToInvestments(ctx context.Context, inv models.InvestmentRecord) error
	AppendInvestment(ctx context.Context, email string, inv models.InvestmentRecord) error
	AdjustBalance(ctx context.Context, email string, delta float64) error
	UserInvestments(ctx context.Context, email string) []models.InvestmentRecord
	ListAllInvestments(ctx context.Context) []models.InvestmentRecord
}

// OpenRequest — параметры открытия инвестиции.
type OpenRequest struct {
	Plan           string
	Amount         float64
	DurationMonths int
}

// Service реализует бизнес-логику инвестиций.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Open открывает инвестицию: проверяет план и баланс, списывает вложенную
// сумму и добавляет запись в глобальную коллекцию и во вложенный список
// пользователя. Прибыль рассчитывается по месячной ставке плана.
func (s *Service) Open(ctx context.Context, email, name string, req OpenRequest) (*models.InvestmentRecord, error) {
	rate, ok := planRates[req.Plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	user := s.repo.FindUserByEmail(ctx, email)
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Balance < req.Amount {
		return nil, ErrInsufficientBalance
	}

	start := time.Now().UTC()
	inv := models.InvestmentRecord{
		ID:        uuid.NewString(),
		UserEmail: user.Email,
		UserName:  name,
		Plan:      req.Plan,
		Amount:    req.Amount,
		Profit:    req.Amount * rate * float64(req.DurationMonths),
		Duration:  fmt.Sprintf("%d months", req.DurationMonths),
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, req.DurationMonths, 0).Format("2006-01-02"),
		Status:    models.InvestmentStatusActive,
	}

	if err := s.repo.AppendToInvestments(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.repo.AppendInvestment(ctx, user.Email, inv); err != nil {
		return nil, err
	}
	if err := s.repo.AdjustBalance(ctx, user.Email, -req.Amount); err != nil {
		return nil, err
	}
	s.log.Info("investment opened",
		slog.String("id", inv.ID), slog.String("email", user.Email), slog.String("plan", req.Plan))

	return &inv, nil
}

// ListUser возвращает вложенный список инвестиций пользователя.
func (s *Service) ListUser(ctx context.Context, email string) []models.InvestmentRecord {
	return s.repo.UserInvestments(ctx, email)
}

// ListAll возвращает глобальную коллекцию инвестиций.
func (s *Service) ListAll(ctx context.Context) []models.InvestmentRecord {
	return s.repo.ListAllInvestments(ctx)
}
