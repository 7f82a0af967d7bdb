// Package verification содержит бизнес-логику подачи заявок на верификацию.
package verification

import (
	"context"
	"log/slog"

	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/repository"
)

// Repository описывает операции хранилища, используемые сервисом.
type Repository interface {
	SubmitVerification(ctx context.Context, email, name string, payload repository.VerificationPayload) (string, error)
	ListVerifications(ctx context.Context) []models.VerificationRequest
}

// Service реализует бизнес-логику верификации.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Submit подает заявку на верификацию и возвращает её идентификатор.
func (s *Service) Submit(ctx context.Context, email, name string, payload repository.VerificationPayload) (string, error) {
	id, err := s.repo.SubmitVerification(ctx, email, name, payload)
	if err != nil {
		return "", err
	}
	s.log.Info("verification submitted", slog.String("id", id), slog.String("email", email))
	return id, nil
}

// ListAll возвращает глобальный реестр заявок на верификацию.
func (s *Service) ListAll(ctx context.Context) []models.VerificationRequest {
	return s.repo.ListVerifications(ctx)
}
