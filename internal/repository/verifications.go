package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mxtmdev/investment-platform/internal/lib/ids"
	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/store"
)

// VerificationPayload — данные документов, поданные пользователем
// при отправке заявки на верификацию.
type VerificationPayload struct {
	DocumentType   string
	DocumentNumber string
	Country        string
	FrontImage     string
	BackImage      string
	SelfieImage    string
}

// ListVerifications возвращает глобальный реестр заявок на верификацию.
func (r *Repository) ListVerifications(ctx context.Context) []models.VerificationRequest {
	var reqs []models.VerificationRequest
	r.loadCollection(ctx, store.KeyUserVerifications, &reqs)
	return reqs
}

// SubmitVerification создает заявку со статусом pending и сегодняшней датой,
// добавляет её в глобальный реестр и во вложенный список владельца.
// Записи выполняются раздельно и не атомарны: сбой между ними оставит
// заявку только в реестре. Возвращает идентификатор новой заявки;
// при ошибке записи хранилища — ошибку отправки.
func (r *Repository) SubmitVerification(ctx context.Context, email, name string, payload VerificationPayload) (string, error) {
	const op = "repository.SubmitVerification"

	r.mu.Lock()
	defer r.mu.Unlock()

	verification := models.VerificationRequest{
		ID:             ids.NewVerificationID(),
		UserEmail:      email,
		UserName:       name,
		DocumentType:   payload.DocumentType,
		DocumentNumber: payload.DocumentNumber,
		Country:        payload.Country,
		FrontImage:     payload.FrontImage,
		BackImage:      payload.BackImage,
		SelfieImage:    payload.SelfieImage,
		SubmittedDate:  time.Now().UTC().Format(dateLayout),
		Status:         models.VerificationStatusPending,
	}

	registry := r.ListVerifications(ctx)
	registry = append(registry, verification)
	if err := r.saveCollection(ctx, store.KeyUserVerifications, registry); err != nil {
		return "", fmt.Errorf("%s: failed to submit verification: %w", op, err)
	}

	users := r.ListUsers(ctx)
	for i := range users {
		if users[i].Email != email {
			continue
		}
		users[i].Verifications = append(users[i].Verifications, verification)
		if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
			return "", fmt.Errorf("%s: failed to submit verification: %w", op, err)
		}
		break
	}

	return verification.ID, nil
}
