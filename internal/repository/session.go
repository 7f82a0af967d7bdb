package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mxtmdev/investment-platform/internal/lib/sl"
	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/store"
)

// Session возвращает запись активной сессии или nil, если сессии нет
// либо запись не декодируется.
func (r *Repository) Session(ctx context.Context) *models.SessionRecord {
	const op = "repository.Session"

	raw, ok, err := r.store.Get(ctx, store.KeySession)
	if err != nil || !ok {
		if err != nil {
			r.log.Warn("failed to read session", slog.String("op", op), sl.Err(err))
		}
		return nil
	}
	var session models.SessionRecord
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		r.log.Warn("failed to decode session", slog.String("op", op), sl.Err(err))
		return nil
	}
	return &session
}

// SaveSession перезаписывает запись активной сессии.
func (r *Repository) SaveSession(ctx context.Context, session models.SessionRecord) error {
	const op = "repository.SaveSession"
	if err := r.saveCollection(ctx, store.KeySession, session); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SavedLogin возвращает запись "запомнить меня" или nil.
func (r *Repository) SavedLogin(ctx context.Context) *models.SavedLogin {
	const op = "repository.SavedLogin"

	raw, ok, err := r.store.Get(ctx, store.KeySavedLogin)
	if err != nil || !ok {
		if err != nil {
			r.log.Warn("failed to read saved login", slog.String("op", op), sl.Err(err))
		}
		return nil
	}
	var saved models.SavedLogin
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		r.log.Warn("failed to decode saved login", slog.String("op", op), sl.Err(err))
		return nil
	}
	return &saved
}

// SaveLogin перезаписывает запись "запомнить меня".
func (r *Repository) SaveLogin(ctx context.Context, saved models.SavedLogin) error {
	const op = "repository.SaveLogin"
	if err := r.saveCollection(ctx, store.KeySavedLogin, saved); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// mirrorSessionBalance перезаписывает баланс в записи сессии, если её почта
// совпадает с email. Запись сессии и коллекция пользователей обновляются
// раздельно: между двумя записями атомарность не гарантируется.
func (r *Repository) mirrorSessionBalance(ctx context.Context, email string, balance float64, exactCase bool) error {
	session := r.Session(ctx)
	if session == nil {
		return nil
	}
	match := session.Email == email
	if !exactCase {
		match = strings.EqualFold(session.Email, email)
	}
	if !match {
		return nil
	}
	session.Balance = balance
	return r.saveCollection(ctx, store.KeySession, *session)
}
