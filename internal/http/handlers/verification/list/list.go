// Package list реализует HTTP-обработчик просмотра реестра верификаций.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mxtmdev/investment-platform/internal/http/response"
	"github.com/mxtmdev/investment-platform/internal/models"
)

// Service описывает интерфейс выборки заявок на верификацию.
type Service interface {
	ListAll(ctx context.Context) []models.VerificationRequest
}

// Handler обрабатывает HTTP-запросы списка верификаций.
type Handler struct {
	log          *slog.Logger
	verification Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, verificationService Service) *Handler {
	return &Handler{
		log:          log,
		verification: verificationService,
	}
}

// ServeHTTP godoc
// @Summary Реестр заявок на верификацию
// @Description Возвращает все заявки на верификацию из глобального реестра.
// @Tags Verification
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список заявок"
// @Router /verifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.verification.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	verifications := h.verification.ListAll(r.Context())

	log.Info("verifications listed", slog.Int("count", len(verifications)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"verifications": verifications,
	}))
}
