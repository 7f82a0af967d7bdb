// Package history реализует HTTP-обработчик истории транзакций пользователя.
package history

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mxtmdev/investment-platform/internal/http/middlewarectx"
	"github.com/mxtmdev/investment-platform/internal/http/response"
	"github.com/mxtmdev/investment-platform/internal/models"
)

// Service описывает интерфейс выборки истории транзакций.
type Service interface {
	History(ctx context.Context, email string) []models.TransactionRecord
}

// Handler обрабатывает HTTP-запросы истории транзакций.
type Handler struct {
	log   *slog.Logger
	funds Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, fundsService Service) *Handler {
	return &Handler{
		log:   log,
		funds: fundsService,
	}
}

// ServeHTTP godoc
// @Summary История транзакций
// @Description Возвращает транзакции текущего пользователя из общего реестра.
// @Tags Funds
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список транзакций"
// @Router /transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.funds.history"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := middlewarectx.EmailFromContext(r.Context())

	txs := h.funds.History(r.Context(), email)

	log.Info("transactions listed", slog.Int("count", len(txs)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transactions": txs,
	}))
}
