// Package list реализует HTTP-обработчик просмотра инвестиций пользователя.
package list

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

// Service описывает интерфейс выборки инвестиций.
type Service interface {
	ListUser(ctx context.Context, email string) []models.InvestmentRecord
}

// Handler обрабатывает HTTP-запросы списка инвестиций.
type Handler struct {
	log    *slog.Logger
	invest Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, investService Service) *Handler {
	return &Handler{
		log:    log,
		invest: investService,
	}
}

// ServeHTTP godoc
// @Summary Инвестиции пользователя
// @Description Возвращает вложенный список инвестиций текущего пользователя.
// @Tags Investments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список инвестиций"
// @Router /investments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invest.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := middlewarectx.EmailFromContext(r.Context())

	investments := h.invest.ListUser(r.Context(), email)

	log.Info("investments listed", slog.Int("count", len(investments)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"investments": investments,
	}))
}
