// Package status реализует HTTP-обработчик смены статуса транзакции.
package status

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mxtmdev/investment-platform/internal/http/response"
	"github.com/mxtmdev/investment-platform/internal/lib/sl"
)

// Request — входные данные смены статуса транзакции.
type Request struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	UserEmail     string `json:"user_email" validate:"required,email"`
	Status        string `json:"status" validate:"required,oneof=pending processing completed rejected"`
}

// Service описывает интерфейс бизнес-логики обработки транзакций.
type Service interface {
	SetStatus(ctx context.Context, userEmail, transactionID, status string) error
}

// Handler обрабатывает HTTP-запросы смены статуса.
type Handler struct {
	log      *slog.Logger
	funds    Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, fundsService Service) *Handler {
	return &Handler{
		log:      log,
		funds:    fundsService,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена статуса транзакции
// @Description Обновляет статус транзакции. Для завершенных пополнений зачисляет сумму на баланс.
// @Tags Funds
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Транзакция и новый статус"
// @Success 200 {object} response.Response "Статус обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /transactions/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.funds.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.funds.SetStatus(r.Context(), req.UserEmail, req.TransactionID, req.Status); err != nil {
		log.Error("failed to update transaction status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update transaction status"))
		return
	}

	log.Info("transaction status updated",
		slog.String("transaction_id", req.TransactionID),
		slog.String("status", req.Status))
	render.JSON(w, r, response.OK())
}
