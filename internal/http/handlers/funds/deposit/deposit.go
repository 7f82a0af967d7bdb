// Package deposit реализует HTTP-обработчик подачи заявки на пополнение.
package deposit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mxtmdev/investment-platform/internal/http/middlewarectx"
	"github.com/mxtmdev/investment-platform/internal/http/response"
	"github.com/mxtmdev/investment-platform/internal/lib/sl"
	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/services/funds"
)

// Request — входные данные заявки на пополнение.
// Минимальная сумма пополнения — 50.
type Request struct {
	Amount   float64 `json:"amount" validate:"required,gte=50"`
	Currency string  `json:"currency" validate:"required"`
	Method   string  `json:"method" validate:"required"`
}

// Service описывает интерфейс бизнес-логики пополнения.
type Service interface {
	SubmitDeposit(ctx context.Context, email, name string, req funds.DepositRequest) (*models.TransactionRecord, error)
}

// Handler обрабатывает HTTP-запросы пополнения.
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
// @Summary Заявка на пополнение
// @Description Создает pending-транзакцию пополнения. Баланс меняется после одобрения.
// @Tags Funds
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Параметры пополнения"
// @Success 200 {object} map[string]any "Заявка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /deposit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.funds.deposit"

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

	email := middlewarectx.EmailFromContext(r.Context())
	name := middlewarectx.NameFromContext(r.Context())

	tx, err := h.funds.SubmitDeposit(r.Context(), email, name, funds.DepositRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Method:   req.Method,
	})
	if err != nil {
		log.Error("deposit submission failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to submit deposit"))
		return
	}

	log.Info("deposit submitted", slog.String("id", tx.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transaction_id": tx.ID,
		"status":         tx.Status,
		"message":        "deposit request submitted, it will be processed within 24 hours",
	}))
}
