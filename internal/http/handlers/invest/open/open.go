// Package open реализует HTTP-обработчик открытия инвестиционного плана.
package open

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mxtmdev/investment-platform/internal/http/middlewarectx"
	"github.com/mxtmdev/investment-platform/internal/http/response"
	"github.com/mxtmdev/investment-platform/internal/lib/sl"
	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/services/invest"
)

// Request — входные данные открытия инвестиции.
type Request struct {
	Plan   string  `json:"plan" validate:"required,oneof=starter growth premium"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Months int     `json:"months" validate:"required,gt=0"`
}

// Service описывает интерфейс бизнес-логики инвестиций.
type Service interface {
	Open(ctx context.Context, email, name string, req invest.OpenRequest) (*models.InvestmentRecord, error)
}

// Handler обрабатывает HTTP-запросы открытия инвестиций.
type Handler struct {
	log      *slog.Logger
	invest   Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, investService Service) *Handler {
	return &Handler{
		log:      log,
		invest:   investService,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Открытие инвестиционного плана
// @Description Открывает инвестицию по выбранному плану и списывает сумму с баланса.
// @Tags Investments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Параметры инвестиции"
// @Success 200 {object} map[string]any "Инвестиция открыта"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Недостаточно средств"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /investments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invest.open"

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

	inv, err := h.invest.Open(r.Context(), email, name, invest.OpenRequest{
		Plan:           req.Plan,
		Amount:         req.Amount,
		DurationMonths: req.Months,
	})
	if err != nil {
		switch {
		case errors.Is(err, invest.ErrInsufficientBalance):
			log.Warn("insufficient balance", slog.String("email", email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("insufficient balance"))
		case errors.Is(err, invest.ErrUnknownPlan):
			log.Warn("unknown plan", slog.String("plan", req.Plan))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown investment plan"))
		case errors.Is(err, invest.ErrUserNotFound):
			log.Warn("user not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to open investment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to open investment"))
		}
		return
	}

	log.Info("investment opened", slog.String("id", inv.ID), slog.String("plan", inv.Plan))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"investment": inv,
	}))
}
