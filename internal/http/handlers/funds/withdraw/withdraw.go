// Package withdraw реализует HTTP-обработчик подачи заявки на вывод средств.
package withdraw

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
	"github.com/mxtmdev/investment-platform/internal/services/funds"
)

// Request — входные данные заявки на вывод.
// Для method=bank_transfer обязательны банковские реквизиты,
// для остальных способов — адрес кошелька.
type Request struct {
	Amount        float64 `json:"amount" validate:"required,gte=50"`
	Currency      string  `json:"currency" validate:"required"`
	Method        string  `json:"method" validate:"required"`
	WalletAddress string  `json:"wallet_address,omitempty"`
	BankName      string  `json:"bank_name,omitempty"`
	AccountNumber string  `json:"account_number,omitempty"`
	AccountName   string  `json:"account_name,omitempty"`
}

// Service описывает интерфейс бизнес-логики вывода средств.
type Service interface {
	SubmitWithdrawal(ctx context.Context, email, name string, req funds.WithdrawalRequest) (*models.TransactionRecord, error)
}

// Handler обрабатывает HTTP-запросы вывода средств.
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
// @Summary Заявка на вывод средств
// @Description Создает pending-транзакцию вывода. Сумма списывается с баланса сразу.
// @Tags Funds
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Параметры вывода"
// @Success 200 {object} map[string]any "Заявка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или реквизиты"
// @Failure 409 {object} response.ErrorResponse "Недостаточно средств"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /withdraw [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.funds.withdraw"

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

	if req.Method == "bank_transfer" {
		if req.BankName == "" || req.AccountNumber == "" || req.AccountName == "" {
			log.Error("bank details missing for bank transfer")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("bank details are required for bank transfers"))
			return
		}
	} else if req.WalletAddress == "" {
		log.Error("wallet address missing", slog.String("method", req.Method))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("wallet address is required"))
		return
	}

	email := middlewarectx.EmailFromContext(r.Context())
	name := middlewarectx.NameFromContext(r.Context())

	withdrawal := funds.WithdrawalRequest{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        req.Method,
		WalletAddress: req.WalletAddress,
	}
	if req.Method == "bank_transfer" {
		withdrawal.BankDetails = &models.BankDetails{
			BankName:      req.BankName,
			AccountNumber: req.AccountNumber,
			AccountName:   req.AccountName,
		}
	}

	tx, err := h.funds.SubmitWithdrawal(r.Context(), email, name, withdrawal)
	if err != nil {
		switch {
		case errors.Is(err, funds.ErrInsufficientBalance):
			log.Warn("insufficient balance", slog.String("email", email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("insufficient balance"))
		case errors.Is(err, funds.ErrUserNotFound):
			log.Warn("user not found", slog.String("email", email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("withdrawal submission failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to submit withdrawal"))
		}
		return
	}

	log.Info("withdrawal submitted", slog.String("id", tx.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transaction_id": tx.ID,
		"status":         tx.Status,
		"message":        "withdrawal request submitted, it will be processed within 24 hours",
	}))
}
