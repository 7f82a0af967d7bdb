// Package submit реализует HTTP-обработчик подачи заявки на верификацию.
package submit

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
	"github.com/mxtmdev/investment-platform/internal/repository"
)

// Request — входные данные заявки на верификацию.
type Request struct {
	DocumentType   string `json:"document_type" validate:"required,oneof=passport national_id drivers_license"`
	DocumentNumber string `json:"document_number" validate:"required"`
	Country        string `json:"country" validate:"required"`
	FrontImage     string `json:"front_image" validate:"required"`
	BackImage      string `json:"back_image,omitempty"`
	SelfieImage    string `json:"selfie_image" validate:"required"`
}

// Service описывает интерфейс бизнес-логики верификации.
type Service interface {
	Submit(ctx context.Context, email, name string, payload repository.VerificationPayload) (string, error)
}

// Handler обрабатывает HTTP-запросы подачи верификации.
type Handler struct {
	log          *slog.Logger
	verification Service
	validate     *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, verificationService Service) *Handler {
	return &Handler{
		log:          log,
		verification: verificationService,
		validate:     validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подача заявки на верификацию
// @Description Создает pending-заявку в реестре верификаций и во вложенном списке пользователя.
// @Tags Verification
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Документы пользователя"
// @Success 200 {object} map[string]any "Заявка подана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /verifications [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.verification.submit"

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

	id, err := h.verification.Submit(r.Context(), email, name, repository.VerificationPayload{
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Country:        req.Country,
		FrontImage:     req.FrontImage,
		BackImage:      req.BackImage,
		SelfieImage:    req.SelfieImage,
	})
	if err != nil {
		log.Error("verification submission failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to submit verification"))
		return
	}

	log.Info("verification submitted", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"verification_id": id,
		"status":          "pending",
		"message":         "verification submitted, review usually takes 1-2 business days",
	}))
}
