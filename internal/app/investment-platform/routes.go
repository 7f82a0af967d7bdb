// Package investmentplatform собирает приложение инвестиционной платформы:
// хранилище записей, репозиторий, сервисы и HTTP-маршруты.
package investmentplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mxtmdev/investment-platform/internal/http/handlers/auth/login"
	"github.com/mxtmdev/investment-platform/internal/http/handlers/auth/register"
	"github.com/mxtmdev/investment-platform/internal/http/handlers/funds/deposit"
	"github.com/mxtmdev/investment-platform/internal/http/handlers/funds/history"
	"github.com/mxtmdev/investment-platform/internal/http/handlers/funds/status"
	"github.com/mxtmdev/investment-platform/internal/http/handlers/funds/withdraw"
	investlist "github.com/mxtmdev/investment-platform/internal/http/handlers/invest/list"
	"github.com/mxtmdev/investment-platform/internal/http/handlers/invest/open"
	verificationlist "github.com/mxtmdev/investment-platform/internal/http/handlers/verification/list"
	"github.com/mxtmdev/investment-platform/internal/http/handlers/verification/submit"
	"github.com/mxtmdev/investment-platform/internal/http/middlewarectx"
	"github.com/mxtmdev/investment-platform/internal/lib/jwt"
	authservice "github.com/mxtmdev/investment-platform/internal/services/auth"
	fundsservice "github.com/mxtmdev/investment-platform/internal/services/funds"
	investservice "github.com/mxtmdev/investment-platform/internal/services/invest"
	verificationservice "github.com/mxtmdev/investment-platform/internal/services/verification"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	jwtMaker jwt.Maker,
	authService *authservice.Service,
	fundsService *fundsservice.Service,
	investService *investservice.Service,
	verificationService *verificationservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/deposit", deposit.New(logger, fundsService).ServeHTTP)
			r.Post("/withdraw", withdraw.New(logger, fundsService).ServeHTTP)
			r.Get("/transactions", history.New(logger, fundsService).ServeHTTP)
			r.Patch("/transactions/status", status.New(logger, fundsService).ServeHTTP)
			r.Post("/investments", open.New(logger, investService).ServeHTTP)
			r.Get("/investments", investlist.New(logger, investService).ServeHTTP)
			r.Post("/verifications", submit.New(logger, verificationService).ServeHTTP)
			r.Get("/verifications", verificationlist.New(logger, verificationService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
