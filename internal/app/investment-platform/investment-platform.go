package investmentplatform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/mxtmdev/investment-platform/internal/config"
	"github.com/mxtmdev/investment-platform/internal/events"
	"github.com/mxtmdev/investment-platform/internal/lib/jwt"
	"github.com/mxtmdev/investment-platform/internal/lib/rabbitmq"
	"github.com/mxtmdev/investment-platform/internal/lib/sl"
	"github.com/mxtmdev/investment-platform/internal/repository"
	"github.com/mxtmdev/investment-platform/internal/services/auth"
	"github.com/mxtmdev/investment-platform/internal/services/funds"
	"github.com/mxtmdev/investment-platform/internal/services/invest"
	"github.com/mxtmdev/investment-platform/internal/services/verification"
	"github.com/mxtmdev/investment-platform/internal/store"
	"github.com/mxtmdev/investment-platform/internal/store/memstore"
	"github.com/mxtmdev/investment-platform/internal/store/pgstore"
	"github.com/mxtmdev/investment-platform/internal/store/redisstore"
)

// App — собранное приложение с HTTP-сервером и подключениями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []io.Closer
}

// New собирает приложение: выбирает бекенд хранилища записей по конфигу,
// подключает брокер событий, инициализирует репозиторий, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	recordStore, closers, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher, amqpConn, err := newPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}
	if amqpConn != nil {
		closers = append(closers, amqpConn)
	}

	repo := repository.New(recordStore, logger)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := auth.New(repo, jwtMaker, logger)
	fundsService := funds.New(repo, publisher, logger)
	investService := invest.New(repo, logger)
	verificationService := verification.New(repo, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, fundsService, investService, verificationService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		closers: closers,
	}, nil
}

// newStore создает хранилище записей по значению store_backend:
// memory, redis или postgres.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, []io.Closer, error) {
	switch cfg.StoreBackend {
	case "", "memory":
		return memstore.New(), nil, nil
	case "redis":
		s, err := redisstore.New(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return s, []io.Closer{s}, nil
	case "postgres":
		s, err := pgstore.New(cfg.StorageConnectionString, cfg.MigrationsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return s, []io.Closer{s}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

// newPublisher подключает RabbitMQ, если соединение задано в конфиге.
// Без брокера приложение работает с NopPublisher.
func newPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, *amqp.Connection, error) {
	if cfg.RabbitMQConnection == "" {
		logger.Info("rabbitmq connection is not configured, transaction events are disabled")
		return events.NopPublisher{}, nil, nil
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 2*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetTransactionQueues())
	if err != nil {
		if cerr := conn.Close(); cerr != nil {
			logger.Warn("failed to close rabbitmq connection", sl.Err(cerr))
		}
		return nil, nil, fmt.Errorf("failed to setup rabbitmq channel: %w", err)
	}
	return events.NewAMQPPublisher(ch), conn, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера. При отмене выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeAll()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeAll()
		return err
	}
}

func (a *App) closeAll() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
}
