// Package auth содержит бизнес-логику регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mxtmdev/investment-platform/internal/lib/jwt"
	"github.com/mxtmdev/investment-platform/internal/lib/password"
	"github.com/mxtmdev/investment-platform/internal/models"
)

// StartingBalance — стартовый баланс демо-счета при регистрации.
const StartingBalance = 2_000_000

// Ошибки уровня бизнес-логики, различаемые обработчиками.
var (
	ErrUserExists      = errors.New("user with this email already exists")
	ErrUserNotFound    = errors.New("no account found with this email")
	ErrInvalidPassword = errors.New("incorrect password")
	ErrUserBlocked     = errors.New("account is blocked")
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// FindUserByEmail возвращает пользователя по почте или nil, если не найден.
	FindUserByEmail(ctx context.Context, email string) *models.UserRecord
	// SaveUser сохраняет или обновляет пользователя.
	SaveUser(ctx context.Context, user models.UserRecord) error
	// SaveSession перезаписывает запись активной сессии.
	SaveSession(ctx context.Context, session models.SessionRecord) error
	// SaveLogin перезаписывает запись "запомнить меня".
	SaveLogin(ctx context.Context, saved models.SavedLogin) error
}

// Service отвечает за регистрацию и авторизацию пользователей.
type Service struct {
	repo     UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя со стартовым балансом и сразу
// открывает для него сессию. Пароль хранится в виде bcrypt-хэша.
// Возвращает JWT для дальнейших запросов.
func (s *Service) Register(ctx context.Context, name, email, rawPassword, country string) (string, error) {
	if existing := s.repo.FindUserByEmail(ctx, email); existing != nil {
		return "", ErrUserExists
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}

	user := models.UserRecord{
		Email:        email,
		Name:         name,
		Password:     hashed,
		Balance:      StartingBalance,
		Status:       models.UserStatusActive,
		Joined:       time.Now().UTC().Format("2006-01-02"),
		Country:      country,
		IsVerified:   false,
		Transactions: []models.TransactionRecord{},
		Investments:  []models.InvestmentRecord{},
	}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return "", err
	}

	if err := s.repo.SaveSession(ctx, models.SessionRecord{
		Email:   user.Email,
		Name:    user.Name,
		Balance: user.Balance,
	}); err != nil {
		return "", err
	}
	s.log.Info("registered new user", slog.String("email", email))

	return s.jwtMaker.GenerateToken(user.Email, user.Name)
}

// Login проверяет учетные данные пользователя, открывает сессию
// и возвращает JWT. При rememberMe дополнительно сохраняется запись
// "запомнить меня" с текущим временем.
func (s *Service) Login(ctx context.Context, email, rawPassword string, rememberMe bool) (string, error) {
	user := s.repo.FindUserByEmail(ctx, email)
	if user == nil {
		return "", ErrUserNotFound
	}
	if err := password.CompareHash(user.Password, rawPassword); err != nil {
		return "", ErrInvalidPassword
	}
	if user.Status == models.UserStatusBlocked {
		return "", ErrUserBlocked
	}

	if err := s.repo.SaveSession(ctx, models.SessionRecord{
		Email:   user.Email,
		Name:    user.Name,
		Balance: user.Balance,
	}); err != nil {
		return "", err
	}

	if rememberMe {
		if err := s.repo.SaveLogin(ctx, models.SavedLogin{
			Email:     user.Email,
			Timestamp: time.Now().UnixMilli(),
		}); err != nil {
			s.log.Warn("failed to save login", slog.String("email", email))
		}
	}
	s.log.Info("user logged in", slog.String("email", user.Email))

	return s.jwtMaker.GenerateToken(user.Email, user.Name)
}
