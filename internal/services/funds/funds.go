// Package funds содержит бизнес-логику движения средств: подачу заявок
// на пополнение и вывод, переводы транзакций между статусами
// и прямые корректировки баланса.
package funds

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mxtmdev/investment-platform/internal/events"
	"github.com/mxtmdev/investment-platform/internal/lib/ids"
	"github.com/mxtmdev/investment-platform/internal/lib/sl"
	"github.com/mxtmdev/investment-platform/internal/models"
)

// MinAmount — минимальная сумма пополнения и вывода.
const MinAmount = 50

// Ошибки уровня бизнес-логики, различаемые обработчиками.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Repository описывает операции хранилища, используемые сервисом.
type Repository interface {
	FindUserByEmail(ctx context.Context, email string) *models.UserRecord
	AppendToLedger(ctx context.Context, tx models.TransactionRecord) error
	AppendTransaction(ctx context.Context, email string, tx models.TransactionRecord) error
	AdjustBalance(ctx context.Context, email string, delta float64) error
	SetTransactionStatus(ctx context.Context, userEmail, transactionID, status string) error
	CreditUser(ctx context.Context, email string, amount float64, memo string) error
	DebitUser(ctx context.Context, email string, amount float64, memo string) error
	ListAllTransactions(ctx context.Context) []models.TransactionRecord
}

// DepositRequest — параметры заявки на пополнение.
type DepositRequest struct {
	Amount   float64
	Currency string
	Method   string
}

// WithdrawalRequest — параметры заявки на вывод.
type WithdrawalRequest struct {
	Amount        float64
	Currency      string
	Method        string
	BankDetails   *models.BankDetails
	WalletAddress string
}

// Service реализует бизнес-логику движения средств.
type Service struct {
	repo   Repository
	events events.Publisher
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, publisher events.Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: publisher,
		log:    log,
	}
}

// SubmitDeposit создает pending-транзакцию пополнения в глобальном реестре
// и во вложенном списке пользователя. Баланс не меняется до одобрения заявки.
func (s *Service) SubmitDeposit(ctx context.Context, email, name string, req DepositRequest) (*models.TransactionRecord, error) {
	tx := models.TransactionRecord{
		ID:        ids.NewTransactionID(),
		UserEmail: email,
		UserName:  name,
		Type:      models.TransactionTypeDeposit,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    models.TransactionStatusPending,
		Date:      time.Now().UTC().Format("2006-01-02"),
		Method:    req.Method,
	}

	if err := s.repo.AppendToLedger(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.repo.AppendTransaction(ctx, email, tx); err != nil {
		return nil, err
	}
	s.log.Info("deposit request submitted",
		slog.String("id", tx.ID), slog.String("email", email), slog.Float64("amount", req.Amount))

	return &tx, nil
}

// SubmitWithdrawal создает pending-транзакцию вывода и сразу списывает
// сумму с баланса пользователя. Отклоненная заявка возвращается на баланс
// обратным переводом через Credit.
func (s *Service) SubmitWithdrawal(ctx context.Context, email, name string, req WithdrawalRequest) (*models.TransactionRecord, error) {
	user := s.repo.FindUserByEmail(ctx, email)
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Balance < req.Amount {
		return nil, ErrInsufficientBalance
	}

	tx := models.TransactionRecord{
		ID:            ids.NewTransactionID(),
		UserEmail:     user.Email,
		UserName:      name,
		Type:          models.TransactionTypeWithdrawal,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        models.TransactionStatusPending,
		Date:          time.Now().UTC().Format("2006-01-02"),
		Method:        req.Method,
		BankDetails:   req.BankDetails,
		WalletAddress: req.WalletAddress,
	}

	if err := s.repo.AppendToLedger(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.repo.AppendTransaction(ctx, user.Email, tx); err != nil {
		return nil, err
	}
	if err := s.repo.AdjustBalance(ctx, user.Email, -req.Amount); err != nil {
		return nil, err
	}
	s.log.Info("withdrawal request submitted",
		slog.String("id", tx.ID), slog.String("email", user.Email), slog.Float64("amount", req.Amount))

	return &tx, nil
}

// SetStatus переводит транзакцию в новый статус и публикует событие
// изменения. Публикация выполняется по принципу best-effort:
// ошибка брокера не откатывает изменение статуса.
func (s *Service) SetStatus(ctx context.Context, userEmail, transactionID, status string) error {
	var record *models.TransactionRecord
	for _, tx := range s.repo.ListAllTransactions(ctx) {
		if tx.ID == transactionID && tx.UserEmail == userEmail {
			record = &tx
			break
		}
	}

	if err := s.repo.SetTransactionStatus(ctx, userEmail, transactionID, status); err != nil {
		return err
	}

	if record != nil {
		err := s.events.Publish(events.TransactionEvent{
			TransactionID: record.ID,
			UserEmail:     record.UserEmail,
			Type:          record.Type,
			Status:        status,
			Amount:        record.Amount,
		})
		if err != nil {
			s.log.Warn("failed to publish transaction event",
				slog.String("id", transactionID), sl.Err(err))
		}
	}
	return nil
}

// Credit зачисляет сумму на счет пользователя с записью в реестр.
func (s *Service) Credit(ctx context.Context, email string, amount float64, memo string) error {
	return s.repo.CreditUser(ctx, email, amount, memo)
}

// Debit списывает сумму со счета пользователя с записью в реестр.
func (s *Service) Debit(ctx context.Context, email string, amount float64, memo string) error {
	return s.repo.DebitUser(ctx, email, amount, memo)
}

// History возвращает транзакции пользователя из глобального реестра.
func (s *Service) History(ctx context.Context, email string) []models.TransactionRecord {
	var out []models.TransactionRecord
	for _, tx := range s.repo.ListAllTransactions(ctx) {
		if strings.EqualFold(tx.UserEmail, email) {
			out = append(out, tx)
		}
	}
	return out
}
