package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mxtmdev/investment-platform/internal/lib/ids"
	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/store"
)

// ListAllTransactions возвращает глобальный реестр транзакций.
// При отсутствии ключа или ошибке декодирования возвращается пустой список.
func (r *Repository) ListAllTransactions(ctx context.Context) []models.TransactionRecord {
	var txs []models.TransactionRecord
	r.loadCollection(ctx, store.KeyAllTransactions, &txs)
	return txs
}

// ListAllInvestments возвращает глобальную коллекцию инвестиций.
func (r *Repository) ListAllInvestments(ctx context.Context) []models.InvestmentRecord {
	var invs []models.InvestmentRecord
	r.loadCollection(ctx, store.KeyAllInvestments, &invs)
	return invs
}

// AppendToLedger добавляет транзакцию в глобальный реестр.
// Во вложенный список пользователя запись не попадает: это зеркальная
// половина асимметрии AppendTransaction.
func (r *Repository) AppendToLedger(ctx context.Context, tx models.TransactionRecord) error {
	const op = "repository.AppendToLedger"

	r.mu.Lock()
	defer r.mu.Unlock()

	txs := r.ListAllTransactions(ctx)
	txs = append(txs, tx)
	if err := r.saveCollection(ctx, store.KeyAllTransactions, txs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AppendToInvestments добавляет инвестицию в глобальную коллекцию.
func (r *Repository) AppendToInvestments(ctx context.Context, inv models.InvestmentRecord) error {
	const op = "repository.AppendToInvestments"

	r.mu.Lock()
	defer r.mu.Unlock()

	invs := r.ListAllInvestments(ctx)
	invs = append(invs, inv)
	if err := r.saveCollection(ctx, store.KeyAllInvestments, invs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetTransactionStatus перезаписывает статус транзакции, найденной по паре
// (id, userEmail). Если новый статус completed и тип записи deposit, сумма
// транзакции зачисляется на баланс пользователя (точное совпадение почты)
// с зеркалированием в сессию. Переходы между статусами не ограничиваются:
// повторный перевод в completed зачислит сумму еще раз. Отсутствие
// совпадающей записи — тихий no-op.
func (r *Repository) SetTransactionStatus(ctx context.Context, userEmail, transactionID, status string) error {
	const op = "repository.SetTransactionStatus"

	r.mu.Lock()
	defer r.mu.Unlock()

	txs := r.ListAllTransactions(ctx)
	for i := range txs {
		if txs[i].ID != transactionID || txs[i].UserEmail != userEmail {
			continue
		}
		txs[i].Status = status

		if status == models.TransactionStatusCompleted && txs[i].Type == models.TransactionTypeDeposit {
			if err := r.creditLocked(ctx, userEmail, txs[i].Amount); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		if err := r.saveCollection(ctx, store.KeyAllTransactions, txs); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	r.log.Debug("transaction status update skipped, record not found",
		slog.String("id", transactionID), slog.String("email", userEmail))
	return nil
}

// CreditUser безусловно зачисляет amount на баланс пользователя (точное
// совпадение почты), добавляет в реестр завершенную депозитную запись
// с memo в качестве метода и зеркалирует баланс в сессию.
// Отсутствие пользователя — тихий no-op.
func (r *Repository) CreditUser(ctx context.Context, email string, amount float64, memo string) error {
	const op = "repository.CreditUser"

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.ListUsers(ctx)
	for i := range users {
		if users[i].Email != email {
			continue
		}
		users[i].Balance += amount
		if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := r.appendCompleted(ctx, users[i], models.TransactionTypeDeposit, amount, memo); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := r.mirrorSessionBalance(ctx, email, users[i].Balance, true); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	return nil
}

// DebitUser списывает amount с баланса пользователя (точное совпадение
// почты) с нижней границей ноль, добавляет в реестр завершенную запись
// о выводе и зеркалирует баланс в сессию. Отсутствие пользователя — тихий no-op.
func (r *Repository) DebitUser(ctx context.Context, email string, amount float64, memo string) error {
	const op = "repository.DebitUser"

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.ListUsers(ctx)
	for i := range users {
		if users[i].Email != email {
			continue
		}
		users[i].Balance -= amount
		if users[i].Balance < 0 {
			users[i].Balance = 0
		}
		if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := r.appendCompleted(ctx, users[i], models.TransactionTypeWithdrawal, amount, memo); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := r.mirrorSessionBalance(ctx, email, users[i].Balance, true); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	return nil
}

// creditLocked зачисляет amount на баланс пользователя и зеркалирует сессию.
// Вызывается только из-под r.mu.
func (r *Repository) creditLocked(ctx context.Context, email string, amount float64) error {
	users := r.ListUsers(ctx)
	for i := range users {
		if users[i].Email != email {
			continue
		}
		users[i].Balance += amount
		if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
			return err
		}
		return r.mirrorSessionBalance(ctx, email, users[i].Balance, true)
	}
	return nil
}

// appendCompleted добавляет в глобальный реестр завершенную транзакцию,
// созданную операцией Credit/Debit. Вызывается только из-под r.mu.
func (r *Repository) appendCompleted(ctx context.Context, user models.UserRecord, txType string, amount float64, memo string) error {
	tx := models.TransactionRecord{
		ID:        ids.NewTransactionID(),
		UserEmail: user.Email,
		UserName:  user.Name,
		Type:      txType,
		Amount:    amount,
		Currency:  "USD",
		Status:    models.TransactionStatusCompleted,
		Date:      time.Now().UTC().Format(dateLayout),
		Method:    memo,
	}
	txs := r.ListAllTransactions(ctx)
	txs = append(txs, tx)
	return r.saveCollection(ctx, store.KeyAllTransactions, txs)
}
