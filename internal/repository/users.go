package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mxtmdev/investment-platform/internal/models"
	"github.com/mxtmdev/investment-platform/internal/store"
)

// ListUsers возвращает коллекцию зарегистрированных пользователей.
// При отсутствии ключа или ошибке декодирования возвращается пустой список.
func (r *Repository) ListUsers(ctx context.Context) []models.UserRecord {
	var users []models.UserRecord
	r.loadCollection(ctx, store.KeyRegisteredUsers, &users)
	return users
}

// FindUserByEmail возвращает первого пользователя с совпадающей почтой.
// Сравнение выполняется без учета регистра. Если пользователь не найден,
// возвращается nil.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) *models.UserRecord {
	users := r.ListUsers(ctx)
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i]
		}
	}
	return nil
}

// SaveUser сохраняет пользователя в коллекцию. Если запись с такой почтой
// уже существует (без учета регистра), поля новой записи накладываются
// поверх существующей: последняя запись выигрывает, незаполненные
// вложенные списки сохраняют прежнее содержимое. Иначе запись добавляется.
func (r *Repository) SaveUser(ctx context.Context, user models.UserRecord) error {
	const op = "repository.SaveUser"

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.ListUsers(ctx)
	merged := false
	for i := range users {
		if strings.EqualFold(users[i].Email, user.Email) {
			users[i] = mergeUser(users[i], user)
			merged = true
			break
		}
	}
	if !merged {
		users = append(users, user)
	}

	if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// mergeUser накладывает поля incoming поверх existing.
// Скалярные строковые поля перезаписываются только непустыми значениями,
// баланс и флаг верификации перезаписываются всегда, вложенные списки
// заменяются только когда заданы в incoming.
func mergeUser(existing, incoming models.UserRecord) models.UserRecord {
	out := existing
	out.Balance = incoming.Balance
	out.IsVerified = incoming.IsVerified
	if incoming.Email != "" {
		out.Email = incoming.Email
	}
	if incoming.Name != "" {
		out.Name = incoming.Name
	}
	if incoming.Password != "" {
		out.Password = incoming.Password
	}
	if incoming.Status != "" {
		out.Status = incoming.Status
	}
	if incoming.Joined != "" {
		out.Joined = incoming.Joined
	}
	if incoming.Country != "" {
		out.Country = incoming.Country
	}
	if incoming.Transactions != nil {
		out.Transactions = incoming.Transactions
	}
	if incoming.Investments != nil {
		out.Investments = incoming.Investments
	}
	if incoming.Verifications != nil {
		out.Verifications = incoming.Verifications
	}
	return out
}

// AdjustBalance прибавляет delta к балансу пользователя без нижней границы.
// Пользователь ищется по точному совпадению почты: это унаследованное
// расхождение с регистронезависимым поиском в остальных операциях.
// Если почта совпадает с активной сессией, зеркальная копия баланса
// в сессии перезаписывается. Отсутствие пользователя — тихий no-op.
func (r *Repository) AdjustBalance(ctx context.Context, email string, delta float64) error {
	const op = "repository.AdjustBalance"

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.ListUsers(ctx)
	for i := range users {
		if users[i].Email != email {
			continue
		}
		users[i].Balance += delta
		if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := r.mirrorSessionBalance(ctx, email, users[i].Balance, false); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	r.log.Debug("adjust balance skipped, user not found", slog.String("email", email))
	return nil
}

// SetStatus перезаписывает статус учетной записи пользователя.
// Поиск по точному совпадению почты, отсутствие пользователя — тихий no-op.
func (r *Repository) SetStatus(ctx context.Context, email, status string) error {
	const op = "repository.SetStatus"

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.ListUsers(ctx)
	for i := range users {
		if users[i].Email != email {
			continue
		}
		users[i].Status = status
		if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	return nil
}

// AppendTransaction добавляет транзакцию во вложенный список пользователя.
// В глобальный реестр запись НЕ попадает: за это отвечает вызывающая
// сторона через AppendToLedger. Отсутствие пользователя — тихий no-op.
func (r *Repository) AppendTransaction(ctx context.Context, email string, tx models.TransactionRecord) error {
	const op = "repository.AppendTransaction"

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.ListUsers(ctx)
	for i := range users {
		if !strings.EqualFold(users[i].Email, email) {
			continue
		}
		users[i].Transactions = append(users[i].Transactions, tx)
		if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	return nil
}

// AppendInvestment добавляет инвестицию во вложенный список пользователя.
// Отсутствие пользователя — тихий no-op.
func (r *Repository) AppendInvestment(ctx context.Context, email string, inv models.InvestmentRecord) error {
	const op = "repository.AppendInvestment"

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.ListUsers(ctx)
	for i := range users {
		if !strings.EqualFold(users[i].Email, email) {
			continue
		}
		users[i].Investments = append(users[i].Investments, inv)
		if err := r.saveCollection(ctx, store.KeyRegisteredUsers, users); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	return nil
}

// UserTransactions возвращает вложенный список транзакций пользователя.
func (r *Repository) UserTransactions(ctx context.Context, email string) []models.TransactionRecord {
	user := r.FindUserByEmail(ctx, email)
	if user == nil {
		return nil
	}
	return user.Transactions
}

// UserInvestments возвращает вложенный список инвестиций пользователя.
func (r *Repository) UserInvestments(ctx context.Context, email string) []models.InvestmentRecord {
	user := r.FindUserByEmail(ctx, email)
	if user == nil {
		return nil
	}
	return user.Investments
}
