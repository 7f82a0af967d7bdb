// Package repository реализует операции над коллекциями записей платформы:
// пользователями, реестром транзакций и заявками на верификацию.
// Каждая изменяющая операция читает коллекцию из Record Store целиком,
// изменяет её в памяти и записывает обратно. Чтения-изменения-записи
// выполняются под общим мьютексом, чтобы исключить потерю обновлений
// при конкурентных вызовах внутри процесса.
package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mxtmdev/investment-platform/internal/lib/sl"
	"github.com/mxtmdev/investment-platform/internal/store"
)

// dateLayout — формат дат во всех хранимых записях.
const dateLayout = "2006-01-02"

// Repository предоставляет доступ к коллекциям записей через Record Store.
type Repository struct {
	store store.Store
	log   *slog.Logger
	mu    sync.Mutex
}

// New создает новый экземпляр Repository поверх переданного хранилища.
func New(s store.Store, log *slog.Logger) *Repository {
	return &Repository{
		store: s,
		log:   log,
	}
}

// loadCollection читает и декодирует коллекцию по ключу.
// Отсутствие ключа и ошибки декодирования не считаются ошибками:
// вызывающий получает пустую коллекцию, диагностика уходит в лог.
func (r *Repository) loadCollection(ctx context.Context, key string, dst any) {
	const op = "repository.loadCollection"

	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.log.Warn("failed to read collection, falling back to empty",
			slog.String("op", op), slog.String("key", key), sl.Err(err))
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		r.log.Warn("failed to decode collection, falling back to empty",
			slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
}

// saveCollection сериализует коллекцию и безусловно перезаписывает ключ.
func (r *Repository) saveCollection(ctx context.Context, key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, string(data))
}
