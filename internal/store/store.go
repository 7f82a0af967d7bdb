// Package store определяет контракт Record Store — key-value хранилища,
// в котором репозитории держат сериализованные коллекции записей.
// Конкретные реализации находятся в подпакетах memstore, redisstore и pgstore.
package store

import "context"

// Store описывает key-value хранилище с синхронными операциями чтения и записи.
// Get возвращает значение по ключу и признак его наличия.
// Set безусловно перезаписывает значение по ключу.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Ключи хранимых коллекций. Каждый ключ содержит либо сериализованную
// коллекцию записей, либо одиночную запись.
const (
	// KeyRegisteredUsers — коллекция всех зарегистрированных пользователей.
	KeyRegisteredUsers = "registeredUsers"
	// KeySession — запись активной сессии.
	KeySession = "user"
	// KeyAllTransactions — глобальный реестр транзакций.
	KeyAllTransactions = "allTransactions"
	// KeyAllInvestments — глобальная коллекция инвестиций.
	KeyAllInvestments = "allInvestments"
	// KeyUserVerifications — глобальный реестр заявок на верификацию.
	KeyUserVerifications = "userVerifications"
	// KeySavedLogin — запись "запомнить меня".
	KeySavedLogin = "savedLogin"
)
