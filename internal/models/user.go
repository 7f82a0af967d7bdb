// Package models содержит доменные структуры инвестиционной платформы:
// учетные записи пользователей, транзакции, инвестиции и заявки на верификацию.
// JSON-теги соответствуют формату хранимых коллекций в Record Store.
package models

// Статусы учетной записи пользователя.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// UserRecord представляет зарегистрированного пользователя платформы.
// Email является уникальным ключом (сравнение без учета регистра).
// Вложенные списки Transactions, Investments и Verifications —
// денормализованные копии записей из глобальных коллекций.
type UserRecord struct {
	Email         string                `json:"email"`                   // Электронная почта, уникальный ключ
	Name          string                `json:"name"`                    // Полное имя пользователя
	Password      string                `json:"password"`                // Bcrypt-хэш пароля
	Balance       float64               `json:"balance"`                 // Текущий баланс счета
	Status        string                `json:"status"`                  // Статус учетной записи: active или blocked
	Joined        string                `json:"joined"`                  // Дата регистрации в формате 2006-01-02
	Country       string                `json:"country,omitempty"`       // Страна пользователя
	IsVerified    bool                  `json:"isVerified"`              // Признак пройденной верификации
	Transactions  []TransactionRecord   `json:"transactions"`            // Копии транзакций пользователя
	Investments   []InvestmentRecord    `json:"investments"`             // Копии инвестиций пользователя
	Verifications []VerificationRequest `json:"verifications,omitempty"` // Копии заявок на верификацию
}

// SessionRecord — частичная проекция активного пользователя,
// хранится под собственным ключом независимо от полной записи.
// Поле Balance синхронизируется при каждой операции с балансом.
type SessionRecord struct {
	Email   string  `json:"email"`   // Электронная почта активного пользователя
	Name    string  `json:"name"`    // Имя активного пользователя
	Balance float64 `json:"balance"` // Зеркальная копия баланса
}

// SavedLogin — запись "запомнить меня", создаваемая при входе
// с установленным флагом remember_me.
type SavedLogin struct {
	Email     string `json:"email"`     // Электронная почта для автозаполнения
	Timestamp int64  `json:"timestamp"` // Момент сохранения, unix-миллисекунды
}
