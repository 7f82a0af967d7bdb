package models

// Типы транзакций.
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
)

// Статусы транзакции. Начальный статус всегда pending,
// терминальными считаются completed и rejected (по соглашению, без защиты).
const (
	TransactionStatusPending    = "pending"
	TransactionStatusProcessing = "processing"
	TransactionStatusCompleted  = "completed"
	TransactionStatusRejected   = "rejected"
)

// TransactionRecord представляет запись в глобальном реестре транзакций.
// ID генерируется вызывающей стороной и должен быть уникален,
// UserEmail — внешний ключ на UserRecord (существование не проверяется).
type TransactionRecord struct {
	ID            string       `json:"id"`                      // Уникальный идентификатор транзакции
	UserEmail     string       `json:"userEmail"`               // Электронная почта владельца
	UserName      string       `json:"userName,omitempty"`      // Имя владельца на момент создания
	Type          string       `json:"type"`                    // Тип: deposit или withdrawal
	Amount        float64      `json:"amount"`                  // Сумма, всегда положительная
	Currency      string       `json:"currency"`                // Код валюты
	Status        string       `json:"status"`                  // Текущий статус
	Date          string       `json:"date"`                    // Дата создания в формате 2006-01-02
	Method        string       `json:"method"`                  // Способ оплаты или описание начисления
	BankDetails   *BankDetails `json:"bankDetails,omitempty"`   // Реквизиты для банковского перевода
	WalletAddress string       `json:"walletAddress,omitempty"` // Адрес кошелька для криптовывода
}

// BankDetails — банковские реквизиты для вывода через банковский перевод.
type BankDetails struct {
	AccountName   string `json:"accountName"`             // Имя владельца счета
	BankName      string `json:"bankName"`                // Название банка
	AccountNumber string `json:"accountNumber"`           // Номер счета
	SwiftCode     string `json:"swiftCode,omitempty"`     // SWIFT-код
	RoutingNumber string `json:"routingNumber,omitempty"` // Маршрутный номер
	BankCountry   string `json:"bankCountry"`             // Страна банка
}
