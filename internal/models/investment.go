package models

// Статусы инвестиции.
const (
	InvestmentStatusActive    = "active"
	InvestmentStatusCompleted = "completed"
)

// InvestmentRecord представляет открытую инвестицию пользователя.
// С точки зрения хранилища коллекция append-only: операций изменения
// статуса ядро не предоставляет.
type InvestmentRecord struct {
	ID        string  `json:"id"`                 // Уникальный идентификатор инвестиции
	UserEmail string  `json:"userEmail"`          // Электронная почта владельца
	UserName  string  `json:"userName,omitempty"` // Имя владельца на момент открытия
	Plan      string  `json:"plan"`               // Название инвестиционного плана
	Amount    float64 `json:"amount"`             // Вложенная сумма
	Profit    float64 `json:"profit"`             // Ожидаемая прибыль
	Duration  string  `json:"duration"`           // Срок инвестиции
	StartDate string  `json:"startDate"`          // Дата начала в формате 2006-01-02
	EndDate   string  `json:"endDate"`            // Дата окончания в формате 2006-01-02
	Status    string  `json:"status"`             // Статус: active или completed
}
