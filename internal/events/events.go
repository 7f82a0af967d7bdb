// Package events описывает события изменения статусов транзакций
// и их публикацию во внешний брокер.
package events

import (
	"github.com/streadway/amqp"

	"github.com/mxtmdev/investment-platform/internal/lib/rabbitmq"
)

// TransactionEvent — событие изменения статуса транзакции,
// публикуемое при переводах между статусами.
type TransactionEvent struct {
	TransactionID string  `json:"transaction_id"`
	UserEmail     string  `json:"user_email"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
}

// Publisher публикует события транзакций.
type Publisher interface {
	Publish(event TransactionEvent) error
}

// AMQPPublisher публикует события в RabbitMQ.
type AMQPPublisher struct {
	ch *amqp.Channel
}

// NewAMQPPublisher создает новый экземпляр AMQPPublisher.
func NewAMQPPublisher(ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{ch: ch}
}

// Publish отправляет событие в обменник transactions с ключом status.
func (p *AMQPPublisher) Publish(event TransactionEvent) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.TransactionsExchange, "status", event)
}

// NopPublisher используется, когда брокер не настроен.
type NopPublisher struct{}

// Publish не делает ничего.
func (NopPublisher) Publish(_ TransactionEvent) error { return nil }
