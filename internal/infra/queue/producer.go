package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// MirrorJob é a mensagem publicada para o worker de CRM.
type MirrorJob struct {
	Lead entity.Lead `json:"lead"`
}

// Publisher é o subconjunto do *amqp.Channel usado pelo producer.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Producer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *Producer {
	return &Producer{Ch: ch}
}

// MirrorLead enfileira o lead; o Airtable é chamado pelo worker.
func (p *Producer) MirrorLead(ctx context.Context, lead *entity.Lead) error {
	body, err := json.Marshal(MirrorJob{Lead: *lead})
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    lead.ID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
