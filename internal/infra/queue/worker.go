package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

// CRMClient é o destino final do espelhamento (Airtable).
type CRMClient interface {
	MirrorLead(ctx context.Context, lead *entity.Lead) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	CRM     CRMClient
	Timeout time.Duration
	Log     logrus.FieldLogger
	// OnFailure é chamado a cada job descartado para a DLQ.
	OnFailure func()
}

func NewWorker(ch Consumer, crm CRMClient, log logrus.FieldLogger) *Worker {
	return &Worker{Channel: ch, CRM: crm, Timeout: 15 * time.Second, Log: log}
}

// Start consome a fila até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Log.WithField("queue", queueName).Info("worker de CRM iniciado")
	for {
		select {
		case <-ctx.Done():
			w.Log.Info("worker de CRM encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal do RabbitMQ fechado")
			}
			w.handle(ctx, d)
		}
	}
}

// handle dá Ack no sucesso. Payload inválido ou falha no CRM vai para a DLQ
// sem requeue, para não travar a fila.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var job MirrorJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		w.Log.WithError(err).Warn("job de CRM com JSON inválido")
		w.reject(d)
		return
	}

	log := w.Log.WithField("lead_id", job.Lead.ID)

	// O shutdown não corta o job em andamento: cancelado, ele iria para a DLQ.
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.Timeout)
	defer cancel()

	if err := w.CRM.MirrorLead(jobCtx, &job.Lead); err != nil {
		log.WithError(err).Error("falha ao espelhar lead")
		w.reject(d)
		return
	}

	if err := d.Ack(false); err != nil {
		log.WithError(err).Warn("falha no ack")
	}
}

func (w *Worker) reject(d amqp.Delivery) {
	if w.OnFailure != nil {
		w.OnFailure()
	}
	if err := d.Nack(false, false); err != nil {
		w.Log.WithError(err).Warn("falha no nack")
	}
}
