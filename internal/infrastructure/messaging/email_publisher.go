package messaging

import (
	"context"
	"encoding/json"
	"time"

	"proassignment/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EmailPublisher puts notification email jobs on the outbox exchange.
type EmailPublisher struct {
	ch         publishChannel
	exchange   string
	routingKey string
}

var _ interfaces.IEmailPublisher = (*EmailPublisher)(nil)

func NewEmailPublisher(ch publishChannel, exchange, routingKey string) *EmailPublisher {
	return &EmailPublisher{ch: ch, exchange: exchange, routingKey: routingKey}
}

func (p *EmailPublisher) Publish(ctx context.Context, job interfaces.EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		publishCtx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    job.NotificationID,
		},
	)
	if err != nil {
		return err
	}
	log.Printf("[email][rabbitmq] job queued notification_id=%s user_id=%s", job.NotificationID, job.UserID)
	return nil
}
