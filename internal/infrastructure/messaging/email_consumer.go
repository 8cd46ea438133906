package messaging

import (
	"context"
	"encoding/json"
	"errors"

	"proassignment/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

var ErrConsumerClosed = errors.New("email consumer channel closed")

// Mailer delivers one email job.
type Mailer interface {
	Send(ctx context.Context, job interfaces.EmailJob) error
}

// LogMailer writes the email to the log instead of sending it.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, job interfaces.EmailJob) error {
	log.WithFields(log.Fields{
		"to":              job.Email,
		"user_id":         job.UserID,
		"subject":         job.Subject,
		"notification_id": job.NotificationID,
	}).Info("[email][mailer] email sent")
	return nil
}

type consumeChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// EmailConsumer drains the outbox queue. A job is acked once sent; a job that
// cannot be decoded or sent is dropped without requeue and logged.
type EmailConsumer struct {
	ch     consumeChannel
	queue  string
	mailer Mailer
}

func NewEmailConsumer(ch consumeChannel, queue string, mailer Mailer) *EmailConsumer {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &EmailConsumer{ch: ch, queue: queue, mailer: mailer}
}

// Run consumes until ctx is done or the channel closes.
func (c *EmailConsumer) Run(ctx context.Context) error {
	if err := c.ch.Qos(1, 0, false); err != nil {
		return err
	}
	msgs, err := c.ch.Consume(
		c.queue,          // queue
		"email-consumer", // consumer
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // args
	)
	if err != nil {
		return err
	}
	log.Printf("[email][rabbitmq] consumer started queue=%s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrConsumerClosed
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *EmailConsumer) handle(ctx context.Context, msg amqp.Delivery) {
	var job interfaces.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		log.WithError(err).Warn("[email][rabbitmq] undecodable job dropped")
		_ = msg.Nack(false, false)
		return
	}
	if err := c.mailer.Send(ctx, job); err != nil {
		log.WithError(err).WithField("notification_id", job.NotificationID).Warn("[email][rabbitmq] send failed, job dropped")
		_ = msg.Nack(false, false)
		return
	}
	_ = msg.Ack(false)
}
