package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"proassignment/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakePublishChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (f *fakePublishChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestEmailPublisher(t *testing.T) {
	ch := &fakePublishChannel{}
	p := NewEmailPublisher(ch, "proassignment", "notification.email")

	job := interfaces.EmailJob{NotificationID: "n1", UserID: "u1", Email: "ann@example.com", Subject: "Hi"}
	if err := p.Publish(context.Background(), job); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ch.exchange != "proassignment" || ch.key != "notification.email" {
		t.Fatalf("unexpected routing %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp.Persistent || ch.msg.MessageId != "n1" {
		t.Fatalf("unexpected publishing %+v", ch.msg)
	}
	var got interfaces.EmailJob
	if err := json.Unmarshal(ch.msg.Body, &got); err != nil || got.Email != "ann@example.com" {
		t.Fatalf("unexpected body %s err=%v", ch.msg.Body, err)
	}

	ch.err = errors.New("channel closed")
	if err := p.Publish(context.Background(), job); err == nil {
		t.Fatalf("expected the publish error")
	}
}

type ackRecorder struct {
	acks, nacks int
}

func (a *ackRecorder) Ack(uint64, bool) error        { a.acks++; return nil }
func (a *ackRecorder) Nack(uint64, bool, bool) error { a.nacks++; return nil }
func (a *ackRecorder) Reject(uint64, bool) error     { a.nacks++; return nil }

type fakeConsumeChannel struct {
	deliveries chan amqp.Delivery
}

func (f *fakeConsumeChannel) Qos(int, int, bool) error { return nil }
func (f *fakeConsumeChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

type recordingMailer struct {
	sent []interfaces.EmailJob
	err  error
}

func (m *recordingMailer) Send(_ context.Context, job interfaces.EmailJob) error {
	m.sent = append(m.sent, job)
	return m.err
}

func TestEmailConsumer(t *testing.T) {
	acks := &ackRecorder{}
	ch := &fakeConsumeChannel{deliveries: make(chan amqp.Delivery, 3)}
	mailer := &recordingMailer{}
	c := NewEmailConsumer(ch, "notification-emails", mailer)

	body, _ := json.Marshal(interfaces.EmailJob{NotificationID: "n1", Subject: "Hi"})
	ch.deliveries <- amqp.Delivery{Acknowledger: acks, Body: body}
	ch.deliveries <- amqp.Delivery{Acknowledger: acks, Body: []byte("{")}
	close(ch.deliveries)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Run(ctx); !errors.Is(err, ErrConsumerClosed) {
		t.Fatalf("expected ErrConsumerClosed, got %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].NotificationID != "n1" {
		t.Fatalf("unexpected sent jobs %+v", mailer.sent)
	}
	if acks.acks != 1 || acks.nacks != 1 {
		t.Fatalf("expected one ack and one nack, got %d/%d", acks.acks, acks.nacks)
	}
}

func TestEmailConsumer_SendFailureIsDropped(t *testing.T) {
	acks := &ackRecorder{}
	c := NewEmailConsumer(nil, "q", &recordingMailer{err: errors.New("smtp down")})
	body, _ := json.Marshal(interfaces.EmailJob{NotificationID: "n2"})
	c.handle(context.Background(), amqp.Delivery{Acknowledger: acks, Body: body})
	if acks.acks != 0 || acks.nacks != 1 {
		t.Fatalf("expected a nack, got %d/%d", acks.acks, acks.nacks)
	}
}
