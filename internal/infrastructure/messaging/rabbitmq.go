package messaging

import (
	"fmt"

	"proassignment/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// Broker owns the AMQP connection and the channel used for the email outbox.
type Broker struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
	cfg     config.RabbitMQConfig
}

// Connect dials RabbitMQ and declares the durable topic exchange, the email
// queue and its binding.
func Connect(cfg config.RabbitMQConfig) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := declare(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	log.Printf("[email][rabbitmq] connected exchange=%s queue=%s routing_key=%s", cfg.Exchange, cfg.QueueName, cfg.RoutingKey)
	return &Broker{conn: conn, Channel: ch, cfg: cfg}, nil
}

func declare(ch *amqp.Channel, cfg config.RabbitMQConfig) error {
	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	if _, err := ch.QueueDeclare(
		cfg.QueueName, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	if err := ch.QueueBind(cfg.QueueName, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue bind: %w", err)
	}
	return nil
}

func (b *Broker) Close() error {
	if b.Channel != nil {
		_ = b.Channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
