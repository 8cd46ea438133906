package realtime

import (
	"context"
	"encoding/json"

	"proassignment/internal/config"
	"proassignment/internal/usecase/interfaces"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const defaultChannel = "proassignment:events"

// envelope is what travels over the Redis channel.
type envelope struct {
	UserID string          `json:"user_id"`
	Frame  json.RawMessage `json:"frame"`
}

// RedisSink publishes events on a Redis channel so every process delivers them
// to the connections it holds. Run must be started for local delivery.
type RedisSink struct {
	client  *redis.Client
	channel string
	hub     *Hub
}

var _ interfaces.IEventSink = (*RedisSink)(nil)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisSink(client *redis.Client, channel string, hub *Hub) *RedisSink {
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisSink{client: client, channel: channel, hub: hub}
}

// Notify falls back to local delivery when publishing fails.
func (s *RedisSink) Notify(ctx context.Context, userID, event string, payload any) {
	msg, err := encodeEnvelope(userID, event, payload)
	if err != nil {
		log.WithError(err).WithField("event", event).Warn("[events][redis] encode failed")
		return
	}
	if err := s.client.Publish(ctx, s.channel, msg).Err(); err != nil {
		log.WithError(err).WithFields(log.Fields{"event": event, "user_id": userID}).Warn("[events][redis] publish failed, delivering locally")
		s.hub.Notify(ctx, userID, event, payload)
	}
}

// Run relays channel messages to the local hub until ctx is done.
func (s *RedisSink) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	log.Printf("[events][redis] subscribed channel=%s", s.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			userID, frame, err := decodeEnvelope(msg.Payload)
			if err != nil {
				log.WithError(err).Warn("[events][redis] bad message")
				continue
			}
			s.hub.deliver(userID, frame)
		}
	}
}

func encodeEnvelope(userID, event string, payload any) ([]byte, error) {
	frame, err := json.Marshal(Event{Type: event, Payload: payload})
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{UserID: userID, Frame: frame})
}

func decodeEnvelope(raw string) (string, []byte, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return "", nil, err
	}
	return env.UserID, env.Frame, nil
}
