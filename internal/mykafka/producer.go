package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicEntityEvents = "entity_events"
	TopicUserEvents   = "user_events"

	writeTimeout = 5 * time.Second
)

// Publisher is what the services need from a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type Producer struct {
	writer *kafka.Writer
}

// NewProducer returns an asynchronous producer: PublishEvent only queues the
// message and delivery failures are reported to l.
func NewProducer(brokers []string, l *slog.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if l == nil {
		l = slog.Default()
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           writeTimeout,
		Async:                  true,
		Completion:             reportFailures(l),
	}
	return &Producer{writer: w}, nil
}

func reportFailures(l *slog.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, m := range msgs {
			l.Error("kafka_publish_failed", "topic", m.Topic, "key", string(m.Key), "error", err)
		}
	}
}

func newMessage(topic, key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}, nil
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	msg, err := newMessage(topic, key, event)
	if err != nil {
		return err
	}

	// async: returns once queued, or early if ctx is already done
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", topic, err)
	}
	return nil
}

// Close flushes queued messages.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Discard drops every event. It is used when no brokers are configured.
type Discard struct{}

func (Discard) PublishEvent(context.Context, string, string, any) error { return nil }
