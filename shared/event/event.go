// Package event publishes domain events to the broker selected by EVENT_BROKER.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pms/config"
	"pms/infras/kafka"
	"pms/infras/otel"
	"pms/infras/rabbitmq"
	"pms/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
	BrokerNone     = "none"

	headerEventTopic = "event-topic"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// New picks the broker from configuration. Unknown or empty brokers disable publishing.
func New(cfg *config.Config, otl otel.Otel) Publisher {
	switch strings.ToLower(cfg.Event.Broker) {
	case BrokerKafka:
		return NewKafkaPublisher(kafka.New(cfg), otl)
	case BrokerRabbitMQ:
		return NewRabbitMQPublisher(rabbitmq.New(cfg), otl)
	default:
		log.Info().Str("broker", cfg.Event.Broker).Msg("event publishing disabled")

		return NewNoopPublisher()
	}
}

type kafkaPublisher struct {
	client kafka.Client
	otel   otel.Otel
}

func NewKafkaPublisher(client kafka.Client, otl otel.Otel) Publisher {
	return &kafkaPublisher{client: client, otel: otl}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".kafka.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("topic", topic)

	return p.client.SendMessages(ctx, topic, kafka.Message{ //nolint:wrapcheck
		Key:     key,
		Value:   payload,
		Headers: map[string]string{headerEventTopic: topic},
		Time:    time.Now().UTC(),
	})
}

type rabbitMQPublisher struct {
	client rabbitmq.Client
	otel   otel.Otel
}

// NewRabbitMQPublisher uses the topic as routing key on the configured exchange.
func NewRabbitMQPublisher(client rabbitmq.Client, otl otel.Otel) Publisher {
	return &rabbitMQPublisher{client: client, otel: otl}
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, topic, _ string, payload any) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".rabbitmq.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("topic", topic)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to marshal event payload")

		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return p.client.Publish(ctx, topic, body) //nolint:wrapcheck
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(_ context.Context, topic, key string, _ any) error {
	log.Debug().Str("topic", topic).Str("key", key).Msg("event publishing disabled, dropping event")

	return nil
}
