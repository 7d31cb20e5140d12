package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"context"
	"fmt"
	"pms/config"
	"pms/shared/constant"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

type Client interface {
	// Publish sends a persistent message to the configured topic exchange.
	Publish(ctx context.Context, routingKey string, body []byte) error
	Close() error
}

type rabbitmqImpl struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// New does not dial, the connection is opened on first publish and reopened after a broker restart.
func New(config *config.Config) Client {
	return &rabbitmqImpl{
		url:      config.RabbitMQ.URL,
		exchange: config.RabbitMQ.Exchange,
	}
}

func (r *rabbitmqImpl) Publish(ctx context.Context, routingKey string, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, err := r.ensureChannel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, r.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("rabbitmq: publish failed")
		r.reset()

		return fmt.Errorf("failed to publish to rabbitmq: %w", err)
	}

	log.Info().Str("exchange", r.exchange).Str("routing_key", routingKey).Msg("rabbitmq: message published")

	return nil
}

func (r *rabbitmqImpl) ensureChannel() (*amqp.Channel, error) {
	if r.channel != nil && !r.channel.IsClosed() {
		return r.channel, nil
	}

	r.reset()

	conn, err := amqp.Dial(r.url)
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: dial failed")

		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		log.Error().Err(err).Msg("rabbitmq: channel open failed")

		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err = ch.ExchangeDeclare(r.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		log.Error().Err(err).Str("exchange", r.exchange).Msg("rabbitmq: exchange declare failed")

		return nil, fmt.Errorf("failed to declare rabbitmq exchange: %w", err)
	}

	r.conn = conn
	r.channel = ch

	return ch, nil
}

func (r *rabbitmqImpl) reset() {
	if r.channel != nil {
		_ = r.channel.Close()
	}

	if r.conn != nil {
		_ = r.conn.Close()
	}

	r.channel = nil
	r.conn = nil
}

func (r *rabbitmqImpl) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reset()

	return nil
}
