package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"pms/config"
	"pms/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const headerContentType = "content-type"

// Message is a JSON encoded record. Records sharing a key land on the same partition.
type Message struct {
	Key     string
	Value   any
	Headers map[string]string
	Time    time.Time
}

func (m *Message) encode() (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value: %w", err)
	}

	headers := make([]kafkaGo.Header, 0, len(m.Headers)+1)
	headers = append(headers, kafkaGo.Header{Key: headerContentType, Value: []byte(constant.ContentTypeJSON)})

	for key, val := range m.Headers {
		headers = append(headers, kafkaGo.Header{Key: key, Value: []byte(val)})
	}

	return kafkaGo.Message{
		Key:     []byte(m.Key),
		Value:   value,
		Headers: headers,
		Time:    m.Time,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
}

type kafkaClientImpl struct {
	transport    *kafkaGo.Transport
	address      net.Addr
	writeTimeout time.Duration
}

func New(config *config.Config) Client {
	transport := &kafkaGo.Transport{}

	if config.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("kafka client initialized")

	return &kafkaClientImpl{
		transport:    transport,
		address:      kafkaGo.TCP(config.Kafka.Brokers...),
		writeTimeout: time.Duration(config.Kafka.WriteTimeoutSeconds) * time.Second,
	}
}

// SendMessages writes synchronously and waits for every in-sync replica. Events are rare
// (one per audit run) so a writer is opened per call.
func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	records := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		record, err := message.encode()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", message.Key).Msg("failed to encode kafka message")

			return err
		}

		records = append(records, record)
	}

	writer := &kafkaGo.Writer{
		Addr:                   k.address,
		Topic:                  topic,
		Transport:              k.transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireAll,
		WriteTimeout:           k.writeTimeout,
		AllowAutoTopicCreation: true,
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("topic", topic).Msg("failed to close kafka writer")
		}
	}()

	if err = writer.WriteMessages(ctx, records...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to write kafka messages")

		return fmt.Errorf("failed to send message to kafka: %w", err)
	}

	log.Info().Str("topic", topic).Int("count", len(records)).Msg("kafka messages sent")

	return nil
}
