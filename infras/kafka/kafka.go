package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	otelAttrTopic     = "topic"
	writerBatchTimout = 50 * time.Millisecond
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Publisher sends JSON messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, messages ...Message) error
	Close() error
}

type publisherImpl struct {
	otel      otel.Otel
	brokers   []string
	transport *kafkaGo.Transport

	mu      sync.Mutex
	writers map[string]*kafkaGo.Writer
}

// New returns a kafka-go backed publisher, or a no-op one when kafka is disabled.
func New(config *config.Config, ot otel.Otel) Publisher {
	if !config.Kafka.Enable || len(config.Kafka.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, events will be dropped")

		return NewNoop()
	}

	transport := &kafkaGo.Transport{}
	if config.Kafka.SASL.Username != constant.Empty {
		transport.SASL = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka publisher initialized")

	return &publisherImpl{
		otel:      ot,
		brokers:   config.Kafka.Brokers,
		transport: transport,
		writers:   map[string]*kafkaGo.Writer{},
	}
}

func (p *publisherImpl) writer(topic string) *kafkaGo.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(p.brokers...),
		Topic:                  topic,
		Transport:              p.transport,
		Balancer:               &kafkaGo.Hash{},
		BatchTimeout:           writerBatchTimout,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = w

	return w
}

func (p *publisherImpl) Publish(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelAttrTopic, topic)

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		msgs = append(msgs, msg)
	}

	if err = p.writer(topic).WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

func (p *publisherImpl) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			return fmt.Errorf("failed to close writer for %s: %w", topic, err)
		}
	}

	return nil
}

type noopPublisher struct{}

func NewNoop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(_ context.Context, topic string, messages ...Message) error {
	log.Trace().Str("topic", topic).Int("count", len(messages)).Msg("Kafka disabled, dropping messages")

	return nil
}

func (noopPublisher) Close() error {
	return nil
}
