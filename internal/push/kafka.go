package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"snapsentinel/internal/models"
)

// KafkaProvider delivers broadcast push messages from a Kafka topic. A
// running service has no background or cold-start delivery, so every message
// arrives on the foreground channel; the other two channels exist for
// providers that have them.
type KafkaProvider struct {
	brokers []string
	groupID string
	logger  *logrus.Logger
	reader  *kafka.Reader
}

// NewKafkaProvider builds a provider for the given brokers and consumer group.
func NewKafkaProvider(brokers []string, groupID string, logger *logrus.Logger) *KafkaProvider {
	return &KafkaProvider{brokers: brokers, groupID: groupID, logger: logger}
}

// RequestPermission dials the first broker. An unreachable broker is the
// service-side analogue of a denied notification permission.
func (p *KafkaProvider) RequestPermission(ctx context.Context) (bool, error) {
	if len(p.brokers) == 0 {
		return false, errors.New("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		p.logger.Warnf("Kafka broker %s unreachable: %v", p.brokers[0], err)
		return false, nil
	}
	_ = conn.Close()
	return true, nil
}

// Subscribe verifies the topic exists and opens a reader on it.
func (p *KafkaProvider) Subscribe(ctx context.Context, topic string) error {
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to dial broker %s: %w", p.brokers[0], err)
	}
	defer conn.Close()
	if _, err := conn.ReadPartitions(topic); err != nil {
		return fmt.Errorf("topic %s lookup failed: %w", topic, err)
	}

	p.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:  p.brokers,
		GroupID:  p.groupID,
		Topic:    topic,
		MaxBytes: 10e6,
	})
	return nil
}

// Listen consumes the topic until ctx ends, decoding each message value as a
// push payload. Undecodable messages are dropped, not fatal.
func (p *KafkaProvider) Listen(ctx context.Context, h Handlers) error {
	if p.reader == nil {
		return errors.New("listen called before subscribe")
	}
	defer p.reader.Close()

	p.logger.Infof("Push consumer started")
	for {
		m, err := p.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var msg models.PushMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			p.logger.Errorf("Dropping undecodable push message at offset %d: %v", m.Offset, err)
			continue
		}
		if h.OnForeground != nil {
			h.OnForeground(msg)
		}
	}
}
