package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

// Producer writes messages to a single topic
type Producer struct {
	writer *kafka.Writer
	topic  string
	log    *logger.Logger
}

// NewProducer creates a producer for the given topic
func (c *Client) NewProducer(topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(c.config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: c.config.BatchTimeout,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
		log:    logger.GetLogger("kafka.producer").WithField("topic", topic),
	}
}

// ProduceMessage produces a message to the topic
func (p *Producer) ProduceMessage(ctx context.Context, key, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
	if err != nil {
		p.log.Errorf("Failed to produce message: %v", err)
		return fmt.Errorf("failed to produce message: %w", err)
	}

	return nil
}

// ProduceJSON produces a JSON-serialized message to the topic
func (p *Producer) ProduceJSON(ctx context.Context, key []byte, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize message to JSON: %w", err)
	}

	return p.ProduceMessage(ctx, key, jsonValue)
}

// Close closes the producer
func (p *Producer) Close() error {
	p.log.Info("Closing producer")
	return p.writer.Close()
}
