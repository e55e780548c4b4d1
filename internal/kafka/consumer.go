package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

// Consumer reads messages from a single topic as part of a consumer group
type Consumer struct {
	reader *kafka.Reader
	log    *logger.Logger
}

// NewConsumer creates a consumer for the given topic. An empty groupID
// falls back to the client's group.
func (c *Client) NewConsumer(topic, groupID string) *Consumer {
	if groupID == "" {
		groupID = c.config.GroupID
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.config.Brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: c.config.MinBytes,
		MaxBytes: c.config.MaxBytes,
	})

	return &Consumer{
		reader: reader,
		log:    logger.GetLogger("kafka.consumer").WithField("topic", topic),
	}
}

// ConsumeMessage blocks until a message arrives or the context is canceled
func (c *Consumer) ConsumeMessage(ctx context.Context) (*Message, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}

	return &Message{
		Key:       msg.Key,
		Value:     msg.Value,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}, nil
}

// Lag returns the consumer's current lag behind the topic head, in messages
func (c *Consumer) Lag() int64 {
	return c.reader.Stats().Lag
}

// Close closes the consumer
func (c *Consumer) Close() error {
	c.log.Info("Closing consumer")
	return c.reader.Close()
}
