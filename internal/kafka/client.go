package kafka

import (
	"time"

	"github.com/rzzdr/options-risk-engine/pkg/utils/errors"
	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

// Config contains connection options shared by producers and consumers
type Config struct {
	Brokers      []string
	GroupID      string
	MinBytes     int
	MaxBytes     int
	BatchTimeout time.Duration
}

// DefaultConfig returns a config suitable for local development
func DefaultConfig() *Config {
	return &Config{
		Brokers:      []string{"localhost:9092"},
		GroupID:      "options-risk-engine",
		MinBytes:     1,
		MaxBytes:     10e6,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// Message represents a consumed Kafka message
type Message struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

// Client is a factory for producers and consumers sharing one broker config
type Client struct {
	config *Config
	log    *logger.Logger
}

// NewClient creates a new Kafka client
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if len(config.Brokers) == 0 {
		return nil, errors.InvalidArgument("at least one broker is required")
	}
	if config.MinBytes <= 0 {
		config.MinBytes = 1
	}
	if config.MaxBytes <= 0 {
		config.MaxBytes = 10e6
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = 10 * time.Millisecond
	}

	return &Client{
		config: config,
		log:    logger.GetLogger("kafka.client"),
	}, nil
}
