package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config for the whole application
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Chain   ChainConfig   `mapstructure:"chain"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// General application configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// Configuration for the API server
type APIConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Configuration for the implied volatility solver
type SolverConfig struct {
	MaxIterations int     `mapstructure:"max_iterations"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MinVol        float64 `mapstructure:"min_vol"`
	MaxVol        float64 `mapstructure:"max_vol"`
	InitialGuess  float64 `mapstructure:"initial_guess"`
	Method        string  `mapstructure:"method"`
}

// Configuration for batch option chain pricing
type ChainConfig struct {
	Workers int `mapstructure:"workers"`
}

// Configuration for Kafka
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	GroupID string            `mapstructure:"group_id"`
	Topics  KafkaTopicsConfig `mapstructure:"topics"`
}

// Kafka topics configuration
type KafkaTopicsConfig struct {
	Portfolios      string `mapstructure:"portfolios"`
	PortfolioGreeks string `mapstructure:"portfolio_greeks"`
}

// Configuration for metrics
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Loads the configuration from a file and environment variables.
// RISK_CONFIG_PATH points Load at an explicit config file; otherwise
// ./config/config.yaml is used when present.
func Load() (*Config, error) {
	viper.Reset()
	setDefaults()

	if path := os.Getenv("RISK_CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")

		if err := viper.ReadInConfig(); err != nil {
			// A missing file is fine; defaults and env vars still apply.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	viper.SetEnvPrefix("RISK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "options-risk-engine")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.log_level", "info")

	// API defaults
	viper.SetDefault("api.host", "0.0.0.0")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.read_timeout", "10s")
	viper.SetDefault("api.write_timeout", "10s")
	viper.SetDefault("api.shutdown_timeout", "30s")

	// Solver defaults
	viper.SetDefault("solver.max_iterations", 100)
	viper.SetDefault("solver.tolerance", 1e-6)
	viper.SetDefault("solver.min_vol", 0.01)
	viper.SetDefault("solver.max_vol", 5.0)
	viper.SetDefault("solver.initial_guess", 0.3)
	viper.SetDefault("solver.method", "auto")

	// Chain pricing defaults
	viper.SetDefault("chain.workers", 8)

	// Kafka defaults
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.group_id", "options-risk-engine")
	viper.SetDefault("kafka.topics.portfolios", "risk.portfolios")
	viper.SetDefault("kafka.topics.portfolio_greeks", "risk.portfolio.greeks")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
}
