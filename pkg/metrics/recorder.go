package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder handles metrics recording and exposure
type Recorder struct {
	// API metrics
	apiRequestCounter   *prometheus.CounterVec
	apiLatencyHistogram *prometheus.HistogramVec

	// Pricing metrics
	pricingCounter *prometheus.CounterVec
	pricingLatency *prometheus.HistogramVec

	// Implied volatility solver metrics
	ivSolveCounter *prometheus.CounterVec
	ivSolveLatency *prometheus.HistogramVec

	// Chain pricing metrics
	chainSizeHistogram *prometheus.HistogramVec
	chainLatency       *prometheus.HistogramVec

	// Portfolio metrics
	portfolioGreeksGauge *prometheus.GaugeVec
	portfolioCalcCounter *prometheus.CounterVec
	portfolioCalcLatency *prometheus.HistogramVec

	// System metrics
	kafkaLagGauge *prometheus.GaugeVec
	streamClients prometheus.Gauge
}

// NewRecorder creates a new metrics recorder
func NewRecorder() *Recorder {
	// Create and register all metrics
	return &Recorder{
		// API metrics
		apiRequestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ore_api_requests_total",
				Help: "The total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		apiLatencyHistogram: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ore_api_latency_seconds",
				Help:    "API request latency distribution",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // From 1ms to ~16s
			},
			[]string{"method", "path"},
		),

		// Pricing metrics
		pricingCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ore_pricings_total",
				Help: "The total number of single-option Greeks computations",
			},
			[]string{"option_type", "outcome"},
		),
		pricingLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ore_pricing_latency_seconds",
				Help:    "Single-option pricing latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12), // From 1us to ~16s
			},
			[]string{"option_type"},
		),

		// Implied volatility solver metrics
		ivSolveCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ore_iv_solves_total",
				Help: "The total number of implied volatility solves",
			},
			[]string{"method", "outcome"},
		),
		ivSolveLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ore_iv_solve_latency_seconds",
				Help:    "Implied volatility solve latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12), // From 10us to ~160s
			},
			[]string{"method"},
		),

		// Chain pricing metrics
		chainSizeHistogram: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ore_chain_size",
				Help:    "Quotes per chain pricing request",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8), // From 1 to ~16k
			},
			[]string{"outcome"},
		),
		chainLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ore_chain_latency_seconds",
				Help:    "Chain pricing latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // From 0.1ms to ~1.6s
			},
			[]string{"outcome"},
		),

		// Portfolio metrics
		portfolioGreeksGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ore_portfolio_greek",
				Help: "Latest portfolio-level Greek value",
			},
			[]string{"portfolio_id", "greek"},
		),
		portfolioCalcCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ore_portfolio_calculations_total",
				Help: "The total number of portfolio Greeks aggregations",
			},
			[]string{"portfolio_id", "outcome"},
		),
		portfolioCalcLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ore_portfolio_calc_latency_seconds",
				Help:    "Portfolio Greeks aggregation latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // From 0.1ms to ~1.6s
			},
			[]string{"portfolio_id"},
		),

		// System metrics
		kafkaLagGauge: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ore_kafka_consumer_lag",
				Help: "Kafka consumer lag (messages)",
			},
			[]string{"topic", "group_id"},
		),
		streamClients: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ore_stream_clients",
				Help: "Number of connected websocket stream clients",
			},
		),
	}
}

// RecordAPIRequest records metrics for an API request
func (r *Recorder) RecordAPIRequest(method, path string, status int, latency time.Duration) {
	statusStr := strconv.Itoa(status)
	r.apiRequestCounter.WithLabelValues(method, path, statusStr).Inc()
	r.apiLatencyHistogram.WithLabelValues(method, path).Observe(latency.Seconds())
}

// RecordPricing records metrics for a single-option Greeks computation
func (r *Recorder) RecordPricing(optionType, outcome string, latency time.Duration) {
	r.pricingCounter.WithLabelValues(optionType, outcome).Inc()
	r.pricingLatency.WithLabelValues(optionType).Observe(latency.Seconds())
}

// RecordIVSolve records metrics for an implied volatility solve
func (r *Recorder) RecordIVSolve(method, outcome string, latency time.Duration) {
	r.ivSolveCounter.WithLabelValues(method, outcome).Inc()
	r.ivSolveLatency.WithLabelValues(method).Observe(latency.Seconds())
}

// RecordChainPricing records metrics for a chain pricing batch
func (r *Recorder) RecordChainPricing(size int, outcome string, latency time.Duration) {
	r.chainSizeHistogram.WithLabelValues(outcome).Observe(float64(size))
	r.chainLatency.WithLabelValues(outcome).Observe(latency.Seconds())
}

// RecordPortfolioGreek records the latest value of one portfolio-level Greek
func (r *Recorder) RecordPortfolioGreek(portfolioID, greek string, value float64) {
	r.portfolioGreeksGauge.WithLabelValues(portfolioID, greek).Set(value)
}

// RecordPortfolioCalculation records metrics for a portfolio aggregation
func (r *Recorder) RecordPortfolioCalculation(portfolioID, outcome string, latency time.Duration) {
	r.portfolioCalcCounter.WithLabelValues(portfolioID, outcome).Inc()
	r.portfolioCalcLatency.WithLabelValues(portfolioID).Observe(latency.Seconds())
}

// RecordKafkaLag records the current consumer lag for a topic
func (r *Recorder) RecordKafkaLag(topic, groupID string, lag int64) {
	r.kafkaLagGauge.WithLabelValues(topic, groupID).Set(float64(lag))
}

// RecordStreamClients records the current number of websocket clients
func (r *Recorder) RecordStreamClients(count int) {
	r.streamClients.Set(float64(count))
}
