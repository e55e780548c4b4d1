package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rzzdr/options-risk-engine/config"
	"github.com/rzzdr/options-risk-engine/internal/chain"
	"github.com/rzzdr/options-risk-engine/internal/kafka"
	"github.com/rzzdr/options-risk-engine/internal/portfolio"
	"github.com/rzzdr/options-risk-engine/internal/pricing"
	"github.com/rzzdr/options-risk-engine/internal/stream"
	"github.com/rzzdr/options-risk-engine/pkg/api"
	"github.com/rzzdr/options-risk-engine/pkg/metrics"
	"github.com/rzzdr/options-risk-engine/pkg/models"
	"github.com/rzzdr/options-risk-engine/pkg/utils/logger"
)

const (
	snapshotInterval = 1 * time.Minute
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger("risk-engine.main").Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.App.LogLevel, cfg.App.Environment)
	log := logger.GetLogger("risk-engine.main")
	log.Info("Starting Options Greeks Risk Engine")

	// Create a context that will be canceled on program termination
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize metrics recorder
	recorder := metrics.NewRecorder()

	// Core engine components
	solver := pricing.NewSolver(pricing.SolverConfig{
		MaxIterations: cfg.Solver.MaxIterations,
		Tolerance:     cfg.Solver.Tolerance,
		MinVol:        cfg.Solver.MinVol,
		MaxVol:        cfg.Solver.MaxVol,
		InitialGuess:  cfg.Solver.InitialGuess,
		Method:        pricing.Method(cfg.Solver.Method),
	})
	chainPricer := chain.NewPricer(cfg.Chain.Workers)
	store := portfolio.NewInMemoryStore()

	// Greeks stream hub
	hub := stream.NewHub(recorder)
	go hub.Run(ctx)

	// Create Kafka client
	kafkaClient, err := kafka.NewClient(&kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
	})
	if err != nil {
		log.Fatalf("Failed to create Kafka client: %v", err)
	}

	// Consumer for portfolio definitions, producer for Greeks snapshots
	portfolioConsumer := kafkaClient.NewConsumer(cfg.Kafka.Topics.Portfolios, cfg.Kafka.GroupID)
	greeksProducer := kafkaClient.NewProducer(cfg.Kafka.Topics.PortfolioGreeks)

	publishSnapshot := func(ctx context.Context, p *portfolio.Portfolio) {
		start := time.Now()
		snapshot, err := p.Snapshot(false)
		if err != nil {
			recorder.RecordPortfolioCalculation(p.ID, "error", time.Since(start))
			log.Errorf("Failed to compute Greeks for portfolio %s: %v", p.ID, err)
			return
		}
		recorder.RecordPortfolioCalculation(p.ID, "ok", time.Since(start))
		recorder.RecordPortfolioGreek(p.ID, "delta", snapshot.Totals.Delta)
		recorder.RecordPortfolioGreek(p.ID, "gamma", snapshot.Totals.Gamma)
		recorder.RecordPortfolioGreek(p.ID, "theta", snapshot.Totals.Theta)
		recorder.RecordPortfolioGreek(p.ID, "vega", snapshot.Totals.Vega)
		recorder.RecordPortfolioGreek(p.ID, "rho", snapshot.Totals.Rho)

		if err := greeksProducer.ProduceJSON(ctx, []byte(p.ID), snapshot); err != nil {
			log.Errorf("Failed to produce Greeks snapshot for portfolio %s: %v", p.ID, err)
		}
		if err := hub.BroadcastSnapshot(snapshot); err != nil {
			log.Errorf("Failed to broadcast Greeks snapshot for portfolio %s: %v", p.ID, err)
		}
	}

	// Consume portfolio definitions and publish their Greeks
	go func() {
		log.Info("Starting portfolio consumer")

		for {
			message, err := portfolioConsumer.ConsumeMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Errorf("Error consuming portfolio message: %v", err)
				continue
			}

			recorder.RecordKafkaLag(cfg.Kafka.Topics.Portfolios, cfg.Kafka.GroupID, portfolioConsumer.Lag())

			var spec models.PortfolioSpec
			if err := json.Unmarshal(message.Value, &spec); err != nil {
				log.Errorf("Failed to unmarshal portfolio spec: %v", err)
				continue
			}

			p, err := portfolio.FromSpec(spec)
			if err != nil {
				log.Errorf("Rejected portfolio %s: %v", spec.ID, err)
				continue
			}

			if err := store.Save(p); err != nil {
				log.Errorf("Failed to save portfolio %s: %v", p.ID, err)
				continue
			}

			publishSnapshot(ctx, p)
			log.Infof("Processed portfolio %s (%d positions)", p.ID, p.PositionCount())
		}
	}()

	// Recompute and republish every portfolio periodically
	go func() {
		ticker := time.NewTicker(snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				portfolios, err := store.GetAll()
				if err != nil {
					log.Errorf("Failed to list portfolios: %v", err)
					continue
				}
				for _, p := range portfolios {
					publishSnapshot(ctx, p)
				}
			}
		}
	}()

	// Start the API server
	server := api.NewServer(api.Config{
		Host:         cfg.API.Host,
		Port:         cfg.API.Port,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}, solver, chainPricer, store, hub, recorder)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server error: %v", err)
		}
	}()

	log.Info("Risk engine started")

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Infof("Received signal %v, initiating shutdown", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("API server shutdown error: %v", err)
	}

	if err := portfolioConsumer.Close(); err != nil {
		log.Errorf("Portfolio consumer shutdown error: %v", err)
	}

	if err := greeksProducer.Close(); err != nil {
		log.Errorf("Greeks producer shutdown error: %v", err)
	}

	log.Info("Shutdown complete")
}
