package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/storm-underwriter/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/storm-underwriter/internal/adapter/kafka"
	"github.com/couchcryptid/storm-underwriter/internal/underwriting"
	"github.com/spf13/cobra"
)

// NewServeCmd runs the underwriting HTTP service until SIGINT or SIGTERM.
func NewServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the underwriting HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), rt)
		},
	}
}

func serve(parent context.Context, rt *runtime) error {
	cfg, logger := rt.cfg, rt.logger
	rt.metrics = newMetrics()

	client := rt.weatherClient()
	if err := client.CheckReadiness(parent); err != nil {
		// Not fatal: every application will be referred until a key is configured.
		logger.Warn("weather credential unusable", "error", err)
	}

	// Decision events are feature-flagged via DECISIONS_ENABLED.
	var publisher underwriting.DecisionPublisher
	var writer *kafkaadapter.Writer
	if cfg.DecisionsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		rt.metrics.PublishingEnabled.Set(1)
		logger.Info("decision publishing enabled", "topic", cfg.KafkaDecisionTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("decision publishing disabled")
	}

	u := underwriting.New(client, publisher, logger, rt.metrics)
	// Zero lets the server cap each decision just under its write timeout.
	srv := httpadapter.NewServer(cfg.HTTPAddr, u, client, 0, logger)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}
