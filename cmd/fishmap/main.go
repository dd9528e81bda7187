package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/fish-stock-map-service/internal/adapter/classifier"
	httpadapter "github.com/couchcryptid/fish-stock-map-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/fish-stock-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/fish-stock-map-service/internal/config"
	"github.com/couchcryptid/fish-stock-map-service/internal/dataset"
	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
	"github.com/couchcryptid/fish-stock-map-service/internal/observability"
	"github.com/couchcryptid/fish-stock-map-service/internal/pipeline"
	"github.com/couchcryptid/fish-stock-map-service/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	snapshot, err := dataset.Load(cfg.RecordsPath, cfg.RecordsSheet, cfg.RegionsPath, logger)
	if err != nil {
		logger.Error("failed to load datasets", "error", err)
		os.Exit(1)
	}

	// Initialize classifier (feature-flagged via CLASSIFIER_ENABLED / CLASSIFIER_URL).
	var clf domain.Classifier
	if cfg.ClassifierEnabled {
		client := classifier.NewClient(cfg.ClassifierURL, cfg.ClassifierTimeout, metrics, logger)
		clf = classifier.NewCachedClassifier(client, cfg.ClassifierCacheTTL, metrics)
		logger.Info("overfishing classifier enabled", "url", cfg.ClassifierURL, "cache_ttl", cfg.ClassifierCacheTTL)
	} else {
		logger.Info("overfishing classifier disabled")
	}

	var (
		publisher pipeline.Publisher
		kafkaPub  *kafkaadapter.Publisher
	)
	if cfg.KafkaEnabled {
		kafkaPub = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPub
		logger.Info("prediction events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaPredictionTopic)
	}

	svc := pipeline.New(snapshot, clf, publisher, render.MapOptions{
		TilesURL:    cfg.MapTilesURL,
		Attribution: cfg.MapAttribution,
		CenterLat:   cfg.MapCenterLat,
		CenterLon:   cfg.MapCenterLon,
		Zoom:        cfg.MapZoom,
	}, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
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
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
