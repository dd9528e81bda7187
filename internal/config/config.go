package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Default base layer: CartoDB Positron.
const (
	DefaultTilesURL    = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	DefaultAttribution = "&copy; OpenStreetMap contributors &copy; CARTO"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset locations.
	RecordsPath  string
	RecordsSheet string
	RegionsPath  string

	// Map base layer and initial view.
	MapTilesURL    string
	MapAttribution string
	MapCenterLat   float64
	MapCenterLon   float64
	MapZoom        int

	// Overfishing classifier.
	ClassifierURL      string
	ClassifierEnabled  bool
	ClassifierTimeout  time.Duration
	ClassifierCacheTTL time.Duration

	// Prediction event publishing.
	KafkaEnabled         bool
	KafkaBrokers         []string
	KafkaPredictionTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	classifierTimeout, err := parsePositiveDuration("CLASSIFIER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parsePositiveDuration("CLASSIFIER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}

	centerLat, err := parseFloat("MAP_CENTER_LAT", "-2.5")
	if err != nil {
		return nil, err
	}
	centerLon, err := parseFloat("MAP_CENTER_LON", "118")
	if err != nil {
		return nil, err
	}
	zoom, err := strconv.Atoi(sharedcfg.EnvOrDefault("MAP_ZOOM", "5"))
	if err != nil || zoom < 1 || zoom > 18 {
		return nil, errors.New("invalid MAP_ZOOM: must be an integer between 1 and 18")
	}

	classifierURL := os.Getenv("CLASSIFIER_URL")
	classifierEnabled := classifierURL != ""
	if v := os.Getenv("CLASSIFIER_ENABLED"); v != "" {
		classifierEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RecordsPath:  sharedcfg.EnvOrDefault("RECORDS_PATH", "data/data_hasil_klasifikasi.csv"),
		RecordsSheet: os.Getenv("RECORDS_SHEET"),
		RegionsPath:  sharedcfg.EnvOrDefault("REGIONS_PATH", "data/provinsiIndonesia.json"),

		MapTilesURL:    sharedcfg.EnvOrDefault("MAP_TILES_URL", DefaultTilesURL),
		MapAttribution: sharedcfg.EnvOrDefault("MAP_ATTRIBUTION", DefaultAttribution),
		MapCenterLat:   centerLat,
		MapCenterLon:   centerLon,
		MapZoom:        zoom,

		ClassifierURL:      classifierURL,
		ClassifierEnabled:  classifierEnabled,
		ClassifierTimeout:  classifierTimeout,
		ClassifierCacheTTL: cacheTTL,

		KafkaEnabled:         os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:         sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaPredictionTopic: sharedcfg.EnvOrDefault("KAFKA_PREDICTION_TOPIC", "fish-stock-predictions"),
	}

	if cfg.ClassifierEnabled && cfg.ClassifierURL == "" {
		return nil, errors.New("CLASSIFIER_ENABLED is true but CLASSIFIER_URL is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
	}
	if cfg.KafkaEnabled && cfg.KafkaPredictionTopic == "" {
		return nil, errors.New("KAFKA_PREDICTION_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

func parsePositiveDuration(name, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(name, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return d, nil
}

func parseFloat(name, def string) (float64, error) {
	v, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(name, def), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
