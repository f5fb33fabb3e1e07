package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Data source kinds accepted by DATA_SOURCE.
const (
	SourceSynthetic = "synthetic"
	SourceWarehouse = "warehouse"
	SourceFile      = "file"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	AppTitle string
	AppIcon  string

	// Data loading.
	DataSource         string
	SyntheticSeed      uint64
	DataFile           string
	WarehouseDriver    string
	WarehouseDSN       string
	WarehouseTimeout   time.Duration
	ItinerarySelection string

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Score export to Kafka.
	KafkaExportEnabled bool
	KafkaBrokers       []string
	KafkaExportTopic   string
	ExportInterval     time.Duration
	BatchSize          int
	BatchFlushInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	warehouseTimeout, err := parsePositiveDuration("WAREHOUSE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	exportInterval, err := parsePositiveDuration("EXPORT_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}
	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	seed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("SYNTHETIC_SEED", "42"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid SYNTHETIC_SEED")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		CORSAllowedOrigins: parseList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		AppTitle: sharedcfg.EnvOrDefault("APP_TITLE", "India Cultural Heritage Explorer"),
		AppIcon:  sharedcfg.EnvOrDefault("APP_ICON", "🎭"),

		DataSource:         strings.ToLower(sharedcfg.EnvOrDefault("DATA_SOURCE", SourceSynthetic)),
		SyntheticSeed:      seed,
		DataFile:           sharedcfg.EnvOrDefault("DATA_FILE", "data/mock/heritage_tables.json"),
		WarehouseDriver:    strings.ToLower(sharedcfg.EnvOrDefault("WAREHOUSE_DRIVER", "postgres")),
		WarehouseDSN:       os.Getenv("WAREHOUSE_DSN"),
		WarehouseTimeout:   warehouseTimeout,
		ItinerarySelection: strings.ToLower(sharedcfg.EnvOrDefault("ITINERARY_SELECTION", "top")),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaExportEnabled: os.Getenv("KAFKA_EXPORT_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaExportTopic:   sharedcfg.EnvOrDefault("KAFKA_EXPORT_TOPIC", "heritage-scores"),
		ExportInterval:     exportInterval,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DataSource {
	case SourceSynthetic, SourceWarehouse, SourceFile:
	default:
		return fmt.Errorf("invalid DATA_SOURCE %q: want synthetic, warehouse or file", c.DataSource)
	}
	if c.DataSource == SourceFile && c.DataFile == "" {
		return errors.New("DATA_FILE is required when DATA_SOURCE is file")
	}
	if c.DataSource == SourceWarehouse {
		switch c.WarehouseDriver {
		case "postgres":
			if c.WarehouseDSN == "" {
				return errors.New("WAREHOUSE_DSN is required for the postgres driver")
			}
		case "duckdb":
		default:
			return fmt.Errorf("invalid WAREHOUSE_DRIVER %q: want postgres or duckdb", c.WarehouseDriver)
		}
	}
	switch c.ItinerarySelection {
	case "top", "sample":
	default:
		return fmt.Errorf("invalid ITINERARY_SELECTION %q: want top or sample", c.ItinerarySelection)
	}
	if c.MapboxEnabled && c.MapboxToken == "" {
		return errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if c.KafkaExportEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when KAFKA_EXPORT_ENABLED is true")
		}
		if c.KafkaExportTopic == "" {
			return errors.New("KAFKA_EXPORT_TOPIC is required when KAFKA_EXPORT_ENABLED is true")
		}
	}
	return nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
