package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// Enabled reports whether enough is configured to open a connection.
func (p PostgresConfig) Enabled() bool {
	return p.Password != ""
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	PprofAddr    string
	OTLPEndpoint string
}

type Config struct {
	Repositories   RepositoriesConfig
	Observability  ObservabilityConfig
	ServerPort     string
	LogLevel       zapcore.Level
	Location       *time.Location
	HeaderStateTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Repositories: RepositoriesConfig{
			Postgres: PostgresConfig{
				Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:     getEnvOrDefault("POSTGRES_PORT", "5454"),
				DB:       getEnvOrDefault("POSTGRES_DB", "llm_time_manager"),
				Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
				SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxConns: 10,
				MinConns: 1,
			},
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("OTEL_SERVICE_NAME", "llm-time-manager"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    os.Getenv("PPROF_ADDR"),
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
	}

	level, err := zapcore.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid LOG_LEVEL")
	}
	cfg.LogLevel = level

	ttl, err := time.ParseDuration(getEnvOrDefault("HEADER_STATE_TTL", "30m"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid HEADER_STATE_TTL")
	}
	if ttl <= 0 {
		return nil, errors.Errorf("HEADER_STATE_TTL must be positive, got %s", ttl)
	}
	cfg.HeaderStateTTL = ttl

	cfg.Location = LoadLocation(getEnvOrDefault("APP_TIMEZONE", "Asia/Tokyo"))

	return cfg, nil
}

// JST is used when the tz database has no entry for the requested zone.
var JST = time.FixedZone("JST", 9*60*60)

// LoadLocation resolves name, falling back to a fixed JST zone.
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return JST
	}
	return loc
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
