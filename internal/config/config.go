package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"cardly"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"cardly"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
		AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Auth struct {
		Secret   string        `envconfig:"JWT_SECRET" required:"true"`
		Issuer   string        `envconfig:"JWT_ISSUER" default:"cardly"`
		TokenTTL time.Duration `envconfig:"JWT_TTL" default:"12h"`
	}

	// Redis backs idempotency keys. Empty Addr disables them.
	Redis struct {
		Addr           string        `envconfig:"REDIS_ADDR"`
		Password       string        `envconfig:"REDIS_PASSWORD"`
		DB             int           `envconfig:"REDIS_DB" default:"0"`
		IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	}

	// Gateway is the external payment gateway. Empty URL leaves new
	// franchisees and establishments unlinked.
	Gateway struct {
		URL            string        `envconfig:"GATEWAY_URL"`
		APIKey         string        `envconfig:"GATEWAY_API_KEY"`
		Timeout        time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"5s"`
		MaxRetries     int           `envconfig:"GATEWAY_MAX_RETRIES" default:"2"`
		InitialBackoff time.Duration `envconfig:"GATEWAY_INITIAL_BACKOFF" default:"200ms"`
	}

	Telemetry struct {
		OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// Terminal configures the operator console.
type Terminal struct {
	APIURL  string        `envconfig:"CARDLY_API_URL" default:"http://localhost:8080"`
	Token   string        `envconfig:"CARDLY_TOKEN" required:"true"`
	Timeout time.Duration `envconfig:"CARDLY_TIMEOUT" default:"10s"`
}

func LoadTerminal() (*Terminal, error) {
	var cfg Terminal
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process terminal config: %w", err)
	}

	return &cfg, nil
}
