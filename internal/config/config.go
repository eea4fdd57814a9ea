package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		AppPort  string `env:"APP_PORT" envDefault:"8080"`
		ImageDir string `env:"IMAGE_DIR" envDefault:"images"`

		DB        DBConfig      `envPrefix:"DB_"`
		JWT       JWTConfig     `envPrefix:"JWT_"`
		NATS      NATSConfig    `envPrefix:"NATS_"`
		RateLimit LimitConfig   `envPrefix:"RATE_LIMIT_"`
		Tracing   TracingConfig `envPrefix:"OTEL_"`
	}

	DBConfig struct {
		User     string `env:"USER" envDefault:"postgres"`
		Password string `env:"PASSWORD"`
		Host     string `env:"HOST" envDefault:"localhost"`
		Port     string `env:"PORT" envDefault:"5432"`
		Name     string `env:"NAME" envDefault:"blog"`
	}

	JWTConfig struct {
		Secret string        `env:"SECRET,notEmpty"`
		TTL    time.Duration `env:"TTL" envDefault:"1h"`
	}

	NATSConfig struct {
		URL string `env:"URL" envDefault:"nats://localhost:4222"`
	}

	LimitConfig struct {
		Max        int           `env:"MAX" envDefault:"100"`
		Expiration time.Duration `env:"EXPIRATION" envDefault:"60s"`
	}

	TracingConfig struct {
		Endpoint string `env:"EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	}
)

// Load reads .env (if present) and builds the configuration from the
// environment. Missing required values fail here, not at first use.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		godotenv.Load(envFile)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return cfg, nil
}

func (c DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}
