package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Storage backends selectable with DAO_BACKEND.
const (
	BackendSQL = "sql"
	BackendORM = "orm"
)

// Animal mutation policies selectable with ANIMAL_MUTATION_POLICY.
const (
	PolicyAny   = "any"
	PolicyOwner = "owner"
)

// Config holds every setting of the application.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	DatabaseDriver string        `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DAOBackend     string        `env:"DAO_BACKEND" envDefault:"orm"`
	ServerPort     string        `env:"SERVER_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"json"`
	AuditLogFile string `env:"AUDIT_LOG_FILE" envDefault:"app.log"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	AnimalMutationPolicy string `env:"ANIMAL_MUTATION_POLICY" envDefault:"any"`

	// RabbitMQ is optional: without a URL audit events are written in-process.
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"audit_events"`
	}

	// Archive is the S3-compatible bucket the worker copies audit events to.
	Archive struct {
		Endpoint        string `env:"ARCHIVE_ENDPOINT"`
		AccessKeyID     string `env:"ARCHIVE_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"ARCHIVE_SECRET_ACCESS_KEY"`
		Bucket          string `env:"ARCHIVE_BUCKET"`
		Region          string `env:"ARCHIVE_REGION" envDefault:"us-east-1"`
		UseSSL          bool   `env:"ARCHIVE_USE_SSL"`
	}
}

// LoadConfig reads the configuration from the environment.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse configuration from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations that cannot start. The backend choice is final after this.
func (c *Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER: unsupported driver %q", c.DatabaseDriver))
	}

	switch c.DAOBackend {
	case BackendSQL:
	case BackendORM:
		if c.DatabaseDriver != "postgres" {
			errs = append(errs, fmt.Errorf("DAO_BACKEND=%s requires DATABASE_DRIVER=postgres", BackendORM))
		}
	default:
		errs = append(errs, fmt.Errorf("DAO_BACKEND: unknown backend %q, want %q or %q", c.DAOBackend, BackendSQL, BackendORM))
	}

	switch c.AnimalMutationPolicy {
	case PolicyAny, PolicyOwner:
	default:
		errs = append(errs, fmt.Errorf("ANIMAL_MUTATION_POLICY: unknown policy %q", c.AnimalMutationPolicy))
	}

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL must not be empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}

	if c.Archive.Bucket != "" && c.Archive.Endpoint == "" {
		errs = append(errs, errors.New("ARCHIVE_ENDPOINT is required when ARCHIVE_BUCKET is set"))
	}

	return errors.Join(errs...)
}
