package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values, read from the
// environment. `envconfig` tags name the variables, `default` supplies a
// fallback when one is not set.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"3000"`
	Postgres PostgresConfig
	JWT      JWTConfig
	Media    MediaConfig
}

// PostgresConfig holds the database connection details. DATABASE_URL, when
// set, wins over the individual fields.
type PostgresConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"stock"`
}

// DSN constructs the connection string for PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	if pc.URL != "" {
		return pc.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		pc.Host, pc.User, pc.Password, pc.DBName, pc.Port,
	)
}

type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

// MediaConfig locates the disk-backed blob store and the URL prefix it is
// served under.
type MediaConfig struct {
	Dir     string `envconfig:"MEDIA_DIR" default:"./storage"`
	BaseURL string `envconfig:"MEDIA_BASE_URL" default:"/storage"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return &cfg, nil
}
