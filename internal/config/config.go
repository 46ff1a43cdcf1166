package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Supported database/sql driver names.
const (
	DriverPQ  = "postgres" // github.com/lib/pq
	DriverPgx = "pgx"      // github.com/jackc/pgx/v5/stdlib
)

// Config holds the application's configuration values.
// Tags like `envconfig:"DB_USER"` specify the environment variable name.
// `default:""` provides a default value if the env var is not set.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`    // debug, info, warn, error
	LogFormat  string `envconfig:"LOG_FORMAT" default:"text"`   // text or json
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Postgres   PostgresConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port               string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead        time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite       time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle        time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
	TimeoutRequest     time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_REQUEST" default:"60s"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// PostgresConfig holds PostgreSQL connection and pool settings.
type PostgresConfig struct {
	Driver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	Host            string        `envconfig:"DB_HOST" default:"db"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName          string        `envconfig:"DB_NAME" default:"interior_db"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
}

// DSN constructs a postgres:// URL understood by both lib/pq and pgx.
func (pc *PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(pc.User, pc.Password),
		Host:   pc.Host + ":" + pc.Port,
		Path:   "/" + pc.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", pc.SSLMode)
	q.Set("connect_timeout", strconv.Itoa(int(pc.ConnectTimeout.Seconds())))
	u.RawQuery = q.Encode()
	return u.String()
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot check by itself.
func (c *Config) Validate() error {
	switch c.Postgres.Driver {
	case DriverPQ, DriverPgx:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (must be %q or %q)", c.Postgres.Driver, DriverPQ, DriverPgx)
	}
	if c.Postgres.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.Postgres.MaxOpenConns)
	}
	if c.Postgres.MaxIdleConns < 0 || c.Postgres.MaxIdleConns > c.Postgres.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS, got %d", c.Postgres.MaxIdleConns)
	}
	if c.HttpServer.Port == "" {
		return fmt.Errorf("HTTP_SERVER_PORT is required")
	}
	return nil
}
