package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const devJWTSecret = "dev-secret"

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string        `envconfig:"APP_NAME" default:"apex-quote-service"`
	Env                   string        `envconfig:"APP_ENV" default:"development"`
	Host                  string        `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port                  string        `envconfig:"APP_PORT" default:"8080"`
	Version               string        `envconfig:"APP_VERSION" default:"dev"`
	RequestTimeoutSeconds int           `envconfig:"HTTP_REQUEST_TIMEOUT_SECONDS" default:"30"`
	BodyLimitBytes        int           `envconfig:"HTTP_BODY_LIMIT_BYTES" default:"1048576"`
	ShutdownTimeout       time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `envconfig:"POSTGRES_DSN"`
	MaxConns       int32  `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
	MinConns       int32  `envconfig:"POSTGRES_MIN_CONNS" default:"2"`
	RunMigrations  bool   `envconfig:"POSTGRES_RUN_MIGRATIONS" default:"true"`
	ConnMaxIdleSec int32  `envconfig:"POSTGRES_CONN_MAX_IDLE_SECONDS" default:"30"`
	ConnMaxLifeSec int32  `envconfig:"POSTGRES_CONN_MAX_LIFE_SECONDS" default:"300"`
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string `envconfig:"AUTH_JWT_SECRET" default:"dev-secret"`
	AccessTokenTTLMinutes int    `envconfig:"AUTH_ACCESS_TOKEN_TTL_MINUTES" default:"60"`
	BcryptCost            int    `envconfig:"AUTH_BCRYPT_COST" default:"12"`
	MinPasswordLength     int    `envconfig:"AUTH_MIN_PASSWORD_LENGTH" default:"6"`
}

// NotificationConfig holds the quote email relay settings.
type NotificationConfig struct {
	EmailFrom      string        `envconfig:"NOTIFY_EMAIL_FROM" default:"quotes@apexautomovers.com"`
	WebhookURL     string        `envconfig:"NOTIFY_WEBHOOK_URL"`
	WebhookToken   string        `envconfig:"NOTIFY_WEBHOOK_TOKEN"`
	WebhookTimeout time.Duration `envconfig:"NOTIFY_WEBHOOK_TIMEOUT" default:"10s"`
}

// RateLimitConfig bounds anonymous writes per client IP.
type RateLimitConfig struct {
	Enabled bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Limit   int64         `envconfig:"RATE_LIMIT_REQUESTS" default:"20"`
	Window  time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000,https://apex-auto-movers.vercel.app"`
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.App.IsProduction() && c.Auth.JWTSecret == devJWTSecret {
		return errors.New("AUTH_JWT_SECRET must be set in production")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit %d per %s", c.RateLimit.Limit, c.RateLimit.Window)
	}
	return nil
}

// RequireDSN fails when no database DSN is configured.
func (p PostgresConfig) RequireDSN() error {
	if strings.TrimSpace(p.DSN) == "" {
		return errors.New("POSTGRES_DSN is required")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}
