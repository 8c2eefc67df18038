package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that must never silently fall back (none today; the app boots on defaults for local dev)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	App       AppConfig
	DB        DBConfig
	Migration MigrationConfig
	CORS      CORSConfig
	Cookie    CookieConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"5000"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	WebConcurrency  int           `envconfig:"WEB_CONCURRENCY" default:"2"`
	Threads         int           `envconfig:"THREADS" default:"2"`
}

type AppConfig struct {
	ServiceName string        `envconfig:"SERVICE_NAME" default:"reservebook"`
	SecretKey   string        `envconfig:"SECRET_KEY" default:"dev-secret"`
	TimeZone    string        `envconfig:"APP_TIMEZONE" default:"Asia/Tokyo"`
	NoticeTTL   time.Duration `envconfig:"NOTICE_TTL" default:"60s"`
	AutoMigrate bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

const DefaultSecretKey = "dev-secret"

type DBConfig struct {
	URL               string        `envconfig:"DATABASE_URL"`
	Host              string        `envconfig:"DB_HOST" default:"localhost"`
	Port              string        `envconfig:"DB_PORT" default:"5432"`
	User              string        `envconfig:"DB_USER" default:"postgres"`
	Password          string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName            string        `envconfig:"DB_NAME" default:"reservations"`
	SSLMode           string        `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone          string        `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns          int32         `envconfig:"DB_MAX_CONNS"`
	MaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"5m"`
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"30s"`
}

type MigrationConfig struct {
	Driver   string `envconfig:"MIGRATION_DRIVER" default:"embedded"`
	AtlasBin string `envconfig:"ATLAS_BIN" default:"atlas"`
	DirURL   string `envconfig:"MIGRATION_DIR_URL"` // empty: the migrations embedded in the binary
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-Id"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type CookieConfig struct {
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type RateLimitConfig struct {
	Enabled  bool          `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	Requests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"30"`
	Window   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	RedisURL string        `envconfig:"RATE_LIMIT_REDIS_URL"`
	FailOpen bool          `envconfig:"RATE_LIMIT_FAIL_OPEN" default:"true"`
}

type TracingConfig struct {
	Enabled      bool    `envconfig:"OTEL_ENABLED" default:"false"`
	OTLPEndpoint string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	SampleRatio  float64 `envconfig:"OTEL_SAMPLING_RATIO" default:"1"`
}

// driver-suffixed schemes produced by other ecosystems' tooling
var schemeAliases = map[string]string{
	"postgres":            "postgres",
	"postgresql":          "postgres",
	"postgresql+psycopg":  "postgres",
	"postgresql+psycopg2": "postgres",
	"postgres+psycopg":    "postgres",
	"postgresql+pgx":      "postgres",
}

// BuildDSN returns the connection string, preferring DATABASE_URL over the discrete DB_* settings.
func (c *DBConfig) BuildDSN() (string, error) {
	if strings.TrimSpace(c.URL) != "" {
		return NormalizeDatabaseURL(c.URL)
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("timezone", c.TimeZone)
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}

// NormalizeDatabaseURL rewrites the scheme of a PostgreSQL URL into the form pgx understands.
func NormalizeDatabaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return "", fmt.Errorf("database url has no scheme: %q", redact(raw))
	}
	normalized, known := schemeAliases[strings.ToLower(scheme)]
	if !known {
		return "", fmt.Errorf("unsupported database url scheme %q", scheme)
	}
	return normalized + "://" + rest, nil
}

// MaxConnsOrDefault sizes the pool like the worker model it replaces: one connection per worker thread.
func (c Config) MaxConnsOrDefault() int32 {
	if c.DB.MaxConns > 0 {
		return c.DB.MaxConns
	}
	n := c.Server.WebConcurrency * c.Server.Threads
	if n <= 0 {
		return 4
	}
	return int32(n)
}

func (c AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 2 * time.Second,
			WebConcurrency:  2,
			Threads:         2,
		},
		App: AppConfig{
			ServiceName: "reservebook-test",
			SecretKey:   "test-secret",
			TimeZone:    "Asia/Tokyo",
			NoticeTTL:   time.Minute,
			AutoMigrate: true,
		},
		DB: DBConfig{
			Host:              "localhost",
			Port:              "15433", // Test DB port
			User:              "test",
			Password:          "test",
			DBName:            "test_db",
			SSLMode:           "disable",
			TimeZone:          "Asia/Tokyo",
			MaxConnLifetime:   5 * time.Minute,
			HealthCheckPeriod: 30 * time.Second,
		},
		Migration: MigrationConfig{
			Driver: "embedded",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		RateLimit: RateLimitConfig{
			Requests: 30,
			Window:   time.Minute,
			FailOpen: true,
		},
	}
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}
