package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	LogLevel  string
	LogFormat string

	// DefaultTimezone is the fallback zone used whenever a clinic carries an
	// empty or unrecognized timezone.
	DefaultTimezone string

	AuthCookieSecure  bool
	SessionTTL        time.Duration
	SessionRefreshTTL time.Duration

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	RedisAddr     string
	RedisPassword string

	Scheduler SchedulerConfig
	Dispatch  DispatchConfig
	Client    ClientConfig

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
}

// SchedulerConfig controls the reminder dispatch cycle.
type SchedulerConfig struct {
	Enabled      bool
	Interval     time.Duration
	CycleTimeout time.Duration
	BatchSize    int
}

// DispatchConfig configures the reminder delivery collaborator.
type DispatchConfig struct {
	Provider string // "smtp" or "log"
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	From     string
}

// ClientConfig configures the outbound API client pipeline.
type ClientConfig struct {
	BaseURL     string
	RetryMax    int
	BackoffBase time.Duration
	TokenFile   string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:     getenv("APP_SERVICE", "vetsync"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: environment,
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		DefaultTimezone: getenv("DEFAULT_TIMEZONE", "UTC"),

		AuthCookieSecure:  authCookieSecure,
		SessionTTL:        getenvDuration("SESSION_TTL", 15*time.Minute),
		SessionRefreshTTL: getenvDuration("SESSION_REFRESH_TTL", 720*time.Hour),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "vetsync"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 600),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		Scheduler: SchedulerConfig{
			Enabled:      getenvBool("SCHEDULER_ENABLED", true),
			Interval:     getenvDuration("SCHEDULER_INTERVAL", time.Minute),
			CycleTimeout: getenvDuration("SCHEDULER_CYCLE_TIMEOUT", 5*time.Minute),
			BatchSize:    getenvInt("SCHEDULER_BATCH_SIZE", 200),
		},
		Dispatch: DispatchConfig{
			Provider: strings.ToLower(getenv("DISPATCH_PROVIDER", "log")),
			SMTPHost: getenv("SMTP_HOST", ""),
			SMTPPort: getenv("SMTP_PORT", "587"),
			SMTPUser: getenv("SMTP_USER", ""),
			SMTPPass: getenv("SMTP_PASSWORD", ""),
			From:     getenv("SMTP_FROM", "reminders@vetsync.local"),
		},
		Client: ClientConfig{
			BaseURL:     getenv("BACKEND_BASE_URL", "http://localhost:8080"),
			RetryMax:    getenvInt("CLIENT_RETRY_MAX", 3),
			BackoffBase: getenvDuration("CLIENT_BACKOFF_BASE", time.Second),
			TokenFile:   getenv("CLIENT_TOKEN_FILE", ".vetsync/session.json"),
		},

		OtelEnabled:          getenvBool("OTEL_ENABLED", false),
		OtelExporterEndpoint: getenv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
		OtelExporterProtocol: strings.ToLower(getenv("OTEL_EXPORTER_PROTOCOL", "grpc")),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
