package app

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	Env       string
	Telemetry TelemetryConfig
	DB        DBConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Gateway   GatewayConfig
	Session   SessionConfig
}

// TelemetryConfig is disabled when CollectorURL is empty.
type TelemetryConfig struct {
	CollectorURL   string
	SampleRatio    float64
	MetricInterval time.Duration
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type GatewayConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

type SessionConfig struct {
	// Lifetime bounds both the session cookie and the booking draft kept for it.
	Lifetime    time.Duration
	IdleTimeout time.Duration
	// SubmitTimeout is how long a checkout may stay in submitting before the
	// state expires back to select.
	SubmitTimeout time.Duration
}

// LoadConfig reads flags from args. Every flag defaults to an environment
// variable, which may come from a .env file in the working directory.
func LoadConfig(args []string) (Config, bool, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, false, err
	}

	var cfg Config

	flags := flag.NewFlagSet("api", flag.ContinueOnError)

	flags.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flags.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	flags.StringVar(&cfg.Telemetry.CollectorURL, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")
	flags.Float64Var(&cfg.Telemetry.SampleRatio, "otel-sample-ratio", envFloat("OTEL_SAMPLE_RATIO", 1), "Fraction of root traces sampled")
	flags.DurationVar(&cfg.Telemetry.MetricInterval, "otel-metric-interval", envDuration("OTEL_METRIC_INTERVAL", 15*time.Second), "OpenTelemetry metric export interval")

	flags.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	flags.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flags.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flags.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis URL")
	flags.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flags.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flags.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flags.StringVar(&cfg.SMTP.Host, "smtp-host", envString("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	flags.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flags.StringVar(&cfg.SMTP.Username, "smtp-username", envString("SMTP_USERNAME", ""), "SMTP username")
	flags.StringVar(&cfg.SMTP.Password, "smtp-password", envString("SMTP_PASSWORD", ""), "SMTP password")
	flags.StringVar(&cfg.SMTP.Sender, "smtp-sender", envString("SMTP_SENDER", "Cinex <no-reply@cinex.local>"), "SMTP sender")

	flags.DurationVar(&cfg.Gateway.MinDelay, "gateway-min-delay", envDuration("GATEWAY_MIN_DELAY", 2*time.Second), "Simulated gateway minimum latency")
	flags.DurationVar(&cfg.Gateway.MaxDelay, "gateway-max-delay", envDuration("GATEWAY_MAX_DELAY", 3*time.Second), "Simulated gateway maximum latency")

	flags.DurationVar(&cfg.Session.Lifetime, "session-lifetime", envDuration("SESSION_LIFETIME", 24*time.Hour), "Session and booking draft lifetime")
	flags.DurationVar(&cfg.Session.IdleTimeout, "session-idle-timeout", envDuration("SESSION_IDLE_TIMEOUT", 20*time.Minute), "Session idle timeout")
	flags.DurationVar(&cfg.Session.SubmitTimeout, "checkout-submit-timeout", envDuration("CHECKOUT_SUBMIT_TIMEOUT", time.Minute), "Max time a checkout stays in submitting")

	displayVersion := flags.Bool("version", false, "Display version and exit")

	err = flags.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	if cfg.Gateway.MaxDelay < cfg.Gateway.MinDelay {
		return Config{}, false, errors.New("gateway-max-delay must not be less than gateway-min-delay")
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		return Config{}, false, errors.New("otel-sample-ratio must be between 0 and 1")
	}

	// A submitting claim that expires before the gateway answers lets a second
	// submission in.
	if cfg.Session.SubmitTimeout <= cfg.Gateway.MaxDelay {
		return Config{}, false, errors.New("checkout-submit-timeout must exceed gateway-max-delay")
	}

	return cfg, *displayVersion, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
