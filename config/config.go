package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds every setting of the service.
type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		IdleTimeout  time.Duration
	}
	Database struct {
		Driver  string // sqlite, mysql or postgres
		DSN     string
		MaxOpen int
		LogSQL  bool
	}
	Session struct {
		Secret       string
		Expiration   time.Duration
		SignatureTTL time.Duration
		CookieSecure bool
	}
	Reviews struct {
		// Strict enables ownership checks on edit/delete and beach
		// existence checks on add.
		Strict bool
	}
	S3 struct {
		Region    string
		AccessKey string
		SecretKey string
		Bucket    string
	}
	Redis struct {
		Addr      string
		RateLimit int64 // mutating requests per minute per user or client IP
	}
	Log struct {
		Level  string
		Format string
	}
}

var ErrMissingSecret = errors.New("SESSION_SECRET is not set")

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	cfg := &Config{}

	cfg.Server.Port = getEnv("BEACH_PORT", "8000")
	cfg.Server.ReadTimeout = getDuration("BEACH_READ_TIMEOUT", 5*time.Second)
	cfg.Server.WriteTimeout = getDuration("BEACH_WRITE_TIMEOUT", 10*time.Second)
	cfg.Server.IdleTimeout = getDuration("BEACH_IDLE_TIMEOUT", 120*time.Second)

	cfg.Database.Driver = strings.ToLower(getEnv("BEACH_DB_DRIVER", "sqlite"))
	cfg.Database.DSN = getEnv("BEACH_DB_DSN", "beach.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate")
	cfg.Database.MaxOpen = getInt("BEACH_DB_MAX_OPEN", 10)
	cfg.Database.LogSQL = getBool("BEACH_DB_LOG_SQL", false)

	cfg.Session.Secret = os.Getenv("SESSION_SECRET")
	cfg.Session.Expiration = time.Duration(getInt("SESSION_HOURS", 24)) * time.Hour
	cfg.Session.SignatureTTL = time.Duration(getInt("SIGNATURE_MINUTES", 60)) * time.Minute
	cfg.Session.CookieSecure = getBool("BEACH_COOKIE_SECURE", false)

	cfg.Reviews.Strict = getBool("BEACH_STRICT_REVIEWS", false)

	cfg.S3.Region = os.Getenv("AWS_REGION")
	cfg.S3.AccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.S3.SecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	cfg.S3.Bucket = os.Getenv("BEACH_S3_BUCKET")

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.RateLimit = int64(getInt("BEACH_RATE_LIMIT", 60))

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "text")

	return cfg
}

// Validate checks the settings that serve cannot run without.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return ErrMissingSecret
	}
	return nil
}

// S3Enabled reports whether review images should be pushed to S3.
func (c *Config) S3Enabled() bool {
	return c.S3.Bucket != "" && c.S3.Region != ""
}

// SetupLogging applies the log level and format to the standard logrus logger.
func (c *Config) SetupLogging() {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using info", c.Log.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		log.Warnf("Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warnf("Invalid %s=%q, using default %t", key, raw, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnf("Invalid %s=%q, using default %s", key, raw, fallback)
		return fallback
	}
	return d
}
