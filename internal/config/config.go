package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	AdminAPIKey string

	SigningPrivateKeyBase64  string
	SigningPrivateKeySeedHex string

	TrialDurationDays   int
	GracePeriodHours    int
	CheckTimeoutSeconds int

	AuthorityURL string
	PublicKeyHex string
	StateDir     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8081"
	}
	return Config{
		HTTPAddr:                 addr,
		PostgresDSN:              os.Getenv("POSTGRES_DSN"),
		LogLevel:                 envDefault("LOG_LEVEL", "info"),
		AdminAPIKey:              os.Getenv("ADMIN_API_KEY"),
		SigningPrivateKeyBase64:  os.Getenv("SIGNING_PRIVATE_KEY_BASE64"),
		SigningPrivateKeySeedHex: os.Getenv("SIGNING_PRIVATE_KEY_SEED_HEX"),
		TrialDurationDays:        envIntDefault("TRIAL_DURATION_DAYS", 14),
		GracePeriodHours:         envIntDefault("GRACE_PERIOD_HOURS", 24),
		CheckTimeoutSeconds:      envIntDefault("CHECK_TIMEOUT_SECONDS", 5),
		AuthorityURL:             envDefault("AUTHORITY_URL", "http://127.0.0.1:8081"),
		PublicKeyHex:             os.Getenv("PUBLIC_KEY_HEX"),
		StateDir:                 envDefault("STATE_DIR", "."),
		RedisAddr:                os.Getenv("REDIS_ADDR"),
		RedisPassword:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  envIntDefault("REDIS_DB", 0),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func (c Config) TrialDuration() time.Duration {
	return time.Duration(c.TrialDurationDays) * 24 * time.Hour
}

// GracePeriod returns the offline allowance; zero disables it.
func (c Config) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodHours) * time.Hour
}

func (c Config) CheckTimeout() time.Duration {
	if c.CheckTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.CheckTimeoutSeconds) * time.Second
}
