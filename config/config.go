package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSigningKey is the fallback used when JWT_SECRET is unset. It mirrors
// the behavior of earlier deployments; Load reports its use so operators can
// move to an explicit secret.
const DefaultSigningKey = "your_jwt_secret_key"

// Config carries every environment-driven knob the server needs.
type Config struct {
	Port          string
	Environment   string
	ClientOrigin  string
	DatabaseDSN   string
	SigningKey    string
	TokenTTL      time.Duration
	CookieName    string
	CookieMaxAge  time.Duration
	MailAPIKey    string
	MailFrom      string
	RedisAddr     string
	RedisPassword string
	UploadsDir    string

	// DeterministicIDs derives user ids from the email instead of
	// generating random ones, so re-registering a wiped environment
	// yields stable ids.
	DeterministicIDs bool

	fallbackSecret bool
}

// Load reads a .env file when present and materializes the configuration from
// the environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("APP_ENV", "development"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "file:lms.db?cache=shared"),
		SigningKey:    os.Getenv("JWT_SECRET"),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 30*time.Minute),
		CookieName:    getEnv("AUTH_COOKIE_NAME", "authToken"),
		CookieMaxAge:  getEnvDuration("AUTH_COOKIE_MAX_AGE", time.Hour),
		MailAPIKey:    os.Getenv("RESEND_API_KEY"),
		MailFrom:      getEnv("MAIL_FROM", "no-reply@lms.local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),

		DeterministicIDs: getEnvBool("AUTH_DETERMINISTIC_IDS", false),
	}

	if cfg.SigningKey == "" {
		cfg.SigningKey = DefaultSigningKey
		cfg.fallbackSecret = true
	}

	return cfg
}

func (c *Config) GetPort() string              { return c.Port }
func (c *Config) GetClientOrigin() string      { return c.ClientOrigin }
func (c *Config) GetDatabaseDSN() string       { return c.DatabaseDSN }
func (c *Config) GetSigningKey() string        { return c.SigningKey }
func (c *Config) GetTokenTTL() time.Duration   { return c.TokenTTL }
func (c *Config) GetCookieName() string        { return c.CookieName }
func (c *Config) GetCookieMaxAge() time.Duration { return c.CookieMaxAge }
func (c *Config) GetMailAPIKey() string        { return c.MailAPIKey }
func (c *Config) GetMailFrom() string          { return c.MailFrom }
func (c *Config) GetRedisAddr() string         { return c.RedisAddr }
func (c *Config) GetRedisPassword() string     { return c.RedisPassword }
func (c *Config) GetUploadsDir() string        { return c.UploadsDir }
func (c *Config) GetDeterministicIDs() bool    { return c.DeterministicIDs }

// IsProduction toggles production-only behavior such as the Secure cookie flag.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsingFallbackSecret reports whether the baked-in signing key is in effect.
func (c *Config) UsingFallbackSecret() bool {
	return c.fallbackSecret
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if mins, err := strconv.Atoi(v); err == nil {
			return time.Duration(mins) * time.Minute
		}
	}
	return def
}
