package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const minSessionSecret = 32

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Token   TokenConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Mail    MailConfig
}

type TokenConfig struct {
	Secret string        `env:"JWT_SECRET, required"`
	Issuer string        `env:"JWT_ISSUER, default=auth-service"`
	TTL    time.Duration `env:"TOKEN_TTL,  default=24h"`
}

type SessionConfig struct {
	Secret       string        `env:"SESSION_SECRET, required"`
	CookieName   string        `env:"SESSION_COOKIE, default=sid"`
	TTL          time.Duration `env:"SESSION_TTL,    default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE,  default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,    default=auth_service"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MailConfig struct {
	Host     string        `env:"MAIL_HOST,     default=smtp.gmail.com"`
	Port     int           `env:"MAIL_PORT,     default=587"`
	Username string        `env:"GMAIL_USERNAME"`
	Password string        `env:"GMAIL_PASSWORD"`
	From     string        `env:"MAIL_FROM,     default=noreply@example.com"`
	Timeout  time.Duration `env:"MAIL_TIMEOUT,  default=10s"`
}

// Enabled reports whether an SMTP account is configured.
func (m MailConfig) Enabled() bool {
	return m.Username != ""
}

// IsDevelopment reports whether the service runs outside production.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(cfg.Session.Secret) < minSessionSecret {
		return nil, fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", minSessionSecret)
	}
	if cfg.Token.TTL <= 0 || cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL and SESSION_TTL must be positive")
	}
	return &cfg, nil
}
