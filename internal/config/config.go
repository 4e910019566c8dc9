package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type R2Config struct {
	AccountID       string `envconfig:"R2_ACCOUNT_ID"`
	AccessKeyID     string `envconfig:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"R2_SECRET_ACCESS_KEY"`
	Bucket          string `envconfig:"R2_BUCKET"`
	PublicURL       string `envconfig:"R2_PUBLIC_URL"`
}

// Enabled reports whether enough R2 settings are present to upload images.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

type EmailConfig struct {
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	FromAddress  string `envconfig:"EMAIL_FROM_ADDRESS" default:"noreply@starclub.app"`
	FromName     string `envconfig:"EMAIL_FROM_NAME" default:"Star Club"`
}

type DatabaseConfig struct {
	URL             string `envconfig:"DATABASE_URL" required:"true"`
	Driver          string `envconfig:"DATABASE_DRIVER" default:"postgres"`
	ConnectAttempts int    `envconfig:"DB_CONNECT_ATTEMPTS" default:"5"`
}

type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	JWTSecret        string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL           time.Duration `envconfig:"JWT_TTL" default:"720h"`
	DemoLoginEnabled bool          `envconfig:"DEMO_LOGIN_ENABLED" default:"true"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat        string        `envconfig:"LOG_FORMAT" default:"json"`
	CORSOrigins      string        `envconfig:"CORS_ORIGINS" default:"*"`
	RateLimitMax     int           `envconfig:"RATE_LIMIT_MAX" default:"60"`
	FrontendURL      string        `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	RabbitURL        string        `envconfig:"RABBIT_URL"`
	VisitExchange    string        `envconfig:"VISIT_EXCHANGE" default:"loyalty.exchange"`
	StatsReportSpec  string        `envconfig:"STATS_REPORT_SPEC" default:"@daily"`

	Database DatabaseConfig
	Email    EmailConfig
	R2       R2Config
}

// LoadConfig reads an optional .env file and then the process environment.
// The returned bool reports whether a .env file was found.
func LoadConfig() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, dotenv, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, dotenv, err
	}
	return cfg, dotenv, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" || c.JWTSecret == "" {
		return fmt.Errorf("load config: DATABASE_URL and JWT_SECRET must not be empty")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("load config: unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Database.ConnectAttempts < 1 {
		return fmt.Errorf("load config: DB_CONNECT_ATTEMPTS must be positive")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("load config: JWT_TTL must be positive")
	}
	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")
	return nil
}
