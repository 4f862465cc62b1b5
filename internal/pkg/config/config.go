package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Log     LogConfig
	Auth    AuthConfig
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
	Upload  UploadConfig
}

// LogConfig enables an additional rotated log file next to stdout.
type LogConfig struct {
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB,  default=100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS,  default=5"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS, default=28"`
}

type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET, required"`
	SessionTTL         time.Duration `env:"SESSION_TTL,          default=168h"`
	AdminSessionTTL    time.Duration `env:"ADMIN_SESSION_TTL,    default=24h"`
	AdminSignupEnabled bool          `env:"ADMIN_SIGNUP_ENABLED, default=false"`
	CookieDomain       string        `env:"COOKIE_DOMAIN"`
	// CookieSecure defaults to true outside development.
	CookieSecure *bool `env:"COOKIE_SECURE, noinit"`
}

type HTTPConfig struct {
	CORSOrigins     []string      `env:"CORS_ORIGINS,        default=*"`
	BodyLimit       string        `env:"HTTP_BODY_LIMIT,     default=12M"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,   default=15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT,  default=30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT,   default=60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,    default=10s"`
	AuthRateLimit   float64       `env:"AUTH_RATE_LIMIT,     default=5"`
	AuthRateBurst   int           `env:"AUTH_RATE_BURST,     default=10"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI, required"`
	Database string        `env:"MONGO_DB,      default=agency"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig backs the Idempotency-Key guard. An empty address disables it.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// StorageConfig points at an S3-compatible bucket.
type StorageConfig struct {
	Endpoint      string `env:"STORAGE_ENDPOINT,   required"`
	AccessKey     string `env:"STORAGE_ACCESS_KEY, required"`
	SecretKey     string `env:"STORAGE_SECRET_KEY, required"`
	Bucket        string `env:"STORAGE_BUCKET,     required"`
	Region        string `env:"STORAGE_REGION,     default=us-east-1"`
	UseSSL        bool   `env:"STORAGE_USE_SSL,    default=true"`
	PublicBaseURL string `env:"STORAGE_PUBLIC_URL"`
}

type UploadConfig struct {
	MaxBytes    int64  `env:"MAX_UPLOAD_BYTES, default=10485760"`
	PhoneRegion string `env:"PHONE_REGION,     default=US"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

// SecureCookies resolves COOKIE_SECURE against the environment.
func (c *Config) SecureCookies() bool {
	if c.Auth.CookieSecure != nil {
		return *c.Auth.CookieSecure
	}
	return !c.IsDevelopment()
}

// Validate checks constraints envconfig cannot express.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 && !c.IsDevelopment() {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes outside development")
	}
	if c.Auth.SessionTTL <= 0 || c.Auth.AdminSessionTTL <= 0 {
		return fmt.Errorf("session TTLs must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required keys are fatal at startup.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom is Load with an explicit source of values.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
