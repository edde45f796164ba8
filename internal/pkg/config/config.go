package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,      default=8080"`
	Env         string        `env:"ENV,       default=development"`
	LogLevel    string        `env:"LOG_LEVEL, default=info"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL, default=24h"`
	AdminEmails []string      `env:"ADMIN_EMAILS"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
	Import  ImportConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=coffee_catalog"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB,       default=0"`
	ViewCacheTTL time.Duration `env:"VIEW_CACHE_TTL, default=5m"`
}

type StorageConfig struct {
	Driver          string `env:"STORAGE_DRIVER,          default=local"`
	Bucket          string `env:"STORAGE_BUCKET,          default=lot-images"`
	PublicBaseURL   string `env:"STORAGE_PUBLIC_BASE_URL"`
	LocalDir        string `env:"STORAGE_LOCAL_DIR,       default=./data/media"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Endpoint        string `env:"STORAGE_EMULATOR_ENDPOINT"`
	UploadMaxBytes  int64  `env:"UPLOAD_MAX_BYTES,        default=10485760"`
}

type ImportConfig struct {
	MaxBytes      int64         `env:"IMPORT_MAX_BYTES,      default=5242880"`
	Concurrency   int           `env:"IMPORT_CONCURRENCY,    default=4"`
	ErrorCap      int           `env:"IMPORT_ERROR_CAP,      default=50"`
	FetchTimeout  time.Duration `env:"IMAGE_FETCH_TIMEOUT,   default=10s"`
	FetchMaxBytes int64         `env:"IMAGE_FETCH_MAX_BYTES, default=10485760"`
	FetchRPS      float64       `env:"IMAGE_FETCH_RPS,       default=5"`
}

const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.Storage.Driver {
	case StorageLocal:
	case StorageGCS:
		if c.Storage.Bucket == "" {
			return errors.New("STORAGE_BUCKET is required for the gcs driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Import.Concurrency < 1 {
		return errors.New("IMPORT_CONCURRENCY must be at least 1")
	}
	return nil
}
