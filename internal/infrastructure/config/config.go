package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMongo    = "mongo"

	defaultPostgresDSN = "host=localhost user=postgres password=postgres dbname=blog port=5432 sslmode=disable"
)

type Config struct {
	Port      string `env:"PORT,       default=3003"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	CORSOrigin      string        `env:"CORS_ORIGIN,      default=http://localhost:3000"`
	LoginRateLimit  float64       `env:"LOGIN_RATE_LIMIT, default=5"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Token TokenConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type TokenConfig struct {
	AccessKey  string        `env:"ACCESS_TOKEN_KEY, required"`
	RefreshKey string        `env:"REFRESH_TOKEN_KEY, required"`
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=1h"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=2400h"`
}

type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER, default=postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog"`
}

// RedisConfig is optional; an empty Addr disables idempotency replay.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates the result.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	// Only postgres has a usable local default; sqlite needs a file path.
	if cfg.Store.Driver == StorePostgres && cfg.Store.DatabaseURL == "" {
		cfg.Store.DatabaseURL = defaultPostgresDSN
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	if c.Token.AccessKey == "" || c.Token.RefreshKey == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY must be set"))
	} else if c.Token.AccessKey == c.Token.RefreshKey {
		errs = append(errs, errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY must differ"))
	}
	if c.Token.AccessTTL <= 0 || c.Token.RefreshTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}
	switch c.Store.Driver {
	case StorePostgres, StoreSQLite:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL must be set for STORE_DRIVER=%s", c.Store.Driver))
		}
	case StoreMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}
	if c.LoginRateLimit <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
