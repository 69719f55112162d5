package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	envProduction = "production"
)

type Config struct {
	Port      string `env:"PORT,       default=8000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// StoreDriver selects the content store: postgres or mongo.
	StoreDriver string `env:"STORE_DRIVER, default=postgres"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:5500"`

	Server   ServerConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT,     default=10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT,    default=15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT,     default=60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT, default=10s"`
}

type PostgresConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://postgres@localhost:5432/portfolio?sslmode=disable"`
	// Key overrides the password embedded in URL when set.
	Key      string `env:"DATABASE_KEY"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portfolio"`
}

// RedisConfig configures the public list cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,  default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL, default=60s"`
}

type AuthConfig struct {
	JWTSecret         string `env:"JWT_SECRET, required"`
	JWTAlgorithm      string `env:"JWT_ALGORITHM,       default=HS256"`
	JWTExpireMinutes  int    `env:"JWT_EXPIRE_MINUTES,  default=480"`
	AdminUsername     string `env:"ADMIN_USERNAME,      required"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH, required"`
	HashPWEnabled     bool   `env:"AUTH_HASHPW_ENABLED, default=true"`
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l. Tests pass a map lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverPostgres, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	switch c.Auth.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("unsupported JWT_ALGORITHM %q", c.Auth.JWTAlgorithm))
	}
	if c.Auth.JWTExpireMinutes <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE_MINUTES must be positive"))
	}
	if c.Redis.Addr != "" && c.Redis.CacheTTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be positive when REDIS_ADDR is set"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, envProduction)
}

// TokenTTL is the access-token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.JWTExpireMinutes) * time.Minute
}

// ExposeHashPassword reports whether GET /api/auth/hashpw is routed.
func (c *Config) ExposeHashPassword() bool {
	return c.Auth.HashPWEnabled && !c.IsProduction()
}
