// Package config loads process configuration from the environment, with an
// optional .env file underneath.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// MinJWTSecretLen is the shortest HS256 signing secret accepted.
const MinJWTSecretLen = 32

const (
	RasterizerSoftware = "software"
	RasterizerChrome   = "chrome"
)

type Config struct {
	HTTP   HTTPConfig
	Log    LogConfig
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	AI     AIConfig
	Export ExportConfig
}

type HTTPConfig struct {
	Host          string `env:"HOST" env-default:"0.0.0.0"`
	Port          string `env:"PORT" env-default:"3000"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:3000"`
}

func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// DBConfig leaves DatabaseURL empty to keep all storage in memory.
type DBConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
}

// RedisConfig leaves Addr empty to disable the preview cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"PREVIEW_CACHE_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"JWT_TTL" env-default:"24h"`
	Issuer    string        `env:"JWT_ISSUER" env-default:"resume-builder"`
}

// AIConfig leaves ServiceURL empty to use only the built-in generators.
type AIConfig struct {
	ServiceURL string        `env:"AI_SERVICE_URL"`
	Timeout    time.Duration `env:"AI_TIMEOUT" env-default:"60s"`
}

type ExportConfig struct {
	Rasterizer string  `env:"RASTERIZER" env-default:"software"`
	ChromePath string  `env:"CHROME_PATH"`
	Scale      float64 `env:"EXPORT_SCALE" env-default:"2"`
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if len(cfg.Auth.JWTSecret) < MinJWTSecretLen {
		return nil, fmt.Errorf("config: JWT_SECRET must be at least %d bytes", MinJWTSecretLen)
	}
	switch cfg.Export.Rasterizer {
	case RasterizerSoftware, RasterizerChrome:
	default:
		return nil, fmt.Errorf("config: RASTERIZER must be %q or %q, got %q", RasterizerSoftware, RasterizerChrome, cfg.Export.Rasterizer)
	}
	if cfg.Export.Scale <= 0 {
		return nil, fmt.Errorf("config: EXPORT_SCALE must be positive")
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
