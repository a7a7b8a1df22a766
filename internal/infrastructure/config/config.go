package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/quizreview/backend/internal/domain/review"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. REVIEW_SHUTDOWN_TIMEOUT for shutdown-timeout.
const EnvPrefix = "REVIEW_"

type Config struct {
	ServerAddress   string        `koanf:"addr" validate:"required"`
	DBPath          string        `koanf:"db" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown-timeout" validate:"gt=0"`
	RequestTimeout  time.Duration `koanf:"request-timeout" validate:"gt=0"`
	MaxRounds       int           `koanf:"max-rounds" validate:"gte=0"` // 0 disables the cap
	LogLevel        string        `koanf:"log-level" validate:"oneof=debug info warn error"`
}

// RegisterFlags adds the server flags and their defaults to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "optional YAML config file")
	fs.String("addr", ":8080", "HTTP listen address")
	fs.String("db", "review.db", "path to the SQLite database")
	fs.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	fs.Duration("request-timeout", 15*time.Second, "per-request timeout")
	fs.Int("max-rounds", review.DefaultMaxRounds, "round cap for review sessions (0 = no cap)")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
}

// Load resolves the configuration. Explicit flags win over REVIEW_*
// environment variables (a .env file is loaded first if present), which win
// over the YAML file, which wins over flag defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	path, _ := fs.GetString("config")
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	envKey := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	// Passing k makes unchanged flags fill in only keys nobody else set.
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("config: load flags: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) Review() review.Config {
	return review.Config{MaxRounds: c.MaxRounds}
}
