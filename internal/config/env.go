package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath string        `env:"USER_GAME_DB_PATH" envDefault:"user_game.db"`
	Driver       string        `env:"USER_GAME_DB_DRIVER" envDefault:"sqlite3"`
	ForeignKeys  bool          `env:"USER_GAME_FOREIGN_KEYS" envDefault:"true"`
	BusyTimeout  time.Duration `env:"USER_GAME_BUSY_TIMEOUT" envDefault:"5s"`

	LogLevel  string `env:"USER_GAME_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"USER_GAME_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"USER_GAME_LOG_FILE"`
}

// Load reads an optional .env file from the working directory, then parses
// the process environment. Variables already set win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q (want sqlite3 or sqlite)", c.Driver)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q (want text or json)", c.LogFormat)
	}
	return nil
}
