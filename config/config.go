// Package config loads the application configuration from file, environment
// and flags, in that order of increasing precedence.
package config

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Debug    bool           `mapstructure:"debug"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds the database driver and DSN.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultDSN is the out-of-the-box SQLite database location.
const DefaultDSN = "file:adminapi.db?_pragma=journal_mode(WAL)"

// defaults mirror a workable local setup: SQLite in the working directory,
// JSON logs, one-hour tokens.
var defaults = map[string]any{
	"debug":                   false,
	"server.addr":             ":8080",
	"server.read_timeout":     "10s",
	"server.write_timeout":    "15s",
	"server.shutdown_timeout": "10s",
	"database.driver":         "sqlite",
	"database.dsn":            DefaultDSN,
	"auth.token_ttl":          "1h",
	"log.level":               "info",
	"log.format":              "json",
}

var supportedDrivers = map[string]bool{
	"sqlite":   true,
	"postgres": true,
	"mysql":    true,
}

// Load reads configuration from an optional YAML file (explicit path or
// adminapi.yaml in the working directory), ADMINAPI_* environment variables,
// and bound command-line flags.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("adminapi")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless one was explicitly requested.
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) || path != "" {
			return Config{}, fmt.Errorf("config.Load: read config failed: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("adminapi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("config.Load: bind flags failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: unmarshal failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for values the application cannot
// start with.
func (c Config) Validate() error {
	if !supportedDrivers[c.Database.Driver] {
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Addr == "" {
		return stderrors.New("config: server address must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return stderrors.New("config: token TTL must be positive")
	}
	return nil
}
