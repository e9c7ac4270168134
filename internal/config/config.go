package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	API      APIConfig
	Session  SessionConfig
	UI       UIConfig
	Logging  LoggingConfig
	Server   ServerConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// APIConfig selects the remote data source. An empty BaseURL means the
// client works directly against the local sqlite store.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SessionConfig identifies the signed-in diner.
type SessionConfig struct {
	UserID int64 `mapstructure:"user_id"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat string `mapstructure:"date_format"`
	Timezone   string
	PageSize   int `mapstructure:"page_size"`
}

// LoggingConfig controls the zerolog sink.
type LoggingConfig struct {
	Level    string
	Format   string // json | console
	Output   string // stdout | stderr | file
	FilePath string `mapstructure:"file_path"`
}

// ServerConfig holds tablebookd settings.
type ServerConfig struct {
	Addr string
}

// Load reads configuration from file and env. Env var overrides use prefix TABLEBOOK_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "tablebook")

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir, "tablebook.db"))
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout_seconds", 10)
	v.SetDefault("session.user_id", 1)
	v.SetDefault("ui.date_format", "Mon 02 Jan")
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "file")
	v.SetDefault("logging.file_path", filepath.Join(dataDir, "tablebook.log"))
	v.SetDefault("server.addr", ":8085")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TABLEBOOK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tablebook"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TABLEBOOK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("TABLEBOOK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "tablebook", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout_seconds", cfg.API.TimeoutSeconds)
	v.Set("session.user_id", cfg.Session.UserID)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)
	v.Set("logging.output", cfg.Logging.Output)
	v.Set("logging.file_path", cfg.Logging.FilePath)
	v.Set("server.addr", cfg.Server.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
