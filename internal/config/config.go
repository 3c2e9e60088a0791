package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends understood by the app.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig selects where the login collection is persisted.
type StorageConfig struct {
	Backend  string `mapstructure:"backend"`
	FilePath string `mapstructure:"file_path"`
	Seal     bool   `mapstructure:"seal"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale        string `mapstructure:"locale"`
	MaskPasswords bool   `mapstructure:"mask_passwords"`
}

// LogConfig holds log sink settings. The TUI owns the terminal, so logs go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "savepass")
}

func configPath() string {
	if p := os.Getenv("SAVEPASS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "savepass", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix SAVEPASS_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "savepass.db"))
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.file_path", filepath.Join(dataDir(), "storage.json"))
	v.SetDefault("storage.seal", false)
	v.SetDefault("ui.locale", "pt-BR")
	v.SetDefault("ui.mask_passwords", true)
	v.SetDefault("log.path", filepath.Join(dataDir(), "savepass.log"))
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("SAVEPASS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional; a present but broken one is an error
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigType("toml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the app cannot act on.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("config: database.path is required for the sqlite backend")
		}
	case BackendFile:
		if strings.TrimSpace(c.Storage.FilePath) == "" {
			return fmt.Errorf("config: storage.file_path is required for the file backend")
		}
	default:
		return fmt.Errorf("config: unknown storage.backend %q", c.Storage.Backend)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.file_path", cfg.Storage.FilePath)
	v.Set("storage.seal", cfg.Storage.Seal)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.mask_passwords", cfg.UI.MaskPasswords)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
