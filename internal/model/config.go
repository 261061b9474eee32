package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig holds settings for the local database.
type StorageConfig struct {
	// Path is the SQLite database file. ":memory:" keeps everything in RAM.
	Path string `mapstructure:"path" yaml:"path"`
}

// SyncConfig controls how often the UI re-fetches without a change signal.
type SyncConfig struct {
	// RefreshIntervalSec is the fallback poll interval; 0 disables polling
	// and relies on change notifications only.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of DEBUG, INFO or ERROR.
	Level string `mapstructure:"level" yaml:"level"`

	// File receives log output while the terminal UI owns the screen.
	File string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Sync    SyncConfig    `mapstructure:"sync" yaml:"sync"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todocal/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "todocal", "config.yaml")
}

// defaultDataDir returns ~/.local/share/todocal, falling back to the
// working directory.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "todocal")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := defaultDataDir()
	return &AppConfig{
		Storage: StorageConfig{Path: filepath.Join(dir, "todos.db")},
		Sync:    SyncConfig{RefreshIntervalSec: 60},
		Log: LogConfig{
			Level: "INFO",
			File:  filepath.Join(dir, "todocal.log"),
		},
		Display: DisplayConfig{Theme: "default"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("sync.refresh_interval_sec", defaults.Sync.RefreshIntervalSec)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("display.theme", defaults.Display.Theme)

	v.SetEnvPrefix("TODOCAL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Sync.RefreshIntervalSec < 0 {
		cfg.Sync.RefreshIntervalSec = 0
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("sync", cfg.Sync)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
