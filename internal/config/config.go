// Package config provides configuration management for the textractor CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the CLI configuration.
type Config struct {
	AWS     AWSConfig     `mapstructure:"aws"`
	S3      S3Config      `mapstructure:"s3"`
	Polling PollingConfig `mapstructure:"polling"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AWSConfig holds AWS client settings.
type AWSConfig struct {
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
}

// S3Config holds default S3 locations for asynchronous operations.
type S3Config struct {
	UploadPath string `mapstructure:"upload_path"`
	OutputPath string `mapstructure:"output_path"`
}

// PollingConfig holds async job polling settings.
type PollingConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MaxInterval time.Duration `mapstructure:"max_interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds local response cache settings.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		AWS: AWSConfig{
			Profile: "default",
		},
		Polling: PollingConfig{
			Interval:    2 * time.Second,
			MaxInterval: 30 * time.Second,
			Timeout:     15 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    defaultCachePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".textractor", "responses.db")
	}
	return filepath.Join(home, ".textractor", "responses.db")
}

// Load reads configuration from environment variables and config file.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()

	// Set defaults
	v.SetDefault("aws.profile", cfg.AWS.Profile)
	v.SetDefault("aws.region", cfg.AWS.Region)
	v.SetDefault("s3.upload_path", cfg.S3.UploadPath)
	v.SetDefault("s3.output_path", cfg.S3.OutputPath)
	v.SetDefault("polling.interval", cfg.Polling.Interval)
	v.SetDefault("polling.max_interval", cfg.Polling.MaxInterval)
	v.SetDefault("polling.timeout", cfg.Polling.Timeout)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.path", cfg.Cache.Path)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	// Enable environment variables
	v.SetEnvPrefix("TEXTRACTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/textractor")
	v.AddConfigPath("$HOME/.textractor")

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
