package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
	"github.com/spf13/viper"
)

const envPrefix = "FILES_CLI"

// Config holds runtime settings for the CLI.
type Config struct {
	ServerURL           string        `mapstructure:"server_url"`
	OnlineCheckInterval time.Duration `mapstructure:"online_check_interval"`
	StatePath           string        `mapstructure:"state_path"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
}

// LoadDefaults populates c with sensible defaults. The state database lives
// in the user's config directory when one can be determined.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.OnlineCheckInterval = 3 * time.Second
	c.StatePath = defaultStatePath()
	c.RequestTimeout = 10 * time.Second
}

func defaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "filesmanager", "cli.db")
	}
	return "filesmanager-cli.db"
}

// LoadConfig applies defaults, the config file, the environment and flags in
// that order.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadFileAndEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		return nil, errors.New("server url must not be empty")
	}
	return cfg, nil
}

func loadFileAndEnv(cfg *Config, args []string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server_url", cfg.ServerURL)
	v.SetDefault("online_check_interval", cfg.OnlineCheckInterval)
	v.SetDefault("state_path", cfg.StatePath)
	v.SetDefault("request_timeout", cfg.RequestTimeout)

	if path := flagx.ConfigFileFlags(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}
