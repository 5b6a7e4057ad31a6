// Package config loads the journal configuration from an optional
// YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete runtime configuration.
type Config struct {
	// DataDir holds the database (or JSON file) and defaults to
	// ~/.journal.
	DataDir string `mapstructure:"data_dir"`
	// Store selects the persistence backend: "sqlite" or "file".
	Store string `mapstructure:"store"`

	AI    AIConfig    `mapstructure:"ai"`
	Voice VoiceConfig `mapstructure:"voice"`
	Log   LogConfig   `mapstructure:"log"`
}

// AIConfig configures the analysis and transcription service.
type AIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	TranscribeModel string        `mapstructure:"transcribe_model"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// VoiceConfig configures microphone capture.
type VoiceConfig struct {
	// Duration is the default recording length in seconds.
	Duration int `mapstructure:"duration"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DBPath returns the SQLite database location inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "journal.db")
}

// FilePath returns the JSON store location inside DataDir.
func (c *Config) FilePath() string {
	return filepath.Join(c.DataDir, "journal.json")
}

// Load reads config.yaml from the given directory (default ~/.journal)
// if it exists, applies JOURNAL_* environment overrides, and falls
// back to defaults for everything else. A missing file is not an
// error; a malformed one is.
func Load(dir string) (*Config, error) {
	v := viper.New()

	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		dir = filepath.Join(home, ".journal")
	}

	v.SetDefault("data_dir", dir)
	v.SetDefault("store", "sqlite")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.transcribe_model", "whisper-1")
	v.SetDefault("ai.request_timeout", 30*time.Second)
	v.SetDefault("voice.duration", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("JOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case "sqlite", "file":
	default:
		return fmt.Errorf("config: unknown store backend %q (want sqlite or file)", c.Store)
	}
	if c.Voice.Duration <= 0 {
		return fmt.Errorf("config: voice duration must be positive, got %d", c.Voice.Duration)
	}
	return nil
}
