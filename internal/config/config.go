// Package config loads tango's settings from defaults, an optional YAML
// file and TANGO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/tango/internal/llm"
)

// EnvPrefix is the prefix for environment overrides, e.g. TANGO_LOG_LEVEL.
const EnvPrefix = "TANGO"

// Config holds all application configuration.
type Config struct {
	// DB is the SQLite database path. Empty means the default data dir.
	DB string `mapstructure:"db"`

	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Remote RemoteConfig `mapstructure:"remote"`
	Study  StudyConfig  `mapstructure:"study"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
	// File receives logs for interactive commands. Empty means
	// <data dir>/tango.log.
	File string `mapstructure:"file"`
}

// ServerConfig configures `tango serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
	// WriteRate is the sustained number of card creations per second.
	WriteRate  float64 `mapstructure:"write_rate" validate:"gt=0"`
	WriteBurst int     `mapstructure:"write_burst" validate:"gte=1"`
}

// RemoteConfig points the CLI at a running `tango serve` instead of the
// local database.
type RemoteConfig struct {
	URL     string        `mapstructure:"url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// StudyConfig holds the quiz setup defaults.
type StudyConfig struct {
	QuizQuestions int `mapstructure:"quiz_questions" validate:"gte=1"`
	QuizMinutes   int `mapstructure:"quiz_minutes" validate:"gte=1,lte=60"`
}

// LLMConfig selects and configures the card suggestion provider.
type LLMConfig struct {
	// Provider is empty to auto-discover from well-known API key variables.
	Provider        string        `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`
	Model           string        `mapstructure:"model"`
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MeaningLanguage string        `mapstructure:"meaning_language" validate:"required"`
	SourceLanguage  string        `mapstructure:"source_language" validate:"required"`
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.write_rate", 5.0)
	v.SetDefault("server.write_burst", 10)
	v.SetDefault("remote.url", "")
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("study.quiz_questions", 10)
	v.SetDefault("study.quiz_minutes", 1)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.meaning_language", "English")
	v.SetDefault("llm.source_language", "Japanese")
}

// Load reads configuration. configFile may be empty, in which case
// $XDG_CONFIG_HOME/tango/config.yaml is used if it exists. Environment
// variables take precedence over the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if dir, err := defaultConfigDir(); err == nil {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tag constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// LLMProvider builds the provider configuration. ok is false when no provider is
// configured and none can be discovered from the environment.
func (c *Config) LLMProvider() (cfg llm.Config, ok bool) {
	if c.LLM.Provider == "" {
		cfg, ok = llm.DiscoverConfig()
		if ok {
			cfg.Timeout = c.LLM.Timeout
		}
		return cfg, ok
	}

	cfg = llm.NewConfig(c.LLM.Provider, orDefault(c.LLM.APIKey, llm.KeyFromEnv(c.LLM.Provider)))
	cfg.Model = c.LLM.Model
	cfg.BaseURL = c.LLM.BaseURL
	cfg.Timeout = c.LLM.Timeout
	return cfg, true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tango"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tango"), nil
}
