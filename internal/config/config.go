// Package config loads application settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/stinglish/stinglish/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Diagnostic DiagnosticConfig `mapstructure:"diagnostic"`
	Log        LogConfig        `mapstructure:"log"`
	Store      StoreConfig      `mapstructure:"store"`
}

type LLMConfig struct {
	Provider   string         `mapstructure:"provider" validate:"oneof=auto gemini anthropic openai openrouter mock"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Timeout    time.Duration  `mapstructure:"timeout" validate:"gte=0"`
	Retry      RetryConfig    `mapstructure:"retry"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1,max=10"`
	InitialWait time.Duration `mapstructure:"initial_wait" validate:"gte=0"`
	MaxWait     time.Duration `mapstructure:"max_wait" validate:"gte=0"`
	Multiplier  float64       `mapstructure:"multiplier" validate:"gte=1"`
}

type ChatConfig struct {
	Streaming   bool    `mapstructure:"streaming"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"min=1"`
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

type DiagnosticConfig struct {
	SampleSize   int           `mapstructure:"sample_size" validate:"min=1,max=50"`
	AdvanceDelay time.Duration `mapstructure:"advance_delay" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type StoreConfig struct {
	// Path of the SQLite LLM request log. Empty uses the XDG data dir.
	Path     string `mapstructure:"path"`
	Disabled bool   `mapstructure:"disabled"`
}

// ConfigLoader reads configuration with viper and validates the result.
type ConfigLoader struct {
	file       string
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

// NewConfigLoader creates a loader. An empty configFile searches
// ./stinglish.yaml and the user config directory.
func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("stinglish")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "stinglish"))
		}
	}

	return &ConfigLoader{
		file:       configFile,
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Load reads the config file (if any), applies defaults and environment
// overrides, and validates the result.
func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper
	setDefaults(v)

	v.SetEnvPrefix("STINGLISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys also honour the vendors' conventional variables.
	envKeys := map[string][]string{
		"llm.gemini.api_key":     {"STINGLISH_LLM_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"},
		"llm.anthropic.api_key":  {"STINGLISH_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
		"llm.openai.api_key":     {"STINGLISH_LLM_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"llm.openrouter.api_key": {"STINGLISH_LLM_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
	}
	for key, names := range envKeys {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind %s environment variables: %w", key, err)
		}
	}

	// An explicitly requested file must exist.
	if loader.file != "" {
		if _, err := os.Stat(loader.file); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", translate(err, loader.translator))
	}

	return &cfg, nil
}

// ConfigFile returns the file that was read, or "" when none was found.
func (loader *ConfigLoader) ConfigFile() string {
	return loader.viper.ConfigFileUsed()
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("llm.provider", llm.ProviderAuto)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", def.Gemini.Model)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", def.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", def.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", def.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.timeout", def.Timeout)
	v.SetDefault("llm.retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", def.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", def.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", def.Retry.Multiplier)

	v.SetDefault("chat.streaming", true)
	v.SetDefault("chat.max_tokens", 1024)
	v.SetDefault("chat.temperature", 0.7)

	v.SetDefault("diagnostic.sample_size", 10)
	v.SetDefault("diagnostic.advance_delay", 500*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.path", "")
	v.SetDefault("store.disabled", false)
}

// ToLLM converts the LLM section into an llm.Config. The "auto" provider
// is resolved against the configured keys.
func (c *Config) ToLLM() llm.Config {
	return llm.Config{
		Provider: c.LLM.Provider,
		Gemini: llm.GeminiConfig{
			APIKey: c.LLM.Gemini.APIKey,
			Model:  c.LLM.Gemini.Model,
		},
		Anthropic: llm.AnthropicConfig{
			APIKey:  c.LLM.Anthropic.APIKey,
			Model:   c.LLM.Anthropic.Model,
			BaseURL: c.LLM.Anthropic.BaseURL,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.LLM.OpenAI.APIKey,
			Model:   c.LLM.OpenAI.Model,
			BaseURL: c.LLM.OpenAI.BaseURL,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.LLM.OpenRouter.APIKey,
			Model:   c.LLM.OpenRouter.Model,
			BaseURL: c.LLM.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: c.LLM.Retry.MaxAttempts,
			InitialWait: c.LLM.Retry.InitialWait,
			MaxWait:     c.LLM.Retry.MaxWait,
			Multiplier:  c.LLM.Retry.Multiplier,
		},
		Timeout: c.LLM.Timeout,
	}.Resolve()
}
