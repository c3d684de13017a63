// Package config resolves the startup configuration of cv-screener.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/spigell/cv-screener/internal/secrets"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultTimeout      = 120 * time.Second
	DefaultMaxLogLength = 200
	DefaultTokenBudget  = 8000
)

// apiKeyEnv maps a provider to the environment variable holding its credential.
var apiKeyEnv = map[string]string{
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderGemini: "GEMINI_API_KEY",
}

// placeholders are the example credentials shipped with env templates.
var placeholders = []string{
	"your_openai_api_key_here",
	"your_gemini_api_key_here",
	"your_api_key_here",
}

type Config struct {
	AI     AIConfig     `mapstructure:"ai"`
	Prompt PromptConfig `mapstructure:"prompt"`
}

type AIConfig struct {
	Provider   string        `mapstructure:"provider"`
	Model      string        `mapstructure:"model"`
	APIKey     string        `mapstructure:"api-key" json:"-"`
	APIKeyFile string        `mapstructure:"api-key-file"`
	BaseURL    string        `mapstructure:"base-url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	// MaxLogLength caps prompt and response previews in debug logs.
	MaxLogLength int `mapstructure:"max-log-length"`
	// ThinkingBudget is forwarded to gemini. A negative value leaves the model default.
	ThinkingBudget int `mapstructure:"thinking-budget"`
}

type PromptConfig struct {
	TokenBudget int `mapstructure:"token-budget"`
}

// Error reports a configuration problem that prevents the tool from starting.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SetDefaults registers the default values of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", ProviderOpenAI)
	v.SetDefault("ai.timeout", DefaultTimeout)
	v.SetDefault("ai.max-log-length", DefaultMaxLogLength)
	v.SetDefault("ai.thinking-budget", 0)
	v.SetDefault("prompt.token-budget", DefaultTokenBudget)
}

// Load unmarshals the configuration held by v and resolves the provider credential.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &Error{Key: "file", Err: err}
	}

	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	env, ok := apiKeyEnv[cfg.AI.Provider]
	if !ok {
		return nil, &Error{Key: "ai.provider", Err: fmt.Errorf("unsupported provider %q", cfg.AI.Provider)}
	}

	if cfg.AI.Timeout <= 0 {
		return nil, &Error{Key: "ai.timeout", Err: fmt.Errorf("must be positive, got %s", cfg.AI.Timeout)}
	}

	if cfg.Prompt.TokenBudget <= 0 {
		return nil, &Error{Key: "prompt.token-budget", Err: fmt.Errorf("must be positive, got %d", cfg.Prompt.TokenBudget)}
	}

	key, err := secrets.Load(secrets.Source{
		Name:         cfg.AI.Provider + " api key",
		Value:        cfg.AI.APIKey,
		File:         cfg.AI.APIKeyFile,
		Env:          env,
		Placeholders: placeholders,
	})
	if err != nil {
		return nil, &Error{
			Key: "ai.api-key",
			Err: fmt.Errorf("%w (set ai.api-key-file, ai.api-key or %s)", err, env),
		}
	}
	cfg.AI.APIKey = key

	return &cfg, nil
}
