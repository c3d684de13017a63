package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/cv-screener/internal/secrets"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, DefaultTimeout, cfg.AI.Timeout)
	assert.Equal(t, DefaultMaxLogLength, cfg.AI.MaxLogLength)
	assert.Equal(t, 0, cfg.AI.ThinkingBudget)
	assert.Equal(t, DefaultTokenBudget, cfg.Prompt.TokenBudget)
	assert.Empty(t, cfg.AI.Model)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "gemini.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("gm-key\n"), 0o600))

	content := strings.Join([]string{
		"ai:",
		"  provider: Gemini",
		"  model: gemini-2.5-pro",
		"  api-key-file: " + keyFile,
		"  timeout: 30s",
		"  thinking-budget: -1",
		"prompt:",
		"  token-budget: 4000",
	}, "\n")
	cfgFile := filepath.Join(dir, "cv-screener.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o600))

	v := viper.New()
	v.SetConfigFile(cfgFile)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
	assert.Equal(t, "gm-key", cfg.AI.APIKey)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, -1, cfg.AI.ThinkingBudget)
	assert.Equal(t, 4000, cfg.Prompt.TokenBudget)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		env     string
		key     string
		wantErr error
	}{
		{
			name: "missing credential",
			key:  "ai.api-key",
		},
		{
			name:    "placeholder credential",
			env:     "your_openai_api_key_here",
			key:     "ai.api-key",
			wantErr: secrets.ErrPlaceholder,
		},
		{
			name:   "unknown provider",
			values: map[string]any{"ai.provider": "claude"},
			env:    "sk-test",
			key:    "ai.provider",
		},
		{
			name:   "zero token budget",
			values: map[string]any{"prompt.token-budget": 0},
			env:    "sk-test",
			key:    "prompt.token-budget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tt.env)

			v := viper.New()
			for key, value := range tt.values {
				v.Set(key, value)
			}

			_, err := Load(v)
			require.Error(t, err)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.key, cfgErr.Key)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadInlineKeyWinsOverEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "from-env")

	v := viper.New()
	v.Set("ai.api-key", "from-config")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "from-config", cfg.AI.APIKey)
}
