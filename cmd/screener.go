package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/ai"
	"github.com/spigell/cv-screener/internal/ai/gemini"
	"github.com/spigell/cv-screener/internal/ai/openai"
	"github.com/spigell/cv-screener/internal/config"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/screening"
)

// setup builds the logger and loads the configuration. A configuration error is fatal.
func setup() (*zap.Logger, *config.Config) {
	logger := logger.New(viper.GetBool("json"), viper.GetBool("debug"))

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Fatal("loading the config", zap.Error(err))
	}

	logger.Info("starting the cv-screener", zap.String("version", version))

	// do not bother error since the config was just unmarshalled
	pretty, _ := json.MarshalIndent(cfg, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, cfg
}

func newGateway(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (ai.Gateway, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Options{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, logger)
	case config.ProviderGemini:
		return gemini.NewGenerator(ctx, cfg.APIKey, cfg.Model, cfg.ThinkingBudget, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newScreener(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*screening.Screener, error) {
	gateway, err := newGateway(ctx, cfg.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("building %s gateway: %w", cfg.AI.Provider, err)
	}

	formatter := screening.NewFormatter(cfg.Prompt.TokenBudget)

	return screening.NewScreener(gateway, formatter, logger, cfg.AI.MaxLogLength), nil
}

// readJobDescription reads a job description from a file, or from stdin when path is "-".
func readJobDescription(path string) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading job description: %w", err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("job description %q is empty", path)
	}

	return text, nil
}
