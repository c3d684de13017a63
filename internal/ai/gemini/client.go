package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/cv-screener/internal/ai"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-2.5-flash"
)

// modelsService is the part of the GenAI client used by the Generator.
type modelsService interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models         modelsService
	modelName      string
	thinkingBudget *int32
	logger         *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
// A negative thinking budget leaves the model default in place.
func NewGenerator(ctx context.Context, apiKey, model string, thinkingBudget int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, model, thinkingBudget, logger), nil
}

func newGenerator(models modelsService, model string, thinkingBudget int, logger *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{models: models, modelName: model, logger: logger}
	if thinkingBudget >= 0 {
		budget := int32(thinkingBudget)
		g.thinkingBudget = &budget
	}

	return g
}

// Complete sends the prompt to Gemini and returns the textual response. It is a single attempt.
func (g *Generator) Complete(ctx context.Context, prompt string, opts ai.CallOptions) (string, error) {
	if g == nil || g.models == nil {
		return "", &ai.GatewayError{Provider: providerName, Err: errors.New("gemini generator is not initialized")}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", &ai.GatewayError{Provider: providerName, Err: errors.New("prompt must not be empty")}
	}

	temperature := opts.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: opts.MaxOutputTokens,
	}
	if g.thinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: g.thinkingBudget}
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		g.logger.Debug("gemini generate content failed", zap.Error(err))
		return "", &ai.GatewayError{Provider: providerName, StatusCode: statusCode(err), Err: fmt.Errorf("generate content: %w", err)}
	}

	// A reply without text is returned as is; the caller decides what it means.
	return collectText(resp), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}

	return 0
}

func (g *Generator) Provider() string {
	return providerName
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
