package screening

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/ai"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/quiz"
	"github.com/spigell/cv-screener/internal/utils"
)

const defaultMaxLogLength = 200

// Screener runs the match and question prompts through a gateway.
type Screener struct {
	gateway   ai.Gateway
	formatter *Formatter
	logger    *zap.Logger
	maxLogLen int
}

func NewScreener(gateway ai.Gateway, formatter *Formatter, log *zap.Logger, maxLogLength int) *Screener {
	if formatter == nil {
		formatter = NewFormatter(DefaultTokenBudget)
	}

	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	var provider, model string
	if gateway != nil {
		provider, model = gateway.Provider(), gateway.Model()
	}

	return &Screener{
		gateway:   gateway,
		formatter: formatter,
		logger:    logger.WithCommonFields(log, provider, model),
		maxLogLen: maxLogLength,
	}
}

// Match asks the model whether the CV fits the job description.
func (s *Screener) Match(ctx context.Context, cv, job string) (MatchDecision, error) {
	raw, err := s.complete(ctx, "match", s.formatter.FormatMatchPrompt(cv, job), ai.MatchCall)
	if err != nil {
		return Negative, err
	}

	decision := ParseMatch(raw)
	s.logger.Debug("match decision parsed", zap.Stringer("decision", decision))

	return decision, nil
}

// Questions asks the model for the interview question set.
func (s *Screener) Questions(ctx context.Context, cv, job string) (quiz.QuestionSet, error) {
	raw, err := s.complete(ctx, "questions", s.formatter.FormatQuestionPrompt(cv, job), ai.QuestionCall)
	if err != nil {
		return nil, err
	}

	set, err := ParseQuestions(raw)
	if err != nil {
		s.logger.Warn("question set rejected", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("question set parsed", zap.Int("questions", set.Len()))

	return set, nil
}

func (s *Screener) complete(ctx context.Context, kind, prompt string, opts ai.CallOptions) (string, error) {
	if s.gateway == nil {
		return "", errors.New("inference gateway is not configured")
	}

	s.logger.Debug("generate content request",
		zap.String("kind", kind),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.gateway.Complete(ctx, prompt, opts)
	if err != nil {
		s.logger.Warn("generate content failed", zap.String("kind", kind), zap.Error(err))
		return "", err
	}

	s.logger.Debug("generate content response",
		zap.String("kind", kind),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	return raw, nil
}
