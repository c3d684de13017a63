package screening

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/cv-screener/internal/ai"
	"github.com/spigell/cv-screener/internal/logger"
)

type stubGateway struct {
	response   string
	err        error
	lastPrompt string
	lastOpts   ai.CallOptions
	calls      int
}

func (s *stubGateway) Complete(_ context.Context, prompt string, opts ai.CallOptions) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastOpts = opts
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGateway) Provider() string { return "stub" }

func (s *stubGateway) Model() string { return "stub-model" }

func TestScreenerMatch(t *testing.T) {
	stub := &stubGateway{response: "true"}
	screener := NewScreener(stub, nil, zap.NewNop(), 0)

	decision, err := screener.Match(context.Background(), "Engineer", "Looking for Engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision != Positive {
		t.Fatalf("expected positive decision, got %s", decision)
	}

	if stub.lastOpts != ai.MatchCall {
		t.Fatalf("expected match call options, got %+v", stub.lastOpts)
	}

	if !strings.Contains(stub.lastPrompt, "Job Description: Looking for Engineer") {
		t.Fatalf("unexpected prompt: %s", stub.lastPrompt)
	}
}

func TestScreenerMatchNegativeOnAnythingElse(t *testing.T) {
	stub := &stubGateway{response: "I think this is a great match!"}
	screener := NewScreener(stub, nil, nil, 0)

	decision, err := screener.Match(context.Background(), "cv", "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision != Negative {
		t.Fatalf("expected negative decision, got %s", decision)
	}
}

func TestScreenerEmptyReply(t *testing.T) {
	stub := &stubGateway{response: ""}
	screener := NewScreener(stub, nil, nil, 0)

	decision, err := screener.Match(context.Background(), "cv", "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision != Negative {
		t.Fatalf("expected an empty reply to be negative, got %s", decision)
	}

	if _, err := screener.Questions(context.Background(), "cv", "job"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse for an empty question reply, got %v", err)
	}
}

func TestScreenerQuestions(t *testing.T) {
	stub := &stubGateway{response: questionsJSON(10)}
	screener := NewScreener(stub, NewFormatter(100), nil, 0)

	set, err := screener.Questions(context.Background(), "cv", "job")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Len() != 10 {
		t.Fatalf("expected 10 questions, got %d", set.Len())
	}

	if stub.lastOpts != ai.QuestionCall {
		t.Fatalf("expected question call options, got %+v", stub.lastOpts)
	}
}

func TestScreenerQuestionsMalformed(t *testing.T) {
	stub := &stubGateway{response: "sorry, I cannot help with that"}
	screener := NewScreener(stub, nil, nil, 0)

	set, err := screener.Questions(context.Background(), "cv", "job")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if set != nil {
		t.Fatalf("expected no questions")
	}
}

func TestScreenerPropagatesGatewayErrors(t *testing.T) {
	gwErr := &ai.GatewayError{Provider: "stub", StatusCode: 401, Err: errors.New("invalid api key")}
	stub := &stubGateway{err: gwErr}
	screener := NewScreener(stub, nil, nil, 0)

	if _, err := screener.Match(context.Background(), "cv", "job"); !errors.Is(err, gwErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}

	if _, err := screener.Questions(context.Background(), "cv", "job"); !errors.Is(err, gwErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}

	if stub.calls != 2 {
		t.Fatalf("expected exactly one call per operation, got %d", stub.calls)
	}
}

func TestScreenerLogsPreviewsWithCommonFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	stub := &stubGateway{response: "false"}
	screener := NewScreener(stub, nil, zap.New(core), 10)

	if _, err := screener.Match(context.Background(), strings.Repeat("cv ", 100), "job"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	requests := observed.FilterMessage("generate content request").All()
	if len(requests) != 1 {
		t.Fatalf("expected one request log entry, got %d", len(requests))
	}

	ctx := requests[0].ContextMap()
	if ctx[logger.FieldProvider] != "stub" || ctx[logger.FieldModel] != "stub-model" {
		t.Fatalf("expected common ai fields, got %v", ctx)
	}

	preview, _ := ctx["prompt_preview"].(string)
	if len([]rune(preview)) != 13 {
		t.Fatalf("expected a 10 rune preview plus ellipsis, got %q", preview)
	}
}
