package ai

import (
	"context"
	"fmt"
)

// CallOptions tunes a single completion request.
type CallOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

var (
	// MatchCall leans deterministic and leaves room for a single word.
	MatchCall = CallOptions{Temperature: 0.3, MaxOutputTokens: 10}
	// QuestionCall is sized for about ten structured questions.
	QuestionCall = CallOptions{Temperature: 0.7, MaxOutputTokens: 2000}
)

// Gateway sends a prompt to a language model and returns its raw text answer.
// A failed call is returned as is; callers decide whether to try again.
type Gateway interface {
	Complete(ctx context.Context, prompt string, opts CallOptions) (string, error)
	Provider() string
	Model() string
}

// GatewayError wraps any failure talking to the model provider, such as transport
// errors, rejected credentials and non-success statuses. An empty answer is not a failure.
type GatewayError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s gateway: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s gateway: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
