package screening

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/cv-screener/internal/quiz"
)

// ErrMalformedResponse is returned when the model output does not have the expected shape.
var ErrMalformedResponse = errors.New("malformed model response")

// MatchDecision is the interpreted answer of the match prompt.
type MatchDecision int

const (
	Negative MatchDecision = iota
	Positive
)

func (d MatchDecision) String() string {
	if d == Positive {
		return "positive"
	}
	return "negative"
}

// ParseMatch returns Positive only when the trimmed, lower-cased output is exactly "true".
// Any other output, malformed or not, is Negative and never an error.
func ParseMatch(raw string) MatchDecision {
	if strings.ToLower(strings.TrimSpace(raw)) == "true" {
		return Positive
	}
	return Negative
}

var requiredQuestionFields = []string{"question", "options", "correctAnswer"}

// ParseQuestions decodes a JSON array of questions. Nothing is returned unless
// every element is well formed.
func ParseQuestions(raw string) (quiz.QuestionSet, error) {
	decoder := json.NewDecoder(strings.NewReader(extractJSON(raw)))
	decoder.UseNumber()

	var items []any
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if decoder.More() {
		return nil, fmt.Errorf("%w: unexpected data after the question list", ErrMalformedResponse)
	}

	set := make(quiz.QuestionSet, 0, len(items))
	for i, item := range items {
		q, err := decodeQuestion(item)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %w", ErrMalformedResponse, i, err)
		}
		set = append(set, q)
	}

	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return set, nil
}

func decodeQuestion(item any) (quiz.Question, error) {
	fields, ok := item.(map[string]any)
	if !ok {
		return quiz.Question{}, fmt.Errorf("expected an object, got %T", item)
	}

	// A null value would decode to the zero value, so it counts as missing.
	if missing := missingFields(fields); len(missing) > 0 {
		return quiz.Question{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	var q quiz.Question
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &q,
	})
	if err != nil {
		return quiz.Question{}, err
	}

	if err := decoder.Decode(fields); err != nil {
		return quiz.Question{}, err
	}

	return q, nil
}

func missingFields(fields map[string]any) []string {
	var missing []string
	for _, name := range requiredQuestionFields {
		if value, ok := fields[name]; !ok || value == nil {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// extractJSON strips a Markdown code fence wrapped around the payload.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
