package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// OptionsPerQuestion is the number of answer options every question carries.
const OptionsPerQuestion = 4

// TargetSize is the number of questions requested from the model.
const TargetSize = 10

// Question is a single multiple-choice interview question.
type Question struct {
	Question      string   `json:"question" mapstructure:"question"`
	Options       []string `json:"options" mapstructure:"options"`
	CorrectAnswer int      `json:"correctAnswer" mapstructure:"correctAnswer"`
}

// Validate checks the shape of the question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question text is empty")
	}

	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("expected %d options, got %d", OptionsPerQuestion, len(q.Options))
	}

	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("correct answer index %d is out of range", q.CorrectAnswer)
	}

	return nil
}

// IsCorrect reports whether the selected option index is the correct one.
func (q Question) IsCorrect(selected int) bool {
	return selected == q.CorrectAnswer
}

// QuestionSet is an ordered, generated list of questions.
// It is not modified after it has been received from the model.
type QuestionSet []Question

func (s QuestionSet) Len() int {
	return len(s)
}

// Validate checks every question and rejects an empty set.
func (s QuestionSet) Validate() error {
	if len(s) == 0 {
		return errors.New("question set is empty")
	}

	for i, q := range s {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}

	return nil
}
