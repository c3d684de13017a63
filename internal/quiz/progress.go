package quiz

import (
	"errors"
	"fmt"
)

// PassScore is the number of correct answers needed to pass.
// It assumes a set of TargetSize questions and is not scaled to the actual set size.
const PassScore = 8

var (
	ErrQuizFinished   = errors.New("quiz is already finished")
	ErrInvalidAnswer  = errors.New("selected option is out of range")
	ErrEmptyQuestions = errors.New("no questions to answer")
)

// Progress tracks a run through a QuestionSet.
type Progress struct {
	Index int  `json:"index"`
	Score int  `json:"score"`
	Done  bool `json:"done"`
}

// Answer records the selected option for the current question and moves to the next one.
func (p *Progress) Answer(set QuestionSet, selected int) (bool, error) {
	if p.Done {
		return false, ErrQuizFinished
	}

	if len(set) == 0 {
		return false, ErrEmptyQuestions
	}

	if p.Index < 0 || p.Index >= len(set) {
		return false, fmt.Errorf("%w: question %d of %d", ErrQuizFinished, p.Index+1, len(set))
	}

	current := set[p.Index]
	if selected < 0 || selected >= len(current.Options) {
		return false, fmt.Errorf("%w: %d", ErrInvalidAnswer, selected)
	}

	correct := current.IsCorrect(selected)
	if correct {
		p.Score++
	}

	p.Index++
	if p.Index >= len(set) {
		p.Done = true
	}

	return correct, nil
}

// Current returns the question to be answered next.
func (p Progress) Current(set QuestionSet) (Question, bool) {
	if p.Done || p.Index < 0 || p.Index >= len(set) {
		return Question{}, false
	}
	return set[p.Index], true
}

// Passed reports whether the score reaches PassScore.
func (p Progress) Passed() bool {
	return p.Score >= PassScore
}
