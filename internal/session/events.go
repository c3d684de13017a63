package session

import (
	"github.com/spigell/cv-screener/internal/extract"
	"github.com/spigell/cv-screener/internal/quiz"
	"github.com/spigell/cv-screener/internal/screening"
)

// Event is an input of the state machine: a user action or the completion of a Command.
type Event interface {
	event()
}

// Upload starts over with a new CV document. It is accepted in every state.
type Upload struct {
	Document extract.Document
}

// CVExtracted carries the text of the uploaded document.
type CVExtracted struct {
	Generation uint64
	Text       string
}

// ExtractFailed reports that the uploaded document could not be read.
type ExtractFailed struct {
	Generation uint64
	Err        error
}

// SubmitJob submits a job description for matching.
type SubmitJob struct {
	Text string
}

// MatchResolved carries the match decision for the given job description.
type MatchResolved struct {
	Generation     uint64
	JobDescription string
	Decision       screening.MatchDecision
}

// MatchFailed reports a failed match evaluation.
type MatchFailed struct {
	Generation uint64
	Err        error
}

// QuestionsReady carries the generated question set.
type QuestionsReady struct {
	Generation uint64
	Questions  quiz.QuestionSet
}

// QuestionsFailed reports a failed question generation.
type QuestionsFailed struct {
	Generation uint64
	Err        error
}

// Answer selects an option of the current question.
type Answer struct {
	Option int
}

func (Upload) event()          {}
func (CVExtracted) event()     {}
func (ExtractFailed) event()   {}
func (SubmitJob) event()       {}
func (MatchResolved) event()   {}
func (MatchFailed) event()     {}
func (QuestionsReady) event()  {}
func (QuestionsFailed) event() {}
func (Answer) event()          {}

// Command is a side effect requested by the state machine. Every command carries
// the generation it was issued for; its result is dropped if the generation moved on.
type Command interface {
	CommandGeneration() uint64
}

// ExtractCV asks for the text of an uploaded document.
type ExtractCV struct {
	Generation uint64
	Document   extract.Document
}

// EvaluateMatch asks the model whether the CV fits the job description.
type EvaluateMatch struct {
	Generation     uint64
	CV             string
	JobDescription string
}

// GenerateQuestions asks the model for the interview questions.
type GenerateQuestions struct {
	Generation     uint64
	CV             string
	JobDescription string
}

func (c ExtractCV) CommandGeneration() uint64         { return c.Generation }
func (c EvaluateMatch) CommandGeneration() uint64     { return c.Generation }
func (c GenerateQuestions) CommandGeneration() uint64 { return c.Generation }
