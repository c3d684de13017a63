package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/cv-screener/internal/extract"
	"github.com/spigell/cv-screener/internal/quiz"
	"github.com/spigell/cv-screener/internal/screening"
)

var (
	ErrInvalidTransition   = errors.New("invalid session transition")
	ErrEmptyJobDescription = errors.New("job description is empty")
)

// MatchResult is a match decision together with the exact job description it was computed for.
type MatchResult struct {
	Decision       screening.MatchDecision `json:"decision"`
	JobDescription string                  `json:"job_description"`
}

// Machine is the state of one screening session. Apply is its only mutator and
// performs no I/O: side effects are returned as commands whose results come back as events.
type Machine struct {
	State State `json:"state"`
	// Generation grows on every upload and job submission. Results of commands
	// issued for an older generation are discarded.
	Generation     uint64           `json:"generation"`
	CV             string           `json:"cv,omitempty"`
	JobDescription string           `json:"job_description,omitempty"`
	Match          *MatchResult     `json:"match,omitempty"`
	Questions      quiz.QuestionSet `json:"questions,omitempty"`
	Progress       quiz.Progress    `json:"progress"`
	// Pending is set while questions are being generated.
	Pending bool   `json:"pending"`
	Message string `json:"message,omitempty"`
}

// Apply feeds an event to the machine and returns the commands to execute.
func (m *Machine) Apply(ev Event) ([]Command, error) {
	switch e := ev.(type) {
	case Upload:
		return m.upload(e), nil
	case CVExtracted:
		if m.stale(e.Generation) || m.State != Idle {
			return nil, nil
		}
		m.State = CVLoaded
		m.CV = e.Text
		m.Message = ""
		return nil, nil
	case ExtractFailed:
		if m.stale(e.Generation) || m.State != Idle {
			return nil, nil
		}
		m.Message = extractionMessage(e.Err)
		return nil, nil
	case SubmitJob:
		return m.submitJob(e)
	case MatchResolved:
		return m.matchResolved(e), nil
	case MatchFailed:
		if m.stale(e.Generation) || m.State != Matching {
			return nil, nil
		}
		m.State = CVLoaded
		m.Message = MatchErrorMessage
		return nil, nil
	case QuestionsReady:
		if m.stale(e.Generation) || m.State != Quizzing || !m.Pending {
			return nil, nil
		}
		if err := e.Questions.Validate(); err != nil {
			m.questionsFailed()
			return nil, nil
		}
		m.Questions = e.Questions
		m.Progress = quiz.Progress{}
		m.Pending = false
		return nil, nil
	case QuestionsFailed:
		if m.stale(e.Generation) || m.State != Quizzing || !m.Pending {
			return nil, nil
		}
		m.questionsFailed()
		return nil, nil
	case Answer:
		return nil, m.answer(e)
	default:
		return nil, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
	}
}

// upload discards the CV and every match or quiz result, including those still in flight.
func (m *Machine) upload(e Upload) []Command {
	*m = Machine{
		State:      Idle,
		Generation: m.Generation + 1,
	}

	return []Command{ExtractCV{Generation: m.Generation, Document: e.Document}}
}

func (m *Machine) submitJob(e SubmitJob) ([]Command, error) {
	switch m.State {
	case CVLoaded, Rejected, Scored:
	default:
		return nil, fmt.Errorf("%w: cannot submit a job description while %s", ErrInvalidTransition, m.State)
	}

	if strings.TrimSpace(e.Text) == "" {
		return nil, ErrEmptyJobDescription
	}

	m.Generation++
	m.State = Matching
	m.JobDescription = e.Text
	m.Match = nil
	m.Questions = nil
	m.Progress = quiz.Progress{}
	m.Pending = false
	m.Message = ""

	return []Command{EvaluateMatch{
		Generation:     m.Generation,
		CV:             m.CV,
		JobDescription: m.JobDescription,
	}}, nil
}

func (m *Machine) matchResolved(e MatchResolved) []Command {
	if m.stale(e.Generation) || m.State != Matching || e.JobDescription != m.JobDescription {
		return nil
	}

	m.Match = &MatchResult{Decision: e.Decision, JobDescription: e.JobDescription}

	if e.Decision != screening.Positive {
		m.State = Rejected
		m.Message = RejectionMessage
		return nil
	}

	m.State = Quizzing
	m.Pending = true

	return []Command{GenerateQuestions{
		Generation:     m.Generation,
		CV:             m.CV,
		JobDescription: m.JobDescription,
	}}
}

func (m *Machine) questionsFailed() {
	m.State = CVLoaded
	m.Pending = false
	m.Match = nil
	m.Questions = nil
	m.Message = QuestionsErrorMessage
}

func (m *Machine) answer(e Answer) error {
	if m.State != Quizzing || m.Pending {
		return fmt.Errorf("%w: no question to answer while %s", ErrInvalidTransition, m.State)
	}

	if _, err := m.Progress.Answer(m.Questions, e.Option); err != nil {
		return err
	}

	if m.Progress.Done {
		m.State = Scored
		m.Message = FailMessage
		if m.Progress.Passed() {
			m.Message = PassMessage
		}
	}

	return nil
}

func (m *Machine) stale(generation uint64) bool {
	return generation != m.Generation
}

// CurrentQuestion returns the question waiting for an answer.
func (m *Machine) CurrentQuestion() (quiz.Question, bool) {
	if m.State != Quizzing || m.Pending {
		return quiz.Question{}, false
	}
	return m.Progress.Current(m.Questions)
}

func extractionMessage(err error) string {
	if errors.Is(err, extract.ErrUnsupportedFormat) {
		return UnsupportedFileMessage
	}
	return ExtractionErrorMessage
}
