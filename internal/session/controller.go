package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/extract"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/quiz"
	"github.com/spigell/cv-screener/internal/screening"
)

// Extractor turns an uploaded document into text.
type Extractor interface {
	Extract(ctx context.Context, doc extract.Document) (string, error)
}

// Screener produces match decisions and interview questions.
type Screener interface {
	Match(ctx context.Context, cv, job string) (screening.MatchDecision, error)
	Questions(ctx context.Context, cv, job string) (quiz.QuestionSet, error)
}

// Controller owns a session Machine and runs the commands it produces.
type Controller struct {
	id        string
	extractor Extractor
	screener  Screener
	logger    *zap.Logger

	mu      sync.Mutex
	machine Machine
}

func NewController(extractor Extractor, screener Screener, log *zap.Logger) *Controller {
	id := uuid.NewString()

	return &Controller{
		id:        id,
		extractor: extractor,
		screener:  screener,
		logger:    logger.WithSession(log, id),
	}
}

func (c *Controller) ID() string {
	return c.id
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() Machine {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.machine
	if c.machine.Match != nil {
		match := *c.machine.Match
		snapshot.Match = &match
	}

	return snapshot
}

// Handle applies the event and runs every resulting command to completion before returning.
// The returned error concerns the event itself; failures of the commands end up in the
// session message.
func (c *Controller) Handle(ctx context.Context, ev Event) error {
	queue, err := c.Apply(ev)
	if err != nil {
		return err
	}

	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]

		result := c.Execute(ctx, cmd)
		if result == nil {
			continue
		}

		more, err := c.Apply(result)
		if err != nil {
			return err
		}
		queue = append(queue, more...)
	}

	return nil
}

// Apply feeds a single event to the machine.
func (c *Controller) Apply(ev Event) ([]Command, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.machine.State
	generation := c.machine.Generation

	cmds, err := c.machine.Apply(ev)
	if err != nil {
		c.logger.Debug("event rejected",
			zap.String("event", eventName(ev)),
			zap.Stringer("state", from),
			zap.Error(err),
		)
		return nil, err
	}

	if c.machine.State != from || c.machine.Generation != generation {
		c.logger.Info("session transition",
			zap.String("event", eventName(ev)),
			zap.Stringer("from", from),
			zap.Stringer("to", c.machine.State),
			zap.Uint64("generation", c.machine.Generation),
		)
	}

	return cmds, nil
}

// Execute runs a command and returns the event carrying its result. Commands issued
// for a generation that is no longer current are skipped and yield no event.
// No lock is held while the command runs.
func (c *Controller) Execute(ctx context.Context, cmd Command) Event {
	if c.generation() != cmd.CommandGeneration() {
		c.logger.Debug("skipping stale command", zap.Uint64("generation", cmd.CommandGeneration()))
		return nil
	}

	switch cmd := cmd.(type) {
	case ExtractCV:
		text, err := c.extractor.Extract(ctx, cmd.Document)
		if err != nil {
			c.logger.Warn("cv extraction failed", zap.String("document", cmd.Document.Name), zap.Error(err))
			return ExtractFailed{Generation: cmd.Generation, Err: err}
		}
		return CVExtracted{Generation: cmd.Generation, Text: text}
	case EvaluateMatch:
		decision, err := c.screener.Match(ctx, cmd.CV, cmd.JobDescription)
		if err != nil {
			c.logger.Warn("match evaluation failed", zap.Error(err))
			return MatchFailed{Generation: cmd.Generation, Err: err}
		}
		return MatchResolved{Generation: cmd.Generation, JobDescription: cmd.JobDescription, Decision: decision}
	case GenerateQuestions:
		set, err := c.screener.Questions(ctx, cmd.CV, cmd.JobDescription)
		if err != nil {
			c.logger.Warn("question generation failed", zap.Error(err))
			return QuestionsFailed{Generation: cmd.Generation, Err: err}
		}
		return QuestionsReady{Generation: cmd.Generation, Questions: set}
	default:
		c.logger.Error("unknown command", zap.Any("command", cmd))
		return nil
	}
}

func (c *Controller) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Generation
}

func eventName(ev Event) string {
	switch ev.(type) {
	case Upload:
		return "upload"
	case CVExtracted:
		return "cv_extracted"
	case ExtractFailed:
		return "extract_failed"
	case SubmitJob:
		return "submit_job"
	case MatchResolved:
		return "match_resolved"
	case MatchFailed:
		return "match_failed"
	case QuestionsReady:
		return "questions_ready"
	case QuestionsFailed:
		return "questions_failed"
	case Answer:
		return "answer"
	default:
		return "unknown"
	}
}
