package screening

import (
	"strconv"
	"strings"

	_ "embed"

	"github.com/spigell/cv-screener/internal/quiz"
)

// DefaultTokenBudget is shared by the CV and the job description of a single prompt.
const DefaultTokenBudget = 8000

// charsPerToken is a rough estimate used to turn a token budget into characters.
const charsPerToken = 4

//go:embed match_prompt.md
var matchTemplate string

//go:embed questions_prompt.md
var questionsTemplate string

// Formatter embeds a CV and a job description into the prompt templates.
type Formatter struct {
	tokenBudget int
}

// NewFormatter returns a Formatter. A non-positive budget selects DefaultTokenBudget.
func NewFormatter(tokenBudget int) *Formatter {
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	return &Formatter{tokenBudget: tokenBudget}
}

// FormatMatchPrompt builds the prompt asking for a true/false match decision.
func (f *Formatter) FormatMatchPrompt(cv, job string) string {
	return f.render(matchTemplate, cv, job)
}

// FormatQuestionPrompt builds the prompt asking for the interview questions.
func (f *Formatter) FormatQuestionPrompt(cv, job string) string {
	template := strings.ReplaceAll(questionsTemplate, "{{QUESTION_COUNT}}", strconv.Itoa(quiz.TargetSize))
	return f.render(template, cv, job)
}

// render splices the truncated inputs into the template verbatim; placeholders
// appearing inside the inputs are not expanded.
func (f *Formatter) render(template, cv, job string) string {
	template = strings.TrimSpace(template)
	half := f.tokenBudget / 2
	cv = Truncate(cv, half)
	job = Truncate(job, half)

	jobIdx := strings.Index(template, "{{JOB_DESCRIPTION}}")
	cvIdx := strings.Index(template, "{{CV}}")

	var b strings.Builder
	b.Grow(len(template) + len(cv) + len(job))
	b.WriteString(template[:cvIdx])
	b.WriteString(cv)
	b.WriteString(template[cvIdx+len("{{CV}}") : jobIdx])
	b.WriteString(job)
	b.WriteString(template[jobIdx+len("{{JOB_DESCRIPTION}}"):])

	return b.String()
}

// Truncate keeps at most tokens*4 characters of text. The cut is a plain prefix
// and may fall in the middle of a word.
func Truncate(text string, tokens int) string {
	limit := tokens * charsPerToken
	if limit <= 0 {
		return ""
	}

	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}

	return text
}
