package screening

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		tokens int
		expect string
	}{
		{name: "shorter than budget", input: "Go engineer", tokens: 10, expect: "Go engineer"},
		{name: "prefix cut mid-word", input: "Kubernetes", tokens: 1, expect: "Kube"},
		{name: "zero budget", input: "anything", tokens: 0, expect: ""},
		{name: "counts characters not bytes", input: "ééééé", tokens: 1, expect: "éééé"},
		{name: "exact fit", input: "abcdefgh", tokens: 2, expect: "abcdefgh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Truncate(tt.input, tt.tokens); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestTruncateIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "short", strings.Repeat("word ", 5000), strings.Repeat("履歴", 3000)}
	for _, input := range inputs {
		for _, tokens := range []int{0, 1, 7, 4000} {
			once := Truncate(input, tokens)
			if twice := Truncate(once, tokens); twice != once {
				t.Fatalf("truncation is not idempotent for budget %d", tokens)
			}
		}
	}
}

func TestFormatMatchPrompt(t *testing.T) {
	t.Parallel()

	prompt := NewFormatter(0).FormatMatchPrompt("Senior Engineer", "Looking for Engineer")

	if !strings.Contains(prompt, `Respond with only "true" for a match or "false" for no match.`) {
		t.Fatalf("expected true/false instruction, got: %s", prompt)
	}
	if !strings.Contains(prompt, "CV: Senior Engineer\n\nJob Description: Looking for Engineer") {
		t.Fatalf("expected inputs to be interpolated verbatim, got: %s", prompt)
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("unexpanded placeholder in prompt: %s", prompt)
	}
}

func TestFormatQuestionPrompt(t *testing.T) {
	t.Parallel()

	prompt := NewFormatter(0).FormatQuestionPrompt("cv text", "job text")

	for _, want := range []string{
		"generate 10 multiple-choice questions",
		`"correctAnswer": 0`,
		"Distribute the correct answers evenly",
		"CV: cv text",
		"Job Description: job text",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in prompt: %s", want, prompt)
		}
	}
}

func TestFormatterTruncatesEachInputToHalfBudget(t *testing.T) {
	t.Parallel()

	f := NewFormatter(8)
	cv := strings.Repeat("c", 100)
	job := strings.Repeat("j", 100)

	prompt := f.FormatMatchPrompt(cv, job)

	// 8 tokens split in two halves of 4 tokens, 16 characters each.
	if !strings.Contains(prompt, "CV: "+strings.Repeat("c", 16)+"\n") {
		t.Fatalf("cv not truncated to 16 characters: %s", prompt)
	}
	if !strings.HasSuffix(prompt, "Job Description: "+strings.Repeat("j", 16)) {
		t.Fatalf("job description not truncated to 16 characters: %s", prompt)
	}
}

func TestFormatterLeavesPlaceholdersInInputs(t *testing.T) {
	t.Parallel()

	prompt := NewFormatter(0).FormatMatchPrompt("{{JOB_DESCRIPTION}}", "{{CV}}")
	if !strings.Contains(prompt, "CV: {{JOB_DESCRIPTION}}") || !strings.Contains(prompt, "Job Description: {{CV}}") {
		t.Fatalf("inputs were not kept verbatim: %s", prompt)
	}
}
