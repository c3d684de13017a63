package session

import "fmt"

// User-facing messages shown next to the control that triggered the operation.
const (
	RejectionMessage       = "The CV does not match the job description. Please try with a different CV or job description."
	MatchErrorMessage      = "An error occurred while matching the job. Please check your API key and try again."
	QuestionsErrorMessage  = "An error occurred while generating interview questions. Please submit the job description again."
	ExtractionErrorMessage = "Failed to read file content"
	UnsupportedFileMessage = "Unsupported file type. Please upload a plain text or PDF file."
	PassMessage            = "Great job! You passed the test."
	FailMessage            = "You didn't pass. Please try again later."
)

// ScoreLine renders the final score.
func ScoreLine(score, total int) string {
	return fmt.Sprintf("Your Score: %d out of %d", score, total)
}
