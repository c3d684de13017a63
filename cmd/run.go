package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/extract"
	"github.com/spigell/cv-screener/internal/session"
)

const (
	PromptNewJob   = "Submit another job description"
	PromptUploadCV = "Upload another CV"
	PromptExit     = "Exit"
)

var errExit = errors.New("exit requested")

var (
	successColor = color.New(color.FgGreen, color.Bold)
	failureColor = color.New(color.FgRed, color.Bold)
	noticeColor  = color.New(color.FgYellow)
)

var nextPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptNewJob, PromptUploadCV, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("cv", "", "CV file to screen (plain text or PDF)")
	runCmd.Flags().String("mime", "", "MIME type of the CV file. Detected from the content when unset.")
	runCmd.Flags().String("job", "", "file with the first job description, - for stdin. Asked interactively when unset.")

	runCmd.MarkFlagRequired("cv")
}

// run is the interactive screening session.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, cfg := setup()

	screener, err := newScreener(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("building the screener", zap.Error(err))
	}

	ctrl := session.NewController(extract.New(logger), screener, logger)
	logger.Debug("session started", zap.String("session_id", ctrl.ID()))

	mimeType, _ := cmd.Flags().GetString("mime")
	cvPath, _ := cmd.Flags().GetString("cv")
	jobPath, _ := cmd.Flags().GetString("job")

	for !upload(ctx, ctrl, cvPath, mimeType, logger) {
		if cvPath, err = askCVPath(); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	job := ""
	if jobPath != "" {
		if job, err = readJobDescription(jobPath); err != nil {
			logger.Fatal("reading the job description", zap.Error(err))
		}
	}

	action := PromptNewJob
	for {
		if err := handleAction(ctx, action, ctrl, &job, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		_, action, err = nextPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, ctrl *session.Controller, job *string, logger *zap.Logger) error {
	switch action {
	case PromptNewJob:
		text := *job
		*job = ""
		return screen(ctx, ctrl, text)
	case PromptUploadCV:
		path, err := askCVPath()
		if err != nil {
			return err
		}
		upload(ctx, ctrl, path, "", logger)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// upload replaces the session CV and reports whether its text could be extracted.
func upload(ctx context.Context, ctrl *session.Controller, path, mimeType string, logger *zap.Logger) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("reading the cv file", zap.String("path", path), zap.Error(err))
		noticeColor.Println(session.ExtractionErrorMessage)
		return false
	}

	if err := ctrl.Handle(ctx, session.Upload{Document: extract.NewDocument(path, data, mimeType)}); err != nil {
		logger.Warn("uploading the cv", zap.Error(err))
		return false
	}

	snap := ctrl.Snapshot()
	if snap.State != session.CVLoaded {
		noticeColor.Println(snap.Message)
		return false
	}

	fmt.Printf("CV loaded: %s (%d characters)\n", path, len([]rune(snap.CV)))
	return true
}

// screen matches the CV against a job description and runs the quiz on a match.
func screen(ctx context.Context, ctrl *session.Controller, job string) error {
	if ctrl.Snapshot().State == session.Idle {
		noticeColor.Println("Upload a CV first.")
		return nil
	}

	var err error
	if strings.TrimSpace(job) == "" {
		if job, err = askJobDescription(); err != nil {
			return err
		}
	}

	fmt.Println("Analyzing...")
	if err := ctrl.Handle(ctx, session.SubmitJob{Text: job}); err != nil {
		return err
	}

	snap := ctrl.Snapshot()
	switch snap.State {
	case session.Rejected:
		failureColor.Println(snap.Message)
		return nil
	case session.Quizzing:
		successColor.Println("The CV matches the job description. Answer the interview questions.")
		return quiz(ctx, ctrl)
	default:
		noticeColor.Println(snap.Message)
		return nil
	}
}

func quiz(ctx context.Context, ctrl *session.Controller) error {
	for {
		snap := ctrl.Snapshot()

		q, ok := snap.CurrentQuestion()
		if !ok {
			break
		}

		selectPrompt := promptui.Select{
			Label: fmt.Sprintf("Question %d of %d: %s", snap.Progress.Index+1, snap.Questions.Len(), q.Question),
			Items: q.Options,
		}

		option, _, err := selectPrompt.Run()
		if err != nil {
			return err
		}

		if err := ctrl.Handle(ctx, session.Answer{Option: option}); err != nil {
			return err
		}
	}

	snap := ctrl.Snapshot()
	if snap.State != session.Scored {
		return nil
	}

	fmt.Println(session.ScoreLine(snap.Progress.Score, snap.Questions.Len()))
	if snap.Progress.Passed() {
		successColor.Println(snap.Message)
	} else {
		failureColor.Println(snap.Message)
	}

	return nil
}

func askJobDescription() (string, error) {
	prompt := promptui.Prompt{
		Label: "Job description",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return session.ErrEmptyJobDescription
			}
			return nil
		},
	}

	return prompt.Run()
}

func askCVPath() (string, error) {
	prompt := promptui.Prompt{
		Label: "CV file",
		Validate: func(input string) error {
			info, err := os.Stat(strings.TrimSpace(input))
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", input)
			}
			return nil
		},
	}

	path, err := prompt.Run()
	return strings.TrimSpace(path), err
}
