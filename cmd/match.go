package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/extract"
	"github.com/spigell/cv-screener/internal/screening"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Check whether a CV matches a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
	addInputFlags(matchCmd)
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("cv", "", "CV file (plain text or PDF)")
	cmd.Flags().String("mime", "", "MIME type of the CV file. Detected from the content when unset.")
	cmd.Flags().String("job", "", "file with the job description, - for stdin")

	cmd.MarkFlagRequired("cv")
	cmd.MarkFlagRequired("job")
}

// loadInputs extracts the CV text and reads the job description named by the command flags.
func loadInputs(ctx context.Context, cmd *cobra.Command, logger *zap.Logger) (string, string) {
	cvPath, _ := cmd.Flags().GetString("cv")
	mimeType, _ := cmd.Flags().GetString("mime")
	jobPath, _ := cmd.Flags().GetString("job")

	cv, err := extract.New(logger).ExtractFile(ctx, cvPath, mimeType)
	if err != nil {
		logger.Fatal("extracting the cv", zap.String("path", cvPath), zap.Error(err))
	}

	job, err := readJobDescription(jobPath)
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err))
	}

	return cv, job
}

func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger, cfg := setup()

	screener, err := newScreener(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("building the screener", zap.Error(err))
	}

	cv, job := loadInputs(ctx, cmd, logger)

	decision, err := screener.Match(ctx, cv, job)
	if err != nil {
		logger.Fatal("matching the cv", zap.Error(err))
	}

	if decision == screening.Positive {
		successColor.Println("match")
		return
	}

	failureColor.Println("no match")
}
