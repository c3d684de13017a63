package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate interview questions for a CV and a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		questions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
	addInputFlags(questionsCmd)

	questionsCmd.Flags().StringP("output", "o", "", "write the questions to a file instead of stdout")
}

func questions(cmd *cobra.Command) {
	ctx := context.Background()

	logger, cfg := setup()

	screener, err := newScreener(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("building the screener", zap.Error(err))
	}

	cv, job := loadInputs(ctx, cmd, logger)

	set, err := screener.Questions(ctx, cv, job)
	if err != nil {
		logger.Fatal("generating questions", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		logger.Fatal("encoding questions", zap.Error(err))
	}
	pretty = append(pretty, '\n')

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		os.Stdout.Write(pretty)
		return
	}

	if err := os.WriteFile(output, pretty, 0o644); err != nil {
		logger.Fatal("writing questions", zap.String("filename", output), zap.Error(err))
	}

	logger.Info("questions written", zap.String("filename", output), zap.Int("count", set.Len()))
}
