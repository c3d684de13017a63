package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/config"
)

func TestReadJobDescription(t *testing.T) {
	dir := t.TempDir()

	job := filepath.Join(dir, "job.txt")
	if err := os.WriteFile(job, []byte("Looking for Engineer\n"), 0o600); err != nil {
		t.Fatalf("writing job file: %v", err)
	}

	got, err := readJobDescription(job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Looking for Engineer\n" {
		t.Fatalf("expected the file content verbatim, got %q", got)
	}

	blank := filepath.Join(dir, "blank.txt")
	if err := os.WriteFile(blank, []byte(" \n"), 0o600); err != nil {
		t.Fatalf("writing blank file: %v", err)
	}
	if _, err := readJobDescription(blank); err == nil {
		t.Fatal("expected an error for a blank job description")
	}

	if _, err := readJobDescription(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestNewGateway(t *testing.T) {
	ctx := context.Background()

	gateway, err := newGateway(ctx, config.AIConfig{
		Provider: config.ProviderOpenAI,
		APIKey:   "sk-test",
		Timeout:  config.DefaultTimeout,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gateway.Provider() != "openai" || gateway.Model() != "gpt-4" {
		t.Fatalf("unexpected gateway %s/%s", gateway.Provider(), gateway.Model())
	}

	if _, err := newGateway(ctx, config.AIConfig{Provider: "claude", APIKey: "key"}, zap.NewNop()); err == nil {
		t.Fatal("expected an error for an unsupported provider")
	}
}
