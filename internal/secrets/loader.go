package secrets

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

var (
	// ErrNotConfigured is returned when no source yields a value.
	ErrNotConfigured = errors.New("secret is not configured")
	// ErrPlaceholder is returned when the value is a template placeholder left unchanged.
	ErrPlaceholder = errors.New("secret is a placeholder")
)

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
	// Env names an environment variable consulted when neither File nor Value is set.
	Env string
	// Placeholders lists example values that must not be accepted as real secrets.
	Placeholders []string
}

// Load returns the resolved secret value from the provided source. The lookup
// order is File, Value, then Env. The returned secret is always trimmed. An
// error is returned when no source contains a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" && src.File == "" && src.Env != "" {
		secret = strings.TrimSpace(os.Getenv(src.Env))
	}

	if secret == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty: %w", name, src.File, ErrNotConfigured)
		}
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}

	if slices.Contains(src.Placeholders, secret) {
		return "", fmt.Errorf("%s: %w", name, ErrPlaceholder)
	}

	return secret, nil
}
