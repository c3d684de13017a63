package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldSessionID = "session_id"
)

// stringFields builds zap string fields from key/value pairs. Values are trimmed
// and pairs with an empty value are dropped to keep entries compact.
func stringFields(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		value := strings.TrimSpace(pairs[i+1])
		if value == "" {
			continue
		}
		fields = append(fields, zap.String(pairs[i], value))
	}

	return fields
}

// WithFields attaches fields to the logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the inference provider and model.
func CommonFields(provider, model string) []zap.Field {
	return stringFields(FieldProvider, provider, FieldModel, model)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// WithSession tags every entry with the screening session identifier.
func WithSession(logger *zap.Logger, sessionID string) *zap.Logger {
	return WithFields(logger, stringFields(FieldSessionID, sessionID)...)
}
