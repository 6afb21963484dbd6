package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"

	FieldSeekerID = "seeker_id"
	FieldJobID    = "job_id"
	FieldOwnerID  = "owner_id"
)

// StringField is a key/value pair for StringFields.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts pairs into zap fields. Keys and values are trimmed and
// pairs with an empty side are dropped.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields describes the narration provider and model.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// SeekerFields identifies a job seeker in log entries.
func SeekerFields(seekerID string) []zap.Field {
	return StringFields(StringField{Key: FieldSeekerID, Value: seekerID})
}

// JobFields identifies a job posting and its owner. Empty values are skipped.
func JobFields(jobID, ownerID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldJobID, Value: jobID},
		StringField{Key: FieldOwnerID, Value: ownerID},
	)
}
