package server

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/matching"
)

// AppError is an error with the HTTP status and message it should be reported with.
type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(status int, message string, cause error) *AppError {
	return &AppError{StatusCode: status, Message: message, Cause: cause}
}

// serviceErrors maps service sentinels to responses. Order matters only for
// errors that wrap more than one sentinel.
var serviceErrors = []struct {
	target  error
	status  int
	message string
}{
	{matching.ErrPreferencesIncomplete, fiber.StatusBadRequest, "Please complete your preferences first"},
	{matching.ErrJobPreferencesMissing, fiber.StatusBadRequest, "Please set candidate preferences for this job first"},
	{matching.ErrForbidden, fiber.StatusForbidden, messageForbidden},
	{matching.ErrJobNotFound, fiber.StatusNotFound, "Job not found"},
	{matching.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{matching.ErrNarratorUnavailable, fiber.StatusServiceUnavailable, "Failed to generate AI insights"},
}

func toAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, known := range serviceErrors {
		if errors.Is(err, known.target) {
			return NewAppError(known.status, known.message, err)
		}
	}

	if errors.Is(err, marketplace.ErrInvalid) {
		return NewAppError(fiber.StatusBadRequest, err.Error(), nil)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return NewAppError(fiberErr.Code, fiberErr.Message, nil)
	}

	return NewAppError(fiber.StatusInternalServerError, messageInternalServerError, err)
}

// errorMiddleware renders handler errors and panics as envelopes.
func errorMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.String("path", c.Path()), zap.Any("panic", r))
				err = respond(c, fiber.StatusInternalServerError, messageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		appErr := toAppError(err)
		status := appErr.StatusCode
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		message := appErr.Message
		if status == fiber.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			message = messageInternalServerError
		}
		if message == "" {
			message = defaultMessageForStatus(status)
		}

		return respond(c, status, message, nil)
	}
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return messageBadRequest
	case fiber.StatusUnauthorized:
		return messageUnauthorized
	case fiber.StatusForbidden:
		return messageForbidden
	case fiber.StatusNotFound:
		return messageNotFound
	default:
		return fmt.Sprintf("request failed with status %d", status)
	}
}
