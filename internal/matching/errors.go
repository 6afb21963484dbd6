package matching

import "errors"

var (
	ErrPreferencesIncomplete = errors.New("please complete your preferences first")
	ErrJobPreferencesMissing = errors.New("please set candidate preferences for this job first")
	ErrJobNotFound           = errors.New("job not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrForbidden             = errors.New("operation is not allowed for this role")
	ErrNarratorUnavailable   = errors.New("failed to generate AI insights")
)
