package pipeline

import (
	"fmt"

	"resume-parser/internal/validate"
)

// Category is the failure class a caller can branch on without parsing
// message text.
type Category string

const (
	CategoryInput               Category = "input_error"
	CategoryProviderUnavailable Category = "provider_unavailable"
	CategoryAccessDenied        Category = "access_denied"
	CategoryValidation          Category = "validation_failure"
)

// Stage names which pipeline stage produced a failure.
type Stage string

const (
	StageExtraction Stage = "extraction"
	StagePrompt     Stage = "prompt"
	StageProvider   Stage = "provider"
	StageValidation Stage = "validation"
)

// Error is the categorized failure the pipeline returns. Violations is
// populated only for validation failures.
type Error struct {
	Stage      Stage
	Category   Category
	Message    string
	Violations []validate.Violation
	cause      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s stage: %s", e.Stage, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }
