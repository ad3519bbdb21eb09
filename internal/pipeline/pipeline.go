// Package pipeline sequences the extraction stages for one resume:
// text extraction, prompt construction, provider invocation, validation.
// One call is one sequential execution with no shared mutable state, so any
// number of calls may run concurrently.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"resume-parser/internal/llm"
	"resume-parser/internal/models"
	"resume-parser/internal/prompt"
	"resume-parser/internal/validate"
)

// TextExtractor produces plain text from PDF bytes.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// ExtractionClient invokes the model provider with retry already applied.
type ExtractionClient interface {
	Extract(ctx context.Context, req prompt.Request) (json.RawMessage, error)
}

// Pipeline wires the stages together. Collaborators are injected once and
// never mutated afterwards.
type Pipeline struct {
	extractor TextExtractor
	client    ExtractionClient
}

// New builds a pipeline from its two effectful collaborators.
func New(extractor TextExtractor, client ExtractionClient) *Pipeline {
	return &Pipeline{extractor: extractor, client: client}
}

// Parse runs the full pipeline for one PDF. On success exactly one
// ParsedResume is returned; on failure the error is always a *Error tagged
// with the failing stage and category. Cancelling ctx aborts the in-flight
// provider call and its remaining retry budget.
func (p *Pipeline) Parse(ctx context.Context, data []byte) (*models.ParsedResume, error) {
	text, err := p.extractor.Extract(data)
	if err != nil {
		return nil, &Error{
			Stage:    StageExtraction,
			Category: CategoryInput,
			Message:  err.Error(),
			cause:    err,
		}
	}

	req := prompt.Build(text)

	raw, err := p.client.Extract(ctx, req)
	if err != nil {
		category := CategoryProviderUnavailable
		if errors.Is(err, llm.ErrAccessDenied) {
			category = CategoryAccessDenied
		}
		return nil, &Error{
			Stage:    StageProvider,
			Category: category,
			Message:  err.Error(),
			cause:    err,
		}
	}

	resume, err := validate.Resume(raw)
	if err != nil {
		perr := &Error{
			Stage:    StageValidation,
			Category: CategoryValidation,
			Message:  err.Error(),
			cause:    err,
		}
		var verr *validate.Error
		if errors.As(err, &verr) {
			perr.Message = "model output failed schema validation"
			perr.Violations = verr.Violations
			log.Printf("validation failed with %d violations", len(verr.Violations))
		}
		return nil, perr
	}

	return resume, nil
}
