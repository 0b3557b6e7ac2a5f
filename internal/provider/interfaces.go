package provider

import (
	"context"

	"github.com/minjekim/QuizDesk/pkg/types"
)

// LLMProvider defines the interface for LLM providers
type LLMProvider interface {
	// Name returns the provider name
	Name() string

	// GenerateStudyAids calls the LLM to produce a summary and practice
	// problems from extracted document text
	GenerateStudyAids(ctx context.Context, req GenerateRequest) (*types.StudyAids, error)

	// Close cleans up resources
	Close() error
}

// GenerateRequest contains the document text and generation parameters
type GenerateRequest struct {
	Text          string // Extracted document text (already capped by the caller)
	BasicCount    int    // Questions wanted in the basic bucket
	AdvancedCount int    // Questions wanted in the advanced bucket
	ChoiceCount   int    // Choices per question
}
