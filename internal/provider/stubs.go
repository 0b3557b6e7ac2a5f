package provider

import (
	"context"
	"fmt"

	"github.com/minjekim/QuizDesk/pkg/types"
)

// StubLLMProvider is a stub implementation of LLMProvider for testing and
// for running the server without an API key
type StubLLMProvider struct {
	name   string
	config types.LLMProviderConfig
}

// NewStubLLMProvider creates a new stub LLM provider
func NewStubLLMProvider(config types.LLMProviderConfig) *StubLLMProvider {
	return &StubLLMProvider{
		name:   config.Name,
		config: config,
	}
}

func (s *StubLLMProvider) Name() string {
	return s.name
}

// GenerateStudyAids returns a deterministic result sized by the request
func (s *StubLLMProvider) GenerateStudyAids(ctx context.Context, req GenerateRequest) (*types.StudyAids, error) {
	return &types.StudyAids{
		SummaryMarkdown: "## Overview\n\nStub summary generated without an LLM.\n",
		Problems: types.Problems{
			Basic:    stubQuestions("basic", req.BasicCount, req.ChoiceCount),
			Advanced: stubQuestions("advanced", req.AdvancedCount, req.ChoiceCount),
		},
	}, nil
}

func (s *StubLLMProvider) Close() error {
	return nil
}

func stubQuestions(bucket string, count, choices int) []types.QuizQuestion {
	if choices < 2 {
		choices = 2
	}
	questions := make([]types.QuizQuestion, 0, count)
	for i := 0; i < count; i++ {
		q := types.QuizQuestion{
			Question:    fmt.Sprintf("Stub %s question %d?", bucket, i+1),
			Choices:     make([]string, choices),
			AnswerIndex: i % choices,
			Explanation: fmt.Sprintf("Stub explanation for %s question %d.", bucket, i+1),
		}
		for c := 0; c < choices; c++ {
			q.Choices[c] = fmt.Sprintf("Choice %d", c+1)
		}
		questions = append(questions, q)
	}
	return questions
}
