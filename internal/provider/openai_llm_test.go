package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/minjekim/QuizDesk/pkg/types"
)

func testLLMConfig(endpoint string) types.LLMProviderConfig {
	return types.LLMProviderConfig{
		Name:     "test-llm",
		Enabled:  true,
		Endpoint: endpoint,
		APIKey:   "test-key",
		Model:    "test-model",
	}
}

// completionServer returns an httptest server that answers every
// chat completion request with the given content string
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Expected bearer auth, got %q", got)
		}

		resp := chatCompletionResponse{
			Choices: []choice{
				{Message: message{Role: "assistant", Content: content}, FinishReason: "stop"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func sampleModelOutput() string {
	aids := types.StudyAids{
		SummaryMarkdown: "## Overview\n\nA short summary.",
		Problems: types.Problems{
			Basic: []types.QuizQuestion{
				{Question: "What is A?", Choices: []string{"a", "b", "c", "d"}, AnswerIndex: 1, Explanation: "Because."},
			},
			Advanced: []types.QuizQuestion{
				{Question: "Why is B?", Choices: []string{"a", "b", "c", "d"}, AnswerIndex: 3, Explanation: "Hence."},
			},
		},
	}
	data, _ := json.Marshal(aids)
	return string(data)
}

func TestNewOpenAILLMProvider(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		p, err := NewOpenAILLMProvider(testLLMConfig("http://localhost:9999/v1"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if p.Name() != "test-llm" {
			t.Errorf("Expected name test-llm, got %s", p.Name())
		}
	})

	t.Run("MissingEndpoint", func(t *testing.T) {
		cfg := testLLMConfig("")
		if _, err := NewOpenAILLMProvider(cfg); err == nil {
			t.Error("Expected error for missing endpoint")
		}
	})

	t.Run("MissingModel", func(t *testing.T) {
		cfg := testLLMConfig("http://localhost:9999/v1")
		cfg.Model = ""
		if _, err := NewOpenAILLMProvider(cfg); err == nil {
			t.Error("Expected error for missing model")
		}
	})
}

func TestGenerateStudyAids(t *testing.T) {
	req := GenerateRequest{Text: "Some document text.", BasicCount: 1, AdvancedCount: 1, ChoiceCount: 4}

	t.Run("Success", func(t *testing.T) {
		server := completionServer(t, sampleModelOutput())
		defer server.Close()

		p, err := NewOpenAILLMProvider(testLLMConfig(server.URL))
		if err != nil {
			t.Fatalf("Failed to create provider: %v", err)
		}

		aids, err := p.GenerateStudyAids(context.Background(), req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if aids.SummaryMarkdown == "" {
			t.Error("Expected non-empty summary")
		}
		if len(aids.Problems.Basic) != 1 || len(aids.Problems.Advanced) != 1 {
			t.Errorf("Expected 1 basic and 1 advanced question, got %d/%d",
				len(aids.Problems.Basic), len(aids.Problems.Advanced))
		}
		if aids.Problems.Basic[0].AnswerIndex != 1 {
			t.Errorf("Expected answer_index 1, got %d", aids.Problems.Basic[0].AnswerIndex)
		}
	})

	t.Run("FencedJSON", func(t *testing.T) {
		fenced := "Here is the result:\n```json\n" + sampleModelOutput() + "\n```"
		server := completionServer(t, fenced)
		defer server.Close()

		p, _ := NewOpenAILLMProvider(testLLMConfig(server.URL))
		aids, err := p.GenerateStudyAids(context.Background(), req)
		if err != nil {
			t.Fatalf("Unexpected error for fenced output: %v", err)
		}
		if aids.Problems.Total() != 2 {
			t.Errorf("Expected 2 questions, got %d", aids.Problems.Total())
		}
	})

	t.Run("APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`)
		}))
		defer server.Close()

		p, _ := NewOpenAILLMProvider(testLLMConfig(server.URL))
		_, err := p.GenerateStudyAids(context.Background(), req)
		if err == nil {
			t.Fatal("Expected error from API")
		}
		if !strings.Contains(err.Error(), "Incorrect API key provided") {
			t.Errorf("Expected API error message to propagate, got: %v", err)
		}
	})

	t.Run("NotJSON", func(t *testing.T) {
		server := completionServer(t, "I cannot produce that, sorry.")
		defer server.Close()

		p, _ := NewOpenAILLMProvider(testLLMConfig(server.URL))
		if _, err := p.GenerateStudyAids(context.Background(), req); err == nil {
			t.Error("Expected error for non-JSON output")
		}
	})
}

func TestParseGenerationResponse(t *testing.T) {
	t.Run("DropsInvalidQuestions", func(t *testing.T) {
		out := `{
			"summary_markdown": "## S",
			"problems": {
				"basic": [
					{"question": "ok?", "choices": ["a", "b"], "answer_index": 0, "explanation": "e"},
					{"question": "bad index", "choices": ["a", "b"], "answer_index": 5, "explanation": "e"},
					{"question": "", "choices": ["a", "b"], "answer_index": 0, "explanation": "e"}
				],
				"advanced": [
					{"question": "one choice", "choices": ["a"], "answer_index": 0, "explanation": "e"}
				]
			}
		}`
		aids, err := parseGenerationResponse(out)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(aids.Problems.Basic) != 1 {
			t.Errorf("Expected 1 valid basic question, got %d", len(aids.Problems.Basic))
		}
		if len(aids.Problems.Advanced) != 0 {
			t.Errorf("Expected 0 valid advanced questions, got %d", len(aids.Problems.Advanced))
		}
	})

	t.Run("MissingKeys", func(t *testing.T) {
		if _, err := parseGenerationResponse(`{"something": "else"}`); err == nil {
			t.Error("Expected error for output without required keys")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if _, err := parseGenerationResponse(""); err == nil {
			t.Error("Expected error for empty output")
		}
	})
}

func TestBuildGenerationPrompt(t *testing.T) {
	req := GenerateRequest{Text: "DOCTEXT", BasicCount: 15, AdvancedCount: 15, ChoiceCount: 4}
	prompt := buildGenerationPrompt(req)

	for _, want := range []string{"15 basic", "15 advanced", "exactly 4 choices", "summary_markdown", "answer_index", "DOCTEXT"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}
