package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/minjekim/QuizDesk/pkg/types"
)

const (
	defaultTimeout     = 120 * time.Second
	defaultTemperature = 0.4
	defaultMaxTokens   = 7000
)

// OpenAILLMProvider implements LLMProvider using OpenAI-compatible APIs
type OpenAILLMProvider struct {
	name       string
	config     types.LLMProviderConfig
	httpClient *http.Client
}

// NewOpenAILLMProvider creates a new OpenAI-compatible LLM provider
func NewOpenAILLMProvider(config types.LLMProviderConfig) (*OpenAILLMProvider, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required for OpenAI LLM provider")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required for OpenAI LLM provider")
	}

	timeout := defaultTimeout
	if timeoutStr, ok := config.Options["timeout"]; ok {
		var timeoutSec int
		if _, err := fmt.Sscanf(timeoutStr, "%d", &timeoutSec); err == nil && timeoutSec > 0 {
			timeout = time.Duration(timeoutSec) * time.Second
		}
	}

	return &OpenAILLMProvider{
		name:   config.Name,
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (o *OpenAILLMProvider) Name() string {
	return o.name
}

// GenerateStudyAids asks the model for a Markdown summary and two buckets of
// multiple-choice questions, then parses and validates the JSON it returns
func (o *OpenAILLMProvider) GenerateStudyAids(ctx context.Context, req GenerateRequest) (*types.StudyAids, error) {
	prompt := buildGenerationPrompt(req)

	content, err := o.callChatCompletion(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to call LLM API: %w", err)
	}

	aids, err := parseGenerationResponse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	return aids, nil
}

func (o *OpenAILLMProvider) Close() error {
	o.httpClient.CloseIdleConnections()
	return nil
}

// buildGenerationPrompt creates the exam-writer prompt for the LLM
func buildGenerationPrompt(req GenerateRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a university-level professor and exam writer. Based on the document text below, produce the following.\n\n")

	sb.WriteString("1. A study summary:\n")
	sb.WriteString("   - Organized paragraph by paragraph, as detailed as the source allows.\n")
	sb.WriteString("   - Structure: (a) a 3-5 line overview of the core topics, (b) key concepts, definitions, formulas and examples as itemized entries, (c) per-section key points and keyword lists, (d) common exam points and easily confused ideas, (e) a glossary table where useful.\n")
	sb.WriteString("   - Write it in clean Markdown: h2/h3 headings, lists, tables, and fenced code blocks where appropriate.\n\n")

	fmt.Fprintf(&sb, "2. Practice problems: %d basic and %d advanced multiple-choice questions, each with exactly %d choices.\n", req.BasicCount, req.AdvancedCount, req.ChoiceCount)
	sb.WriteString("   - Every choice must be grounded in the document; wrong choices should be plausible but clearly incorrect.\n")
	sb.WriteString("   - No duplicated wording across questions.\n")
	fmt.Fprintf(&sb, "   - Distribute correct answers evenly across indices 0 to %d.\n", req.ChoiceCount-1)
	sb.WriteString("   - Basic questions test definitions, concepts and comprehension; advanced questions test application, comparison, calculation and judgment.\n\n")

	sb.WriteString("Respond with ONLY a JSON object of exactly this shape (key names and types are strict):\n")
	sb.WriteString(`{
  "summary_markdown": "...Markdown here...",
  "problems": {
    "basic": [
      {"question": "...", "choices": ["...", "...", "...", "..."], "answer_index": 0, "explanation": "..."}
    ],
    "advanced": [
      {"question": "...", "choices": ["...", "...", "...", "..."], "answer_index": 0, "explanation": "..."}
    ]
  }
}`)
	sb.WriteString("\n\nDocument text:\n====\n")
	sb.WriteString(req.Text)
	sb.WriteString("\n====")

	return sb.String()
}

// OpenAI API structures
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Index        int     `json:"index"`
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// callChatCompletion calls the OpenAI-compatible chat completion endpoint
func (o *OpenAILLMProvider) callChatCompletion(ctx context.Context, prompt string) (string, error) {
	temperature := defaultTemperature
	if tempStr, ok := o.config.Options["temperature"]; ok {
		var temp float64
		if _, err := fmt.Sscanf(tempStr, "%f", &temp); err == nil {
			temperature = temp
		} else {
			log.Printf("[LLM-%s] Warning: Failed to parse temperature value '%s', ignoring", o.name, tempStr)
		}
	}

	maxTokens := defaultMaxTokens
	if tokStr, ok := o.config.Options["max_tokens"]; ok {
		var tok int
		if _, err := fmt.Sscanf(tokStr, "%d", &tok); err == nil && tok > 0 {
			maxTokens = tok
		}
	}

	reqBody := chatCompletionRequest{
		Model: o.config.Model,
		Messages: []message{
			{
				Role:    "system",
				Content: "You are a concise, accurate teaching assistant and exam writer.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := o.config.Endpoint
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	endpoint += "chat/completions"

	log.Printf("[LLM-%s] Request: POST %s", o.name, endpoint)
	log.Printf("[LLM-%s] Request payload: model=%s, temperature=%.2f, prompt_length=%d chars", o.name, o.config.Model, temperature, len(prompt))

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if o.config.APIKey != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.config.APIKey))
	}

	startTime := time.Now()
	resp, err := o.httpClient.Do(httpReq)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[LLM-%s] Request failed after %v: %v", o.name, duration, err)
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[LLM-%s] Response: %d %s (took %v)", o.name, resp.StatusCode, resp.Status, duration)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			log.Printf("[LLM-%s] API error: %s (type: %s, code: %s)", o.name, errResp.Error.Message, errResp.Error.Type, errResp.Error.Code)
			return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		log.Printf("[LLM-%s] API request failed: %s", o.name, truncateForLog(string(body), 500))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp chatCompletionResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in API response")
	}

	content := apiResp.Choices[0].Message.Content
	log.Printf("[LLM-%s] Response payload: tokens(prompt=%d, completion=%d, total=%d), finish_reason=%s",
		o.name, apiResp.Usage.PromptTokens, apiResp.Usage.CompletionTokens, apiResp.Usage.TotalTokens, apiResp.Choices[0].FinishReason)
	log.Printf("[LLM-%s] Response content (truncated): %s", o.name, truncateForLog(content, 500))

	return content, nil
}

// truncateForLog truncates a string for logging purposes
func truncateForLog(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

// parseGenerationResponse parses the LLM completion into StudyAids.
// Models sometimes wrap the JSON in code fences or add prose around it,
// so the object is located by its outermost braces before unmarshalling.
func parseGenerationResponse(response string) (*types.StudyAids, error) {
	response = strings.TrimSpace(response)

	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || startIdx >= endIdx {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	jsonStr := response[startIdx : endIdx+1]

	var aids types.StudyAids
	if err := json.Unmarshal([]byte(jsonStr), &aids); err != nil {
		return nil, fmt.Errorf("invalid JSON in model output: %w", err)
	}

	if aids.SummaryMarkdown == "" && aids.Problems.Total() == 0 {
		return nil, fmt.Errorf("model output missing required keys")
	}

	aids.Problems.Basic = validQuestions("basic", aids.Problems.Basic)
	aids.Problems.Advanced = validQuestions("advanced", aids.Problems.Advanced)
	if aids.Problems.Total() == 0 && aids.SummaryMarkdown == "" {
		return nil, fmt.Errorf("model output contained no usable content")
	}

	return &aids, nil
}

// validQuestions drops malformed questions, keeping the rest
func validQuestions(bucket string, questions []types.QuizQuestion) []types.QuizQuestion {
	kept := make([]types.QuizQuestion, 0, len(questions))
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			log.Printf("[LLM] Dropping invalid %s question %d: %v", bucket, i, err)
			continue
		}
		kept = append(kept, questions[i])
	}
	return kept
}
