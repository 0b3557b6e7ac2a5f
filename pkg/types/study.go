package types

import (
	"fmt"
	"time"
)

// QuizQuestion is a single multiple-choice question
type QuizQuestion struct {
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

// Validate checks that the question is well-formed: non-empty text,
// at least two choices, and an answer index that points into the choices.
func (q *QuizQuestion) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("question needs at least 2 choices, got %d", len(q.Choices))
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
		return fmt.Errorf("answer_index %d out of range [0,%d)", q.AnswerIndex, len(q.Choices))
	}
	return nil
}

// Problems holds the two fixed difficulty buckets
type Problems struct {
	Basic    []QuizQuestion `json:"basic"`
	Advanced []QuizQuestion `json:"advanced"`
}

// Total returns the number of questions across both buckets
func (p *Problems) Total() int {
	return len(p.Basic) + len(p.Advanced)
}

// StudyAids is the material generated from one document: a Markdown
// summary plus practice problems in two difficulty buckets
type StudyAids struct {
	SummaryMarkdown string   `json:"summary_markdown"`
	Problems        Problems `json:"problems"`
}

// StudySet records one generation run and the artifact names it produced
type StudySet struct {
	ID             string    `json:"id"`
	SourceFilename string    `json:"source_filename"`
	CreatedAt      time.Time `json:"created_at"`
	BasicCount     int       `json:"basic_count"`
	AdvancedCount  int       `json:"advanced_count"`
	ProblemsFile   string    `json:"problems_file"`
	SummaryFile    string    `json:"summary_file"`
}

// SavedFile is a stored artifact exposed through the list endpoints
type SavedFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProcessResponse is the JSON body returned by POST /api/process
type ProcessResponse struct {
	OK          bool      `json:"ok"`
	Error       string    `json:"error,omitempty"`
	Problems    *Problems `json:"problems,omitempty"`
	SummaryHTML string    `json:"summary_html,omitempty"`
	ProblemsURL string    `json:"problems_url,omitempty"`
	SummaryURL  string    `json:"summary_url,omitempty"`
	SetID       string    `json:"set_id,omitempty"`
}
