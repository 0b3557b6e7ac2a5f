package api

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minjekim/QuizDesk/internal/markdown"
	"github.com/minjekim/QuizDesk/internal/parser"
	"github.com/minjekim/QuizDesk/internal/provider"
	"github.com/minjekim/QuizDesk/internal/study"
	"github.com/minjekim/QuizDesk/pkg/types"
)

// maxUploadBytes caps the multipart form held in memory
const maxUploadBytes = 32 << 20

// ProcessHandler handles PDF upload and study aid generation
type ProcessHandler struct {
	repo        *study.Repository
	parser      parser.Parser
	providerReg *provider.Registry
	llmName     string
	renderer    *markdown.Renderer
	generation  types.GenerationConfig
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(repo *study.Repository, p parser.Parser, providerReg *provider.Registry, llmName string, generation types.GenerationConfig) *ProcessHandler {
	return &ProcessHandler{
		repo:        repo,
		parser:      p,
		providerReg: providerReg,
		llmName:     llmName,
		renderer:    markdown.NewRenderer(),
		generation:  generation,
	}
}

// Process handles POST /api/process: extract text from the uploaded PDF,
// generate a summary and problems, persist the artifacts, and respond with
// everything the page needs to render the result
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondProcessError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondProcessError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		respondProcessError(w, "Upload a PDF file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		respondProcessError(w, "Only files with a .pdf extension are allowed", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondProcessError(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	log.Printf("[Process] Received %s (%d bytes)", header.Filename, len(data))

	ctx := r.Context()

	text, err := h.parser.Extract(ctx, data)
	if err != nil {
		respondProcessError(w, "Could not extract text from the PDF", http.StatusBadRequest)
		return
	}
	if h.generation.MaxTextChars > 0 && len(text) > h.generation.MaxTextChars {
		text = text[:h.generation.MaxTextChars]
	}

	llm, err := h.providerReg.GetLLM(h.llmName)
	if err != nil {
		respondProcessError(w, "No LLM provider configured", http.StatusInternalServerError)
		return
	}

	aids, err := llm.GenerateStudyAids(ctx, provider.GenerateRequest{
		Text:          text,
		BasicCount:    h.generation.BasicCount,
		AdvancedCount: h.generation.AdvancedCount,
		ChoiceCount:   h.generation.ChoiceCount,
	})
	if err != nil {
		log.Printf("[Process] Generation failed for %s: %v", header.Filename, err)
		respondProcessError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("[Process] Generated %d basic / %d advanced questions, summary %d chars",
		len(aids.Problems.Basic), len(aids.Problems.Advanced), len(aids.SummaryMarkdown))

	// Persist artifacts. A storage failure degrades the response (the URLs
	// stay empty) but the generated content is still returned to the page.
	tag := study.NewTag(time.Now())

	var problemsURL, summaryURL string
	problemsFile, err := h.repo.SaveProblemSet(ctx, tag, &aids.Problems)
	if err != nil {
		log.Printf("[Process] Failed to store problem set: %v", err)
	} else {
		problemsURL = "/data/problems/" + problemsFile
	}

	summaryFile, err := h.repo.SaveSummary(ctx, tag, aids.SummaryMarkdown)
	if err != nil {
		log.Printf("[Process] Failed to store summary: %v", err)
	} else {
		summaryURL = "/data/summaries/" + summaryFile
	}

	set := &types.StudySet{
		ID:             uuid.NewString(),
		SourceFilename: header.Filename,
		CreatedAt:      time.Now().UTC(),
		BasicCount:     len(aids.Problems.Basic),
		AdvancedCount:  len(aids.Problems.Advanced),
		ProblemsFile:   problemsFile,
		SummaryFile:    summaryFile,
	}
	if err := h.repo.SaveSet(ctx, set); err != nil {
		log.Printf("[Process] Failed to store study set record: %v", err)
	}

	summaryHTML, err := h.renderer.Render(aids.SummaryMarkdown)
	if err != nil {
		log.Printf("[Process] Failed to render summary: %v", err)
		summaryHTML = ""
	}

	respondJSON(w, types.ProcessResponse{
		OK:          true,
		Problems:    &aids.Problems,
		SummaryHTML: summaryHTML,
		ProblemsURL: problemsURL,
		SummaryURL:  summaryURL,
		SetID:       set.ID,
	}, http.StatusOK)
}
