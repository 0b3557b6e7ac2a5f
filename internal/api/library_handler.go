package api

import (
	"net/http"
	"strings"

	"github.com/minjekim/QuizDesk/internal/study"
)

// LibraryHandler serves the saved artifact listings and the artifact files
type LibraryHandler struct {
	repo *study.Repository
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(repo *study.Repository) *LibraryHandler {
	return &LibraryHandler{repo: repo}
}

// ListProblems handles GET /api/list/problems
func (h *LibraryHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	files, err := h.repo.ListProblemSets(r.Context())
	if err != nil {
		respondError(w, "Failed to list problem sets", http.StatusInternalServerError)
		return
	}

	respondJSON(w, files, http.StatusOK)
}

// ListSummaries handles GET /api/list/summaries
func (h *LibraryHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	files, err := h.repo.ListSummaries(r.Context())
	if err != nil {
		respondError(w, "Failed to list summaries", http.StatusInternalServerError)
		return
	}

	respondJSON(w, files, http.StatusOK)
}

// ServeProblemFile handles GET /data/problems/{name}
func (h *LibraryHandler) ServeProblemFile(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/data/problems/")
	data, err := h.repo.GetProblemSet(r.Context(), name)
	if err != nil {
		respondError(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(data)
}

// ServeSummaryFile handles GET /data/summaries/{name}
func (h *LibraryHandler) ServeSummaryFile(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/data/summaries/")
	data, err := h.repo.GetSummary(r.Context(), name)
	if err != nil {
		respondError(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write(data)
}
