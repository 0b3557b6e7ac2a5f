// Package web serves the browser UI from embedded templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler renders the UI pages
type Handler struct {
	templates        *template.Template
	apiKeyConfigured bool
}

// NewHandler parses the embedded templates. apiKeyConfigured controls the
// warning banner on the upload page.
func NewHandler(apiKeyConfigured bool) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handler{
		templates:        tmpl,
		apiKeyConfigured: apiKeyConfigured,
	}, nil
}

type pageData struct {
	APIKeyConfigured bool
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, "index.html")
}

// Problems handles GET /problems
func (h *Handler) Problems(w http.ResponseWriter, r *http.Request) {
	h.render(w, "problems.html")
}

// Summaries handles GET /summaries
func (h *Handler) Summaries(w http.ResponseWriter, r *http.Request) {
	h.render(w, "summaries.html")
}

func (h *Handler) render(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, pageData{APIKeyConfigured: h.apiKeyConfigured}); err != nil {
		log.Printf("[Web] Failed to render %s: %v", name, err)
	}
}
