// Package study persists generated artifacts (problem sets, summaries and
// study set metadata) through a storage adapter.
package study

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/minjekim/QuizDesk/internal/storage"
	"github.com/minjekim/QuizDesk/pkg/types"
)

const (
	problemsPrefix  = "problems/"
	summariesPrefix = "summaries/"
	setsPrefix      = "sets/"

	tagLayout = "20060102-150405"
)

// Repository stores and lists study artifacts
type Repository struct {
	storage storage.Adapter
}

// NewRepository creates a repository over the given storage adapter
func NewRepository(adapter storage.Adapter) *Repository {
	return &Repository{storage: adapter}
}

// NewTag returns a filename tag for artifacts created at t
func NewTag(t time.Time) string {
	return t.Format(tagLayout)
}

// SaveProblemSet writes the problems as indented JSON and returns the
// artifact name (problems_<tag>.json)
func (r *Repository) SaveProblemSet(ctx context.Context, tag string, problems *types.Problems) (string, error) {
	data, err := json.MarshalIndent(problems, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal problems: %w", err)
	}

	name := fmt.Sprintf("problems_%s.json", tag)
	if err := r.storage.Put(ctx, problemsPrefix+name, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to store problem set: %w", err)
	}

	return name, nil
}

// SaveSummary writes the raw Markdown and returns the artifact name
// (summary_<tag>.md)
func (r *Repository) SaveSummary(ctx context.Context, tag string, markdown string) (string, error) {
	name := fmt.Sprintf("summary_%s.md", tag)
	if err := r.storage.Put(ctx, summariesPrefix+name, strings.NewReader(markdown)); err != nil {
		return "", fmt.Errorf("failed to store summary: %w", err)
	}

	return name, nil
}

// SaveSet writes the study set metadata under sets/<id>.json
func (r *Repository) SaveSet(ctx context.Context, set *types.StudySet) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal study set: %w", err)
	}

	if err := r.storage.Put(ctx, setsPrefix+set.ID+".json", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to store study set: %w", err)
	}

	return nil
}

// ListProblemSets returns saved problem set files, newest first
func (r *Repository) ListProblemSets(ctx context.Context) ([]types.SavedFile, error) {
	return r.listArtifacts(ctx, problemsPrefix, "problems_", ".json", "/data/problems/")
}

// ListSummaries returns saved summary files, newest first
func (r *Repository) ListSummaries(ctx context.Context) ([]types.SavedFile, error) {
	return r.listArtifacts(ctx, summariesPrefix, "summary_", ".md", "/data/summaries/")
}

// listArtifacts lists a prefix and keeps only well-formed artifact names.
// Names embed a timestamp tag, so a descending sort orders newest first.
func (r *Repository) listArtifacts(ctx context.Context, prefix, namePrefix, ext, urlBase string) ([]types.SavedFile, error) {
	paths, err := r.storage.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		name := strings.TrimPrefix(p, prefix)
		if validArtifactName(name, namePrefix, ext) {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	files := make([]types.SavedFile, 0, len(names))
	for _, name := range names {
		files = append(files, types.SavedFile{Name: name, URL: urlBase + name})
	}
	return files, nil
}

// GetProblemSet reads a problem set artifact by name
func (r *Repository) GetProblemSet(ctx context.Context, name string) ([]byte, error) {
	if !validArtifactName(name, "problems_", ".json") {
		return nil, fmt.Errorf("invalid problem set name: %s", name)
	}
	return r.readAll(ctx, problemsPrefix+name)
}

// GetSummary reads a summary artifact by name
func (r *Repository) GetSummary(ctx context.Context, name string) ([]byte, error) {
	if !validArtifactName(name, "summary_", ".md") {
		return nil, fmt.Errorf("invalid summary name: %s", name)
	}
	return r.readAll(ctx, summariesPrefix+name)
}

func (r *Repository) readAll(ctx context.Context, path string) ([]byte, error) {
	reader, err := r.storage.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

// validArtifactName checks the fixed prefix, extension and tag charset.
// Rejecting separators keeps request paths from escaping the prefix.
func validArtifactName(name, prefix, ext string) bool {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return false
	}

	tag := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
	if tag == "" {
		return false
	}
	for _, c := range tag {
		switch {
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
