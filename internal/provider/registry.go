package provider

import (
	"fmt"
	"sync"

	"github.com/minjekim/QuizDesk/pkg/types"
)

// Registry manages provider instances
type Registry struct {
	llmProviders map[string]LLMProvider
	mu           sync.RWMutex
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		llmProviders: make(map[string]LLMProvider),
	}
}

// RegisterLLM registers an LLM provider
func (r *Registry) RegisterLLM(provider LLMProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.Name()
	if _, exists := r.llmProviders[name]; exists {
		return fmt.Errorf("LLM provider already registered: %s", name)
	}

	r.llmProviders[name] = provider
	return nil
}

// GetLLM retrieves an LLM provider by name
func (r *Registry) GetLLM(name string) (LLMProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.llmProviders[name]
	if !exists {
		return nil, fmt.Errorf("LLM provider not found: %s", name)
	}

	return provider, nil
}

// ListLLM returns all registered LLM provider names
func (r *Registry) ListLLM() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.llmProviders))
	for name := range r.llmProviders {
		names = append(names, name)
	}
	return names
}

// Close closes all registered providers
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, provider := range r.llmProviders {
		if err := provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close LLM provider %s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing providers: %v", errs)
	}

	return nil
}

// InitializeProviders creates provider instances from configuration.
// Providers without an endpoint/model fall back to the stub, so the server
// can start (and be tested) without upstream credentials.
func (r *Registry) InitializeProviders(cfg types.ProvidersConfig) error {
	for _, llmCfg := range cfg.LLM {
		if !llmCfg.Enabled {
			continue
		}

		var provider LLMProvider
		var err error
		if llmCfg.Endpoint != "" && llmCfg.Model != "" {
			provider, err = NewOpenAILLMProvider(llmCfg)
			if err != nil {
				return fmt.Errorf("failed to create OpenAI LLM provider %s: %w", llmCfg.Name, err)
			}
		} else {
			provider = NewStubLLMProvider(llmCfg)
		}
		if err := r.RegisterLLM(provider); err != nil {
			return err
		}
	}

	return nil
}
