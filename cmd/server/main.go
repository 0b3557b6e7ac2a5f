package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minjekim/QuizDesk/internal/api"
	"github.com/minjekim/QuizDesk/internal/config"
	"github.com/minjekim/QuizDesk/internal/health"
	"github.com/minjekim/QuizDesk/internal/parser"
	"github.com/minjekim/QuizDesk/internal/provider"
	"github.com/minjekim/QuizDesk/internal/storage"
	"github.com/minjekim/QuizDesk/internal/study"
	"github.com/minjekim/QuizDesk/internal/web"
	"github.com/minjekim/QuizDesk/pkg/types"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/dev.example.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting QuizDesk Server v%s", version)
	log.Printf("Configuration loaded from: %s", *configPath)

	// Initialize storage adapter
	storageAdapter, err := storage.NewAdapter(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to create storage adapter: %v", err)
	}
	defer storageAdapter.Close()
	log.Printf("Storage adapter initialized: %s", cfg.Storage.Adapter)

	// Initialize provider registry
	providerRegistry := provider.NewRegistry()
	if err := providerRegistry.InitializeProviders(cfg.Providers); err != nil {
		log.Fatalf("Failed to initialize providers: %v", err)
	}
	defer providerRegistry.Close()
	log.Printf("Providers initialized: %v", providerRegistry.ListLLM())

	llmName, apiKeyConfigured := activeLLM(cfg.Providers)
	if llmName == "" {
		log.Fatalf("No enabled LLM provider in configuration")
	}
	if !apiKeyConfigured {
		log.Printf("Warning: provider %s has no API key configured", llmName)
	}

	// Initialize artifact repository and PDF parser
	repo := study.NewRepository(storageAdapter)
	pdfParser := parser.NewPDFParser()

	// Initialize health checks
	healthHandler := health.NewHandler(version)

	healthHandler.Register("storage", func(ctx context.Context) (health.Status, error) {
		if _, err := storageAdapter.Exists(ctx, ".healthcheck"); err != nil {
			return health.StatusUnhealthy, err
		}
		return health.StatusHealthy, nil
	})

	healthHandler.Register("providers", func(ctx context.Context) (health.Status, error) {
		if len(providerRegistry.ListLLM()) == 0 {
			return health.StatusDegraded, fmt.Errorf("no LLM providers registered")
		}
		return health.StatusHealthy, nil
	})

	// Set up HTTP server and routes
	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("/health/live", healthHandler.LivenessHandler())
	mux.HandleFunc("/health/ready", healthHandler.ReadinessHandler())
	mux.HandleFunc("/health", healthHandler.HealthHandler())

	// Upload and generation endpoint
	processHandler := api.NewProcessHandler(repo, pdfParser, providerRegistry, llmName, cfg.Generation)
	mux.HandleFunc("/api/process", processHandler.Process)

	// Saved artifact listings and files
	libraryHandler := api.NewLibraryHandler(repo)
	mux.HandleFunc("/api/list/problems", libraryHandler.ListProblems)
	mux.HandleFunc("/api/list/summaries", libraryHandler.ListSummaries)
	mux.HandleFunc("/data/problems/", libraryHandler.ServeProblemFile)
	mux.HandleFunc("/data/summaries/", libraryHandler.ServeSummaryFile)

	// UI pages
	webHandler, err := web.NewHandler(apiKeyConfigured)
	if err != nil {
		log.Fatalf("Failed to initialize web handler: %v", err)
	}
	mux.HandleFunc("/", webHandler.Index)
	mux.HandleFunc("/problems", webHandler.Problems)
	mux.HandleFunc("/summaries", webHandler.Summaries)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// activeLLM picks the first enabled provider and reports whether it has an
// API key configured
func activeLLM(cfg types.ProvidersConfig) (string, bool) {
	for _, llm := range cfg.LLM {
		if llm.Enabled {
			return llm.Name, llm.APIKey != ""
		}
	}
	return "", false
}
