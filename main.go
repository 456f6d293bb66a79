package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/llm"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/stt"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/tts"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/config"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/repository"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/service"
	transport "github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/transport/http"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/transport/ws"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting voice agent...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Session store: %s", cfg.SessionStore)
	log.Printf("API key status: %v", cfg.APIKeyStatus())
	if !cfg.AllAPIsConfigured() {
		log.Printf("WARN: not all API keys are configured, some features will not work")
	}

	// Initialize session store
	var sessions repository.SessionStore
	if cfg.SessionStore == "sqlite" {
		store, err := repository.NewSQLiteStore(cfg.DatabaseURL, cfg.MaxHistoryLength)
		if err != nil {
			log.Fatalf("Failed to initialize session store: %v", err)
		}
		sessions = store
	} else {
		sessions = repository.NewMemoryStore(cfg.MaxHistoryLength)
	}
	defer sessions.Close()

	// Initialize adapters
	sttClient := stt.NewClient(cfg.AssemblyAIBaseURL, cfg.AssemblyAIAPIKey, cfg.STTTimeout)
	llmClient := llm.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	ttsClient := tts.NewClient(cfg.MurfBaseURL, cfg.MurfAPIKey, cfg.MaxTTSTextLength, cfg.TTSTimeout)

	// Initialize service
	svc := service.New(sttClient, llmClient, ttsClient, sessions, cfg)

	// Initialize transport
	handler := transport.NewHandler(svc, cfg)
	wsServer := ws.NewServer(cfg)
	server := transport.NewServer(handler, wsServer)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Voice agent started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down voice agent...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Voice agent stopped")
}
