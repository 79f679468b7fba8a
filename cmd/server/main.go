package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/marioraafat2252004/Slash-Analyses/internal/api"
	"github.com/marioraafat2252004/Slash-Analyses/internal/catalog"
	"github.com/marioraafat2252004/Slash-Analyses/internal/config"
	"github.com/marioraafat2252004/Slash-Analyses/internal/llm"
	"github.com/marioraafat2252004/Slash-Analyses/internal/llm/gemini"
	"github.com/marioraafat2252004/Slash-Analyses/internal/logger"
	"github.com/marioraafat2252004/Slash-Analyses/internal/service"
	"github.com/marioraafat2252004/Slash-Analyses/internal/session"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting AI Chatbot API server")

	// Load the catalog; the personas cannot be built without it
	cat, err := catalog.Load(cfg.Catalog.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog CSV files. Ensure all files are correctly formatted")
	}

	// Initialize the Gemini gateway
	gateway, err := gemini.NewGateway(context.Background(), cfg.Gemini.APIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini gateway")
	}
	defer gateway.Close()

	// Build the two personas and the services
	chatPersona := llm.ChatPersona(cfg.Gemini.ChatModel, cat)
	analysisPersona := llm.AnalysisPersona(cfg.Gemini.AnalysisModel, cat)

	registry := session.NewRegistry(gateway, chatPersona, cfg.Sessions.MaxEntries)
	chatService := service.NewChatService(registry)
	analysisService := service.NewAnalysisService(gateway, analysisPersona, cfg.Uploads.TmpDir)

	// Initialize router
	router := api.NewRouter(chatService, analysisService, cfg.Server.RequestTimeout)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
