package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/marioraafat2252004/Slash-Analyses/internal/api/handler"
	customMiddleware "github.com/marioraafat2252004/Slash-Analyses/internal/api/middleware"
	"github.com/marioraafat2252004/Slash-Analyses/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(chatService *service.ChatService, analysisService *service.AnalysisService, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	chatHandler := handler.NewChatHandler(chatService)
	productHandler := handler.NewProductHandler(analysisService)

	// Health check
	r.Get("/", handler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/message", chatHandler.Message)
		})
		r.Route("/product", func(r chi.Router) {
			r.Post("/analyse-image", productHandler.AnalyseImage)
		})
	})

	return r
}
