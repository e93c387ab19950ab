package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	api "insight-backend/cmd/api"
	chatDelivery "insight-backend/internal/chat/delivery"
	chatUsecase "insight-backend/internal/chat/usecase"
	summaryDelivery "insight-backend/internal/summary/delivery"
	summaryUsecase "insight-backend/internal/summary/usecase"
	translateDelivery "insight-backend/internal/translate/delivery"
	translateUsecase "insight-backend/internal/translate/usecase"
	"insight-backend/pkg/ai"
	"insight-backend/pkg/cache"
	"insight-backend/pkg/config"
	"insight-backend/pkg/gemini"
	"insight-backend/pkg/logger"
	"insight-backend/pkg/openai"
	"insight-backend/pkg/prompt"
	"insight-backend/pkg/youtube"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLogger := logger.New(cfg.LogLevel)

	// Load the static prompt registry
	library, err := prompt.Load()
	if err != nil {
		log.Fatal("Failed to load prompt library:", err)
	}

	// Register LLM backends; adding one is implement-plus-register
	registry := ai.NewRegistry()
	registry.Register(gemini.New(cfg.Gemini, cfg.GenerationTimeout))
	registry.Register(openai.New(cfg.OpenAI, cfg.GenerationTimeout))
	log.Printf("AI providers registered: %v (default: %s)", registry.Names(), cfg.AIProvider)

	// Transcript cache with background sweep
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transcriptCache := cache.New(cfg.CacheTTL, appLogger)
	go transcriptCache.Run(ctx, cfg.CacheSweepInterval)

	// Transcript source
	youtubeService := youtube.NewService(appLogger)

	// Initialize use cases (dependency injection)
	summaryUc := summaryUsecase.NewSummaryUsecase(registry, library, transcriptCache, youtubeService, cfg, appLogger)
	chatUc := chatUsecase.NewChatUsecase(registry, transcriptCache, cfg, appLogger)
	translateUc := translateUsecase.NewTranslateUsecase(registry, transcriptCache, cfg, appLogger)

	// Initialize HTTP handler
	handler := api.NewHandler(
		summaryDelivery.NewSummaryHandler(summaryUc, appLogger),
		chatDelivery.NewChatHandler(chatUc, appLogger),
		translateDelivery.NewTranslateHandler(translateUc, appLogger),
		transcriptCache,
		cfg,
		appLogger,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Engine(),
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
