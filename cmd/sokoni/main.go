package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sokoni/internal/api"
	"sokoni/internal/api/handlers"
	"sokoni/internal/nlsql"
	"sokoni/internal/repository"
	"sokoni/internal/service"
	"sokoni/pkg/config"
	"sokoni/pkg/logger"
	"sokoni/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting sokoni service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	productRepo := repository.NewProductRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	searchRepo := repository.NewSearchRepository(db, appLogger)

	// Services
	mode := nlsql.Mode(cfg.Pipeline.Mode)
	if mode != nlsql.ModeDual {
		mode = nlsql.ModeSingle
	}

	llmService := service.NewLLMService(&cfg.Groq, mode, appLogger)
	embeddingService := service.NewEmbeddingService(&cfg.Embedding, appLogger)
	chatService := service.NewChatService(llmService, searchRepo, mode, appLogger)
	searchService := service.NewSearchService(searchRepo, embeddingService, cfg.Pipeline.ResultLimit, appLogger)

	// Handlers
	chatHandler := handlers.NewChatHandler(chatService, searchService, appLogger)
	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, appLogger)

	app := api.SetupRouter(&cfg.Server, chatHandler, productHandler, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr), zap.String("pipeline_mode", string(mode)))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
