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

	"github.com/irad15/PokemonProject/internal/api"
	"github.com/irad15/PokemonProject/internal/config"
	"github.com/irad15/PokemonProject/pkg/logger"
	"github.com/irad15/PokemonProject/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting Pokemon Arena Backend",
		"port", cfg.Port,
		"env", cfg.Env,
	)

	// Open the data directory
	store, err := storage.NewStorage(cfg.DataDir)
	if err != nil {
		logger.Fatal("Failed to open data directory", "error", err)
	}

	logger.Info("Data directory ready", "path", cfg.DataDir)

	// Router and arena sweep loop
	router, arena := api.SetupRouter(cfg, store)
	arena.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	arena.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
