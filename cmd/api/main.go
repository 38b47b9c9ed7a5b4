package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	server "activityapp/internal/adapter/http"
	. "activityapp/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := Load()

	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger, err := NewLogger("activityapp", config.Environment)

	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	defer logger.Sync()

	if err := server.StartServer(ctx, config, logger); err != nil {
		logger.Logger.Fatal("Server stopped", zap.Error(err))
	}

	logger.Logger.Info("Shutting down gracefully...")
}
