package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/davidbz/ollamagen/internal/app"
	"github.com/davidbz/ollamagen/internal/http"
	"github.com/davidbz/ollamagen/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func main() {
	container, err := app.BuildContainer()
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	err = container.Invoke(func(logger *zap.Logger, server *http.Server) error {
		defer func() { _ = logger.Sync() }()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(context.Background())
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		observability.FromContext(ctx).Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})
	if err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
