package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/davidbz/ollamagen/internal/app"
	"github.com/davidbz/ollamagen/internal/generation"
	"github.com/davidbz/ollamagen/internal/observability"
)

func main() {
	container, err := app.BuildContainer()
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	err = container.Invoke(func(base *zap.Logger, pipeline *generation.Pipeline) error {
		defer func() { _ = base.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctx = observability.WithRequestID(ctx, observability.GenerateRequestID())
		logger := observability.FromContext(ctx)

		logger.Info("generation started")

		summary, err := pipeline.Run(ctx)
		if err != nil {
			logger.Error("generation failed", observability.Error(err))
			return err
		}

		logger.Info("generation completed",
			observability.Int("categories", summary.Categories),
			observability.Int("products", summary.Products),
		)
		return nil
	})
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
}
