// Package app wires the application object graph.
package app

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/davidbz/ollamagen/internal/config"
	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/generation"
	"github.com/davidbz/ollamagen/internal/http"
	"github.com/davidbz/ollamagen/internal/http/middleware"
	"github.com/davidbz/ollamagen/internal/observability"
	"github.com/davidbz/ollamagen/internal/prompt"
	"github.com/davidbz/ollamagen/internal/provider/ollama"
	"github.com/davidbz/ollamagen/internal/provider/openaicompat"
	"github.com/davidbz/ollamagen/internal/store"
)

// ErrUnknownTransport indicates that MODEL_TRANSPORT names no supported client.
var ErrUnknownTransport = errors.New("unknown model transport")

// ErrUnknownStore indicates that STORE_BACKEND names no supported backend.
var ErrUnknownStore = errors.New("unknown store backend")

// BuildContainer registers every constructor. Nothing is built until Invoke.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		return nil, fmt.Errorf("failed to provide config: %w", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		return nil, fmt.Errorf("failed to provide config dependencies: %w", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		return nil, fmt.Errorf("failed to provide logger: %w", err)
	}
	if err := container.Provide(observability.NewEventBus, dig.As(new(domain.EventPublisher))); err != nil {
		return nil, fmt.Errorf("failed to provide event bus: %w", err)
	}

	// Model
	if err := container.Provide(func(model *config.ModelConfig) (domain.ModelFamily, error) {
		return prompt.NewFamily(model.Family)
	}); err != nil {
		return nil, fmt.Errorf("failed to provide model family: %w", err)
	}
	if err := container.Provide(newTransport); err != nil {
		return nil, fmt.Errorf("failed to provide inference client: %w", err)
	}

	// Domain Services
	if err := container.Provide(domain.DefaultRetryPolicies); err != nil {
		return nil, fmt.Errorf("failed to provide retry policies: %w", err)
	}
	if err := container.Provide(domain.NewInteractionService, dig.As(new(domain.Completer))); err != nil {
		return nil, fmt.Errorf("failed to provide interaction service: %w", err)
	}

	// Generation
	if err := container.Provide(newEntityStore); err != nil {
		return nil, fmt.Errorf("failed to provide entity store: %w", err)
	}
	if err := container.Provide(generation.NewPipeline); err != nil {
		return nil, fmt.Errorf("failed to provide generation pipeline: %w", err)
	}
	if err := container.Provide(newCategoryBatcher); err != nil {
		return nil, fmt.Errorf("failed to provide category generator: %w", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		return nil, fmt.Errorf("failed to provide middleware chain: %w", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		return nil, fmt.Errorf("failed to provide HTTP handler: %w", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		return nil, fmt.Errorf("failed to provide HTTP server: %w", err)
	}

	return container, nil
}

// newTransport builds the client selected by MODEL_TRANSPORT. The same client answers health checks.
func newTransport(
	model *config.ModelConfig,
	ollamaCfg *ollama.Config,
	compatCfg *openaicompat.Config,
) (domain.InferenceClient, domain.HealthChecker, error) {
	switch model.Transport {
	case config.TransportOllama:
		client, err := ollama.NewClient(*ollamaCfg, model.Name)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	case config.TransportOpenAI:
		client, err := openaicompat.NewClient(*compatCfg, model.Name)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTransport, model.Transport)
	}
}

func newEntityStore(cfg *store.Config) (domain.EntityStore, error) {
	switch cfg.Backend {
	case store.BackendFile:
		fileStore, err := store.NewFileStore(cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		return fileStore, nil
	case store.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisStore, err := store.NewRedisStore(client, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, err
		}
		return redisStore, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Backend)
	}
}

// newCategoryBatcher serves ad-hoc category batches over HTTP. Those batches are not persisted.
func newCategoryBatcher(completer domain.Completer, cfg *generation.Config) http.CategoryBatcher {
	random := generation.NewRandom(cfg.Seed)
	return generation.NewCategoryGenerator(completer, generation.NewBrandStyler(random), generation.DefaultPlan().Categories)
}
