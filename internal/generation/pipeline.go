package generation

import (
	"context"
	"fmt"

	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/observability"
)

// Summary reports how many entities of each kind exist after a run.
type Summary struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
}

// Pipeline generates categories and then products from them.
type Pipeline struct {
	completer   domain.Completer
	store       domain.EntityStore
	events      domain.EventPublisher
	plan        Plan
	random      *Random
	concurrency int
}

// NewPipeline creates a generation pipeline (DI constructor).
func NewPipeline(
	completer domain.Completer,
	store domain.EntityStore,
	events domain.EventPublisher,
	cfg *Config,
) (*Pipeline, error) {
	plan, err := LoadPlan(cfg.PlanPath)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		completer:   completer,
		store:       store,
		events:      events,
		plan:        plan,
		random:      NewRandom(cfg.Seed),
		concurrency: cfg.Concurrency,
	}, nil
}

// Run executes every generation step in order. Steps whose output already exists are skipped.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	logger := observability.FromContext(ctx)

	categories, err := Run[Category](ctx, p.store, p.events,
		NewCategoryGenerator(p.completer, NewBrandStyler(p.random), p.plan.Categories))
	if err != nil {
		return nil, err
	}
	logger.Info("categories ready", observability.Int("count", len(categories)))

	products, err := NewProductGenerator(p.completer, categories, p.random, p.plan.Products, p.concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to create product generator: %w", err)
	}

	generated, err := Run[Product](ctx, p.store, p.events, products)
	if err != nil {
		return nil, err
	}
	logger.Info("products ready", observability.Int("count", len(generated)))

	return &Summary{
		Categories: len(categories),
		Products:   len(generated),
	}, nil
}
