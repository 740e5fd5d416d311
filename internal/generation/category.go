package generation

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/observability"
)

const (
	KindCategories = "categories"

	categoryTokensPerItem = 70

	// Batches in a row that may add no new name before generation gives up.
	maxStaleCategoryBatches = 5
)

// ErrNoProgress is returned when repeated batches stop producing new entities.
var ErrNoProgress = errors.New("generation stopped producing new entities")

const categoryPrompt = `Generate %d product category names for an online retailer
of high-tech outdoor adventure goods and related clothing/electronics/etc.
Each category name is a single descriptive term, so it does not use the word 'and'.
Category names should be interesting and novel, e.g., "Mountain Unicycles", "AI Boots",
or "High-volume Water Filtration Plants", not simply "Tents".
This retailer sells relatively technical products.

Each category has a list of up to 8 brand names that make products in that category. All brand names are
purely fictional. Brand names are usually multiple words with spaces and/or special characters, e.g.
"Orange Gear", "Aqua Tech US", "Livewell", "E & K", "JAXⓇ".
Many brand names are used in multiple categories. Some categories have only 2 brands.

The response should be in a JSON format like below with the exact batch count of objects. It is very important you make sure it is in this format and that it is valid JSON.
{ "categories": [{"name":"Tents", "brands":["Rosewood", "Summit Kings"]}] }`

type categoryResponse struct {
	Categories []Category `json:"categories"`
}

// CategoryGenerator produces uniquely named categories in batches.
type CategoryGenerator struct {
	completer domain.Completer
	styler    *BrandStyler
	plan      BatchPlan
}

// NewCategoryGenerator creates a category generator.
func NewCategoryGenerator(completer domain.Completer, styler *BrandStyler, plan BatchPlan) *CategoryGenerator {
	return &CategoryGenerator{
		completer: completer,
		styler:    styler,
		plan:      plan,
	}
}

// Kind returns the storage group of categories.
func (g *CategoryGenerator) Kind() string {
	return KindCategories
}

// ID returns the category id as text.
func (g *CategoryGenerator) ID(c Category) string {
	return strconv.Itoa(c.CategoryID)
}

// GenerateBatch asks for size categories and returns the distinct, non-empty ones with
// styled brand names, numbered from 1 in reply order.
func (g *CategoryGenerator) GenerateBatch(ctx context.Context, size int) ([]Category, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", size)
	}

	resp, err := domain.GetAndParseJSONCompletion[categoryResponse](
		ctx, g.completer, fmt.Sprintf(categoryPrompt, size), categoryTokensPerItem*size, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(resp.Categories))
	categories := make([]Category, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		categories = append(categories, Category{
			CategoryID: len(categories) + 1,
			Name:       name,
			Brands:     g.styler.StyleAll(c.Brands),
		})
	}

	return categories, nil
}

// Generate requests batches until the plan's count of unique names is reached. Ids are
// assigned in order of first appearance.
func (g *CategoryGenerator) Generate(ctx context.Context) iter.Seq2[Category, error] {
	return func(yield func(Category, error) bool) {
		logger := observability.FromContext(ctx)
		names := make(map[string]struct{}, g.plan.Count)
		stale := 0

		for len(names) < g.plan.Count {
			logger.Info("generating categories", observability.Int("batch_size", g.plan.BatchSize))

			batch, err := g.GenerateBatch(ctx, g.plan.BatchSize)
			if err != nil {
				yield(Category{}, err)
				return
			}

			added := 0
			for _, c := range batch {
				if len(names) >= g.plan.Count {
					break
				}
				if _, dup := names[c.Name]; dup {
					continue
				}

				names[c.Name] = struct{}{}
				c.CategoryID = len(names)
				added++

				if !yield(c, nil) {
					return
				}
			}

			if added > 0 {
				stale = 0
				continue
			}

			stale++
			if stale >= maxStaleCategoryBatches {
				yield(Category{}, fmt.Errorf("%w: %d of %d categories after %d empty batches",
					ErrNoProgress, len(names), g.plan.Count, stale))
				return
			}
		}
	}
}
