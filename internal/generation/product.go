package generation

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/parallel"
)

const (
	KindProducts = "products"

	productTokensPerItem = 200
)

const productPrompt = `Write list of %d products for an online retailer
of outdoor adventure goods and related electronics, clothing, and homeware. There is a focus on high-tech products. They match the following category/brand pairs:
%s

Model names are up to 50 characters long, but usually shorter. Sometimes they include numbers, specs, or product codes.
Example model names: "iGPS 220c 64GB", "Nomad Camping Stove", "UX Polarized Sunglasses (Womens)", "40L Backpack, Green"
Do not repeat the brand name in the model name.

The description is up to 200 characters long and is the marketing text that will appear on the product page.
Include the key features and selling points.

The response should be in a JSON format like below with the exact batch count of objects. It is very important you make sure it is in this format and that it is valid JSON.

{
  "products": [
    { "id": 1, "brand": "Garmin", "model": "iGPS 220c 64GB", "description": "High-precision GPS with 64GB storage, waterproof, and rugged design.", "price": 299.99 }
  ]
}`

type productResponse struct {
	Products []Product `json:"products"`
}

// pick is one category/brand pair a product must match.
type pick struct {
	category Category
	brand    string
}

// ProductGenerator produces products for random category/brand pairs, running batches
// through a bounded worker pool.
type ProductGenerator struct {
	completer   domain.Completer
	categories  []Category
	random      *Random
	plan        BatchPlan
	concurrency int
}

// NewProductGenerator creates a product generator over the given categories.
func NewProductGenerator(
	completer domain.Completer,
	categories []Category,
	random *Random,
	plan BatchPlan,
	concurrency int,
) (*ProductGenerator, error) {
	if len(categories) == 0 {
		return nil, errors.New("at least one category is required to generate products")
	}

	return &ProductGenerator{
		completer:   completer,
		categories:  categories,
		random:      random,
		plan:        plan,
		concurrency: concurrency,
	}, nil
}

// Kind returns the storage group of products.
func (g *ProductGenerator) Kind() string {
	return KindProducts
}

// ID returns the product id as text.
func (g *ProductGenerator) ID(p Product) string {
	return strconv.Itoa(p.ProductID)
}

// Generate yields products in batch completion order with ids numbered from 1.
func (g *ProductGenerator) Generate(ctx context.Context) iter.Seq2[Product, error] {
	return func(yield func(Product, error) bool) {
		// The last batch is short when the count is not a multiple of the batch size.
		var picks [][]pick
		for remaining := g.plan.Count; remaining > 0; remaining -= g.plan.BatchSize {
			picks = append(picks, g.choosePicks(min(remaining, g.plan.BatchSize)))
		}

		productID := 0
		for batch, err := range parallel.Map(ctx, picks, g.generateBatch, g.concurrency) {
			if err != nil {
				yield(Product{}, err)
				return
			}

			for _, p := range batch {
				productID++
				p.ProductID = productID
				if !yield(p, nil) {
					return
				}
			}
		}
	}
}

func (g *ProductGenerator) choosePicks(n int) []pick {
	picks := make([]pick, n)
	for i := range picks {
		category := g.categories[g.random.IntN(len(g.categories))]

		brand := ""
		if len(category.Brands) > 0 {
			brand = category.Brands[g.random.IntN(len(category.Brands))]
		}

		picks[i] = pick{category: category, brand: brand}
	}
	return picks
}

func (g *ProductGenerator) generateBatch(ctx context.Context, picks []pick) ([]Product, error) {
	lines := make([]string, len(picks))
	for i, p := range picks {
		lines[i] = fmt.Sprintf("- product %d: category %s, brand: %s", i+1, p.category.Name, p.brand)
	}

	prompt := fmt.Sprintf(productPrompt, len(picks), strings.Join(lines, "\n"))

	resp, err := domain.GetAndParseJSONCompletion[productResponse](
		ctx, g.completer, prompt, productTokensPerItem*len(picks), nil)
	if err != nil {
		return nil, err
	}

	// Extra products have no category pair to match and are dropped.
	products := resp.Products
	if len(products) > len(picks) {
		products = products[:len(picks)]
	}

	for i := range products {
		products[i].CategoryID = picks[i].category.CategoryID
	}

	return products, nil
}
