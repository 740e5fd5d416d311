package generation

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan sets how many entities of each kind are generated and in what batch sizes.
type Plan struct {
	Categories BatchPlan `yaml:"categories"`
	Products   BatchPlan `yaml:"products"`
}

// BatchPlan is the target count and per-request batch size of one kind.
type BatchPlan struct {
	Count     int `yaml:"count"`
	BatchSize int `yaml:"batch_size"`
}

// DefaultPlan returns 50 categories in batches of 25 and 200 products in batches of 5.
func DefaultPlan() Plan {
	return Plan{
		Categories: BatchPlan{Count: 50, BatchSize: 25},
		Products:   BatchPlan{Count: 200, BatchSize: 5},
	}
}

// LoadPlan reads a YAML plan from path on top of the defaults. An empty path returns the defaults.
func LoadPlan(path string) (Plan, error) {
	plan := DefaultPlan()
	if path == "" {
		return plan, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}

	if parseErr := yaml.Unmarshal(data, &plan); parseErr != nil {
		return Plan{}, fmt.Errorf("failed to parse plan %s: %w", path, parseErr)
	}

	if validateErr := plan.Validate(); validateErr != nil {
		return Plan{}, fmt.Errorf("invalid plan %s: %w", path, validateErr)
	}

	return plan, nil
}

// Validate checks that every count and batch size is positive.
func (p Plan) Validate() error {
	if err := p.Categories.validate("categories"); err != nil {
		return err
	}
	return p.Products.validate("products")
}

func (b BatchPlan) validate(kind string) error {
	if b.Count <= 0 {
		return fmt.Errorf("%s: count must be positive, got %d", kind, b.Count)
	}
	if b.BatchSize <= 0 {
		return fmt.Errorf("%s: batch_size must be positive, got %d", kind, b.BatchSize)
	}
	if b.BatchSize > b.Count {
		return errors.New(kind + ": batch_size cannot exceed count")
	}
	return nil
}
