// Package generation produces synthetic catalog entities through a Completer and persists them.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/observability"
)

// EventEntityWritten is published after each generated entity is stored.
const EventEntityWritten = "entity.written"

// Source generates the entities of one kind.
type Source[T any] interface {
	// Kind names the entity group, e.g. "categories".
	Kind() string

	// ID returns the storage id of an item.
	ID(item T) string

	// Generate lazily produces items. A non-nil error ends the sequence.
	Generate(ctx context.Context) iter.Seq2[T, error]
}

// Run generates and stores the entities of src unless the store already holds some of
// that kind, then returns every stored entity of the kind.
func Run[T any](
	ctx context.Context,
	store domain.EntityStore,
	events domain.EventPublisher,
	src Source[T],
) ([]T, error) {
	kind := src.Kind()
	ctx = observability.WithEntityKind(ctx, kind)
	logger := observability.FromContext(ctx)

	exists, err := store.Exists(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing %s: %w", kind, err)
	}

	if exists {
		logger.Info("existing output found, skipping generation")
	} else {
		if genErr := generate(ctx, store, events, src); genErr != nil {
			return nil, genErr
		}
	}

	docs, err := store.ReadAll(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", kind, err)
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if decodeErr := json.Unmarshal(doc, &item); decodeErr != nil {
			return nil, fmt.Errorf("failed to decode stored %s: %w", kind, decodeErr)
		}
		items = append(items, item)
	}

	return items, nil
}

func generate[T any](
	ctx context.Context,
	store domain.EntityStore,
	events domain.EventPublisher,
	src Source[T],
) error {
	kind := src.Kind()
	logger := observability.FromContext(ctx)
	started := time.Now()

	for item, err := range src.Generate(ctx) {
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", kind, err)
		}

		id := src.ID(item)
		elapsed := time.Since(started)

		logger.Info("writing entity",
			observability.String("id", id),
			observability.Duration("generated_in", elapsed))

		if writeErr := store.Write(ctx, kind, id, item); writeErr != nil {
			return fmt.Errorf("failed to store %s %s: %w", kind, id, writeErr)
		}

		if events != nil {
			events.Publish(ctx, EventEntityWritten, map[string]interface{}{
				"id":         id,
				"elapsed_ms": elapsed.Milliseconds(),
			})
		}

		started = time.Now()
	}

	return nil
}
