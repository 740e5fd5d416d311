package generation_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/generation"
	"github.com/davidbz/ollamagen/internal/mocks"
	"github.com/davidbz/ollamagen/internal/store"
)

type recordedEvent struct {
	eventType string
	data      map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingPublisher) Publish(_ context.Context, eventType string, data map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{eventType: eventType, data: data})
}

// replyWith answers every JSON completion with the next reply from replies, repeating the last.
func replyWith(replies ...string) func(context.Context, domain.JSONRequest) error {
	var mu sync.Mutex
	calls := 0

	return func(_ context.Context, req domain.JSONRequest) error {
		mu.Lock()
		reply := replies[min(calls, len(replies)-1)]
		calls++
		mu.Unlock()

		return req.Decode(reply)
	}
}

func collect[T any](t *testing.T, seq iter.Seq2[T, error]) ([]T, error) {
	t.Helper()

	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

func TestCategoryGenerator_Generate(t *testing.T) {
	completer := mocks.NewMockCompleter(t)
	generator := generation.NewCategoryGenerator(completer,
		generation.NewBrandStyler(generation.NewRandom(1)),
		generation.BatchPlan{Count: 4, BatchSize: 2})

	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.MatchedBy(func(req domain.JSONRequest) bool {
			return req.MaxTokens == 140 && strings.HasPrefix(req.Prompt, "Generate 2 product category names")
		})).
		RunAndReturn(replyWith(
			`{"categories":[{"name":"Mountain Unicycles","brands":["Orange Gear"]},{"name":"AI Boots","brands":["Livewell"]}]}`,
			`{"categories":[{"name":"AI Boots","brands":["Livewell"]},{"name":" ","brands":[]}]}`+"\n"+`{"categories":[]}`,
			`{"categories":[{"name":"Smart Tents","brands":["E & K"]},{"name":"Solar Kayaks","brands":["Aqua Tech US"]},{"name":"Extra","brands":[]}]}`,
		)).
		Times(3)

	categories, err := collect(t, generator.Generate(context.Background()))

	require.NoError(t, err)
	require.Len(t, categories, 4)
	for i, c := range categories {
		require.Equal(t, i+1, c.CategoryID)
	}
	require.Equal(t, "Mountain Unicycles", categories[0].Name)
	require.Equal(t, "Solar Kayaks", categories[3].Name)
	require.Equal(t, "categories", generator.Kind())
	require.Equal(t, "3", generator.ID(categories[2]))
}

func TestCategoryGenerator_GivesUpWithoutProgress(t *testing.T) {
	completer := mocks.NewMockCompleter(t)
	generator := generation.NewCategoryGenerator(completer,
		generation.NewBrandStyler(generation.NewRandom(1)),
		generation.BatchPlan{Count: 3, BatchSize: 2})

	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.Anything).
		RunAndReturn(replyWith(`{"categories":[{"name":"Tents","brands":["Rosewood"]}]}`)).
		Times(6)

	categories, err := collect(t, generator.Generate(context.Background()))

	require.ErrorIs(t, err, generation.ErrNoProgress)
	require.Len(t, categories, 1)
}

func TestCategoryGenerator_PropagatesCompletionErrors(t *testing.T) {
	completer := mocks.NewMockCompleter(t)
	generator := generation.NewCategoryGenerator(completer,
		generation.NewBrandStyler(generation.NewRandom(1)),
		generation.BatchPlan{Count: 3, BatchSize: 2})

	boom := errors.New("json completion failed")
	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.Anything).
		Return(boom).
		Once()

	_, err := collect(t, generator.Generate(context.Background()))

	require.ErrorIs(t, err, boom)
}

func TestCategoryGenerator_GenerateBatch(t *testing.T) {
	completer := mocks.NewMockCompleter(t)
	generator := generation.NewCategoryGenerator(completer,
		generation.NewBrandStyler(generation.NewRandom(1)),
		generation.BatchPlan{Count: 50, BatchSize: 25})

	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.MatchedBy(func(req domain.JSONRequest) bool {
			return req.MaxTokens == 210
		})).
		RunAndReturn(replyWith(`{"categories":[{"name":"Tents","brands":["Rosewood"]},{"name":"Tents","brands":[]},{"name":"Boots","brands":[]}]}`)).
		Once()

	batch, err := generator.GenerateBatch(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, batch, 2)
	require.Equal(t, generation.Category{CategoryID: 1, Name: "Tents", Brands: []string{"Rosewood"}}, batch[0])
	require.Equal(t, 2, batch[1].CategoryID)

	_, err = generator.GenerateBatch(context.Background(), 0)
	require.Error(t, err)
}

func productReply(n int) string {
	products := make([]string, n)
	for i := range products {
		products[i] = fmt.Sprintf(`{"id":%d,"brand":"Livewell","model":"Model %d","description":"Rugged.","price":%d.99}`, i+1, i, 10+i)
	}
	return `{"products":[` + strings.Join(products, ",") + `]}`
}

func testCategories() []generation.Category {
	return []generation.Category{
		{CategoryID: 1, Name: "Tents", Brands: []string{"Rosewood", "Summit Kings"}},
		{CategoryID: 2, Name: "AI Boots", Brands: []string{"Livewell"}},
		{CategoryID: 3, Name: "Empty", Brands: nil},
	}
}

func TestProductGenerator_Generate(t *testing.T) {
	completer := mocks.NewMockCompleter(t)
	generator, err := generation.NewProductGenerator(completer, testCategories(), generation.NewRandom(3),
		generation.BatchPlan{Count: 10, BatchSize: 2}, 3)
	require.NoError(t, err)

	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.MatchedBy(func(req domain.JSONRequest) bool {
			return req.MaxTokens == 400 &&
				strings.Contains(req.Prompt, "- product 1: category ") &&
				strings.Contains(req.Prompt, "- product 2: category ")
		})).
		RunAndReturn(replyWith(productReply(3))).
		Times(5)

	products, err := collect(t, generator.Generate(context.Background()))

	require.NoError(t, err)
	require.Len(t, products, 10)

	validCategory := map[int]bool{1: true, 2: true, 3: true}
	for i, p := range products {
		require.Equal(t, i+1, p.ProductID)
		require.True(t, validCategory[p.CategoryID], "unknown category %d", p.CategoryID)
	}
	require.Equal(t, "products", generator.Kind())
	require.Equal(t, "10", generator.ID(products[9]))
}

func TestProductGenerator_FailureStopsGeneration(t *testing.T) {
	completer := mocks.NewMockCompleter(t)
	generator, err := generation.NewProductGenerator(completer, testCategories(), generation.NewRandom(3),
		generation.BatchPlan{Count: 20, BatchSize: 2}, 1)
	require.NoError(t, err)

	boom := errors.New("model gave up")
	calls := 0
	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req domain.JSONRequest) error {
			calls++
			if calls == 2 {
				return boom
			}
			return req.Decode(productReply(2))
		}).
		Times(2)

	products, err := collect(t, generator.Generate(context.Background()))

	require.ErrorIs(t, err, boom)
	require.Len(t, products, 2)
}

func TestProductGenerator_ShortLastBatch(t *testing.T) {
	completer := mocks.NewMockCompleter(t)
	generator, err := generation.NewProductGenerator(completer, testCategories(), generation.NewRandom(3),
		generation.BatchPlan{Count: 5, BatchSize: 2}, 1)
	require.NoError(t, err)

	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.MatchedBy(func(req domain.JSONRequest) bool { return req.MaxTokens == 400 })).
		RunAndReturn(replyWith(productReply(2))).
		Times(2)
	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.MatchedBy(func(req domain.JSONRequest) bool {
			return req.MaxTokens == 200 && !strings.Contains(req.Prompt, "- product 2:")
		})).
		RunAndReturn(replyWith(productReply(2))).
		Once()

	products, err := collect(t, generator.Generate(context.Background()))

	require.NoError(t, err)
	require.Len(t, products, 5)
}

func TestNewProductGenerator_RequiresCategories(t *testing.T) {
	_, err := generation.NewProductGenerator(mocks.NewMockCompleter(t), nil, generation.NewRandom(1),
		generation.BatchPlan{Count: 1, BatchSize: 1}, 1)

	require.Error(t, err)
}

type staticSource struct {
	items     []generation.Category
	generated bool
	err       error
}

func (s *staticSource) Kind() string { return "static" }

func (s *staticSource) ID(c generation.Category) string { return fmt.Sprint(c.CategoryID) }

func (s *staticSource) Generate(context.Context) iter.Seq2[generation.Category, error] {
	s.generated = true
	return func(yield func(generation.Category, error) bool) {
		for _, item := range s.items {
			if !yield(item, nil) {
				return
			}
		}
		if s.err != nil {
			yield(generation.Category{}, s.err)
		}
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("writes generated items and returns the stored set", func(t *testing.T) {
		fileStore, err := store.NewFileStore(t.TempDir())
		require.NoError(t, err)
		events := &recordingPublisher{}

		src := &staticSource{items: []generation.Category{
			{CategoryID: 1, Name: "Tents", Brands: []string{"Rosewood"}},
			{CategoryID: 2, Name: "Boots", Brands: []string{}},
		}}

		items, err := generation.Run[generation.Category](ctx, fileStore, events, src)

		require.NoError(t, err)
		require.True(t, src.generated)
		require.Equal(t, src.items, items)
		require.Len(t, events.events, 2)
		require.Equal(t, generation.EventEntityWritten, events.events[0].eventType)
		require.Equal(t, "1", events.events[0].data["id"])
	})

	t.Run("skips generation when output exists", func(t *testing.T) {
		fileStore, err := store.NewFileStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, fileStore.Write(ctx, "static", "9", generation.Category{CategoryID: 9, Name: "Kept"}))

		src := &staticSource{items: []generation.Category{{CategoryID: 1, Name: "New"}}}

		items, err := generation.Run[generation.Category](ctx, fileStore, nil, src)

		require.NoError(t, err)
		require.False(t, src.generated)
		require.Len(t, items, 1)
		require.Equal(t, "Kept", items[0].Name)
	})

	t.Run("generation errors keep already written items", func(t *testing.T) {
		fileStore, err := store.NewFileStore(t.TempDir())
		require.NoError(t, err)

		boom := errors.New("boom")
		src := &staticSource{items: []generation.Category{{CategoryID: 1, Name: "Tents"}}, err: boom}

		_, err = generation.Run[generation.Category](ctx, fileStore, nil, src)
		require.ErrorIs(t, err, boom)

		exists, err := fileStore.Exists(ctx, "static")
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("store failures", func(t *testing.T) {
		mockStore := mocks.NewMockEntityStore(t)
		mockStore.EXPECT().Exists(mock.Anything, "static").Return(false, nil).Once()
		mockStore.EXPECT().Write(mock.Anything, "static", "1", mock.Anything).Return(errors.New("disk full")).Once()

		src := &staticSource{items: []generation.Category{{CategoryID: 1, Name: "Tents"}}}

		_, err := generation.Run[generation.Category](ctx, mockStore, nil, src)

		require.Error(t, err)
		require.Contains(t, err.Error(), "disk full")
	})

	t.Run("undecodable stored documents", func(t *testing.T) {
		mockStore := mocks.NewMockEntityStore(t)
		mockStore.EXPECT().Exists(mock.Anything, "static").Return(true, nil).Once()
		mockStore.EXPECT().ReadAll(mock.Anything, "static").Return([][]byte{[]byte("{")}, nil).Once()

		_, err := generation.Run[generation.Category](ctx, mockStore, nil, &staticSource{})

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decode stored")
	})
}

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fileStore, err := store.NewFileStore(dir)
	require.NoError(t, err)

	completer := mocks.NewMockCompleter(t)
	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.MatchedBy(func(req domain.JSONRequest) bool {
			return strings.HasPrefix(req.Prompt, "Generate")
		})).
		RunAndReturn(replyWith(`{"categories":[{"name":"Tents","brands":["Rosewood"]},{"name":"Boots","brands":["Livewell"]}]}`)).
		Once()
	completer.EXPECT().
		CompleteJSON(mock.Anything, mock.MatchedBy(func(req domain.JSONRequest) bool {
			return strings.HasPrefix(req.Prompt, "Write list")
		})).
		RunAndReturn(replyWith(productReply(2))).
		Times(3)

	planPath := writePlan(t, "categories:\n  count: 2\n  batch_size: 2\nproducts:\n  count: 6\n  batch_size: 2\n")
	pipeline, err := generation.NewPipeline(completer, fileStore, &recordingPublisher{},
		&generation.Config{PlanPath: planPath, Concurrency: 2, Seed: 11})
	require.NoError(t, err)

	summary, err := pipeline.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, &generation.Summary{Categories: 2, Products: 6}, summary)

	// A second run resumes from the stored output without calling the model.
	again, err := pipeline.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, summary, again)
}

func TestNewPipeline_InvalidPlan(t *testing.T) {
	_, err := generation.NewPipeline(mocks.NewMockCompleter(t), nil, nil,
		&generation.Config{PlanPath: writePlan(t, "categories:\n  count: -1\n")})

	require.Error(t, err)
}
