package domain

import "context"

// InferenceClient sends a formatted conversation to an inference server.
type InferenceClient interface {
	// Send issues one completion request and returns the assistant reply.
	Send(ctx context.Context, conv Conversation, settings PromptSettings) (*ChatResult, error)
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PromptFormatter renders a conversation into the raw prompt text of a model family.
type PromptFormatter interface {
	Format(conv Conversation) (string, error)
}

// ModelFamily groups the prompt template and stop sequences shared by a family of models.
type ModelFamily interface {
	// Name returns the family identifier.
	Name() string

	// Format renders the conversation without any tools block.
	Format(conv Conversation) (string, error)

	// FormatWithTools renders the conversation and advertises the given tools.
	FormatWithTools(conv Conversation, tools []ToolDescriptor) (string, error)

	// TextStopSequences are used for free-text completions.
	TextStopSequences() []string

	// JSONStopSequences are used for JSON completions.
	JSONStopSequences() []string
}

// ToolSource produces the tool descriptors advertised to the model.
type ToolSource interface {
	Descriptors() ([]ToolDescriptor, error)
}

// Completer is the interaction surface consumed by entity generators.
type Completer interface {
	// GetChatCompletion returns the free-text completion of a prompt.
	GetChatCompletion(ctx context.Context, prompt string) (string, error)

	// CompleteJSON requests a JSON completion and hands the raw reply to req.Decode,
	// re-issuing the request while decoding fails.
	CompleteJSON(ctx context.Context, req JSONRequest) error
}

// JSONRequest describes one JSON completion.
type JSONRequest struct {
	Prompt    string
	MaxTokens int
	Tools     ToolSource
	Decode    func(raw string) error
}

// EntityStore persists generated entities grouped by kind.
type EntityStore interface {
	// Exists reports whether any entity of the kind has been stored.
	Exists(ctx context.Context, kind string) (bool, error)

	// Write stores one entity under its id.
	Write(ctx context.Context, kind, id string, item any) error

	// ReadAll returns the JSON documents of every stored entity of the kind.
	ReadAll(ctx context.Context, kind string) ([][]byte, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
