package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/ollamagen/internal/jsonparse"
	"github.com/davidbz/ollamagen/internal/observability"
	"github.com/davidbz/ollamagen/internal/retry"
)

const interactionTemperature = 0.9

// RetryPolicies configures the two retry layers of a JSON completion. Transport wraps a
// single request; Parse wraps request plus decoding.
type RetryPolicies struct {
	Transport retry.Policy
	Parse     retry.Policy
}

// DefaultRetryPolicies returns 5 attempts on both layers, with a 15s increment for
// transport failures and 1s for unparseable replies.
func DefaultRetryPolicies() RetryPolicies {
	return RetryPolicies{
		Transport: retry.DefaultPolicy(),
		Parse:     retry.DefaultPolicy().WithIncrement(time.Second),
	}
}

// InteractionService turns prompts into completions using a model family's template.
type InteractionService struct {
	client   InferenceClient
	family   ModelFamily
	policies RetryPolicies
}

// NewInteractionService creates a new interaction service (DI constructor).
func NewInteractionService(client InferenceClient, family ModelFamily, policies RetryPolicies) *InteractionService {
	return &InteractionService{
		client:   client,
		family:   family,
		policies: policies,
	}
}

// GetChatCompletion sends prompt as a single user message and returns the reply text.
func (s *InteractionService) GetChatCompletion(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.New("prompt cannot be empty")
	}

	settings := NewPromptSettings()
	settings.Temperature = interactionTemperature
	settings.Formatter = s.family
	settings.StopSequences = s.family.TextStopSequences()

	conv := Conversation{UserMessage(prompt)}

	result, err := retry.Do(ctx, s.policies.Transport, func(ctx context.Context) (*ChatResult, error) {
		return s.client.Send(ctx, conv, settings)
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	return result.Content, nil
}

// CompleteJSON requests a JSON reply and decodes it with req.Decode. A reply that fails to
// decode triggers a fresh request under the parse policy.
func (s *InteractionService) CompleteJSON(ctx context.Context, req JSONRequest) error {
	if req.Prompt == "" {
		return errors.New("prompt cannot be empty")
	}

	if req.Decode == nil {
		return errors.New("decode function cannot be nil")
	}

	var descriptors []ToolDescriptor
	if req.Tools != nil {
		var err error
		descriptors, err = req.Tools.Descriptors()
		if err != nil {
			return fmt.Errorf("failed to describe tools: %w", err)
		}
	}

	settings := NewPromptSettings()
	settings.ResponseFormat = ResponseFormatJSON
	settings.Temperature = interactionTemperature
	settings.MaxTokens = req.MaxTokens
	settings.Formatter = toolAwareFormatter{family: s.family, tools: descriptors}
	settings.StopSequences = s.family.JSONStopSequences()

	conv := Conversation{UserMessage(req.Prompt)}
	logger := observability.FromContext(ctx)

	err := retry.Run(ctx, s.policies.Parse, func(ctx context.Context) error {
		result, err := retry.Do(ctx, s.policies.Transport, func(ctx context.Context) (*ChatResult, error) {
			return s.client.Send(ctx, conv, settings)
		})
		if err != nil {
			return err
		}

		if decodeErr := req.Decode(result.Content); decodeErr != nil {
			logger.Warn("unparseable completion",
				observability.Int("max_tokens", req.MaxTokens),
				observability.Error(decodeErr))
			return decodeErr
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("json completion failed: %w", err)
	}

	return nil
}

// GetAndParseJSONCompletion requests a JSON completion and decodes its first value into R.
func GetAndParseJSONCompletion[R any](
	ctx context.Context,
	completer Completer,
	prompt string,
	maxTokens int,
	tools ToolSource,
) (R, error) {
	var result R

	err := completer.CompleteJSON(ctx, JSONRequest{
		Prompt:    prompt,
		MaxTokens: maxTokens,
		Tools:     tools,
		Decode: func(raw string) error {
			parsed, err := jsonparse.ParseFirstJSONValue[R](raw)
			if err != nil {
				return err
			}
			result = parsed
			return nil
		},
	})
	if err != nil {
		var zero R
		return zero, err
	}

	return result, nil
}

type toolAwareFormatter struct {
	family ModelFamily
	tools  []ToolDescriptor
}

func (f toolAwareFormatter) Format(conv Conversation) (string, error) {
	return f.family.FormatWithTools(conv, f.tools)
}
