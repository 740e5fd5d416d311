// Package openaicompat sends raw prompts to the legacy completions endpoint of an
// OpenAI-compatible server using the official SDK.
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/observability"
)

// Client implements domain.InferenceClient on top of the completions API.
type Client struct {
	client openai.Client
	model  string
}

// NewClient creates a new OpenAI-compatible client for the given model.
func NewClient(config Config, model string) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("OpenAI-compatible base URL is required")
	}

	if model == "" {
		return nil, errors.New("model name is required")
	}

	// Retries are owned by the interaction service.
	opts := []option.RequestOption{
		option.WithBaseURL(config.BaseURL),
		option.WithMaxRetries(0),
	}

	if config.APIKey != "" {
		opts = append(opts, option.WithAPIKey(config.APIKey))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Send formats the conversation and issues one completion request.
func (c *Client) Send(
	ctx context.Context,
	conv domain.Conversation,
	settings domain.PromptSettings,
) (*domain.ChatResult, error) {
	if settings.Formatter == nil {
		return nil, domain.ErrFormatterMissing
	}

	prompt, err := settings.Formatter.Format(conv)
	if err != nil {
		return nil, fmt.Errorf("failed to format prompt: %w", err)
	}

	logger := observability.FromContext(ctx)

	resp, err := c.client.Completions.New(ctx, c.toSDKParams(prompt, settings))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == http.StatusNotFound {
				logger.Error("model not available on inference server",
					observability.String("model", c.modelFor(settings)))
				return domain.ModelUnavailableResult(settings), nil
			}
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, apiErr.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Text
	}

	logger.Debug("completion succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)))

	return domain.AssistantResult(content), nil
}

// HealthCheck lists the server's models to confirm it is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.Models.List(ctx); err != nil {
		return fmt.Errorf("inference server unreachable: %w", err)
	}
	return nil
}

func (c *Client) toSDKParams(prompt string, settings domain.PromptSettings) openai.CompletionNewParams {
	params := openai.CompletionNewParams{
		Model: openai.CompletionNewParamsModel(c.modelFor(settings)),
		Prompt: openai.CompletionNewParamsPromptUnion{
			OfString: openai.String(prompt),
		},
		Temperature: openai.Float(settings.Temperature),
		TopP:        openai.Float(settings.TopP),
	}

	if settings.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(settings.MaxTokens))
	}

	if len(settings.StopSequences) > 0 {
		params.Stop = openai.CompletionNewParamsStopUnion{
			OfStringArray: settings.StopSequences,
		}
	}

	return params
}

func (c *Client) modelFor(settings domain.PromptSettings) string {
	if settings.ModelID != "" {
		return settings.ModelID
	}
	return c.model
}
