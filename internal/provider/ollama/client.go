// Package ollama sends raw prompts to the native generate endpoint of a local inference server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/observability"
)

const (
	generatePath = "/api/generate"
	tagsPath     = "/api/tags"

	// Temperatures are sent with 4 decimals so equal settings produce identical request bodies.
	temperaturePrecision = 1e4

	defaultTimeout = 300 * time.Second
	maxErrorBody   = 512
)

// Client implements domain.InferenceClient against the native generate endpoint.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a new native inference client for the given model.
func NewClient(config Config, model string) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("inference server base URL is required")
	}

	if model == "" {
		return nil, errors.New("model name is required")
	}

	timeout := defaultTimeout
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  *int    `json:"numPredict,omitempty"`
	TopP        float64 `json:"topP"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Format  string          `json:"format,omitempty"`
	Options generateOptions `json:"options"`
	Raw     bool            `json:"raw"`
	Stream  bool            `json:"stream"`
	Stop    []string        `json:"stop"`
}

type generateResponse struct {
	Done     bool   `json:"done"`
	Response string `json:"response"`
}

// Send formats the conversation and issues one generate request.
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

	body, err := json.Marshal(c.buildRequest(prompt, settings))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger := observability.FromContext(ctx)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logger.Error("model not available on inference server",
			observability.String("model", c.modelFor(settings)))
		return domain.ModelUnavailableResult(settings), nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, string(errBody))
	}

	var envelope generateResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	logger.Debug("generate completed",
		observability.Bool("done", envelope.Done),
		observability.Int("response_length", len(envelope.Response)),
		observability.Duration("elapsed", time.Since(start)))

	return domain.AssistantResult(envelope.Response), nil
}

// HealthCheck lists the server's models to confirm it is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tagsPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inference server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrTransport, resp.StatusCode)
	}
	return nil
}

func (c *Client) buildRequest(prompt string, settings domain.PromptSettings) generateRequest {
	req := generateRequest{
		Model:  c.modelFor(settings),
		Prompt: prompt,
		Options: generateOptions{
			Temperature: roundTemperature(settings.Temperature),
			TopP:        settings.TopP,
		},
		Raw:    true,
		Stream: settings.Stream,
		Stop:   settings.StopSequences,
	}

	if settings.IsJSON() {
		req.Format = string(domain.ResponseFormatJSON)
	}

	if settings.MaxTokens > 0 {
		maxTokens := settings.MaxTokens
		req.Options.NumPredict = &maxTokens
	}

	if req.Stop == nil {
		req.Stop = []string{}
	}

	return req
}

func (c *Client) modelFor(settings domain.PromptSettings) string {
	if settings.ModelID != "" {
		return settings.ModelID
	}
	return c.model
}

func roundTemperature(t float64) float64 {
	return math.Round(t*temperaturePrecision) / temperaturePrecision
}
