package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/davidbz/ollamagen/internal/domain"
	"github.com/davidbz/ollamagen/internal/generation"
	"github.com/davidbz/ollamagen/internal/observability"
)

const (
	defaultCategoryCount = 5
	maxCategoryCount     = 50
)

// CategoryBatcher generates one batch of categories on demand.
type CategoryBatcher interface {
	GenerateBatch(ctx context.Context, size int) ([]generation.Category, error)
}

// CompletionRequest is the body of POST /v1/completions.
type CompletionRequest struct {
	Prompt string `json:"prompt"`
}

// CompletionResponse is the reply of POST /v1/completions.
type CompletionResponse struct {
	Content string `json:"content"`
}

// CategoriesResponse is the reply of POST /v1/categories.
type CategoriesResponse struct {
	Categories []generation.Category `json:"categories"`
}

// Handler handles HTTP requests.
type Handler struct {
	completer  domain.Completer
	categories CategoryBatcher
	health     domain.HealthChecker
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(completer domain.Completer, categories CategoryBatcher, health domain.HealthChecker) *Handler {
	return &Handler{
		completer:  completer,
		categories: categories,
		health:     health,
	}
}

// HandleCompletion returns the free-text completion of a prompt.
func (h *Handler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("completion request received", observability.Int("prompt_length", len(req.Prompt)))

	content, err := h.completer.GetChatCompletion(ctx, req.Prompt)
	if err != nil {
		logger.Error("completion failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(ctx, w, http.StatusOK, CompletionResponse{Content: content})
}

// HandleCategories generates a batch of categories without persisting them.
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	ctx := observability.WithEntityKind(r.Context(), generation.KindCategories)

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count := defaultCategoryCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxCategoryCount {
			http.Error(w, fmt.Sprintf("count must be between 1 and %d", maxCategoryCount), http.StatusBadRequest)
			return
		}
		count = parsed
	}

	logger := observability.FromContext(ctx)
	logger.Info("category request received", observability.Int("count", count))

	categories, err := h.categories.GenerateBatch(ctx, count)
	if err != nil {
		logger.Error("category generation failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(ctx, w, http.StatusOK, CategoriesResponse{Categories: categories})
}

// HandleHealth reports whether the inference server is reachable.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.health != nil {
		if err := h.health.HealthCheck(ctx); err != nil {
			observability.FromContext(ctx).Warn("health check failed", observability.Error(err))
			writeJSON(ctx, w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}
