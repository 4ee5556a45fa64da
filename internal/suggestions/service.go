// Package suggestions asks an external completion service for products
// that complement an in-progress order. The adapter is best-effort:
// any failure yields an empty suggestion list and is only logged, so
// it can never surface as an order mutation failure.
package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ClaudioCeppi83/gastro-app/internal/config"
	"github.com/ClaudioCeppi83/gastro-app/internal/logger"
)

// OrderItemSummary is the slice of an order the model sees
type OrderItemSummary struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// Suggestion is one suggested product with the model's reasoning
type Suggestion struct {
	ProductName string `json:"productName"`
	Reason      string `json:"reason"`
}

// Service wraps the completion client and keeps the last suggestions
// per order so reads do not have to wait on the model. A nil Service
// is a no-op, which keeps the feature strictly optional.
type Service struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger

	mu    sync.RWMutex
	cache map[int][]Suggestion
}

// New creates the suggestion service, or nil when disabled in config
func New(cfg *config.Config, log *logger.Logger) *Service {
	if !cfg.Suggestions.Enabled {
		return nil
	}

	clientConfig := openai.DefaultConfig(cfg.Suggestions.APIKey)
	if cfg.Suggestions.BaseURL != "" {
		clientConfig.BaseURL = cfg.Suggestions.BaseURL
	}

	return &Service{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Suggestions.Model,
		timeout: cfg.SuggestionTimeout(),
		logger:  log,
		cache:   make(map[int][]Suggestion),
	}
}

// Suggest asks the model for complementary products. An empty item
// list short-circuits to an empty result without a network call.
func (s *Service) Suggest(ctx context.Context, items []OrderItemSummary) ([]Suggestion, error) {
	if s == nil || len(items) == 0 {
		return []Suggestion{}, nil
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(items),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	parsed, err := parseSuggestions(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	return parsed, nil
}

// Refresh fetches fresh suggestions for an order in the background and
// stores them in the cache. Runs on its own context so it never delays
// or fails the mutation that triggered it.
func (s *Service) Refresh(orderID int, items []OrderItemSummary) {
	if s == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	suggested, err := s.Suggest(ctx, items)
	if err != nil {
		s.logger.Warn("suggestions_failed",
			"Suggestion refresh failed, keeping previous suggestions", "", map[string]interface{}{
				"order_id": orderID,
				"error":    err.Error(),
			})
		return
	}

	s.mu.Lock()
	s.cache[orderID] = suggested
	s.mu.Unlock()
}

// Cached returns the last stored suggestions for an order
func (s *Service) Cached(orderID int) ([]Suggestion, bool) {
	if s == nil {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	suggested, ok := s.cache[orderID]
	return suggested, ok
}

// Forget drops the cached suggestions for an order
func (s *Service) Forget(orderID int) {
	if s == nil {
		return
	}

	s.mu.Lock()
	delete(s.cache, orderID)
	s.mu.Unlock()
}

// buildPrompt renders the current items into the suggestion prompt
func buildPrompt(items []OrderItemSummary) string {
	var b strings.Builder
	b.WriteString("Based on the current order items, suggest relevant products that the customer might also like to add to their order.\n\n")
	b.WriteString("Current Order Items:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %d x %s\n", item.Quantity, item.ProductName)
	}
	b.WriteString("\nSuggest products that complement the existing order. Provide a brief reason for each suggestion.\n\n")
	b.WriteString("Format your output as a JSON array of objects with 'productName' and 'reason' fields.")
	return b.String()
}

// parseSuggestions extracts the JSON array from the model output.
// Models often wrap JSON in markdown fences or leading prose, so the
// parser scans for the outermost array.
func parseSuggestions(content string) ([]Suggestion, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var suggested []Suggestion
	if err := json.Unmarshal([]byte(content[start:end+1]), &suggested); err != nil {
		return nil, err
	}

	return suggested, nil
}
