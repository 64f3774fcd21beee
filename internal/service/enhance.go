package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/yashovardan8harit/caption-backend/internal/config"
	"github.com/yashovardan8harit/caption-backend/internal/domain"
	"github.com/yashovardan8harit/caption-backend/internal/prompts"
)

// EnhancementResult is the outcome of one enhancement attempt. A failed
// attempt never aborts caption generation; the orchestrator falls back to
// the basic caption and keeps Reason for the logs.
type EnhancementResult struct {
	Text     string
	Enhanced bool
	Reason   string
}

// Enhancer rewrites a basic caption into a styled one.
type Enhancer interface {
	Enhance(ctx context.Context, basicCaption string, style domain.Style, customDescription string) EnhancementResult
}

// EnhanceService calls an OpenAI-compatible chat-completion API.
type EnhanceService struct {
	client      *resty.Client
	model       string
	endpoint    string
	temperature float32
	maxTokens   int
}

// NewEnhanceService creates a new enhancement service.
// Parameters:
//   - cfg: enhancement configuration including base URL, model, and API key.
// Returns:
//   - *EnhanceService: initialized chat-completion client wrapper.
func NewEnhanceService(cfg *config.EnhanceConfig) *EnhanceService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(cfg.Timeout)

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &EnhanceService{
		client:      client,
		model:       cfg.Model,
		endpoint:    baseURL + "/chat/completions",
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Enhance rewrites a basic caption in the requested style. It never returns
// an error: any failure is reported through the result so callers degrade
// to the basic caption.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - basicCaption: output of the inference step.
//   - style: selected style preset or custom marker.
//   - customDescription: caller guidance for the custom style.
// Returns:
//   - EnhancementResult: cleaned caption text on success, failure reason otherwise.
func (s *EnhanceService) Enhance(ctx context.Context, basicCaption string, style domain.Style, customDescription string) EnhancementResult {
	prompt := prompts.Enhancement(basicCaption, style, customDescription)

	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)
	if err != nil {
		return EnhancementResult{Reason: fmt.Sprintf("request failed: %v", err)}
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		reason := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			reason = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return EnhancementResult{Reason: reason}
	}

	if resp.Error != nil {
		return EnhancementResult{Reason: resp.Error.Message}
	}

	if len(resp.Choices) == 0 {
		return EnhancementResult{Reason: "no choices in response"}
	}

	text := cleanCaption(resp.Choices[0].Message.Content)
	if text == "" {
		return EnhancementResult{Reason: "empty caption in response"}
	}

	return EnhancementResult{Text: text, Enhanced: true}
}

// fillerPrefixes are stripped from model output before the caption is stored.
// Order matters: longer prefixes first so "Here's" never shadows a longer match.
var fillerPrefixes = []string{
	"Enhanced caption:",
	"Caption:",
	"Here's",
	"Here is",
}

// cleanCaption trims model output and strips one leading filler prefix
// (case-insensitive) plus a single leading colon. Applying it twice yields
// the same string as applying it once on already-clean captions.
func cleanCaption(text string) string {
	cleaned := strings.TrimSpace(text)

	lower := strings.ToLower(cleaned)
	for _, prefix := range fillerPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			cleaned = strings.TrimSpace(strings.TrimLeft(cleaned[len(prefix):], ":"))
			cleaned = strings.TrimSpace(cleaned)
			break
		}
	}

	if strings.HasPrefix(cleaned, ":") {
		cleaned = strings.TrimSpace(cleaned[1:])
	}

	return cleaned
}
