package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/yashovardan8harit/caption-backend/internal/config"
)

// InferenceProvider produces a plain-text description for a normalized image.
type InferenceProvider interface {
	Caption(ctx context.Context, jpegData []byte) (string, error)
}

// InferenceService calls a hosted image-to-text model over HTTP.
type InferenceService struct {
	client   *resty.Client
	model    string
	endpoint string
}

// NewInferenceService creates a new inference service.
// Parameters:
//   - cfg: inference configuration including base URL, model, and API key.
// Returns:
//   - *InferenceService: initialized model client wrapper.
func NewInferenceService(cfg *config.InferenceConfig) *InferenceService {
	client := resty.New()
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	client.SetTimeout(cfg.Timeout)

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	endpoint := baseURL + "/models/" + cfg.Model

	return &InferenceService{
		client:   client,
		model:    cfg.Model,
		endpoint: endpoint,
	}
}

// GetModel returns the model identifier being used.
func (s *InferenceService) GetModel() string {
	return s.model
}

// captionResponse is the image-to-text API response shape.
type captionResponse []struct {
	GeneratedText string `json:"generated_text"`
}

type captionErrorResponse struct {
	Error string `json:"error"`
}

// Caption generates a basic description for an image.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jpegData: normalized JPEG bytes.
// Returns:
//   - string: generated description text.
//   - error: non-nil if the API request fails or returns no text.
func (s *InferenceService) Caption(ctx context.Context, jpegData []byte) (string, error) {
	var result captionResponse
	var apiErr captionErrorResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "image/jpeg").
		SetBody(jpegData).
		SetResult(&result).
		SetError(&apiErr).
		Post(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call caption model API: %w", err)
	}

	if !resp.IsSuccess() {
		if apiErr.Error != "" {
			return "", fmt.Errorf("caption model API returned HTTP %d: %s", resp.StatusCode(), apiErr.Error)
		}
		return "", fmt.Errorf("caption model API returned HTTP %d", resp.StatusCode())
	}

	if len(result) == 0 || strings.TrimSpace(result[0].GeneratedText) == "" {
		return "", fmt.Errorf("caption model returned no text (status %d)", resp.StatusCode())
	}

	return strings.TrimSpace(result[0].GeneratedText), nil
}
