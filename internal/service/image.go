package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/go-resty/resty/v2"
	"github.com/yashovardan8harit/caption-backend/internal/config"
	_ "golang.org/x/image/webp"
)

// FetchedImage is a downloaded image normalized to 3-channel JPEG.
type FetchedImage struct {
	JPEG   []byte
	Width  int
	Height int
}

// ImageFetcher downloads an image URL and normalizes it for inference.
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) (*FetchedImage, error)
}

// HTTPImageFetcher implements ImageFetcher over plain HTTP.
type HTTPImageFetcher struct {
	client   *resty.Client
	maxBytes int64
}

// NewImageFetcher creates a new HTTP image fetcher.
// Parameters:
//   - cfg: fetch configuration including timeout and size cap.
// Returns:
//   - *HTTPImageFetcher: initialized fetcher.
func NewImageFetcher(cfg *config.FetchConfig) *HTTPImageFetcher {
	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &HTTPImageFetcher{
		client:   client,
		maxBytes: cfg.MaxBytes,
	}
}

// Fetch downloads and normalizes an image.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imageURL: source image URL.
// Returns:
//   - *FetchedImage: normalized JPEG bytes and dimensions.
//   - error: non-nil on transport failure, non-2xx status, oversized body,
//     or an undecodable image.
func (f *HTTPImageFetcher) Fetch(ctx context.Context, imageURL string) (*FetchedImage, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("image fetch returned HTTP %d", resp.StatusCode())
	}

	body := resp.Body()
	if f.maxBytes > 0 && int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("image too large: %d bytes", len(body))
	}

	jpegBytes, width, height, err := normalizeImage(body)
	if err != nil {
		return nil, err
	}

	return &FetchedImage{JPEG: jpegBytes, Width: width, Height: height}, nil
}

// normalizeImage decodes image bytes (jpeg, png, gif, webp) and re-encodes
// them as a 3-channel JPEG. Alpha is dropped during JPEG encoding.
func normalizeImage(data []byte) ([]byte, int, int, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: 90}); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), bounds.Dx(), bounds.Dy(), nil
}
