package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yashovardan8harit/caption-backend/internal/config"
	"github.com/yashovardan8harit/caption-backend/internal/domain"
	"github.com/yashovardan8harit/caption-backend/internal/logger"
	"github.com/yashovardan8harit/caption-backend/internal/storage"
)

// HistoryWriter persists generated caption records.
type HistoryWriter interface {
	Create(ctx context.Context, record *domain.CaptionRecord) error
}

// GenerateRequest is the typed body of POST /generate-caption.
type GenerateRequest struct {
	ImageURL          string       `json:"image_url"`
	Style             domain.Style `json:"style"`
	CustomDescription string       `json:"custom_description"`
}

// CaptionService orchestrates the caption generation pipeline: validate,
// fetch, infer, enhance, persist.
type CaptionService struct {
	fetcher   ImageFetcher
	inference InferenceProvider
	enhancer  Enhancer
	history   HistoryWriter
	archive   storage.ObjectStorage
	logger    *logger.Logger

	archivePrefix    string
	fetchTimeout     time.Duration
	inferenceTimeout time.Duration
	enhanceTimeout   time.Duration
}

// CaptionServiceConfig holds orchestrator settings.
type CaptionServiceConfig struct {
	ArchivePrefix    string
	FetchTimeout     time.Duration
	InferenceTimeout time.Duration
	EnhanceTimeout   time.Duration
}

// NewCaptionService creates a new caption orchestrator.
// Parameters:
//   - fetcher: image downloader and normalizer.
//   - inference: caption inference adapter.
//   - enhancer: caption enhancement adapter.
//   - history: caption history writer.
//   - archive: optional object storage for archiving normalized images; nil disables it.
//   - log: logger instance.
//   - cfg: orchestrator settings; nil uses defaults.
// Returns:
//   - *CaptionService: initialized orchestrator.
func NewCaptionService(
	fetcher ImageFetcher,
	inference InferenceProvider,
	enhancer Enhancer,
	history HistoryWriter,
	archive storage.ObjectStorage,
	log *logger.Logger,
	cfg *CaptionServiceConfig,
) *CaptionService {
	s := &CaptionService{
		fetcher:          fetcher,
		inference:        inference,
		enhancer:         enhancer,
		history:          history,
		archive:          archive,
		logger:           log,
		archivePrefix:    "captions",
		fetchTimeout:     15 * time.Second,
		inferenceTimeout: 60 * time.Second,
		enhanceTimeout:   30 * time.Second,
	}
	if cfg != nil {
		if cfg.ArchivePrefix != "" {
			s.archivePrefix = cfg.ArchivePrefix
		}
		if cfg.FetchTimeout > 0 {
			s.fetchTimeout = cfg.FetchTimeout
		}
		if cfg.InferenceTimeout > 0 {
			s.inferenceTimeout = cfg.InferenceTimeout
		}
		if cfg.EnhanceTimeout > 0 {
			s.enhanceTimeout = cfg.EnhanceTimeout
		}
	}
	return s
}

// NewCaptionServiceConfig builds orchestrator settings from app config.
func NewCaptionServiceConfig(cfg *config.Config) *CaptionServiceConfig {
	return &CaptionServiceConfig{
		ArchivePrefix:    cfg.Archive.KeyPrefix,
		FetchTimeout:     cfg.Fetch.Timeout,
		InferenceTimeout: cfg.Inference.Timeout,
		EnhanceTimeout:   cfg.Enhance.Timeout,
	}
}

// log returns a logger from context if available, otherwise the default logger
func (s *CaptionService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// Generate runs the full caption pipeline for one request. Steps are strictly
// sequential; fetch and inference failures abort with no record written,
// an enhancement failure degrades to the basic caption, and a persistence
// failure is logged without failing the caller.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: verified owner identity.
//   - req: validated-at-the-edge request body.
// Returns:
//   - *domain.CaptionRecord: assembled record (ID zero when persistence failed).
//   - error: domain.ErrInvalidInput, domain.ErrUpstreamFetch, or domain.ErrInference.
func (s *CaptionService) Generate(ctx context.Context, userID string, req *GenerateRequest) (*domain.CaptionRecord, error) {
	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}

	style := req.Style
	if style == "" {
		style = domain.StyleCreative
	}

	start := time.Now()

	fetchCtx, cancelFetch := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancelFetch()
	img, err := s.fetcher.Fetch(fetchCtx, req.ImageURL)
	if err != nil {
		s.log(ctx).WithError(err).Warn("Image fetch failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}

	inferCtx, cancelInfer := context.WithTimeout(ctx, s.inferenceTimeout)
	defer cancelInfer()
	basicCaption, err := s.inference.Caption(inferCtx, img.JPEG)
	if err != nil {
		s.log(ctx).WithError(err).Error("Caption inference failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrInference, err)
	}

	enhanceCtx, cancelEnhance := context.WithTimeout(ctx, s.enhanceTimeout)
	defer cancelEnhance()
	result := s.enhancer.Enhance(enhanceCtx, basicCaption, style, req.CustomDescription)

	enhancedCaption := basicCaption
	if result.Enhanced {
		enhancedCaption = result.Text
	} else {
		// Degrade gracefully: the basic caption is still a usable result.
		s.log(ctx).WithField("reason", result.Reason).Warn("Enhancement failed, falling back to basic caption")
	}

	record := &domain.CaptionRecord{
		UserID:          userID,
		ImageURL:        req.ImageURL,
		BasicCaption:    basicCaption,
		EnhancedCaption: enhancedCaption,
		Style:           style,
	}
	if style == domain.StyleCustom {
		record.CustomDescription = req.CustomDescription
	}

	record.StorageKey = s.archiveImage(ctx, img)

	// Best-effort persistence: the caller still gets the generated caption
	// when the write fails.
	if err := s.history.Create(ctx, record); err != nil {
		s.log(ctx).WithError(err).Error("Failed to save caption to history")
	}

	logger.With(logger.Fields{
		logger.FieldStyle:      string(style),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Caption generated")

	return record, nil
}

// EnhanceOnly runs the enhancement step against a caller-supplied basic
// caption without touching the image pipeline or history. Used by the
// custom-caption test endpoint.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - basicCaption: description to rewrite.
//   - customDescription: caller style guidance, must be non-blank.
// Returns:
//   - string: enhanced caption, falling back to basicCaption on failure.
//   - error: domain.ErrInvalidInput when customDescription is blank.
func (s *CaptionService) EnhanceOnly(ctx context.Context, basicCaption, customDescription string) (string, error) {
	if strings.TrimSpace(customDescription) == "" {
		return "", &domain.InputError{Reason: "Custom description is required"}
	}

	enhanceCtx, cancel := context.WithTimeout(ctx, s.enhanceTimeout)
	defer cancel()
	result := s.enhancer.Enhance(enhanceCtx, basicCaption, domain.StyleCustom, customDescription)
	if !result.Enhanced {
		s.log(ctx).WithField("reason", result.Reason).Warn("Enhancement failed, falling back to basic caption")
		return basicCaption, nil
	}
	return result.Text, nil
}

// archiveImage uploads the normalized JPEG to object storage, best-effort.
// Returns the storage key, or empty when archiving is disabled or failed.
func (s *CaptionService) archiveImage(ctx context.Context, img *FetchedImage) string {
	if s.archive == nil {
		return ""
	}

	key := fmt.Sprintf("%s/%s.jpg", s.archivePrefix, uuid.New().String())
	err := s.archive.Upload(ctx, key, bytes.NewReader(img.JPEG), int64(len(img.JPEG)), "image/jpeg")
	if err != nil {
		s.log(ctx).WithError(err).Warn("Failed to archive image")
		return ""
	}
	return key
}

// validateGenerateRequest applies the fail-fast checks that run before any
// external call.
func validateGenerateRequest(req *GenerateRequest) error {
	url := strings.TrimSpace(req.ImageURL)
	if url == "" || !(strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")) {
		return &domain.InputError{Reason: "Invalid image URL"}
	}
	if req.Style == domain.StyleCustom && strings.TrimSpace(req.CustomDescription) == "" {
		return &domain.InputError{Reason: "Custom description is required when using custom style"}
	}
	return nil
}
