package service

import (
	"context"

	"github.com/yashovardan8harit/caption-backend/internal/domain"
	"github.com/yashovardan8harit/caption-backend/internal/logger"
	"github.com/yashovardan8harit/caption-backend/internal/repository"
	"github.com/yashovardan8harit/caption-backend/internal/storage"
)

// HistoryService applies the history access policies on top of the
// repository: bounded list limits, read faults swallowed to an empty result,
// and best-effort cleanup of archived objects on delete.
type HistoryService struct {
	repo    *repository.HistoryRepository
	archive storage.ObjectStorage
	logger  *logger.Logger

	defaultLimit int
	maxLimit     int
}

// HistoryServiceConfig holds history policy settings.
type HistoryServiceConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// NewHistoryService creates a new history service.
// Parameters:
//   - repo: caption history repository.
//   - archive: optional object storage holding archived images; nil disables cleanup.
//   - log: logger instance.
//   - cfg: policy settings; nil uses defaults.
// Returns:
//   - *HistoryService: initialized history service.
func NewHistoryService(
	repo *repository.HistoryRepository,
	archive storage.ObjectStorage,
	log *logger.Logger,
	cfg *HistoryServiceConfig,
) *HistoryService {
	s := &HistoryService{
		repo:         repo,
		archive:      archive,
		logger:       log,
		defaultLimit: 50,
		maxLimit:     200,
	}
	if cfg != nil {
		if cfg.DefaultLimit > 0 {
			s.defaultLimit = cfg.DefaultLimit
		}
		if cfg.MaxLimit > 0 {
			s.maxLimit = cfg.MaxLimit
		}
	}
	return s
}

// log returns a logger from context if available, otherwise the default logger
func (s *HistoryService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// List returns a user's caption history, most recent first. A store fault
// yields an empty slice, not an error; callers cannot distinguish "no
// history" from a read fault. The fault is logged for operators.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner identity.
//   - limit: maximum records to return; 0 or negative uses the default.
// Returns:
//   - []domain.CaptionRecord: matching records, possibly empty.
func (s *HistoryService) List(ctx context.Context, userID string, limit int) []domain.CaptionRecord {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	records, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.log(ctx).WithError(err).Error("Failed to fetch caption history")
		return []domain.CaptionRecord{}
	}
	if records == nil {
		records = []domain.CaptionRecord{}
	}
	return records
}

// DeleteOne deletes a single record after an ownership check and removes its
// archived image best-effort.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: record ID to delete.
//   - userID: requesting identity.
// Returns:
//   - error: domain.ErrNotFound, domain.ErrForbidden, or a storage failure.
func (s *HistoryService) DeleteOne(ctx context.Context, id uint, userID string) error {
	record, err := s.repo.DeleteOne(ctx, id, userID)
	if err != nil {
		return err
	}

	s.cleanupArchive(ctx, []string{record.StorageKey})
	return nil
}

// Clear deletes every record owned by a user and removes their archived
// images best-effort.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner identity.
// Returns:
//   - int64: number of records deleted (0 when the user had none).
//   - error: non-nil on storage failure.
func (s *HistoryService) Clear(ctx context.Context, userID string) (int64, error) {
	keys, deleted, err := s.repo.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.cleanupArchive(ctx, keys)

	logger.With(logger.Fields{logger.FieldCount: deleted}).
		Info(ctx, "Cleared caption history for user")
	return deleted, nil
}

// cleanupArchive deletes archived objects for removed records. Failures are
// logged only; history deletion already succeeded.
func (s *HistoryService) cleanupArchive(ctx context.Context, keys []string) {
	if s.archive == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.archive.Delete(ctx, key); err != nil {
			s.log(ctx).WithError(err).WithField("key", key).Warn("Failed to delete archived image")
		}
	}
}
