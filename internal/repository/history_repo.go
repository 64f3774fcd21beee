package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yashovardan8harit/caption-backend/internal/domain"
	"gorm.io/gorm"
)

// HistoryRepository handles caption history persistence.
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *HistoryRepository: repository instance bound to db.
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new caption record and assigns its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - record: caption record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *HistoryRepository) Create(ctx context.Context, record *domain.CaptionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID retrieves a caption record by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: record ID.
// Returns:
//   - *domain.CaptionRecord: record if found.
//   - error: domain.ErrNotFound if absent, other errors on query failure.
func (r *HistoryRepository) GetByID(ctx context.Context, id uint) (*domain.CaptionRecord, error) {
	var record domain.CaptionRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListByUser retrieves a user's caption history, most recent first.
// Ties on created_at break by ID so ordering stays stable.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner identity.
//   - limit: maximum number of records to return.
// Returns:
//   - []domain.CaptionRecord: matching records.
//   - error: non-nil if the query fails.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.CaptionRecord, error) {
	var records []domain.CaptionRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list caption history: %w", err)
	}
	return records, nil
}

// CountByUser counts a user's caption records.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner identity.
// Returns:
//   - int64: number of records.
//   - error: non-nil if the query fails.
func (r *HistoryRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.CaptionRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteOne deletes a single record after an ownership check. The check and
// delete run in one transaction so a concurrent delete cannot slip between
// them.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: record ID to delete.
//   - userID: requesting identity.
// Returns:
//   - *domain.CaptionRecord: the deleted record.
//   - error: domain.ErrNotFound if absent, domain.ErrForbidden on ownership
//     mismatch, other errors on storage failure.
func (r *HistoryRepository) DeleteOne(ctx context.Context, id uint, userID string) (*domain.CaptionRecord, error) {
	var record domain.CaptionRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if record.UserID != userID {
			return domain.ErrForbidden
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&domain.CaptionRecord{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteAllForUser deletes every record owned by a user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner identity.
// Returns:
//   - []string: storage keys of deleted records that had an archived object.
//   - int64: number of rows deleted (0 when nothing matched).
//   - error: non-nil if the delete fails.
func (r *HistoryRepository) DeleteAllForUser(ctx context.Context, userID string) ([]string, int64, error) {
	var keys []string
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.CaptionRecord{}).
			Where("user_id = ? AND storage_key <> ''", userID).
			Pluck("storage_key", &keys).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", userID).Delete(&domain.CaptionRecord{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return keys, deleted, nil
}
