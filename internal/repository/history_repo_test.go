package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/yashovardan8harit/caption-backend/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *HistoryRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&domain.CaptionRecord{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return NewHistoryRepository(db)
}

func seedRecord(t *testing.T, repo *HistoryRepository, userID string, n int, createdAt time.Time) *domain.CaptionRecord {
	t.Helper()

	record := &domain.CaptionRecord{
		UserID:          userID,
		ImageURL:        fmt.Sprintf("https://example.com/%d.jpg", n),
		BasicCaption:    fmt.Sprintf("basic caption %d", n),
		EnhancedCaption: fmt.Sprintf("enhanced caption %d", n),
		Style:           domain.StyleCreative,
		CreatedAt:       createdAt,
	}
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}
	return record
}

func TestCreateAssignsID(t *testing.T) {
	repo := newTestRepo(t)

	record := seedRecord(t, repo, "user-a", 1, time.Now())
	if record.ID == 0 {
		t.Error("expected ID to be assigned on create")
	}
}

func TestListByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Five records for user-a at distinct times, three for user-b.
	for i := 0; i < 5; i++ {
		seedRecord(t, repo, "user-a", i, base.Add(time.Duration(i)*time.Minute))
	}
	for i := 0; i < 3; i++ {
		seedRecord(t, repo, "user-b", 100+i, base)
	}

	t.Run("most recent first", func(t *testing.T) {
		records, err := repo.ListByUser(ctx, "user-a", 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 5 {
			t.Fatalf("expected 5 records, got %d", len(records))
		}
		for i := 1; i < len(records); i++ {
			if records[i].CreatedAt.After(records[i-1].CreatedAt) {
				t.Errorf("records out of order at index %d", i)
			}
		}
		if records[0].BasicCaption != "basic caption 4" {
			t.Errorf("expected newest record first, got %q", records[0].BasicCaption)
		}
	})

	t.Run("limit applied", func(t *testing.T) {
		records, err := repo.ListByUser(ctx, "user-a", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("no cross-user leakage", func(t *testing.T) {
		records, err := repo.ListByUser(ctx, "user-b", 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		for _, r := range records {
			if r.UserID != "user-b" {
				t.Errorf("record %d belongs to %q", r.ID, r.UserID)
			}
		}
	})

	t.Run("ties break by id descending", func(t *testing.T) {
		records, err := repo.ListByUser(ctx, "user-b", 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 1; i < len(records); i++ {
			if records[i].ID > records[i-1].ID {
				t.Errorf("tied records out of ID order at index %d", i)
			}
		}
	})

	t.Run("unknown user yields empty", func(t *testing.T) {
		records, err := repo.ListByUser(ctx, "user-z", 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %d", len(records))
		}
	})
}

func TestCountByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedRecord(t, repo, "user-a", 1, time.Now())
	seedRecord(t, repo, "user-a", 2, time.Now())

	count, err := repo.CountByUser(ctx, "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	count, err = repo.CountByUser(ctx, "user-z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
}

func TestDeleteOne(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes own record", func(t *testing.T) {
		repo := newTestRepo(t)
		record := seedRecord(t, repo, "user-a", 1, time.Now())

		deleted, err := repo.DeleteOne(ctx, record.ID, "user-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted.ID != record.ID {
			t.Errorf("expected deleted record %d, got %d", record.ID, deleted.ID)
		}

		if _, err := repo.GetByID(ctx, record.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected record to be gone, got %v", err)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		repo := newTestRepo(t)

		if _, err := repo.DeleteOne(ctx, 9999, "user-a"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("other user's record", func(t *testing.T) {
		repo := newTestRepo(t)
		record := seedRecord(t, repo, "user-a", 1, time.Now())

		if _, err := repo.DeleteOne(ctx, record.ID, "user-b"); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}

		// The record must survive an unauthorized attempt.
		if _, err := repo.GetByID(ctx, record.ID); err != nil {
			t.Errorf("expected record to remain, got %v", err)
		}
	})
}

func TestDeleteAllForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes only the user's records", func(t *testing.T) {
		repo := newTestRepo(t)
		seedRecord(t, repo, "user-a", 1, time.Now())
		seedRecord(t, repo, "user-a", 2, time.Now())
		seedRecord(t, repo, "user-b", 3, time.Now())

		_, deleted, err := repo.DeleteAllForUser(ctx, "user-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 2 {
			t.Errorf("expected 2 deletions, got %d", deleted)
		}

		remaining, err := repo.ListByUser(ctx, "user-b", 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 1 {
			t.Errorf("expected user-b records untouched, got %d", len(remaining))
		}
	})

	t.Run("empty history deletes nothing", func(t *testing.T) {
		repo := newTestRepo(t)

		keys, deleted, err := repo.DeleteAllForUser(ctx, "user-z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 0 {
			t.Errorf("expected 0 deletions, got %d", deleted)
		}
		if len(keys) != 0 {
			t.Errorf("expected no storage keys, got %v", keys)
		}
	})

	t.Run("collects archive keys", func(t *testing.T) {
		repo := newTestRepo(t)
		withKey := seedRecord(t, repo, "user-a", 1, time.Now())
		withKey.StorageKey = "captions/abc.jpg"
		if err := repo.db.Save(withKey).Error; err != nil {
			t.Fatalf("failed to set storage key: %v", err)
		}
		seedRecord(t, repo, "user-a", 2, time.Now())

		keys, deleted, err := repo.DeleteAllForUser(ctx, "user-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted != 2 {
			t.Errorf("expected 2 deletions, got %d", deleted)
		}
		if len(keys) != 1 || keys[0] != "captions/abc.jpg" {
			t.Errorf("expected archived key, got %v", keys)
		}
	})
}
