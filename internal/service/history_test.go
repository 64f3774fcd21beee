package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/yashovardan8harit/caption-backend/internal/domain"
	"github.com/yashovardan8harit/caption-backend/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newHistoryRepoForTest(t *testing.T, migrate bool) *repository.HistoryRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if migrate {
		if err := db.AutoMigrate(&domain.CaptionRecord{}); err != nil {
			t.Fatalf("failed to migrate schema: %v", err)
		}
	}
	return repository.NewHistoryRepository(db)
}

func seedHistory(t *testing.T, repo *repository.HistoryRepository, userID string, n int) {
	t.Helper()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		record := &domain.CaptionRecord{
			UserID:          userID,
			ImageURL:        fmt.Sprintf("https://example.com/%d.jpg", i),
			BasicCaption:    fmt.Sprintf("caption %d", i),
			EnhancedCaption: fmt.Sprintf("caption %d", i),
			Style:           domain.StyleCreative,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), record); err != nil {
			t.Fatalf("failed to seed record: %v", err)
		}
	}
}

func TestList_LimitPolicy(t *testing.T) {
	repo := newHistoryRepoForTest(t, true)
	seedHistory(t, repo, "user-a", 5)

	svc := NewHistoryService(repo, nil, nil, &HistoryServiceConfig{
		DefaultLimit: 2,
		MaxLimit:     4,
	})
	ctx := context.Background()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero uses default", limit: 0, want: 2},
		{name: "negative uses default", limit: -3, want: 2},
		{name: "explicit limit honored", limit: 3, want: 3},
		{name: "excessive limit clamped", limit: 100, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := svc.List(ctx, "user-a", tt.limit)
			if len(records) != tt.want {
				t.Errorf("List(limit=%d) returned %d records, want %d", tt.limit, len(records), tt.want)
			}
		})
	}
}

func TestList_ReadFaultYieldsEmpty(t *testing.T) {
	// No migration: every query fails, which must surface as empty history.
	repo := newHistoryRepoForTest(t, false)
	svc := NewHistoryService(repo, nil, nil, nil)

	records := svc.List(context.Background(), "user-a", 10)
	if records == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestClear_ReturnsDeletedCount(t *testing.T) {
	repo := newHistoryRepoForTest(t, true)
	seedHistory(t, repo, "user-a", 3)
	svc := NewHistoryService(repo, nil, nil, nil)

	deleted, err := svc.Clear(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deletions, got %d", deleted)
	}

	deleted, err = svc.Clear(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deletions on second clear, got %d", deleted)
	}
}
