package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"reviewminer/internal/config"
	"reviewminer/internal/domain"
)

// newTestDB opens an in-memory database. A single connection keeps every
// query on the same memory instance.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := NewSQLiteConnection(config.DatabaseConfig{
		Path:           ":memory:",
		MaxConnections: 1,
		MaxIdleConns:   1,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleRun(reviewCount int) *MiningRun {
	return &MiningRun{
		ID:            uuid.NewString(),
		EngineVersion: "test",
		ReviewCount:   reviewCount,
		Report: domain.InsightsReport{
			Overall: domain.OverallStats{
				TotalReviews:    reviewCount,
				AverageRating:   domain.Num(4.2),
				AverageCompound: domain.Num(0.3),
			},
		},
		Validation: domain.ValidationSummary{TotalRecords: reviewCount},
	}
}

func TestRunsRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewRunsRepository(db)
	ctx := context.Background()

	run := sampleRun(3)
	if err := repo.Create(ctx, run); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, run.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != run.ID || got.ReviewCount != 3 {
		t.Errorf("got %+v, want id %s with 3 reviews", got, run.ID)
	}
	if !got.Report.Overall.AverageRating.Valid || got.Report.Overall.AverageRating.Value != 4.2 {
		t.Errorf("report round trip lost average rating: %+v", got.Report.Overall.AverageRating)
	}
	if got.Validation.TotalRecords != 3 {
		t.Errorf("validation round trip lost total records: %+v", got.Validation)
	}
}

func TestRunsRepository_GetLatest(t *testing.T) {
	db := newTestDB(t)
	repo := NewRunsRepository(db)
	ctx := context.Background()

	first := sampleRun(1)
	first.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := sampleRun(2)
	second.CreatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetLatest(ctx)
	if err != nil {
		t.Fatalf("get latest failed: %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("latest = %s, want %s", got.ID, second.ID)
	}
}

func TestRunsRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewRunsRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("got %v, want ErrRunNotFound", err)
	}
	if _, err := repo.GetLatest(ctx); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("got %v, want ErrRunNotFound for empty table", err)
	}
}

func TestRunsRepository_Stats(t *testing.T) {
	db := newTestDB(t)
	repo := NewRunsRepository(db)
	ctx := context.Background()

	empty, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if empty.TotalRuns != 0 || empty.LastRunAt != nil {
		t.Errorf("empty stats = %+v, want zeros", empty)
	}

	if err := repo.Create(ctx, sampleRun(4)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, sampleRun(6)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stats, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalRuns != 2 || stats.TotalReviews != 10 {
		t.Errorf("stats = %+v, want 2 runs over 10 reviews", stats)
	}
	if stats.AvgReviewCount != 5.0 {
		t.Errorf("avg review count = %v, want 5", stats.AvgReviewCount)
	}
	if stats.LastRunAt == nil {
		t.Error("last run time missing")
	}
}

func TestReviewsRepository_InsertAndGet(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunsRepository(db)
	reviews := NewReviewsRepository(db)
	ctx := context.Background()

	run := sampleRun(2)
	if err := runs.Create(ctx, run); err != nil {
		t.Fatalf("create run failed: %v", err)
	}

	batch := []domain.EnrichedReview{
		{
			ReviewRecord: domain.ReviewRecord{
				ProductID:   "p1",
				ProductName: "Widget",
				Rating:      domain.NewRating(5),
				ReviewDate:  domain.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
				Content:     "great",
			},
			Features: domain.Features{
				Sentiment: domain.SentimentFeatures{Compound: 0.6, Neutral: 0.4},
				Quality:   domain.QualityFeatures{Score: 0.5},
			},
		},
		{
			ReviewRecord: domain.ReviewRecord{
				ProductID: "p2",
				Content:   "no rating or date on this one",
			},
		},
	}

	if err := reviews.InsertBatch(ctx, run.ID, batch); err != nil {
		t.Fatalf("insert batch failed: %v", err)
	}

	got, err := reviews.GetByRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("get by run failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reviews, want 2", len(got))
	}

	if got[0].ProductID != "p1" || got[1].ProductID != "p2" {
		t.Errorf("order not preserved: %s, %s", got[0].ProductID, got[1].ProductID)
	}
	if !got[0].Rating.Valid || got[0].Rating.Value != 5 {
		t.Errorf("rating round trip = %+v, want 5", got[0].Rating)
	}
	if got[0].Features.Sentiment.Compound != 0.6 {
		t.Errorf("features round trip lost compound: %v", got[0].Features.Sentiment.Compound)
	}
	if got[1].Rating.Valid || got[1].ReviewDate.Valid {
		t.Errorf("missing fields came back valid: %+v", got[1].ReviewRecord)
	}

	count, err := reviews.CountByRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestReviewsRepository_EmptyBatch(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewsRepository(db)

	if err := reviews.InsertBatch(context.Background(), "any", nil); err != nil {
		t.Errorf("empty batch insert failed: %v", err)
	}
}
