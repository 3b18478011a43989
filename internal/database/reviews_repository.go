package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"reviewminer/internal/domain"
)

// ReviewsRepository handles database operations for enriched reviews.
type ReviewsRepository struct {
	db *sqlx.DB
}

// NewReviewsRepository creates a new enriched review repository.
func NewReviewsRepository(db *sqlx.DB) *ReviewsRepository {
	return &ReviewsRepository{db: db}
}

// InsertBatch stores an enriched batch under a run ID in one transaction,
// keeping the batch order in the position column.
func (r *ReviewsRepository) InsertBatch(ctx context.Context, runID string, reviews []domain.EnrichedReview) error {
	if len(reviews) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO enriched_reviews (
			run_id, position, product_id, product_name, title,
			rating, review_date, content, features
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, review := range reviews {
		features, err := json.Marshal(review.Features)
		if err != nil {
			return fmt.Errorf("failed to encode features at position %d: %w", i, err)
		}

		var rating any
		if review.Rating.Valid {
			rating = review.Rating.Value
		}
		var reviewDate any
		if review.ReviewDate.Valid {
			reviewDate = review.ReviewDate.Time
		}

		if _, err := stmt.ExecContext(ctx,
			runID,
			i,
			review.ProductID,
			review.ProductName,
			review.Title,
			rating,
			reviewDate,
			review.Content,
			string(features),
		); err != nil {
			return fmt.Errorf("failed to insert review at position %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// reviewRow is the raw table shape; features is a JSON column.
type reviewRow struct {
	Position    int             `db:"position"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Title       string          `db:"title"`
	Rating      sql.NullFloat64 `db:"rating"`
	ReviewDate  sql.NullTime    `db:"review_date"`
	Content     string          `db:"content"`
	Features    string          `db:"features"`
}

// GetByRun retrieves the enriched reviews of one run in batch order.
func (r *ReviewsRepository) GetByRun(ctx context.Context, runID string) ([]domain.EnrichedReview, error) {
	var rows []reviewRow
	query := `
		SELECT position, product_id, product_name, title, rating, review_date, content, features
		FROM enriched_reviews
		WHERE run_id = ?
		ORDER BY position ASC
	`
	if err := r.db.SelectContext(ctx, &rows, query, runID); err != nil {
		return nil, fmt.Errorf("failed to get reviews for run %s: %w", runID, err)
	}

	reviews := make([]domain.EnrichedReview, 0, len(rows))
	for _, row := range rows {
		review, err := decodeReview(row)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// CountByRun returns the number of stored reviews for a run.
func (r *ReviewsRepository) CountByRun(ctx context.Context, runID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM enriched_reviews WHERE run_id = ?`, runID); err != nil {
		return 0, fmt.Errorf("failed to count reviews for run %s: %w", runID, err)
	}
	return count, nil
}

func decodeReview(row reviewRow) (domain.EnrichedReview, error) {
	review := domain.EnrichedReview{
		ReviewRecord: domain.ReviewRecord{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Title:       row.Title,
			Content:     row.Content,
		},
	}
	if row.Rating.Valid {
		review.Rating = domain.NewRating(row.Rating.Float64)
	}
	if row.ReviewDate.Valid {
		review.ReviewDate = domain.NewDate(row.ReviewDate.Time.UTC())
	}
	if err := json.Unmarshal([]byte(row.Features), &review.Features); err != nil {
		return domain.EnrichedReview{}, fmt.Errorf("failed to decode features at position %d: %w", row.Position, err)
	}
	return review, nil
}
