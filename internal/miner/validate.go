package miner

import (
	"strings"

	"reviewminer/internal/domain"
	"reviewminer/internal/logger"
)

// Validate takes a pre-mining health snapshot of a batch. The summary is
// advisory only; no record is ever rejected for failing a check.
func (e *Engine) Validate(records []domain.ReviewRecord) domain.ValidationSummary {
	summary := domain.ValidationSummary{TotalRecords: len(records)}

	seen := make(map[string]int, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Content) == "" {
			summary.EmptyContent++
		}
		if !rec.Rating.Valid {
			summary.MissingRating++
		}
		if !rec.ReviewDate.Valid {
			summary.MissingDate++
		}
		if rec.ProductID != "" {
			seen[rec.ProductID]++
		}
	}
	for _, count := range seen {
		if count > 1 {
			summary.DuplicateProductIDs += count - 1
		}
	}

	if summary.EmptyContent > 0 || summary.MissingRating > 0 || summary.MissingDate > 0 {
		e.logger.Warn("batch has degraded records",
			logger.Int("total", summary.TotalRecords),
			logger.Int("empty_content", summary.EmptyContent),
			logger.Int("missing_rating", summary.MissingRating),
			logger.Int("missing_date", summary.MissingDate),
			logger.Int("duplicate_product_ids", summary.DuplicateProductIDs),
		)
	}
	return summary
}
