package api

import (
	"reviewminer/internal/database"
	"reviewminer/internal/domain"
)

// MineRequest represents a single review enrichment request.
type MineRequest struct {
	Review *domain.ReviewRecord `json:"review" binding:"required"`
}

// MineResponse represents a single review enrichment response.
type MineResponse struct {
	Review domain.EnrichedReview `json:"review"`
}

// MineBatchRequest represents a batch mining request.
type MineBatchRequest struct {
	Reviews []domain.ReviewRecord `json:"reviews" binding:"required,min=1"`
}

// MineBatchResponse represents a completed mining run.
type MineBatchResponse struct {
	RunID      string                   `json:"run_id"`
	Total      int                      `json:"total"`
	Validation domain.ValidationSummary `json:"validation"`
	Report     domain.InsightsReport    `json:"report"`
	Reviews    []domain.EnrichedReview  `json:"reviews"`
}

// RunsListResponse represents a list of mining runs, newest first.
type RunsListResponse struct {
	Runs  []*database.MiningRun `json:"runs"`
	Total int                   `json:"total"`
}

// ReviewsResponse represents the enriched reviews of one run.
type ReviewsResponse struct {
	RunID   string                  `json:"run_id"`
	Total   int                     `json:"total"`
	Reviews []domain.EnrichedReview `json:"reviews"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Max   int    `json:"max,omitempty"`
}
