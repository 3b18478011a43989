// Package api exposes the review mining engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"reviewminer/internal/database"
	"reviewminer/internal/domain"
	"reviewminer/internal/logger"
	"reviewminer/internal/miner"
	"reviewminer/internal/processor"
	"reviewminer/internal/telemetry"
)

const defaultMaxBatchSize = 500

// Handler handles HTTP requests for the review mining API
type Handler struct {
	engine         *miner.Engine
	batchProcessor *processor.BatchProcessor
	runsRepo       *database.RunsRepository
	reviewsRepo    *database.ReviewsRepository
	telemetry      *telemetry.Provider
	maxBatchSize   int
	logger         logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	engine *miner.Engine,
	batchProcessor *processor.BatchProcessor,
	runsRepo *database.RunsRepository,
	reviewsRepo *database.ReviewsRepository,
	tel *telemetry.Provider,
	maxBatchSize int,
	log logger.Logger,
) *Handler {
	if maxBatchSize <= 0 {
		maxBatchSize = defaultMaxBatchSize
	}
	return &Handler{
		engine:         engine,
		batchProcessor: batchProcessor,
		runsRepo:       runsRepo,
		reviewsRepo:    reviewsRepo,
		telemetry:      tel,
		maxBatchSize:   maxBatchSize,
		logger:         log,
	}
}

// Mine handles POST /api/v1/mine
func (h *Handler) Mine(c *gin.Context) {
	var req MineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid mine request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	enriched := h.engine.Enrich(c.Request.Context(), *req.Review)

	c.JSON(http.StatusOK, MineResponse{Review: enriched})
}

// MineBatch handles POST /api/v1/mine/batch
func (h *Handler) MineBatch(c *gin.Context) {
	var req MineBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch mine request", logger.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if len(req.Reviews) > h.maxBatchSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "batch exceeds the maximum size",
			Max:   h.maxBatchSize,
		})
		return
	}

	ctx := c.Request.Context()
	if h.telemetry != nil {
		var span trace.Span
		ctx, span = h.telemetry.StartSpan(ctx, "mine_batch",
			attribute.Int("batch_size", len(req.Reviews)),
		)
		defer span.End()
	}
	h.logger.Info("mining batch", logger.Int("batch_size", len(req.Reviews)))

	validation := h.engine.Validate(req.Reviews)
	h.recordDegradations(ctx, validation)

	enriched, err := h.batchProcessor.Process(ctx, req.Reviews)
	if err != nil {
		h.logger.Error("batch mining failed", logger.Error(err))
		h.recordRun(ctx, false)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	reportStart := time.Now()
	report := h.engine.Aggregate(enriched)
	if h.telemetry != nil {
		h.telemetry.RecordReportDuration(ctx, time.Since(reportStart))
	}

	run := &database.MiningRun{
		ID:            uuid.NewString(),
		EngineVersion: h.engine.Version(),
		ReviewCount:   len(enriched),
		Report:        report,
		Validation:    validation,
	}
	if err := h.runsRepo.Create(ctx, run); err != nil {
		h.logger.Error("failed to persist mining run", logger.Error(err))
		h.recordRun(ctx, false)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to persist mining run"})
		return
	}
	if err := h.reviewsRepo.InsertBatch(ctx, run.ID, enriched); err != nil {
		h.logger.Error("failed to persist enriched reviews",
			logger.String("run_id", run.ID),
			logger.Error(err),
		)
		h.recordRun(ctx, false)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to persist enriched reviews"})
		return
	}

	h.recordRun(ctx, true)
	h.logger.Info("mining run complete",
		logger.String("run_id", run.ID),
		logger.Int("reviews", len(enriched)),
	)

	c.JSON(http.StatusOK, MineBatchResponse{
		RunID:      run.ID,
		Total:      len(enriched),
		Validation: validation,
		Report:     report,
		Reviews:    enriched,
	})
}

// GetLatestInsights handles GET /api/v1/insights/latest
func (h *Handler) GetLatestInsights(c *gin.Context) {
	run, err := h.runsRepo.GetLatest(c.Request.Context())
	if err != nil {
		h.respondRunLookup(c, "", err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// GetInsightsByRun handles GET /api/v1/insights/:run_id
func (h *Handler) GetInsightsByRun(c *gin.Context) {
	runID := c.Param("run_id")
	run, err := h.runsRepo.GetByID(c.Request.Context(), runID)
	if err != nil {
		h.respondRunLookup(c, runID, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListRuns handles GET /api/v1/runs
func (h *Handler) ListRuns(c *gin.Context) {
	limit := queryInt(c, "limit", 20)

	runs, err := h.runsRepo.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list runs", logger.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, RunsListResponse{Runs: runs, Total: len(runs)})
}

// GetLatestReviews handles GET /api/v1/reviews/latest
func (h *Handler) GetLatestReviews(c *gin.Context) {
	ctx := c.Request.Context()

	run, err := h.runsRepo.GetLatest(ctx)
	if err != nil {
		h.respondRunLookup(c, "", err)
		return
	}

	reviews, err := h.reviewsRepo.GetByRun(ctx, run.ID)
	if err != nil {
		h.logger.Error("failed to load reviews",
			logger.String("run_id", run.ID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load reviews"})
		return
	}

	c.JSON(http.StatusOK, ReviewsResponse{
		RunID:   run.ID,
		Total:   len(reviews),
		Reviews: reviews,
	})
}

// GetStatsSummary handles GET /api/v1/stats/summary
func (h *Handler) GetStatsSummary(c *gin.Context) {
	stats, err := h.runsRepo.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get run stats", logger.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get run stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.engine.Version(),
	})
}

// ReadyCheck handles GET /ready. Ready means a run lookup can reach the
// database.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if _, err := h.runsRepo.GetStats(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) respondRunLookup(c *gin.Context, runID string, err error) {
	if errors.Is(err, database.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no mining run found"})
		return
	}
	h.logger.Error("run lookup failed",
		logger.String("run_id", runID),
		logger.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "run lookup failed"})
}

func (h *Handler) recordRun(ctx context.Context, success bool) {
	if h.telemetry != nil {
		h.telemetry.RecordMiningRun(ctx, success)
	}
}

func (h *Handler) recordDegradations(ctx context.Context, v domain.ValidationSummary) {
	if h.telemetry == nil {
		return
	}
	for i := 0; i < v.EmptyContent; i++ {
		h.telemetry.RecordDegradedField(ctx, "content")
	}
	for i := 0; i < v.MissingRating; i++ {
		h.telemetry.RecordDegradedField(ctx, "rating")
	}
	for i := 0; i < v.MissingDate; i++ {
		h.telemetry.RecordDegradedField(ctx, "review_date")
	}
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
