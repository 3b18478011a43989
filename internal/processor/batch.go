// Package processor runs review enrichment concurrently over a worker pool
// and applies request rate limiting.
package processor

import (
	"context"
	"sync"
	"time"

	"reviewminer/internal/domain"
	"reviewminer/internal/logger"
	"reviewminer/internal/miner"
	"reviewminer/internal/telemetry"
)

const defaultConcurrency = 10

// BatchProcessor enriches review batches in parallel using a worker pool.
// Results preserve the input order regardless of worker scheduling.
type BatchProcessor struct {
	engine      *miner.Engine
	concurrency int
	logger      logger.Logger
	telemetry   *telemetry.Provider
}

// NewBatchProcessor creates a new batch processor. The telemetry provider
// may be nil, in which case no metrics are recorded.
func NewBatchProcessor(engine *miner.Engine, concurrency int, log logger.Logger, tel *telemetry.Provider) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &BatchProcessor{
		engine:      engine,
		concurrency: concurrency,
		logger:      log,
		telemetry:   tel,
	}
}

// job pairs a record with its position so workers can write results back
// into place.
type job struct {
	index  int
	record domain.ReviewRecord
}

// Process enriches a batch of review records using the worker pool. The
// returned slice is index-aligned with the input. Enrichment never fails
// per record; the only error is context cancellation.
func (b *BatchProcessor) Process(ctx context.Context, records []domain.ReviewRecord) ([]domain.EnrichedReview, error) {
	if len(records) == 0 {
		return []domain.EnrichedReview{}, nil
	}

	b.logger.Info("starting batch enrichment",
		logger.Int("batch_size", len(records)),
		logger.Int("concurrency", b.concurrency),
	)

	startTime := time.Now()
	results := make([]domain.EnrichedReview, len(records))

	workers := b.concurrency
	if workers > len(records) {
		workers = len(records)
	}

	jobs := make(chan job, len(records))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go b.worker(ctx, jobs, results, &wg)
	}

	for i, rec := range records {
		jobs <- job{index: i, record: rec}
	}
	close(jobs)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		b.logger.Warn("batch enrichment canceled",
			logger.Int("batch_size", len(records)),
			logger.Error(err),
		)
		return nil, err
	}

	duration := time.Since(startTime)
	if b.telemetry != nil {
		b.telemetry.RecordBatch(ctx, len(records), duration)
	}

	b.logger.Info("batch enrichment complete",
		logger.Int("total", len(records)),
		logger.Int64("duration_ms", duration.Milliseconds()),
		logger.Float64("reviews_per_second", float64(len(records))/duration.Seconds()),
	)

	return results, nil
}

// worker drains the jobs channel, writing each result into its input slot.
func (b *BatchProcessor) worker(
	ctx context.Context,
	jobs <-chan job,
	results []domain.EnrichedReview,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	if b.telemetry != nil {
		b.telemetry.Metrics.ActiveWorkers.Inc()
		defer b.telemetry.Metrics.ActiveWorkers.Dec()
	}

	for j := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		enriched := b.engine.Enrich(ctx, j.record)
		results[j.index] = enriched

		if b.telemetry != nil {
			b.telemetry.RecordEnrichment(ctx,
				enriched.Features.Sentiment.Compound,
				enriched.Features.Disagreement.Disagrees,
				time.Since(start),
			)
			b.telemetry.RecordDominantEmotion(ctx, enriched.Features.Emotion.Dominant)
			if b.engine.AnalyzerDisabled() {
				b.telemetry.RecordSentimentDegraded(ctx)
			}
		}
	}
}

// Concurrency returns the configured worker count.
func (b *BatchProcessor) Concurrency() int {
	return b.concurrency
}
