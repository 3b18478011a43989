// Package miner implements the review feature extraction engine: per-review
// enrichment across nine feature groups, batch validation, and aggregate
// insight reporting.
package miner

import (
	"context"
	"sync"
	"time"

	"github.com/jonreiter/govader"
	prose "github.com/tsawler/prose/v3"

	"reviewminer/internal/domain"
	"reviewminer/internal/lexicon"
	"reviewminer/internal/logger"
)

const (
	// recentReviewWindowDays bounds the is_recent temporal flag.
	recentReviewWindowDays = 30

	// negationPenalty is subtracted from the compound score once per
	// detected negation marker.
	negationPenalty = 0.1

	// disagreementThreshold is the compound magnitude beyond which text
	// sentiment can contradict a star rating.
	disagreementThreshold = 0.1

	highRatingFloor = 4.0
	lowRatingCeil   = 2.0
)

// Engine derives the full feature set for review records. Construct with
// NewEngine; safe for concurrent use.
type Engine struct {
	logger    logger.Logger
	lexicon   *lexicon.Store
	tokenizer prose.Tokenizer

	// The intensity analyzer is not documented as goroutine-safe, so
	// scoring takes this lock.
	analyzerMu sync.Mutex
	analyzer   *govader.SentimentIntensityAnalyzer

	now     func() time.Time
	version string
}

// Config holds engine configuration.
type Config struct {
	Version string

	// DisableSentimentAnalyzer drops the intensity analyzer. Intensity
	// scores then degrade to their neutral defaults (0, 0, 0, 1) and
	// downstream features fall back to word-count signals.
	DisableSentimentAnalyzer bool
}

// NewEngine builds an engine with the fixed lexicon tables, the intensity
// analyzer, and the word tokenizer.
func NewEngine(log logger.Logger, cfg Config) *Engine {
	e := &Engine{
		logger:    log,
		lexicon:   lexicon.New(),
		tokenizer: prose.NewIterTokenizer(),
		now:       time.Now,
		version:   cfg.Version,
	}
	if !cfg.DisableSentimentAnalyzer {
		e.analyzer = govader.NewSentimentIntensityAnalyzer()
	} else {
		log.Warn("sentiment intensity analyzer disabled, scores degrade to neutral")
	}
	return e
}

// Version returns the engine version string stamped on mining runs.
func (e *Engine) Version() string {
	return e.version
}

// AnalyzerDisabled reports whether intensity scores are degrading to their
// neutral defaults because no analyzer is available.
func (e *Engine) AnalyzerDisabled() bool {
	return e.analyzer == nil
}

// Enrich derives every feature group for one review record. It never fails:
// missing or malformed inputs degrade the affected features to neutral
// defaults. The input record is not mutated.
func (e *Engine) Enrich(ctx context.Context, rec domain.ReviewRecord) domain.EnrichedReview {
	start := time.Now()
	content := rec.Content

	// 1. Lexical statistics
	lexical := e.lexicalFeatures(content)

	// 2. Sentiment intensity plus the word-count signals
	sentiment := e.sentimentFeatures(content, lexical.WordCount)

	// 3. Rating vs text polarity
	disagreement := disagreementFeatures(rec.Rating, sentiment.Compound)

	// 4. Aspect mentions, with the review-level score attributed to each
	aspects := e.aspectFeatures(content, sentiment)

	// 5. Emotion lexicon counts
	emotion := e.emotionFeatures(content)

	// 6. Emoji detection and emoji-derived tone
	emoji := e.emojiFeatures(content)

	// 7. Slang detection
	slang := e.slangFeatures(content)

	// 8. Quality flags and the composite quality score
	quality := e.qualityFeatures(content, lexical, sentiment, aspects)

	// 9. Review age
	temporal := e.temporalFeatures(rec.ReviewDate)

	enriched := domain.EnrichedReview{
		ReviewRecord: rec,
		Features: domain.Features{
			Lexical:      lexical,
			Sentiment:    sentiment,
			Disagreement: disagreement,
			Aspects:      aspects,
			Emotion:      emotion,
			Emoji:        emoji,
			Slang:        slang,
			Quality:      quality,
			Temporal:     temporal,
		},
	}

	e.logger.Debug("review enriched",
		logger.String("product_id", rec.ProductID),
		logger.Int("word_count", lexical.WordCount),
		logger.Float64("compound", sentiment.Compound),
		logger.Int("aspect_count", aspects.Count),
		logger.Int64("duration_us", time.Since(start).Microseconds()),
	)

	return enriched
}

// EnrichBatch enriches records sequentially, preserving input order. The
// processor package provides the concurrent variant.
func (e *Engine) EnrichBatch(ctx context.Context, records []domain.ReviewRecord) []domain.EnrichedReview {
	enriched := make([]domain.EnrichedReview, len(records))
	for i, rec := range records {
		enriched[i] = e.Enrich(ctx, rec)
	}

	e.logger.Info("batch enriched",
		logger.Int("records", len(records)),
		logger.String("engine_version", e.version),
	)
	return enriched
}
