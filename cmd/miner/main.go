// Command miner runs the review mining engine over a JSON file of reviews
// and writes the enriched reviews and the insights report to disk. With
// -db it also persists the run so the HTTP API can serve it later.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"reviewminer/internal/config"
	"reviewminer/internal/database"
	"reviewminer/internal/domain"
	"reviewminer/internal/logger"
	"reviewminer/internal/miner"
	"reviewminer/internal/processor"
)

const (
	defaultConcurrency = 10
	outputFilePerm     = 0o644
)

type options struct {
	inputPath   string
	outputPath  string
	reportPath  string
	dbPath      string
	concurrency int
	version     string
	logLevel    string
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.inputPath, "input", "", "path to a JSON file with an array of reviews (required)")
	flag.StringVar(&opts.outputPath, "output", "enriched.json", "path to write enriched reviews to")
	flag.StringVar(&opts.reportPath, "report", "insights.json", "path to write the insights report to")
	flag.StringVar(&opts.dbPath, "db", "", "optional SQLite path to persist the run")
	flag.IntVar(&opts.concurrency, "concurrency", defaultConcurrency, "number of enrichment workers")
	flag.StringVar(&opts.version, "version", "dev", "engine version recorded with the run")
	flag.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()
	if opts.inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.Must(logger.Config{Level: opts.logLevel})
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), opts, log); err != nil {
		log.Error("mining run failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log logger.Logger) error {
	records, err := readReviews(opts.inputPath)
	if err != nil {
		return err
	}
	log.Info("loaded reviews",
		logger.String("input", opts.inputPath),
		logger.Int("count", len(records)),
	)

	engine := miner.NewEngine(log, miner.Config{Version: opts.version})
	validation := engine.Validate(records)

	batch := processor.NewBatchProcessor(engine, opts.concurrency, log, nil)
	start := time.Now()
	enriched, err := batch.Process(ctx, records)
	if err != nil {
		return fmt.Errorf("enrich reviews: %w", err)
	}
	report := engine.Aggregate(enriched)
	log.Info("mining complete",
		logger.Int("reviews", len(enriched)),
		logger.Duration("elapsed", time.Since(start)),
	)

	if err := writeJSON(opts.outputPath, enriched); err != nil {
		return err
	}
	if err := writeJSON(opts.reportPath, report); err != nil {
		return err
	}
	log.Info("results written",
		logger.String("output", opts.outputPath),
		logger.String("report", opts.reportPath),
	)

	if opts.dbPath != "" {
		runID, err := persistRun(ctx, opts, enriched, report, validation)
		if err != nil {
			return err
		}
		log.Info("run persisted",
			logger.String("run_id", runID),
			logger.String("db", opts.dbPath),
		)
	}

	printSummary(report, validation)
	return nil
}

func readReviews(path string) ([]domain.ReviewRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	var records []domain.ReviewRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse input file: %w", err)
	}
	return records, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, outputFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func persistRun(
	ctx context.Context,
	opts options,
	enriched []domain.EnrichedReview,
	report domain.InsightsReport,
	validation domain.ValidationSummary,
) (string, error) {
	db, err := database.NewSQLiteConnection(config.DatabaseConfig{Path: opts.dbPath})
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	run := &database.MiningRun{
		ID:            uuid.NewString(),
		EngineVersion: opts.version,
		ReviewCount:   len(enriched),
		Report:        report,
		Validation:    validation,
	}
	if err := database.NewRunsRepository(db).Create(ctx, run); err != nil {
		return "", fmt.Errorf("persist run: %w", err)
	}
	if err := database.NewReviewsRepository(db).InsertBatch(ctx, run.ID, enriched); err != nil {
		return "", fmt.Errorf("persist reviews: %w", err)
	}
	return run.ID, nil
}

func printSummary(report domain.InsightsReport, validation domain.ValidationSummary) {
	fmt.Printf("Reviews analyzed:   %d\n", report.Overall.TotalReviews)
	fmt.Printf("Unique products:    %d\n", report.Overall.UniqueProducts)
	if avg := report.Overall.AverageRating; avg.Valid {
		fmt.Printf("Average rating:     %.2f\n", avg.Value)
	} else {
		fmt.Printf("Average rating:     N/A\n")
	}
	if avg := report.Sentiment.AvgCompound; avg.Valid {
		fmt.Printf("Average sentiment:  %.3f\n", avg.Value)
	}
	fmt.Printf("Positive/negative:  %.1f%% / %.1f%%\n",
		report.Sentiment.PositiveReviewsPct, report.Sentiment.NegativeReviewsPct)
	fmt.Printf("Dominant emotion:   %s\n", topEmotion(report))
	if validation.EmptyContent > 0 || validation.MissingRating > 0 {
		fmt.Printf("Degraded records:   %d empty, %d unrated\n",
			validation.EmptyContent, validation.MissingRating)
	}
}

func topEmotion(report domain.InsightsReport) string {
	best, bestCount := "neutral", 0
	for emotion, count := range report.Emotion.DominantDistribution {
		if count > bestCount && emotion != "neutral" {
			best, bestCount = emotion, count
		}
	}
	return best
}
