package miner

import (
	"context"
	"testing"

	"reviewminer/internal/domain"
	"reviewminer/internal/logger"
)

// enrichedFixture builds an EnrichedReview with hand-set features so that
// aggregation is checked independently of the extraction pipeline.
func enrichedFixture(product string, rating float64, mutate func(*domain.Features)) domain.EnrichedReview {
	f := domain.Features{
		Aspects: domain.AspectFeatures{Sentiment: map[string]float64{}},
		Emotion: domain.EmotionFeatures{Counts: map[string]int{}, Dominant: "neutral"},
		Emoji:   domain.EmojiFeatures{Dominant: "neutral"},
	}
	if mutate != nil {
		mutate(&f)
	}
	return domain.EnrichedReview{
		ReviewRecord: domain.ReviewRecord{
			ProductID:   product,
			ProductName: product,
			Rating:      domain.NewRating(rating),
		},
		Features: f,
	}
}

func TestAggregate_EmptyBatch(t *testing.T) {
	e := NewEngine(logger.NewNop(), Config{})

	report := e.Aggregate(nil)

	if report.Overall.TotalReviews != 0 {
		t.Errorf("total = %d, want 0", report.Overall.TotalReviews)
	}
	if report.Overall.AverageRating.Valid {
		t.Error("average rating applicable for an empty batch")
	}
	if report.Overall.AverageCompound.Valid {
		t.Error("average sentiment applicable for an empty batch")
	}
	if report.Sentiment.PositiveReviewsPct != 0 || report.Quality.HighQualityPct != 0 {
		t.Error("percentages non-zero for an empty batch")
	}
	if len(report.Aspects.Aspects) != 0 {
		t.Errorf("aspects = %v, want none", report.Aspects.Aspects)
	}
}

func TestAggregate_OverallStats(t *testing.T) {
	e := NewEngine(logger.NewNop(), Config{})

	batch := []domain.EnrichedReview{
		enrichedFixture("alpha", 5, nil),
		enrichedFixture("alpha", 4, nil),
		enrichedFixture("beta", 1, nil),
	}
	// One record without a rating.
	noRating := enrichedFixture("gamma", 0, nil)
	noRating.Rating = domain.Rating{}
	batch = append(batch, noRating)

	report := e.Aggregate(batch)

	if report.Overall.TotalReviews != 4 {
		t.Errorf("total = %d, want 4", report.Overall.TotalReviews)
	}
	if report.Overall.UniqueProducts != 3 {
		t.Errorf("unique products = %d, want 3", report.Overall.UniqueProducts)
	}

	// Mean over parseable ratings only: (5+4+1)/3.
	if !report.Overall.AverageRating.Valid || !almostEqual(report.Overall.AverageRating.Value, 10.0/3.0) {
		t.Errorf("average rating = %+v, want 10/3", report.Overall.AverageRating)
	}

	wantHist := map[string]int{"5": 1, "4": 1, "1": 1}
	for star, count := range wantHist {
		if report.Overall.RatingHistogram[star] != count {
			t.Errorf("histogram[%s] = %d, want %d", star, report.Overall.RatingHistogram[star], count)
		}
	}
}

func TestAggregate_SentimentSplit(t *testing.T) {
	e := NewEngine(logger.NewNop(), Config{})

	batch := []domain.EnrichedReview{
		enrichedFixture("a", 5, func(f *domain.Features) { f.Sentiment.Ratio = 0.5 }),
		enrichedFixture("b", 4, func(f *domain.Features) { f.Sentiment.Ratio = 0.11 }),
		enrichedFixture("c", 1, func(f *domain.Features) { f.Sentiment.Ratio = -0.5 }),
		enrichedFixture("d", 3, func(f *domain.Features) { f.Sentiment.Ratio = 0.1 }),
	}

	report := e.Aggregate(batch)

	if !almostEqual(report.Sentiment.PositiveReviewsPct, 50.0) {
		t.Errorf("positive pct = %v, want 50", report.Sentiment.PositiveReviewsPct)
	}
	if !almostEqual(report.Sentiment.NegativeReviewsPct, 25.0) {
		t.Errorf("negative pct = %v, want 25", report.Sentiment.NegativeReviewsPct)
	}
	// Ratio exactly at the threshold lands in the neutral band.
	if !almostEqual(report.Sentiment.NeutralReviewsPct, 25.0) {
		t.Errorf("neutral pct = %v, want 25", report.Sentiment.NeutralReviewsPct)
	}

	total := report.Sentiment.PositiveReviewsPct + report.Sentiment.NegativeReviewsPct + report.Sentiment.NeutralReviewsPct
	if !almostEqual(total, 100.0) {
		t.Errorf("split sums to %v, want 100", total)
	}
}

func TestAggregate_AspectInsights(t *testing.T) {
	e := NewEngine(logger.NewNop(), Config{})

	batch := []domain.EnrichedReview{
		enrichedFixture("a", 5, func(f *domain.Features) {
			f.Aspects.Sentiment = map[string]float64{"battery": 0.5}
		}),
		enrichedFixture("b", 2, func(f *domain.Features) {
			f.Aspects.Sentiment = map[string]float64{"battery": -0.5}
		}),
		enrichedFixture("c", 3, func(f *domain.Features) {
			f.Aspects.Sentiment = map[string]float64{"camera": 0.05}
		}),
	}

	report := e.Aggregate(batch)

	battery, ok := report.Aspects.Aspects["battery"]
	if !ok {
		t.Fatal("battery missing from aspect insights")
	}
	if battery.Mentions != 2 {
		t.Errorf("battery mentions = %d, want 2", battery.Mentions)
	}
	if !battery.AvgSentiment.Valid || !almostEqual(battery.AvgSentiment.Value, 0.0) {
		t.Errorf("battery avg sentiment = %+v, want 0.0", battery.AvgSentiment)
	}
	if battery.PositiveMentions != 1 || battery.NegativeMentions != 1 {
		t.Errorf("battery mentions split = %+v, want 1/1", battery)
	}

	// Mildly positive camera mention counts as a mention but sits inside
	// the neutral band for the positive/negative split.
	camera := report.Aspects.Aspects["camera"]
	if camera.Mentions != 1 || camera.PositiveMentions != 0 {
		t.Errorf("camera = %+v, want 1 mention and no positive mentions", camera)
	}

	if report.Aspects.TotalMentions["price"] != 0 {
		t.Errorf("price mentions = %d, want 0", report.Aspects.TotalMentions["price"])
	}
	if _, ok := report.Aspects.Aspects["price"]; ok {
		t.Error("unmentioned aspect present in insights map")
	}
}

func TestAggregate_EmotionAndEmoji(t *testing.T) {
	e := NewEngine(logger.NewNop(), Config{})

	batch := []domain.EnrichedReview{
		enrichedFixture("a", 5, func(f *domain.Features) {
			f.Emotion.Counts = map[string]int{"joy": 2}
			f.Emotion.Dominant = "joy"
			f.Emoji.Dominant = "love"
		}),
		enrichedFixture("b", 1, func(f *domain.Features) {
			f.Emotion.Counts = map[string]int{"anger": 1}
			f.Emotion.Dominant = "anger"
		}),
		enrichedFixture("c", 3, nil),
	}

	report := e.Aggregate(batch)

	joy := report.Emotion.Emotions["joy"]
	if joy.TotalMentions != 2 || joy.ReviewsWithEmotion != 1 {
		t.Errorf("joy = %+v, want 2 mentions in 1 review", joy)
	}
	if !joy.AvgPerReview.Valid || !almostEqual(joy.AvgPerReview.Value, 2.0/3.0) {
		t.Errorf("joy avg = %+v, want 2/3", joy.AvgPerReview)
	}

	// Every review lands somewhere in the dominant distribution.
	sum := 0
	for _, c := range report.Emotion.DominantDistribution {
		sum += c
	}
	if sum != len(batch) {
		t.Errorf("dominant distribution sums to %d, want %d", sum, len(batch))
	}

	if report.Emoji.ReviewsWithEmojiEmotion != 1 {
		t.Errorf("reviews with emoji emotion = %d, want 1", report.Emoji.ReviewsWithEmojiEmotion)
	}
	if report.Emoji.EmotionDistribution["neutral"] != 2 {
		t.Errorf("neutral emoji reviews = %d, want 2", report.Emoji.EmotionDistribution["neutral"])
	}
}

func TestAggregate_QualityBuckets(t *testing.T) {
	e := NewEngine(logger.NewNop(), Config{})

	batch := []domain.EnrichedReview{
		enrichedFixture("a", 5, func(f *domain.Features) { f.Quality.Score = 0.9 }),
		enrichedFixture("b", 4, func(f *domain.Features) { f.Quality.Score = 0.7 }), // boundary: medium
		enrichedFixture("c", 3, func(f *domain.Features) { f.Quality.Score = 0.5 }),
		enrichedFixture("d", 1, func(f *domain.Features) { f.Quality.Score = 0.4 }), // boundary: low
	}

	report := e.Aggregate(batch)

	if !almostEqual(report.Quality.HighQualityPct, 25.0) {
		t.Errorf("high pct = %v, want 25", report.Quality.HighQualityPct)
	}
	if !almostEqual(report.Quality.MediumQualityPct, 50.0) {
		t.Errorf("medium pct = %v, want 50", report.Quality.MediumQualityPct)
	}
	if !almostEqual(report.Quality.LowQualityPct, 25.0) {
		t.Errorf("low pct = %v, want 25", report.Quality.LowQualityPct)
	}
}

func TestAggregate_SlangStats(t *testing.T) {
	e := NewEngine(logger.NewNop(), Config{})

	batch := []domain.EnrichedReview{
		enrichedFixture("a", 5, func(f *domain.Features) { f.Slang.Count = 2 }),
		enrichedFixture("b", 3, nil),
	}

	report := e.Aggregate(batch)

	if report.Slang.ReviewsWithSlang != 1 {
		t.Errorf("reviews with slang = %d, want 1", report.Slang.ReviewsWithSlang)
	}
	if report.Slang.TotalSlangTerms != 2 {
		t.Errorf("total terms = %d, want 2", report.Slang.TotalSlangTerms)
	}
	if !report.Slang.AvgSlangCount.Valid || !almostEqual(report.Slang.AvgSlangCount.Value, 1.0) {
		t.Errorf("avg slang = %+v, want 1.0", report.Slang.AvgSlangCount)
	}
}

// End to end: enrich real content, then aggregate, and cross-check the
// report against the per-review features.
func TestEnrichThenAggregate(t *testing.T) {
	e := newTestEngine(t)

	records := []domain.ReviewRecord{
		{ProductID: "1", ProductName: "Widget", Rating: domain.NewRating(5), Content: "Amazing quality, love the camera! 😍"},
		{ProductID: "2", ProductName: "Widget", Rating: domain.NewRating(1), Content: "Terrible battery, total garbage. Never again."},
		{ProductID: "3", ProductName: "Gadget", Rating: domain.NewRating(3), Content: "It works."},
	}

	enriched := e.EnrichBatch(context.Background(), records)
	report := e.Aggregate(enriched)

	if report.Overall.TotalReviews != 3 || report.Overall.UniqueProducts != 2 {
		t.Errorf("overall = %+v, want 3 reviews over 2 products", report.Overall)
	}

	var compoundSum float64
	for _, r := range enriched {
		compoundSum += r.Features.Sentiment.Compound
	}
	if !report.Overall.AverageCompound.Valid || !almostEqual(report.Overall.AverageCompound.Value, compoundSum/3.0) {
		t.Errorf("average sentiment = %+v, want mean of per-review compounds", report.Overall.AverageCompound)
	}

	if report.Content.ReviewsWithEmojis != 1 {
		t.Errorf("reviews with emojis = %d, want 1", report.Content.ReviewsWithEmojis)
	}
	if report.Aspects.TotalMentions["battery"] == 0 {
		t.Error("battery mention from review 2 missing in totals")
	}
}
