package domain

import (
	"bytes"
	"encoding/json"
)

// notApplicable is the sentinel emitted for report metrics whose inputs were
// absent from the batch (for example the mean rating of a batch where no
// record carried a parseable rating).
const notApplicable = "N/A"

// Metric is a numeric report value that may be marked not applicable.
// It marshals to a JSON number, or to the string "N/A" when not applicable.
type Metric struct {
	Value float64
	Valid bool
}

// Num returns an applicable metric holding v.
func Num(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// NA returns a not-applicable metric.
func NA() Metric {
	return Metric{}
}

// MarshalJSON writes the metric value, or "N/A" when not applicable.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal(notApplicable)
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON reads a number or the "N/A" sentinel.
func (m *Metric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = Metric{}
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*m = Metric{Value: f, Valid: true}
		return nil
	}

	// Anything non-numeric (such as "N/A") reads back as not applicable.
	*m = Metric{}
	return nil
}

// InsightsReport is the aggregate report over one enriched batch. It is
// computed in a single pass and never updated incrementally.
type InsightsReport struct {
	Overall   OverallStats   `json:"overall_statistics"`
	Content   ContentStats   `json:"content_analysis"`
	Sentiment SentimentStats `json:"sentiment_analysis"`
	Emotion   EmotionStats   `json:"emotion_analysis"`
	Aspects   AspectStats    `json:"product_aspects"`
	Emoji     EmojiStats     `json:"emoji_analysis"`
	Slang     SlangStats     `json:"slang_analysis"`
	Quality   QualityStats   `json:"quality_distribution"`
}

// OverallStats summarizes the batch as a whole.
type OverallStats struct {
	TotalReviews    int            `json:"total_reviews"`
	UniqueProducts  int            `json:"unique_products"`
	AverageRating   Metric         `json:"average_rating"`
	RatingHistogram map[string]int `json:"rating_distribution"`
	AverageQuality  Metric         `json:"average_quality_score"`
	AverageCompound Metric         `json:"average_sentiment"`
}

// ContentStats summarizes lexical and content-quality features.
type ContentStats struct {
	AvgReviewLength      Metric `json:"avg_review_length"`
	AvgWordCount         Metric `json:"avg_word_count"`
	AvgTokenCount        Metric `json:"avg_token_count"`
	AvgUniqueWords       Metric `json:"avg_unique_words"`
	AvgWordLength        Metric `json:"avg_word_length"`
	ReviewsWithProfanity int    `json:"reviews_with_profanity"`
	ReviewsWithPII       int    `json:"reviews_with_personal_info"`
	ReviewsWithEmojis    int    `json:"reviews_with_emojis"`
	AvgEmojiCount        Metric `json:"avg_emoji_count"`
}

// SentimentStats summarizes intensity scores, disagreement, negation, and
// the legacy threshold-based sentiment split.
type SentimentStats struct {
	AvgCompound Metric `json:"avg_compound"`
	AvgPositive Metric `json:"avg_positive"`
	AvgNegative Metric `json:"avg_negative"`
	AvgNeutral  Metric `json:"avg_neutral"`

	PolarityDisagreements int    `json:"polarity_disagreements"`
	AvgDisagreementScore  Metric `json:"avg_disagreement_score"`

	AvgNegationCount    Metric `json:"avg_negation_count"`
	ReviewsWithNegation int    `json:"reviews_with_negation"`

	PositiveReviewsPct float64 `json:"positive_reviews_pct"`
	NegativeReviewsPct float64 `json:"negative_reviews_pct"`
	NeutralReviewsPct  float64 `json:"neutral_reviews_pct"`
}

// EmotionInsight summarizes one emotion category across the batch.
type EmotionInsight struct {
	TotalMentions      int    `json:"total_mentions"`
	AvgPerReview       Metric `json:"avg_per_review"`
	ReviewsWithEmotion int    `json:"reviews_with_emotion"`
}

// EmotionStats summarizes lexicon-based emotion detection.
type EmotionStats struct {
	Emotions             map[string]EmotionInsight `json:"emotions"`
	DominantDistribution map[string]int            `json:"dominant_emotion_distribution"`
}

// AspectInsight summarizes one product aspect across mentioning reviews.
type AspectInsight struct {
	Mentions         int    `json:"mentions"`
	AvgSentiment     Metric `json:"avg_sentiment"`
	PositiveMentions int    `json:"positive_mentions"`
	NegativeMentions int    `json:"negative_mentions"`
}

// AspectStats summarizes aspect-based sentiment. Aspects only carries
// entries for aspects mentioned at least once; TotalMentions carries every
// fixed aspect.
type AspectStats struct {
	Aspects       map[string]AspectInsight `json:"aspects"`
	TotalMentions map[string]int           `json:"total_aspect_mentions"`
}

// EmojiStats summarizes emoji-derived emotion labels.
type EmojiStats struct {
	EmotionDistribution     map[string]int `json:"emoji_emotion_distribution"`
	ReviewsWithEmojiEmotion int            `json:"reviews_with_emoji_emotions"`
}

// SlangStats summarizes slang detection across the batch.
type SlangStats struct {
	ReviewsWithSlang int    `json:"reviews_with_slang"`
	AvgSlangCount    Metric `json:"avg_slang_count"`
	TotalSlangTerms  int    `json:"total_slang_terms"`
}

// QualityStats is the quality-score distribution. High is quality > 0.7,
// medium is 0.4 < quality <= 0.7, low is quality <= 0.4.
type QualityStats struct {
	HighQualityPct   float64 `json:"high_quality_pct"`
	MediumQualityPct float64 `json:"medium_quality_pct"`
	LowQualityPct    float64 `json:"low_quality_pct"`
}

// ValidationSummary is an advisory pre-mining snapshot of batch health.
// It never causes records to be rejected.
type ValidationSummary struct {
	TotalRecords        int `json:"total_records"`
	EmptyContent        int `json:"empty_content"`
	MissingRating       int `json:"missing_rating"`
	MissingDate         int `json:"missing_date"`
	DuplicateProductIDs int `json:"duplicate_product_ids"`
}
