package miner

import (
	"math"
	"strconv"

	"reviewminer/internal/domain"
	"reviewminer/internal/logger"
)

// Legacy sentiment split thresholds over the sentiment ratio.
const sentimentSplitThreshold = 0.1

// Quality distribution bucket bounds.
const (
	highQualityFloor = 0.7
	lowQualityCeil   = 0.4
)

// Aggregate computes the insights report over one enriched batch in a
// single pass. An empty batch yields zero counts and not-applicable means.
func (e *Engine) Aggregate(enriched []domain.EnrichedReview) domain.InsightsReport {
	n := len(enriched)

	report := domain.InsightsReport{
		Overall:   e.overallStats(enriched),
		Content:   contentStats(enriched),
		Sentiment: sentimentStats(enriched),
		Emotion:   e.emotionStats(enriched),
		Aspects:   e.aspectStats(enriched),
		Emoji:     emojiStats(enriched),
		Slang:     slangStats(enriched),
		Quality:   qualityStats(enriched),
	}

	e.logger.Info("insights report generated",
		logger.Int("reviews", n),
	)
	return report
}

func (e *Engine) overallStats(enriched []domain.EnrichedReview) domain.OverallStats {
	products := make(map[string]struct{})
	histogram := make(map[string]int)

	var ratingSum, qualitySum, compoundSum float64
	ratingCount := 0

	for _, r := range enriched {
		if r.ProductName != "" {
			products[r.ProductName] = struct{}{}
		}
		if r.Rating.Valid {
			ratingSum += r.Rating.Value
			ratingCount++
			histogram[ratingBucket(r.Rating.Value)]++
		}
		qualitySum += r.Features.Quality.Score
		compoundSum += r.Features.Sentiment.Compound
	}

	n := len(enriched)
	return domain.OverallStats{
		TotalReviews:    n,
		UniqueProducts:  len(products),
		AverageRating:   meanMetric(ratingSum, ratingCount),
		RatingHistogram: histogram,
		AverageQuality:  meanMetric(qualitySum, n),
		AverageCompound: meanMetric(compoundSum, n),
	}
}

// ratingBucket maps a rating to its star bucket key, clamped to the scale.
func ratingBucket(v float64) string {
	star := int(math.Round(v))
	if star < int(domain.MinRating) {
		star = int(domain.MinRating)
	}
	if star > int(domain.MaxRating) {
		star = int(domain.MaxRating)
	}
	return strconv.Itoa(star)
}

func contentStats(enriched []domain.EnrichedReview) domain.ContentStats {
	var lengthSum, wordSum, tokenSum, uniqueSum, wordLenSum, emojiSum float64
	profanity, pii, withEmojis := 0, 0, 0

	for _, r := range enriched {
		f := r.Features
		lengthSum += float64(f.Lexical.TextLength)
		wordSum += float64(f.Lexical.WordCount)
		tokenSum += float64(f.Lexical.TokenCount)
		uniqueSum += float64(f.Lexical.UniqueWordCount)
		wordLenSum += f.Lexical.AvgWordLength
		emojiSum += float64(f.Emoji.Count)

		if f.Quality.HasProfanity {
			profanity++
		}
		if f.Quality.HasPersonalInfo {
			pii++
		}
		if f.Emoji.HasEmoji {
			withEmojis++
		}
	}

	n := len(enriched)
	return domain.ContentStats{
		AvgReviewLength:      meanMetric(lengthSum, n),
		AvgWordCount:         meanMetric(wordSum, n),
		AvgTokenCount:        meanMetric(tokenSum, n),
		AvgUniqueWords:       meanMetric(uniqueSum, n),
		AvgWordLength:        meanMetric(wordLenSum, n),
		ReviewsWithProfanity: profanity,
		ReviewsWithPII:       pii,
		ReviewsWithEmojis:    withEmojis,
		AvgEmojiCount:        meanMetric(emojiSum, n),
	}
}

func sentimentStats(enriched []domain.EnrichedReview) domain.SentimentStats {
	var compoundSum, posSum, negSum, neuSum, disagreementSum, negationSum float64
	disagreements, withNegation := 0, 0
	positive, negative, neutral := 0, 0, 0

	for _, r := range enriched {
		f := r.Features
		compoundSum += f.Sentiment.Compound
		posSum += f.Sentiment.Positive
		negSum += f.Sentiment.Negative
		neuSum += f.Sentiment.Neutral
		disagreementSum += f.Disagreement.Score
		negationSum += float64(f.Sentiment.NegationCount)

		if f.Disagreement.Disagrees {
			disagreements++
		}
		if f.Sentiment.NegationCount > 0 {
			withNegation++
		}

		switch {
		case f.Sentiment.Ratio > sentimentSplitThreshold:
			positive++
		case f.Sentiment.Ratio < -sentimentSplitThreshold:
			negative++
		default:
			neutral++
		}
	}

	n := len(enriched)
	return domain.SentimentStats{
		AvgCompound:           meanMetric(compoundSum, n),
		AvgPositive:           meanMetric(posSum, n),
		AvgNegative:           meanMetric(negSum, n),
		AvgNeutral:            meanMetric(neuSum, n),
		PolarityDisagreements: disagreements,
		AvgDisagreementScore:  meanMetric(disagreementSum, n),
		AvgNegationCount:      meanMetric(negationSum, n),
		ReviewsWithNegation:   withNegation,
		PositiveReviewsPct:    pct(positive, n),
		NegativeReviewsPct:    pct(negative, n),
		NeutralReviewsPct:     pct(neutral, n),
	}
}

func (e *Engine) emotionStats(enriched []domain.EnrichedReview) domain.EmotionStats {
	emotions := make(map[string]domain.EmotionInsight, len(e.lexicon.EmotionNames()))
	distribution := make(map[string]int)

	n := len(enriched)
	for _, name := range e.lexicon.EmotionNames() {
		total, withEmotion := 0, 0
		for _, r := range enriched {
			c := r.Features.Emotion.Counts[name]
			total += c
			if c > 0 {
				withEmotion++
			}
		}
		emotions[name] = domain.EmotionInsight{
			TotalMentions:      total,
			AvgPerReview:       meanMetric(float64(total), n),
			ReviewsWithEmotion: withEmotion,
		}
	}

	for _, r := range enriched {
		distribution[r.Features.Emotion.Dominant]++
	}

	return domain.EmotionStats{
		Emotions:             emotions,
		DominantDistribution: distribution,
	}
}

// aspectStats summarizes each aspect over the reviews that mention it. A
// mention is a non-zero aspect sentiment, so a mentioned aspect in a review
// scoring exactly 0.0 does not count here.
func (e *Engine) aspectStats(enriched []domain.EnrichedReview) domain.AspectStats {
	aspects := make(map[string]domain.AspectInsight)
	totals := make(map[string]int, len(e.lexicon.AspectNames()))

	for _, name := range e.lexicon.AspectNames() {
		mentions, positive, negative := 0, 0, 0
		var sentimentSum float64

		for _, r := range enriched {
			score := r.Features.Aspects.Sentiment[name]
			if score == 0 {
				continue
			}
			mentions++
			sentimentSum += score
			if score > sentimentSplitThreshold {
				positive++
			}
			if score < -sentimentSplitThreshold {
				negative++
			}
		}

		totals[name] = mentions
		if mentions > 0 {
			aspects[name] = domain.AspectInsight{
				Mentions:         mentions,
				AvgSentiment:     meanMetric(sentimentSum, mentions),
				PositiveMentions: positive,
				NegativeMentions: negative,
			}
		}
	}

	return domain.AspectStats{
		Aspects:       aspects,
		TotalMentions: totals,
	}
}

func emojiStats(enriched []domain.EnrichedReview) domain.EmojiStats {
	distribution := make(map[string]int)
	withEmotion := 0

	for _, r := range enriched {
		dominant := r.Features.Emoji.Dominant
		distribution[dominant]++
		if dominant != "neutral" {
			withEmotion++
		}
	}

	return domain.EmojiStats{
		EmotionDistribution:     distribution,
		ReviewsWithEmojiEmotion: withEmotion,
	}
}

func slangStats(enriched []domain.EnrichedReview) domain.SlangStats {
	withSlang, total := 0, 0
	for _, r := range enriched {
		c := r.Features.Slang.Count
		total += c
		if c > 0 {
			withSlang++
		}
	}

	return domain.SlangStats{
		ReviewsWithSlang: withSlang,
		AvgSlangCount:    meanMetric(float64(total), len(enriched)),
		TotalSlangTerms:  total,
	}
}

func qualityStats(enriched []domain.EnrichedReview) domain.QualityStats {
	high, medium, low := 0, 0, 0
	for _, r := range enriched {
		switch score := r.Features.Quality.Score; {
		case score > highQualityFloor:
			high++
		case score > lowQualityCeil:
			medium++
		default:
			low++
		}
	}

	n := len(enriched)
	return domain.QualityStats{
		HighQualityPct:   pct(high, n),
		MediumQualityPct: pct(medium, n),
		LowQualityPct:    pct(low, n),
	}
}

// meanMetric is sum/n, or not applicable when n is zero.
func meanMetric(sum float64, n int) domain.Metric {
	if n == 0 {
		return domain.NA()
	}
	return domain.Num(sum / float64(n))
}

// pct is the share of count in n as a percentage, 0 for an empty batch.
func pct(count, n int) float64 {
	if n == 0 {
		return 0.0
	}
	return float64(count) / float64(n) * 100.0
}
