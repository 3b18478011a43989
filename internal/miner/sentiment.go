package miner

import (
	"math"

	"reviewminer/internal/domain"
)

// polarity holds the intensity scores for one text.
type polarity struct {
	compound float64
	positive float64
	negative float64
	neutral  float64
}

var neutralPolarity = polarity{compound: 0.0, positive: 0.0, negative: 0.0, neutral: 1.0}

// polarityScores runs the intensity analyzer over content. Empty content or
// a disabled analyzer yields the neutral defaults.
func (e *Engine) polarityScores(content string) polarity {
	if e.analyzer == nil || content == "" {
		return neutralPolarity
	}

	e.analyzerMu.Lock()
	scores := e.analyzer.PolarityScores(content)
	e.analyzerMu.Unlock()

	return polarity{
		compound: scores.Compound,
		positive: scores.Positive,
		negative: scores.Negative,
		neutral:  scores.Neutral,
	}
}

// sentimentFeatures combines intensity scores with the word-count signals:
// positive and negative lexicon hits (duplicates counted), the sentiment
// ratio (pos - neg) / (words + 1), and the negation-adjusted compound.
func (e *Engine) sentimentFeatures(content string, wordCount int) domain.SentimentFeatures {
	scores := e.polarityScores(content)

	posCount := e.lexicon.PositiveWordCount(content)
	negCount := e.lexicon.NegativeWordCount(content)
	negations := e.lexicon.NegationCount(content)

	return domain.SentimentFeatures{
		Compound:          scores.compound,
		Positive:          scores.positive,
		Negative:          scores.negative,
		Neutral:           scores.neutral,
		NegationCount:     negations,
		NegationAdjusted:  adjustForNegation(scores.compound, negations),
		PositiveWordCount: posCount,
		NegativeWordCount: negCount,
		Ratio:             float64(posCount-negCount) / float64(wordCount+1),
	}
}

// adjustForNegation dampens the compound score by a fixed penalty per
// negation marker, clamped to the scale floor.
func adjustForNegation(compound float64, negations int) float64 {
	if negations == 0 {
		return compound
	}
	return math.Max(compound-negationPenalty*float64(negations), -1.0)
}

// disagreementFeatures flags reviews whose star rating contradicts the text
// sentiment: a high rating (>= 4) with clearly negative text, or a low
// rating (<= 2) with clearly positive text. The score is the distance
// between the rating normalized onto [-1, 1] and the compound score. A
// missing rating is treated as the neutral midpoint.
func disagreementFeatures(rating domain.Rating, compound float64) domain.DisagreementFeatures {
	r := rating.Or(domain.NeutralRating)

	disagrees := (r >= highRatingFloor && compound < -disagreementThreshold) ||
		(r <= lowRatingCeil && compound > disagreementThreshold)

	normalized := (r - domain.NeutralRating) / 2.0

	return domain.DisagreementFeatures{
		Disagrees: disagrees,
		Score:     math.Abs(normalized - compound),
	}
}
