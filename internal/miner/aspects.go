package miner

import (
	"reviewminer/internal/domain"
)

// aspectFeatures finds the product aspects mentioned in content and
// attributes a sentiment score to each. An aspect inherits the review-level
// compound score; when the intensity analyzer is unavailable the score falls
// back to the word-count balance (pos - neg) / (pos + neg). Unmentioned
// aspects always score 0.0.
func (e *Engine) aspectFeatures(content string, sentiment domain.SentimentFeatures) domain.AspectFeatures {
	mentioned := e.lexicon.MatchAspects(content)

	score := sentiment.Compound
	if e.analyzer == nil {
		score = wordBalance(sentiment.PositiveWordCount, sentiment.NegativeWordCount)
	}

	scores := make(map[string]float64, len(e.lexicon.AspectNames()))
	for _, name := range e.lexicon.AspectNames() {
		scores[name] = 0.0
	}
	for _, name := range mentioned {
		scores[name] = score
	}

	return domain.AspectFeatures{
		Mentioned: mentioned,
		Count:     len(mentioned),
		Sentiment: scores,
	}
}

// wordBalance is the positive/negative hit balance on [-1, 1], or 0 when
// neither lexicon matched.
func wordBalance(pos, neg int) float64 {
	if pos+neg == 0 {
		return 0.0
	}
	return float64(pos-neg) / float64(pos+neg)
}
