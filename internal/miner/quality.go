package miner

import (
	"math"

	"reviewminer/internal/domain"
)

// Composite quality score weights. The components are word count (clipped
// at 100 words), text length (clipped at 1000 characters), sentiment signal
// strength, absence of personal information, and aspect coverage (clipped
// at 10 aspects).
const (
	qualityWordCountWeight  = 0.30
	qualityTextLengthWeight = 0.20
	qualitySentimentWeight  = 0.15
	qualityPIIWeight        = 0.15
	qualityAspectWeight     = 0.20

	qualityWordCountScale  = 100.0
	qualityTextLengthScale = 1000.0
	qualityAspectScale     = 10.0
)

// qualityFeatures computes the profanity and personal-information flags and
// the composite 0-1 quality score.
func (e *Engine) qualityFeatures(
	content string,
	lexical domain.LexicalFeatures,
	sentiment domain.SentimentFeatures,
	aspects domain.AspectFeatures,
) domain.QualityFeatures {
	hasPII := e.lexicon.HasPersonalInfo(content)

	piiComponent := 1.0
	if hasPII {
		piiComponent = 0.0
	}

	// The sentiment ratio component needs its own clip: regex word matches
	// are counted per occurrence, so punctuation-joined repeats can push the
	// ratio past 1 and would otherwise break the 0-1 bound.
	score := clip01(float64(lexical.WordCount)/qualityWordCountScale)*qualityWordCountWeight +
		clip01(float64(lexical.TextLength)/qualityTextLengthScale)*qualityTextLengthWeight +
		clip01(math.Abs(sentiment.Ratio))*qualitySentimentWeight +
		piiComponent*qualityPIIWeight +
		clip01(float64(aspects.Count)/qualityAspectScale)*qualityAspectWeight

	return domain.QualityFeatures{
		HasProfanity:    e.lexicon.HasProfanity(content),
		HasPersonalInfo: hasPII,
		Score:           score,
	}
}

// temporalFeatures computes review age in days relative to the engine
// clock. An invalid date yields a nil age and a false recency flag.
func (e *Engine) temporalFeatures(date domain.Date) domain.TemporalFeatures {
	if !date.Valid {
		return domain.TemporalFeatures{}
	}

	age := int(e.now().Sub(date.Time).Hours() / 24)
	return domain.TemporalFeatures{
		AgeDays:  &age,
		IsRecent: age <= recentReviewWindowDays,
	}
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
