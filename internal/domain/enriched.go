package domain

// EnrichedReview is a ReviewRecord plus the closed set of derived feature
// groups. It is created once per input record and never mutated afterwards.
type EnrichedReview struct {
	ReviewRecord
	Features Features `json:"features"`
}

// Features groups every derived per-review feature. All numeric features
// default to a neutral value (0, 0.0, or "neutral") when their inputs are
// missing or unparseable.
type Features struct {
	Lexical      LexicalFeatures      `json:"lexical"`
	Sentiment    SentimentFeatures    `json:"sentiment"`
	Disagreement DisagreementFeatures `json:"disagreement"`
	Aspects      AspectFeatures       `json:"aspects"`
	Emotion      EmotionFeatures      `json:"emotion"`
	Emoji        EmojiFeatures        `json:"emoji"`
	Slang        SlangFeatures        `json:"slang"`
	Quality      QualityFeatures      `json:"quality"`
	Temporal     TemporalFeatures     `json:"temporal"`
}

// LexicalFeatures holds length and count statistics over the review content.
type LexicalFeatures struct {
	TextLength      int     `json:"text_length"`
	WordCount       int     `json:"word_count"`
	SentenceCount   int     `json:"sentence_count"`
	TokenCount      int     `json:"token_count"`
	UniqueWordCount int     `json:"unique_word_count"`
	AvgWordLength   float64 `json:"avg_word_length"`
}

// SentimentFeatures holds intensity scores plus the legacy word-count signal.
type SentimentFeatures struct {
	Compound float64 `json:"compound"` // -1..1
	Positive float64 `json:"positive"` // 0..1
	Negative float64 `json:"negative"` // 0..1
	Neutral  float64 `json:"neutral"`  // 0..1

	NegationCount    int     `json:"negation_count"`
	NegationAdjusted float64 `json:"negation_adjusted"` // -1..1

	PositiveWordCount int     `json:"positive_word_count"`
	NegativeWordCount int     `json:"negative_word_count"`
	Ratio             float64 `json:"sentiment_ratio"`
}

// DisagreementFeatures flags divergence between the numeric rating and the
// detected text sentiment.
type DisagreementFeatures struct {
	Disagrees bool    `json:"disagrees"`
	Score     float64 `json:"score"` // 0..2
}

// AspectFeatures holds aspect-based sentiment results. Sentiment carries one
// entry per fixed aspect; 0.0 means "not mentioned", so callers must consult
// Mentioned to distinguish a truly neutral mention from no mention at all.
type AspectFeatures struct {
	Mentioned []string           `json:"mentioned"`
	Count     int                `json:"count"`
	Sentiment map[string]float64 `json:"sentiment"`
}

// EmotionFeatures holds lexicon-based emotion counts. Counts carries one
// entry per fixed emotion category. Each lexicon word contributes at most
// one to its category, no matter how often it appears in the text.
type EmotionFeatures struct {
	Counts   map[string]int `json:"counts"`
	Dominant string         `json:"dominant"`
}

// EmojiFeatures holds emoji detection and emoji-derived emotion results.
type EmojiFeatures struct {
	Count    int            `json:"count"`
	HasEmoji bool           `json:"has_emoji"`
	Dominant string         `json:"dominant_emotion"`
	Tally    map[string]int `json:"emotion_tally"`
}

// SlangFeatures holds slang detection results.
type SlangFeatures struct {
	Count    int      `json:"count"`
	Terms    []string `json:"terms"`
	Polarity string   `json:"polarity"` // "positive", "negative", "neutral"
}

// QualityFeatures holds content-quality flags and the composite quality score.
type QualityFeatures struct {
	HasProfanity    bool    `json:"has_profanity"`
	HasPersonalInfo bool    `json:"has_personal_info"`
	Score           float64 `json:"score"` // 0..1
}

// TemporalFeatures holds review age information. AgeDays is nil when the
// review date is absent or unparseable.
type TemporalFeatures struct {
	AgeDays  *int `json:"age_days"`
	IsRecent bool `json:"is_recent"`
}
