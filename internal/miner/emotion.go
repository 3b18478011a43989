package miner

import (
	"reviewminer/internal/domain"
)

// emotionFeatures counts emotion-lexicon words per category and picks the
// dominant category.
func (e *Engine) emotionFeatures(content string) domain.EmotionFeatures {
	counts := e.lexicon.EmotionCounts(content)
	return domain.EmotionFeatures{
		Counts:   counts,
		Dominant: e.lexicon.DominantEmotion(counts),
	}
}

// emojiFeatures counts emoji runes and derives the emoji-based tone label.
func (e *Engine) emojiFeatures(content string) domain.EmojiFeatures {
	count := e.lexicon.EmojiCount(content)
	dominant, tally := e.lexicon.EmojiEmotion(content)

	return domain.EmojiFeatures{
		Count:    count,
		HasEmoji: count > 0,
		Dominant: dominant,
		Tally:    tally,
	}
}

// slangFeatures detects slang terms and their overall polarity.
func (e *Engine) slangFeatures(content string) domain.SlangFeatures {
	terms, pol := e.lexicon.MatchSlang(content)
	return domain.SlangFeatures{
		Count:    len(terms),
		Terms:    terms,
		Polarity: pol,
	}
}
