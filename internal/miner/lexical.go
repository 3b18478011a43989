package miner

import (
	"strings"
	"unicode"

	"reviewminer/internal/domain"
)

// lexicalFeatures computes the length and count statistics for content.
// Word count splits on whitespace; sentence count is the period count plus
// one; token count uses the word tokenizer and keeps alphanumeric tokens,
// falling back to the whitespace word count only when no tokenizer is
// available.
func (e *Engine) lexicalFeatures(content string) domain.LexicalFeatures {
	words := strings.Fields(content)

	return domain.LexicalFeatures{
		TextLength:      len([]rune(content)),
		WordCount:       len(words),
		SentenceCount:   strings.Count(content, ".") + 1,
		TokenCount:      e.tokenCount(content, len(words)),
		UniqueWordCount: uniqueWordCount(words),
		AvgWordLength:   avgWordLength(words),
	}
}

// tokenCount counts the alphanumeric tokens produced by the tokenizer.
// Punctuation-only text legitimately counts zero tokens; the whitespace
// word count is a fallback for a missing tokenizer, not for empty output.
func (e *Engine) tokenCount(content string, fallback int) int {
	if e.tokenizer == nil {
		return fallback
	}
	if content == "" {
		return 0
	}

	count := 0
	for _, tok := range e.tokenizer.Tokenize(strings.ToLower(content)) {
		if isAlphanumeric(tok.Text) {
			count++
		}
	}
	return count
}

// uniqueWordCount counts distinct alphanumeric words, case-folded and
// stripped of surrounding punctuation.
func uniqueWordCount(words []string) int {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if !isAlphanumeric(w) {
			continue
		}
		w = strings.TrimFunc(w, unicode.IsPunct)
		if w != "" {
			seen[w] = struct{}{}
		}
	}
	return len(seen)
}

// avgWordLength is the mean rune length of whitespace-separated words.
func avgWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0.0
	}
	total := 0
	for _, w := range words {
		total += len([]rune(w))
	}
	return float64(total) / float64(len(words))
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
