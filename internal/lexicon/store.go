// Package lexicon holds the fixed word tables the review mining engine
// scores against: sentiment word patterns, negation markers, product aspect
// keywords, emotion word lists, slang terms, emoji groupings, and the
// profanity and personal-information patterns.
//
// A Store is built once at startup and never mutated, so it is safe to share
// across concurrent workers without synchronization. Multi-keyword lists are
// compiled into Aho-Corasick matchers so a review is scanned in a single
// pass per list instead of once per keyword.
package lexicon

import (
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Sentiment and content patterns. Word-boundary matches, case-insensitive.
var (
	positivePattern  = regexp.MustCompile(`(?i)\b(excellent|amazing|great|love|perfect|awesome|fantastic|wonderful|good|nice|satisfied|happy|pleased|recommend|best|solid|worth|impressed)\b`)
	negativePattern  = regexp.MustCompile(`(?i)\b(terrible|awful|hate|horrible|worst|disappointing|useless|broken|bad|poor|waste|regret|returned|defective|cheap|garbage|trash)\b`)
	negationPattern  = regexp.MustCompile(`(?i)\b(not|no|never|nothing|nobody|nowhere|neither|barely|hardly|scarcely|seldom|rarely|dont|doesn't|didn't|won't|wouldn't|shouldn't|couldn't|isn't|aren't|wasn't|weren't|hasn't|haven't|hadn't|can't|cannot)\b`)
	profanityPattern = regexp.MustCompile(`(?i)\b(damn|hell|crap|stupid)\b`)
	emailPattern     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern     = regexp.MustCompile(`\d{3}-?\d{3}-?\d{4}`)
)

// Aspect is a product aspect with its keyword list. An aspect counts as
// mentioned when any keyword appears as a substring of the folded content.
type Aspect struct {
	Name     string
	Keywords []string
}

// aspects in declaration order. Order is significant: mentioned-aspect lists
// and report maps follow it.
var aspects = []Aspect{
	{Name: "battery", Keywords: []string{"battery", "charge", "charging", "power", "lasting", "drain", "life"}},
	{Name: "camera", Keywords: []string{"camera", "photo", "picture", "video", "lens", "quality", "recording"}},
	{Name: "price", Keywords: []string{"price", "cost", "expensive", "cheap", "value", "worth", "money", "budget"}},
	{Name: "delivery", Keywords: []string{"delivery", "shipping", "arrived", "fast", "slow", "quick", "delayed"}},
	{Name: "design", Keywords: []string{"design", "look", "appearance", "style", "beautiful", "ugly", "attractive"}},
	{Name: "quality", Keywords: []string{"quality", "build", "material", "sturdy", "flimsy", "solid", "durable"}},
	{Name: "performance", Keywords: []string{"performance", "speed", "fast", "slow", "lag", "smooth", "responsive"}},
	{Name: "service", Keywords: []string{"service", "support", "help", "staff", "customer", "representative"}},
}

// Emotion is an emotion category with its word list. Each word contributes
// at most one to the category count, no matter how often it appears.
type Emotion struct {
	Name  string
	Words []string
}

// emotions in declaration order. Dominant-emotion ties break toward the
// earlier category.
var emotions = []Emotion{
	{Name: "joy", Words: []string{"happy", "joy", "pleased", "delighted", "thrilled", "excited", "love", "amazing", "wonderful", "fantastic", "awesome", "excellent", "perfect"}},
	{Name: "anger", Words: []string{"angry", "mad", "furious", "annoyed", "frustrated", "irritated", "hate", "terrible", "awful", "horrible", "disgusting", "outraged"}},
	{Name: "sadness", Words: []string{"sad", "disappointed", "depressed", "unhappy", "miserable", "devastated", "heartbroken", "regret", "sorrow"}},
	{Name: "fear", Words: []string{"afraid", "scared", "worried", "anxious", "nervous", "concerned", "terrified", "panic"}},
	{Name: "surprise", Words: []string{"surprised", "shocked", "amazed", "astonished", "unexpected", "wow", "incredible", "unbelievable"}},
	{Name: "trust", Words: []string{"trust", "reliable", "dependable", "confident", "secure", "safe", "solid", "recommend"}},
}

// Slang polarity labels.
const (
	SlangPositive = "positive"
	SlangNegative = "negative"
	SlangNeutral  = "neutral"
)

var (
	positiveSlang = []string{"lit", "fire", "dope", "sick", "bomb", "legit", "goat", "slaps", "banging", "clean", "crisp", "fresh"}
	negativeSlang = []string{"trash", "garbage", "mid", "ass", "whack", "bogus", "wack", "sus", "cap", "fake", "basic"}
)

// Store is the immutable lexicon table set. Construct with New; safe for
// concurrent use.
type Store struct {
	// Keywords shared between lists ("quality", "fast") are inserted once
	// and fan out to every owning group, since the matcher reports each
	// distinct pattern under a single index.
	aspectMatcher  *ahocorasick.Matcher
	aspectOwners   [][]int // keyword index -> aspect indices
	emotionMatcher *ahocorasick.Matcher
	emotionOwners  [][]ownerRef // keyword index -> {emotion index, word index} list
	slangMatcher   *ahocorasick.Matcher
	slangOwner     []slangRef // keyword index -> {polarity, term}

	emojiGroups []emojiGroup
}

type ownerRef struct {
	group int
	word  int
}

type slangRef struct {
	positive bool
	term     string
}

// New builds the lexicon store and its matchers.
func New() *Store {
	s := &Store{emojiGroups: buildEmojiGroups()}

	var aspectKeywords []string
	aspectSlot := make(map[string]int)
	for i, a := range aspects {
		for _, kw := range a.Keywords {
			slot, ok := aspectSlot[kw]
			if !ok {
				slot = len(aspectKeywords)
				aspectSlot[kw] = slot
				aspectKeywords = append(aspectKeywords, kw)
				s.aspectOwners = append(s.aspectOwners, nil)
			}
			s.aspectOwners[slot] = append(s.aspectOwners[slot], i)
		}
	}
	s.aspectMatcher = ahocorasick.NewStringMatcher(aspectKeywords)

	var emotionWords []string
	emotionSlot := make(map[string]int)
	for i, e := range emotions {
		for j, w := range e.Words {
			slot, ok := emotionSlot[w]
			if !ok {
				slot = len(emotionWords)
				emotionSlot[w] = slot
				emotionWords = append(emotionWords, w)
				s.emotionOwners = append(s.emotionOwners, nil)
			}
			s.emotionOwners[slot] = append(s.emotionOwners[slot], ownerRef{group: i, word: j})
		}
	}
	s.emotionMatcher = ahocorasick.NewStringMatcher(emotionWords)

	var slangTerms []string
	for _, t := range positiveSlang {
		slangTerms = append(slangTerms, t)
		s.slangOwner = append(s.slangOwner, slangRef{positive: true, term: t})
	}
	for _, t := range negativeSlang {
		slangTerms = append(slangTerms, t)
		s.slangOwner = append(s.slangOwner, slangRef{positive: false, term: t})
	}
	s.slangMatcher = ahocorasick.NewStringMatcher(slangTerms)

	return s
}

// AspectNames returns the fixed aspect names in declaration order.
func (s *Store) AspectNames() []string {
	names := make([]string, len(aspects))
	for i, a := range aspects {
		names[i] = a.Name
	}
	return names
}

// EmotionNames returns the fixed emotion categories in declaration order.
func (s *Store) EmotionNames() []string {
	names := make([]string, len(emotions))
	for i, e := range emotions {
		names[i] = e.Name
	}
	return names
}

// MatchAspects returns the aspects mentioned in content, in declaration
// order. Matching is a case-folded substring test over each keyword.
func (s *Store) MatchAspects(content string) []string {
	if content == "" {
		return nil
	}
	folded := strings.ToLower(content)

	hit := make([]bool, len(aspects))
	for _, idx := range s.aspectMatcher.Match([]byte(folded)) {
		if idx >= len(s.aspectOwners) {
			continue
		}
		for _, owner := range s.aspectOwners[idx] {
			hit[owner] = true
		}
	}

	var mentioned []string
	for i, a := range aspects {
		if hit[i] {
			mentioned = append(mentioned, a.Name)
		}
	}
	return mentioned
}

// EmotionCounts returns, per emotion category, how many of its lexicon
// words appear in content. Membership is tested per word: a word counts at
// most once even if repeated in the text.
func (s *Store) EmotionCounts(content string) map[string]int {
	counts := make(map[string]int, len(emotions))
	for _, e := range emotions {
		counts[e.Name] = 0
	}
	if content == "" {
		return counts
	}

	folded := strings.ToLower(content)
	seen := make(map[ownerRef]bool)
	for _, idx := range s.emotionMatcher.Match([]byte(folded)) {
		if idx >= len(s.emotionOwners) {
			continue
		}
		for _, ref := range s.emotionOwners[idx] {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			counts[emotions[ref.group].Name]++
		}
	}
	return counts
}

// DominantEmotion returns the category with the highest count, ties broken
// by declaration order. Returns "neutral" when every count is zero.
func (s *Store) DominantEmotion(counts map[string]int) string {
	best := ""
	bestCount := 0
	for _, e := range emotions {
		if c := counts[e.Name]; c > bestCount {
			best = e.Name
			bestCount = c
		}
	}
	if bestCount == 0 {
		return "neutral"
	}
	return best
}

// MatchSlang returns the slang terms found in content (positive list first,
// each in declaration order), and the overall polarity label: positive when
// positive matches outnumber negative ones, negative for the reverse, and
// neutral on a tie.
func (s *Store) MatchSlang(content string) ([]string, string) {
	if content == "" {
		return nil, SlangNeutral
	}
	folded := strings.ToLower(content)

	matched := make(map[int]bool)
	for _, idx := range s.slangMatcher.Match([]byte(folded)) {
		if idx < len(s.slangOwner) {
			matched[idx] = true
		}
	}

	var terms []string
	score := 0
	for i, ref := range s.slangOwner {
		if !matched[i] {
			continue
		}
		terms = append(terms, ref.term)
		if ref.positive {
			score++
		} else {
			score--
		}
	}

	switch {
	case score > 0:
		return terms, SlangPositive
	case score < 0:
		return terms, SlangNegative
	default:
		return terms, SlangNeutral
	}
}

// PositiveWordCount counts positive-lexicon matches, duplicates included.
func (s *Store) PositiveWordCount(content string) int {
	return len(positivePattern.FindAllString(content, -1))
}

// NegativeWordCount counts negative-lexicon matches, duplicates included.
func (s *Store) NegativeWordCount(content string) int {
	return len(negativePattern.FindAllString(content, -1))
}

// NegationCount counts negation-marker matches, duplicates included.
func (s *Store) NegationCount(content string) int {
	return len(negationPattern.FindAllString(content, -1))
}

// HasProfanity reports whether content matches the mild-profanity pattern.
func (s *Store) HasProfanity(content string) bool {
	return profanityPattern.MatchString(content)
}

// HasPersonalInfo reports whether content contains an email address or a
// phone number.
func (s *Store) HasPersonalInfo(content string) bool {
	return emailPattern.MatchString(content) || phonePattern.MatchString(content)
}
