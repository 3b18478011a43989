package lexicon

// Emoji detection covers the common emoji blocks plus the dingbat and
// miscellaneous-symbol ranges used for hearts and weather symbols.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2600, 0x26FF},
	{0x2700, 0x27BF},
}

// IsEmoji reports whether r falls in one of the recognized emoji ranges.
func IsEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// EmojiEmotionNames are the emoji-derived emotion categories in tally order.
var EmojiEmotionNames = []string{"joy", "anger", "sadness", "fear", "surprise", "love"}

type emojiGroup struct {
	name string
	set  map[rune]bool
}

// buildEmojiGroups builds the ordered emoji-to-emotion tables. Some emojis
// appear in more than one table; the first group wins.
func buildEmojiGroups() []emojiGroup {
	mk := func(name, runes string) emojiGroup {
		set := make(map[rune]bool, len(runes))
		for _, r := range runes {
			// Skip variation selectors that ride along with some emojis.
			if r == 0xFE0F {
				continue
			}
			set[r] = true
		}
		return emojiGroup{name: name, set: set}
	}
	return []emojiGroup{
		mk("joy", "😀😃😄😁😆😅😂🤣😊😇🙂🙃😉😌😍🥰😘😗😙😚"),
		mk("anger", "😠😡🤬😤😾💢"),
		mk("sadness", "😢😭😪😥😰😨😱"),
		mk("fear", "😱😨😰😟😧😦😮"),
		mk("surprise", "😮😯😲😳🤯"),
		mk("love", "❤💕💖💗💙💚💛🧡💜🖤🤍🤎💝💘💌"),
	}
}

// EmojiCount returns the number of emoji runes in text.
func (s *Store) EmojiCount(text string) int {
	count := 0
	for _, r := range text {
		if IsEmoji(r) {
			count++
		}
	}
	return count
}

// EmojiEmotion tallies the emoji runes in text against the emotion groups
// and returns the dominant category with the per-category tally. Ties break
// toward the earlier category. Returns "neutral" with a nil tally when text
// has no emoji, and "neutral" with the zeroed tally when its emojis map to
// no group.
func (s *Store) EmojiEmotion(text string) (string, map[string]int) {
	var found []rune
	for _, r := range text {
		if IsEmoji(r) {
			found = append(found, r)
		}
	}
	if len(found) == 0 {
		return "neutral", nil
	}

	tally := make(map[string]int, len(EmojiEmotionNames))
	for _, name := range EmojiEmotionNames {
		tally[name] = 0
	}
	for _, r := range found {
		for _, g := range s.emojiGroups {
			if g.set[r] {
				tally[g.name]++
				break
			}
		}
	}

	dominant := ""
	best := 0
	for _, name := range EmojiEmotionNames {
		if c := tally[name]; c > best {
			dominant = name
			best = c
		}
	}
	if best == 0 {
		return "neutral", tally
	}
	return dominant, tally
}
