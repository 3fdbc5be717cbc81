package sentiment

import "strings"

// PolarityResult is the output of the base lexicon pass over one text.
type PolarityResult struct {
	Score         float64
	PositiveWords []string
	NegativeWords []string
}

// Polarity scores a text with the general-purpose valence lexicon. Words
// are matched whole, case-insensitively; the score is the sum of matched
// valences.
func Polarity(text string) PolarityResult {
	var result PolarityResult
	for _, word := range tokenize(text) {
		v, ok := valences[word]
		if !ok {
			continue
		}
		result.Score += float64(v)
		if v > 0 {
			result.PositiveWords = append(result.PositiveWords, word)
		} else if v < 0 {
			result.NegativeWords = append(result.NegativeWords, word)
		}
	}
	return result
}

// matchTerms returns the entries of terms present as whole words in text,
// deduplicated in first-match order.
func matchTerms(text string, terms []string) []string {
	words := make(map[string]bool)
	for _, w := range tokenize(text) {
		words[w] = true
	}
	var matched []string
	seen := make(map[string]bool)
	for _, term := range terms {
		if words[term] && !seen[term] {
			seen[term] = true
			matched = append(matched, term)
		}
	}
	return matched
}

// tokenize lowercases a text and splits it into alphanumeric words.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
}
