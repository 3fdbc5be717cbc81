package ticker

import (
	"regexp"
	"strings"
)

// corporateSuffixPattern matches a trailing corporate suffix such as
// "Inc.", "Corp", "Ltd" or "Holdings", with an optional leading comma and
// optional trailing periods.
var corporateSuffixPattern = regexp.MustCompile(
	`(?i)[,\s]+(incorporated|inc|corporation|corp|ltd|limited|company|co|group|holdings)\.*\s*$`,
)

// wholeSuffixPattern matches a name that is nothing but a corporate suffix.
var wholeSuffixPattern = regexp.MustCompile(
	`(?i)^(incorporated|inc|corporation|corp|ltd|limited|company|co|group|holdings)\.*$`,
)

// CleanCompanyName strips trailing corporate suffixes from a company name.
// Applied repeatedly so forms like "Example Co Ltd" reduce fully.
// Returns "" when nothing remains after stripping.
func CleanCompanyName(name string) string {
	cleaned := strings.TrimSpace(name)
	if wholeSuffixPattern.MatchString(cleaned) {
		return ""
	}
	for {
		next := corporateSuffixPattern.ReplaceAllString(cleaned, "")
		next = strings.TrimRight(strings.TrimSpace(next), ",.")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	return strings.TrimSpace(cleaned)
}

// curatedKeywords maps well-known symbols to product, brand, and executive
// keywords that frequently appear in coverage without the company name.
// Order matters for query expansion: the first three entries are treated as
// products, the remainder as executives.
var curatedKeywords = map[string][]string{
	"AAPL":  {"iPhone", "iPad", "MacBook", "Tim Cook"},
	"MSFT":  {"Windows", "Azure", "Xbox", "Satya Nadella"},
	"GOOGL": {"Google Search", "Android", "YouTube", "Sundar Pichai"},
	"GOOG":  {"Google Search", "Android", "YouTube", "Sundar Pichai"},
	"AMZN":  {"Amazon Prime", "AWS", "Alexa", "Andy Jassy"},
	"TSLA":  {"Model 3", "Cybertruck", "Gigafactory", "Elon Musk"},
	"META":  {"Facebook", "Instagram", "WhatsApp", "Mark Zuckerberg"},
	"NVDA":  {"GeForce", "CUDA", "Blackwell", "Jensen Huang"},
	"AMD":   {"Ryzen", "Radeon", "EPYC", "Lisa Su"},
	"NFLX":  {"Netflix streaming", "Netflix originals", "Ted Sarandos"},
	"JPM":   {"Chase", "J.P. Morgan", "Jamie Dimon"},
	"DIS":   {"Disney+", "Pixar", "ESPN", "Bob Iger"},
}

// CuratedKeywords returns the static product/executive keyword list for a
// recognized symbol, or nil for symbols without an entry.
func CuratedKeywords(symbol string) []string {
	return curatedKeywords[strings.ToUpper(strings.TrimSpace(symbol))]
}

// aliasSet accumulates aliases, deduplicating case-insensitively while
// preserving the first-seen casing for display.
type aliasSet struct {
	seen  map[string]bool
	items []string
}

func newAliasSet() *aliasSet {
	return &aliasSet{seen: make(map[string]bool)}
}

func (s *aliasSet) add(alias string) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return
	}
	key := strings.ToLower(alias)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, alias)
}

func (s *aliasSet) list() []string { return s.items }
