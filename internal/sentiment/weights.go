package sentiment

import (
	"math"
	"regexp"
	"time"
)

var (
	percentPattern  = regexp.MustCompile(`\d+(\.\d+)?\s*%`)
	currencyPattern = regexp.MustCompile(`[$€£¥]\s*\d|(?i)\b\d+(\.\d+)?\s*(dollars|cents|usd|eur|billion|million)\b`)
	digitPattern    = regexp.MustCompile(`\d`)
)

// RecencyWeight decays an article's influence exponentially with age.
// Same-day news dominates; nothing decays to zero influence.
func RecencyWeight(publishedAt, now time.Time) float64 {
	if publishedAt.IsZero() {
		return 0.1
	}
	ageHours := now.Sub(publishedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	w := math.Exp(-ageHours / 24)
	if w < 0.1 {
		return 0.1
	}
	if w > 1.0 {
		return 1.0
	}
	return w
}

// SpecificityWeight rewards concrete figures: percentages, currency
// amounts, and raw numbers each raise the weight above the 0.5 base.
func SpecificityWeight(text string) float64 {
	w := 0.5
	if percentPattern.MatchString(text) {
		w += 0.2
	}
	if currencyPattern.MatchString(text) {
		w += 0.2
	}
	if digitPattern.MatchString(text) {
		w += 0.1
	}
	if w > 1.0 {
		return 1.0
	}
	return w
}

// impactCategories orders news categories by market impact. The first
// matching category wins.
var impactCategories = []struct {
	name     string
	weight   float64
	keywords []string
}{
	{"earnings", 1.0, []string{"earnings", "revenue", "profit", "quarterly", "eps", "guidance", "forecast"}},
	{"regulatory", 1.0, []string{"sec", "lawsuit", "regulation", "investigation", "probe", "antitrust", "fine", "settlement"}},
	{"analyst", 0.8, []string{"upgrade", "downgrade", "rating", "analyst", "price target", "initiated"}},
	{"product", 0.8, []string{"launch", "unveil", "release", "announce", "product", "device"}},
	{"sales", 0.6, []string{"sales", "demand", "orders", "shipments", "deliveries"}},
	{"leadership", 0.6, []string{"ceo", "cfo", "executive", "resign", "appoint", "successor"}},
	{"market", 0.6, []string{"market share", "competition", "competitor", "expansion"}},
	{"innovation", 0.6, []string{"patent", "research", "breakthrough", "technology", "ai"}},
}

// ImpactWeight classifies a text into the highest-impact matching news
// category and returns its weight. Unmatched texts fall back to "general".
func ImpactWeight(text string) (float64, string) {
	words := make(map[string]bool)
	tokens := tokenize(text)
	for _, w := range tokens {
		words[w] = true
	}
	bigrams := make(map[string]bool)
	for i := 0; i+1 < len(tokens); i++ {
		bigrams[tokens[i]+" "+tokens[i+1]] = true
	}

	for _, cat := range impactCategories {
		for _, kw := range cat.keywords {
			if words[kw] || bigrams[kw] {
				return cat.weight, cat.name
			}
		}
	}
	return 0.3, "general"
}
