// Package relevance decides whether an article is actually about a given
// company. Scoring is deterministic and does no I/O: weighted textual and
// metadata signals sum to a 0..1 score checked against a threshold.
package relevance

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/seenimoa/tickersense/pkg/models"
)

// DefaultThreshold is the standard relevance cutoff.
const DefaultThreshold = 0.55

// trustedDomains lists financial news domains whose coverage earns a small
// relevance bonus. Matching is subdomain-tolerant.
var trustedDomains = []string{
	"reuters.com",
	"bloomberg.com",
	"cnbc.com",
	"wsj.com",
	"ft.com",
	"marketwatch.com",
	"barrons.com",
	"finance.yahoo.com",
	"seekingalpha.com",
	"investors.com",
	"fool.com",
	"benzinga.com",
	"businessinsider.com",
	"forbes.com",
}

// Score computes the relevance of an article to a ticker at the given
// threshold. All ticker-derived strings are regex-escaped and matched on
// word boundaries: "Apple" must not match inside "Pineapple".
func Score(article models.Article, rec *models.TickerRecord, threshold float64) models.RelevanceScore {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	title := article.Title
	body := article.Description
	if article.Content != "" {
		body += " " + article.Content
	}

	score := 0.0
	matched := newTermSet()
	matchType := models.MatchNone

	symbolPattern := wordPattern(rec.Symbol)

	// Title signals.
	if symbolPattern.MatchString(title) {
		score += 0.6
		matched.add(rec.Symbol)
		matchType = firstMatch(matchType, models.MatchSymbol)
	}
	if score < 0.5 {
		for _, alias := range qualifyingAliases(rec) {
			if wordPattern(alias).MatchString(title) {
				score += 0.5
				matched.add(alias)
				matchType = firstMatch(matchType, aliasMatchType(rec, alias))
				break
			}
		}
	}

	// Body signals.
	if symbolPattern.MatchString(body) {
		score += 0.3
		matched.add(rec.Symbol)
		matchType = firstMatch(matchType, models.MatchSymbol)
	}
	for _, alias := range qualifyingAliases(rec) {
		if strings.EqualFold(alias, rec.Symbol) {
			continue // already counted as the symbol signal
		}
		if wordPattern(alias).MatchString(body) {
			score += 0.2
			matched.add(alias)
			matchType = firstMatch(matchType, aliasMatchType(rec, alias))
			break
		}
	}

	// Metadata symbols declared by the provider.
	if article.HasSymbol(rec.Symbol) {
		score += 0.4
		matched.add(rec.Symbol)
		matchType = firstMatch(matchType, models.MatchMetadata)
	}

	// Trusted financial domain bonus.
	if isTrustedDomain(article.URL) {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}

	return models.RelevanceScore{
		IsRelevant:   score >= threshold,
		Score:        score,
		MatchedTerms: matched.list(),
		MatchType:    matchType,
	}
}

// Filter returns the subset of articles relevant to the ticker at threshold.
func Filter(articles []models.Article, rec *models.TickerRecord, threshold float64) []models.Article {
	var relevant []models.Article
	for _, a := range articles {
		if Score(a, rec, threshold).IsRelevant {
			relevant = append(relevant, a)
		}
	}
	return relevant
}

// qualifyingAliases returns aliases eligible for matching: length ≥ 3, or
// the symbol itself.
func qualifyingAliases(rec *models.TickerRecord) []string {
	var out []string
	for _, a := range rec.Aliases {
		if len(a) >= 3 || strings.EqualFold(a, rec.Symbol) {
			out = append(out, a)
		}
	}
	return out
}

// aliasMatchType classifies a matched alias: company names rank above
// curated aliases.
func aliasMatchType(rec *models.TickerRecord, alias string) models.MatchType {
	for _, name := range []string{rec.Name, rec.ShortName, rec.LongName} {
		if name != "" && (strings.EqualFold(alias, name) || strings.EqualFold(alias, cleanedName(name))) {
			return models.MatchCompanyName
		}
	}
	return models.MatchAlias
}

// cleanedName lower-effort suffix strip used only for match-type
// classification; the resolver owns the authoritative cleaning.
var nameSuffix = regexp.MustCompile(`(?i)[,\s]+(incorporated|inc|corporation|corp|ltd|limited|company|co|group|holdings)\.*\s*$`)

func cleanedName(name string) string {
	return strings.TrimSpace(nameSuffix.ReplaceAllString(name, ""))
}

// matchTypeRank orders match types by priority (symbol highest).
var matchTypeRank = map[models.MatchType]int{
	models.MatchSymbol:      0,
	models.MatchCompanyName: 1,
	models.MatchAlias:       2,
	models.MatchMetadata:    3,
	models.MatchNone:        4,
}

func firstMatch(current, candidate models.MatchType) models.MatchType {
	if matchTypeRank[candidate] < matchTypeRank[current] {
		return candidate
	}
	return current
}

// wordPattern builds a case-insensitive whole-token pattern for a
// ticker-derived term. QuoteMeta guards against symbols containing regex
// metacharacters. An optional $ prefix covers cashtag mentions.
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^A-Za-z0-9$])\$?` + regexp.QuoteMeta(term) + `($|[^A-Za-z0-9])`)
}

// isTrustedDomain reports whether the article URL's host belongs to a
// trusted financial domain, tolerating www. prefixes and subdomains.
func isTrustedDomain(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	for _, d := range trustedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// termSet deduplicates matched terms case-insensitively, preserving the
// first-seen casing.
type termSet struct {
	seen  map[string]bool
	items []string
}

func newTermSet() *termSet { return &termSet{seen: make(map[string]bool)} }

func (s *termSet) add(term string) {
	key := strings.ToLower(term)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, term)
}

func (s *termSet) list() []string { return s.items }
