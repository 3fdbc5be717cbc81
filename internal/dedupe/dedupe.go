// Package dedupe removes duplicate articles from a fetched batch. The same
// story routinely arrives from several feeds with tracking parameters bolted
// onto the URL or a lightly reworded headline, so duplicates are detected on
// both a normalized URL and near-identical titles.
package dedupe

import (
	"net/url"
	"strings"

	"github.com/seenimoa/tickersense/pkg/models"
)

// TitleSimilarityThreshold is the Jaccard similarity above which two titles
// are treated as the same story.
const TitleSimilarityThreshold = 0.85

// stopwords excluded from title token sets. Connective words inflate the
// union without carrying story identity.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "after": true,
	"before": true, "from": true, "that": true, "this": true, "its": true,
	"are": true, "was": true, "has": true, "have": true, "amid": true,
	"over": true, "into": true, "what": true, "how": true, "why": true,
}

// Deduplicate returns articles with duplicates removed, keeping the first
// occurrence of each story in input order.
func Deduplicate(articles []models.Article) []models.Article {
	if len(articles) <= 1 {
		return articles
	}

	var unique []models.Article
	seenURLs := make(map[string]bool)
	var titleSets []map[string]bool

	for _, article := range articles {
		normURL := NormalizeURL(article.URL)
		if normURL != "" && seenURLs[normURL] {
			continue
		}

		tokens := titleTokens(article.Title)
		dup := false
		for _, prev := range titleSets {
			if jaccard(tokens, prev) >= TitleSimilarityThreshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		if normURL != "" {
			seenURLs[normURL] = true
		}
		titleSets = append(titleSets, tokens)
		unique = append(unique, article)
	}
	return unique
}

// NormalizeURL strips query string and fragment and lowercases the result,
// so tracking parameters do not defeat URL comparison. Unparseable URLs are
// returned lowercased as-is.
func NormalizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(rawURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.ToLower(strings.TrimSuffix(u.String(), "/"))
}

// titleTokens builds the comparison token set for a title: lowercased words
// longer than two characters, minus stopwords and possessive suffixes.
func titleTokens(title string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(title)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !isAlnum(r)
		})
		word = strings.TrimSuffix(word, "'s")
		word = strings.TrimSuffix(word, "’s")
		if len(word) <= 2 || stopwords[word] {
			continue
		}
		tokens[word] = true
	}
	return tokens
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// jaccard computes |a ∩ b| / |a ∪ b| for two token sets. An empty set carries
// no story identity, so it never matches anything, not even another empty set.
// Title-less articles are still valid evidence and must not collapse together.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
