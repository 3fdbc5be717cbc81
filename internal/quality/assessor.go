// Package quality grades a fetched article set before any sentiment work
// happens. Thin batches or headline-only scrapes produce unreliable
// sentiment, so the assessor gates the pipeline on count and per-article
// substance.
package quality

import (
	"regexp"
	"strings"

	"github.com/seenimoa/tickersense/pkg/models"
)

// MinArticles is the hard floor below which sentiment is never computed.
const MinArticles = 3

var (
	financialTermPattern = regexp.MustCompile(`(?i)\b(revenue|earnings|profit|loss|eps|guidance|forecast|dividend|margin|quarter|fiscal|sales|growth|shares?|stock|analyst|rating|upgrade|downgrade|acquisition|merger|ipo|valuation)\b`)
	digitPattern         = regexp.MustCompile(`\d`)
)

// Assess classifies an article set by size and substance.
func Assess(articles []models.Article) models.DataQuality {
	total := len(articles)
	if total < MinArticles {
		return models.DataQualityInsufficient
	}

	substantive := 0
	for _, a := range articles {
		if IsSubstantive(a) {
			substantive++
		}
	}
	ratio := float64(substantive) / float64(total)

	switch {
	case total >= 10 && ratio >= 0.5:
		return models.DataQualityHigh
	case total >= 5 && ratio >= 0.3:
		return models.DataQualityMedium
	case substantive >= 2:
		return models.DataQualityMedium
	default:
		return models.DataQualityLow
	}
}

// IsSubstantive reports whether an article carries enough substance to
// inform sentiment: concrete figures alongside financial vocabulary, or a
// description long enough to be more than a headline restated.
func IsSubstantive(article models.Article) bool {
	text := article.Title
	if article.Description != "" {
		text += " " + article.Description
	}
	if digitPattern.MatchString(text) && financialTermPattern.MatchString(text) {
		return true
	}
	return len(strings.TrimSpace(text)) > 100
}
