// Package sentiment computes detailed sentiment for a deduplicated,
// relevance-filtered article set. A semantic scorer provides the overall
// score when available; a local lexicon pass provides per-article
// breakdowns, indicator terms, and the fallback score.
package sentiment

import (
	"context"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/seenimoa/tickersense/internal/common"
	"github.com/seenimoa/tickersense/pkg/models"
)

// MaxIndicators caps each indicator list on the result.
const MaxIndicators = 10

// Engine turns a prepared article set into a DetailedSentimentResult.
type Engine struct {
	scorer SemanticScorer
	logger arbor.ILogger
	now    func() time.Time
}

// NewEngine creates a sentiment engine. scorer may be nil, in which case
// the local lexicon pass supplies the overall score directly.
func NewEngine(scorer SemanticScorer) *Engine {
	return &Engine{
		scorer: scorer,
		logger: common.GetLogger(),
		now:    time.Now,
	}
}

// Analyze computes sentiment for articles already deduplicated and filtered
// for relevance. dataQuality must not be insufficient; callers gate on the
// quality assessor first.
func (e *Engine) Analyze(ctx context.Context, symbol string, articles []models.Article, dataQuality models.DataQuality) *models.DetailedSentimentResult {
	if len(articles) == 0 || dataQuality == models.DataQualityInsufficient {
		return InsufficientResult()
	}

	now := e.now()
	breakdowns := make([]models.ArticleSentimentBreakdown, 0, len(articles))
	for _, a := range articles {
		breakdowns = append(breakdowns, e.analyzeArticle(a, now))
	}

	score, analysis, posIndicators, negIndicators := e.overallScore(ctx, symbol, articles, breakdowns)

	posIndicators = mergeIndicators(posIndicators, collectTerms(breakdowns, true))
	negIndicators = mergeIndicators(negIndicators, collectTerms(breakdowns, false))

	confidence := computeConfidence(dataQuality, breakdowns)

	return &models.DetailedSentimentResult{
		SentimentScore:     score,
		SentimentLabel:     Label(score),
		Analysis:           buildAnalysis(analysis, posIndicators, negIndicators, dataQuality),
		PositiveIndicators: posIndicators,
		NegativeIndicators: negIndicators,
		Confidence:         confidence,
		ArticlesAnalyzed:   len(articles),
		ArticleBreakdown:   breakdowns,
		DataQuality:        dataQuality,
	}
}

// InsufficientResult is the fixed result returned when too little evidence
// exists to compute sentiment. This is a distinct, typed outcome: a neutral
// numeric score would be indistinguishable from genuinely neutral news.
func InsufficientResult() *models.DetailedSentimentResult {
	return &models.DetailedSentimentResult{
		SentimentScore:   0,
		SentimentLabel:   models.LabelInsufficientData,
		Analysis:         "Not enough relevant news coverage was found to assess sentiment.",
		Confidence:       0,
		ArticlesAnalyzed: 0,
		ArticleBreakdown: []models.ArticleSentimentBreakdown{},
		DataQuality:      models.DataQualityInsufficient,
	}
}

// analyzeArticle runs the lexicon pass and weighting for a single article.
func (e *Engine) analyzeArticle(a models.Article, now time.Time) models.ArticleSentimentBreakdown {
	text := a.Title
	if a.Description != "" {
		text += " " + a.Description
	}

	base := Polarity(text)
	posHits := matchTerms(text, positiveTerms)
	negHits := matchTerms(text, negativeTerms)
	custom := float64(len(posHits)-len(negHits)) * 2
	combined := clamp((base.Score+custom)/10, -1, 1)

	recency := RecencyWeight(a.PublishedAt, now)
	specificity := SpecificityWeight(text)
	impact, category := ImpactWeight(text)

	return models.ArticleSentimentBreakdown{
		Title:            a.Title,
		Source:           a.Source,
		PublishedAt:      a.PublishedAt,
		Sentiment:        classify(combined),
		Score:            combined,
		Weight:           recency * specificity * impact,
		PositiveTerms:    posHits,
		NegativeTerms:    negHits,
		HasNumericalData: digitPattern.MatchString(text),
		ImpactCategory:   category,
	}
}

// overallScore asks the semantic scorer for the overall verdict, falling
// back to the weight-averaged lexicon scores when it fails.
func (e *Engine) overallScore(ctx context.Context, symbol string, articles []models.Article, breakdowns []models.ArticleSentimentBreakdown) (score float64, analysis string, pos, neg []string) {
	if e.scorer != nil {
		result, err := e.scorer.ScoreArticles(ctx, symbol, articles)
		if err == nil {
			return clamp(result.Score, -1, 1), result.Reasoning, result.PositiveIndicators, result.NegativeIndicators
		}
		e.logger.Warn().Str("symbol", symbol).Err(err).Msg("semantic scorer failed, using lexicon fallback")
	}
	return weightedAverage(breakdowns), "", nil, nil
}

// weightedAverage combines per-article lexicon scores by total weight.
func weightedAverage(breakdowns []models.ArticleSentimentBreakdown) float64 {
	var sum, totalWeight float64
	for _, b := range breakdowns {
		sum += b.Score * b.Weight
		totalWeight += b.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return clamp(sum/totalWeight, -1, 1)
}

// computeConfidence scales a data-quality base by how much the individual
// articles agree, with a small bonus for larger sets.
func computeConfidence(dataQuality models.DataQuality, breakdowns []models.ArticleSentimentBreakdown) float64 {
	count := len(breakdowns)

	var base float64
	switch dataQuality {
	case models.DataQualityHigh:
		base = min(1.0, 0.7+float64(count)/20*0.3)
	case models.DataQualityMedium:
		base = min(0.7, 0.4+float64(count)/10*0.3)
	default:
		base = min(0.5, 0.2+float64(count)/5*0.3)
	}

	confidence := clamp(base*consistency(breakdowns), 0, 1)
	if count >= 5 {
		confidence = min(1.0, confidence+0.1)
	}
	return confidence
}

// consistency measures directional agreement among the per-article results.
func consistency(breakdowns []models.ArticleSentimentBreakdown) float64 {
	switch len(breakdowns) {
	case 0:
		return 0.5
	case 1:
		return 0.8
	}

	buckets := make(map[models.Sentiment]int)
	for _, b := range breakdowns {
		buckets[b.Sentiment]++
	}
	maxBucket := 0
	for _, n := range buckets {
		if n > maxBucket {
			maxBucket = n
		}
	}
	alignment := float64(maxBucket) / float64(len(breakdowns))

	switch {
	case alignment >= 0.8:
		return 0.95 + (alignment-0.8)*0.25
	case alignment >= 0.6:
		return 0.85 + (alignment-0.6)*0.5
	default:
		return 0.5 + (alignment-0.33)*0.5
	}
}

// Label maps an overall score onto the seven display bands.
func Label(score float64) string {
	switch {
	case score <= -0.7:
		return "Extremely Negative"
	case score <= -0.3:
		return "Negative"
	case score <= -0.1:
		return "Slightly Negative"
	case score >= 0.7:
		return "Extremely Positive"
	case score >= 0.3:
		return "Positive"
	case score >= 0.1:
		return "Slightly Positive"
	default:
		return "Neutral"
	}
}

// buildAnalysis assembles the human-readable summary: the scorer's
// reasoning (or a generated sentence), named factors, and a quality caveat
// for thin evidence.
func buildAnalysis(reasoning string, pos, neg []string, dataQuality models.DataQuality) string {
	var parts []string
	if reasoning != "" {
		parts = append(parts, strings.TrimSpace(reasoning))
	} else {
		parts = append(parts, "Sentiment derived from keyword analysis of recent coverage.")
	}
	if len(pos) > 0 {
		parts = append(parts, "Positive factors: "+strings.Join(truncate(pos, 3), ", ")+".")
	}
	if len(neg) > 0 {
		parts = append(parts, "Negative factors: "+strings.Join(truncate(neg, 3), ", ")+".")
	}
	if dataQuality == models.DataQualityLow {
		parts = append(parts, "Note: limited substantive coverage, treat with caution.")
	}
	return strings.Join(parts, " ")
}

func classify(score float64) models.Sentiment {
	switch {
	case score > 0.2:
		return models.SentimentPositive
	case score < -0.2:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// collectTerms gathers matched lexicon terms across all breakdowns.
func collectTerms(breakdowns []models.ArticleSentimentBreakdown, positive bool) []string {
	var terms []string
	for _, b := range breakdowns {
		if positive {
			terms = append(terms, b.PositiveTerms...)
		} else {
			terms = append(terms, b.NegativeTerms...)
		}
	}
	return terms
}

// mergeIndicators unions scorer indicators with lexicon terms, deduplicated
// case-insensitively and capped at MaxIndicators.
func mergeIndicators(primary, secondary []string) []string {
	var merged []string
	seen := make(map[string]bool)
	for _, list := range [][]string{primary, secondary} {
		for _, item := range list {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			key := strings.ToLower(item)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, item)
			if len(merged) == MaxIndicators {
				return merged
			}
		}
	}
	return merged
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
