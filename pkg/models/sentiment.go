package models

import "time"

// MatchType records which signal first established an article's relevance.
type MatchType string

const (
	MatchSymbol      MatchType = "symbol"
	MatchCompanyName MatchType = "company_name"
	MatchAlias       MatchType = "alias"
	MatchMetadata    MatchType = "metadata"
	MatchNone        MatchType = "none"
)

// RelevanceScore is the per-(article, ticker) relevance decision.
// Always recomputed on demand, never persisted.
type RelevanceScore struct {
	IsRelevant   bool      `json:"is_relevant"`
	Score        float64   `json:"score"` // 0..1
	MatchedTerms []string  `json:"matched_terms,omitempty"`
	MatchType    MatchType `json:"match_type"`
}

// DataQuality is the coarse evidence classification gating sentiment analysis.
type DataQuality string

const (
	DataQualityInsufficient DataQuality = "insufficient"
	DataQualityLow          DataQuality = "low"
	DataQualityMedium       DataQuality = "medium"
	DataQualityHigh         DataQuality = "high"
)

// Sentiment is the per-article sentiment direction.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// LabelInsufficientData is the fixed label returned when too few relevant
// articles exist to compute sentiment at all.
const LabelInsufficientData = "Insufficient Data"

// ArticleSentimentBreakdown is the per-article derived sentiment record.
// Invariant: Weight = recency × specificity × impact, each factor in (0,1].
type ArticleSentimentBreakdown struct {
	Title            string    `json:"title"`
	Source           string    `json:"source,omitempty"`
	PublishedAt      time.Time `json:"published_at"`
	Sentiment        Sentiment `json:"sentiment"`
	Score            float64   `json:"score"`  // -1..1
	Weight           float64   `json:"weight"` // 0..1
	PositiveTerms    []string  `json:"positive_terms,omitempty"`
	NegativeTerms    []string  `json:"negative_terms,omitempty"`
	HasNumericalData bool      `json:"has_numerical_data"`
	ImpactCategory   string    `json:"impact_category"`
}

// DetailedSentimentResult is the analysis pipeline's output.
// Constructed once per request and never mutated afterwards.
type DetailedSentimentResult struct {
	SentimentScore     float64                     `json:"sentiment_score"` // -1..1
	SentimentLabel     string                      `json:"sentiment_label"`
	Analysis           string                      `json:"analysis"`
	PositiveIndicators []string                    `json:"positive_indicators,omitempty"` // ≤10
	NegativeIndicators []string                    `json:"negative_indicators,omitempty"` // ≤10
	Confidence         float64                     `json:"confidence"` // 0..1
	ArticlesAnalyzed   int                         `json:"articles_analyzed"`
	ArticleBreakdown   []ArticleSentimentBreakdown `json:"article_breakdown,omitempty"`
	DataQuality        DataQuality                 `json:"data_quality"`
}

// MultiQueryFetchResult is the orchestrator's output: the relevant article
// set plus bookkeeping about how it was obtained.
type MultiQueryFetchResult struct {
	Articles      []Article `json:"articles"`
	TotalFetched  int       `json:"total_fetched"`
	RelevantCount int       `json:"relevant_count"`
	QueriesUsed   []string  `json:"queries_used,omitempty"`
	SourcesUsed   []string  `json:"sources_used,omitempty"`
	RelevanceRate float64   `json:"relevance_rate"`
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
}

// TickerSentiment bundles the fetch result with the computed sentiment for
// the fetch-and-analyze entrypoint.
type TickerSentiment struct {
	Symbol    string                   `json:"symbol"`
	Fetch     *MultiQueryFetchResult   `json:"fetch"`
	Sentiment *DetailedSentimentResult `json:"sentiment,omitempty"`
	Timestamp time.Time                `json:"timestamp"`
}
