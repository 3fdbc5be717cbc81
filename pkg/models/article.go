package models

import (
	"sort"
	"strings"
	"time"
)

// ArticleQuality is the provider-reported quality hint for an article.
type ArticleQuality string

const (
	ArticleQualityHigh   ArticleQuality = "high"
	ArticleQualityMedium ArticleQuality = "medium"
	ArticleQualityLow    ArticleQuality = "low"
)

// Article is the canonical news article shape. Provider adapters normalize
// their raw records into this at the boundary; the core never branches on
// provider-specific fields.
type Article struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Content     string         `json:"content,omitempty"`
	PublishedAt time.Time      `json:"published_at"`
	Source      string         `json:"source,omitempty"`
	URL         string         `json:"url,omitempty"`
	Symbols     []string       `json:"symbols,omitempty"` // provider-declared ticker metadata
	Quality     ArticleQuality `json:"quality,omitempty"`
}

// CombinedText returns title and description joined for text analysis.
func (a Article) CombinedText() string {
	if a.Description == "" {
		return a.Title
	}
	return a.Title + " " + a.Description
}

// HasSymbol reports whether sym appears in the article's declared
// metadata symbols (case-insensitive).
func (a Article) HasSymbol(sym string) bool {
	for _, s := range a.Symbols {
		if strings.EqualFold(s, sym) {
			return true
		}
	}
	return false
}

// SortArticlesByDate sorts articles by published date (newest first).
func SortArticlesByDate(articles []Article) {
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
