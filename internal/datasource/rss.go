package datasource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/tickersense/pkg/models"
	"github.com/seenimoa/tickersense/pkg/utils"
)

// RSSFeed represents a financial news RSS feed configuration.
type RSSFeed struct {
	Name string
	URL  string
}

// DefaultRSSFeeds lists the default financial news RSS feeds.
var DefaultRSSFeeds = []RSSFeed{
	{
		Name: "CNBC Markets",
		URL:  "https://www.cnbc.com/id/100003114/device/rss/rss.html",
	},
	{
		Name: "MarketWatch Top Stories",
		URL:  "https://feeds.marketwatch.com/marketwatch/topstories/",
	},
	{
		Name: "Seeking Alpha Market News",
		URL:  "https://seekingalpha.com/market_currents.xml",
	},
	{
		Name: "Yahoo Finance News",
		URL:  "https://finance.yahoo.com/news/rssindex",
	},
}

// RSS implements ArticleSource over a set of financial news RSS feeds.
// A query is matched against each item's title and summary; feeds are
// fetched once per cache window regardless of how many queries run.
type RSS struct {
	feeds   []RSSFeed
	cache   *Cache
	limiter *RateLimiter
	parser  *gofeed.Parser
}

// NewRSS creates an RSS article source with the default feeds.
func NewRSS() *RSS {
	return NewRSSWithFeeds(DefaultRSSFeeds)
}

// NewRSSWithFeeds creates an RSS article source with custom feeds.
func NewRSSWithFeeds(feeds []RSSFeed) *RSS {
	return &RSS{
		feeds:   feeds,
		cache:   NewCache(10 * time.Minute),
		limiter: NewRateLimiter(2, time.Second), // 2 req/s
		parser:  gofeed.NewParser(),
	}
}

// Name returns the data source name.
func (r *RSS) Name() string { return "Financial RSS" }

// FetchArticles returns feed articles whose title or summary matches the query.
func (r *RSS) FetchArticles(ctx context.Context, query string) ([]models.Article, error) {
	query = utils.CleanQuery(query)
	if query == "" {
		return nil, nil
	}

	all, err := r.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []models.Article
	for _, a := range all {
		if matchesQuery(a.CombinedText(), query) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// fetchAll loads every configured feed, tolerating individual feed failures.
func (r *RSS) fetchAll(ctx context.Context) ([]models.Article, error) {
	const cacheKey = "rss:all"
	if cached, ok := r.cache.Get(cacheKey); ok {
		return cached.([]models.Article), nil
	}

	var all []models.Article
	var lastErr error
	for _, feed := range r.feeds {
		articles, err := r.fetchFeed(ctx, feed)
		if err != nil {
			// Non-critical: skip failed feeds.
			lastErr = err
			continue
		}
		all = append(all, articles...)
	}

	if len(all) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all RSS feeds failed: %w", lastErr)
	}

	models.SortArticlesByDate(all)
	r.cache.Set(cacheKey, all)
	return all, nil
}

// fetchFeed parses one RSS feed and normalizes its items.
func (r *RSS) fetchFeed(ctx context.Context, feed RSSFeed) ([]models.Article, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	parsed, err := r.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", feed.Name, err)
	}

	articles := make([]models.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		articles = append(articles, normalizeFeedItem(feed.Name, item))
	}
	return articles, nil
}

// normalizeFeedItem maps a raw gofeed item into the canonical Article shape.
func normalizeFeedItem(sourceName string, item *gofeed.Item) models.Article {
	a := models.Article{
		Title:       strings.TrimSpace(item.Title),
		Description: cleanHTML(item.Description),
		Source:      sourceName,
		URL:         item.Link,
	}
	if item.PublishedParsed != nil {
		a.PublishedAt = *item.PublishedParsed
	}
	return a
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// matchesQuery checks whether text contains the query, or all of the query's
// words when the full phrase is absent (case-insensitive).
func matchesQuery(text, query string) bool {
	lower := strings.ToLower(text)
	q := strings.ToLower(query)
	if strings.Contains(lower, q) {
		return true
	}
	words := strings.Fields(q)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(lower, w) {
			return false
		}
	}
	return true
}
