package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/seenimoa/tickersense/pkg/models"
	"github.com/seenimoa/tickersense/pkg/utils"
)

// Yahoo implements ArticleSource and CompanyLookup against the public
// Yahoo Finance endpoints.
type Yahoo struct {
	cache   *Cache
	limiter *RateLimiter
}

// NewYahoo creates a new Yahoo Finance source.
func NewYahoo() *Yahoo {
	return &Yahoo{
		cache:   NewCache(5 * time.Minute),
		limiter: NewRateLimiter(5, time.Second), // 5 req/s
	}
}

// Name returns the data source name.
func (y *Yahoo) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance API types ---

type yhQuoteResponse struct {
	QuoteResponse struct {
		Result []yhQuoteResult `json:"result"`
		Error  *yhError        `json:"error"`
	} `json:"quoteResponse"`
}

type yhQuoteResult struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

type yhSearchResponse struct {
	News []yhNewsItem `json:"news"`
}

type yhNewsItem struct {
	Title               string   `json:"title"`
	Publisher           string   `json:"publisher"`
	Link                string   `json:"link"`
	ProviderPublishTime int64    `json:"providerPublishTime"`
	RelatedTickers      []string `json:"relatedTickers"`
}

type yhError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- CompanyLookup ---

// LookupCompany resolves a ticker symbol to its short and long company names
// via the Yahoo quote endpoint.
func (y *Yahoo) LookupCompany(ctx context.Context, symbol string) (*CompanyProfile, error) {
	symbol = utils.NormalizeSymbol(symbol)

	cacheKey := "company:" + symbol
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*CompanyProfile), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s", url.QueryEscape(symbol))
	body, _, err := doGet(ctx, u, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yhQuoteResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo quote: %w", err)
	}

	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
	}

	r := resp.QuoteResponse.Result[0]
	profile := &CompanyProfile{
		ShortName: strings.TrimSpace(r.ShortName),
		LongName:  strings.TrimSpace(r.LongName),
	}

	y.cache.Set(cacheKey, profile)
	return profile, nil
}

// --- ArticleSource ---

// FetchArticles returns news articles for a free-text query via the Yahoo
// search endpoint.
func (y *Yahoo) FetchArticles(ctx context.Context, query string) ([]models.Article, error) {
	query = utils.CleanQuery(query)
	if query == "" {
		return nil, nil
	}

	cacheKey := "news:" + strings.ToLower(query)
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.([]models.Article), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v1/finance/search?q=%s&newsCount=20&quotesCount=0",
		url.QueryEscape(query),
	)
	body, _, err := doGet(ctx, u, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo search %q: %w", query, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yhSearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo search: %w", err)
	}

	articles := make([]models.Article, 0, len(resp.News))
	for _, item := range resp.News {
		articles = append(articles, normalizeYahooNews(item))
	}

	y.cache.SetWithTTL(cacheKey, articles, 10*time.Minute)
	return articles, nil
}

// normalizeYahooNews maps a raw Yahoo news item into the canonical Article
// shape. All provider-specific field handling happens here.
func normalizeYahooNews(item yhNewsItem) models.Article {
	a := models.Article{
		Title:   strings.TrimSpace(item.Title),
		Source:  item.Publisher,
		URL:     item.Link,
		Symbols: item.RelatedTickers,
	}
	if item.ProviderPublishTime > 0 {
		a.PublishedAt = time.Unix(item.ProviderPublishTime, 0)
	}
	return a
}
