package datasource

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/tickersense/pkg/models"
)

// MultiSource fans a query out to several article sources concurrently and
// merges their results. Results are gathered per source before merging so
// the combined order is deterministic for a given source list.
type MultiSource struct {
	sources []ArticleSource
}

// NewMultiSource creates a combinator over the given sources.
func NewMultiSource(sources ...ArticleSource) *MultiSource {
	return &MultiSource{sources: sources}
}

// DefaultSources returns the standard source set: Yahoo Finance search plus
// the configured RSS feeds.
func DefaultSources() *MultiSource {
	return NewMultiSource(NewYahoo(), NewRSS())
}

// Name returns the data source name.
func (m *MultiSource) Name() string { return "Multi-Source" }

// FetchArticles queries every source concurrently. Individual source
// failures are tolerated; an error is returned only when every source fails.
func (m *MultiSource) FetchArticles(ctx context.Context, query string) ([]models.Article, error) {
	if len(m.sources) == 0 {
		return nil, nil
	}

	results := make([][]models.Article, len(m.sources))
	errs := make([]error, len(m.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range m.sources {
		g.Go(func() error {
			articles, err := src.FetchArticles(gctx, query)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", src.Name(), err)
				return nil // non-fatal
			}
			results[i] = articles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []models.Article
	var lastErr error
	failed := 0
	for i := range m.sources {
		if errs[i] != nil {
			failed++
			lastErr = errs[i]
			continue
		}
		merged = append(merged, results[i]...)
	}

	if failed == len(m.sources) {
		return nil, fmt.Errorf("all article sources failed: %w", lastErr)
	}
	return merged, nil
}
