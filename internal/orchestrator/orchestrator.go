// Package orchestrator runs the multi-query fetch loop: resolve a ticker,
// expand it into prioritized query batches, fetch each batch against the
// article source, and accumulate deduplicated relevant articles until the
// target count is met or the batches run out.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/tickersense/internal/common"
	"github.com/seenimoa/tickersense/internal/datasource"
	"github.com/seenimoa/tickersense/internal/dedupe"
	"github.com/seenimoa/tickersense/internal/query"
	"github.com/seenimoa/tickersense/internal/relevance"
	"github.com/seenimoa/tickersense/internal/ticker"
	"github.com/seenimoa/tickersense/pkg/models"
)

// Options tunes a single orchestration run. Zero values take the defaults.
type Options struct {
	MinArticles    int     // success floor, default 3
	TargetArticles int     // stop early once reached, default 5
	MinRelevance   float64 // relevance threshold, default 0.55
}

// DefaultEscalation is the relevance threshold schedule tried in order when
// the strict threshold yields too few articles.
var DefaultEscalation = []float64{0.55, 0.45, 0.35}

func (o Options) withDefaults() Options {
	if o.MinArticles <= 0 {
		o.MinArticles = 3
	}
	if o.TargetArticles <= 0 {
		o.TargetArticles = 5
	}
	if o.MinRelevance <= 0 {
		o.MinRelevance = relevance.DefaultThreshold
	}
	return o
}

// Orchestrator ties the resolver, expander, article source, deduplicator,
// and relevance scorer into the fetch control loop.
type Orchestrator struct {
	resolver *ticker.Resolver
	source   datasource.ArticleSource
	logger   arbor.ILogger
}

// New creates an orchestrator over the given resolver and article source.
func New(resolver *ticker.Resolver, source datasource.ArticleSource) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		source:   source,
		logger:   common.GetLogger(),
	}
}

// FetchUntilSatisfied runs the batch loop at a single relevance threshold.
// Per-query fetch failures are logged and treated as zero results; only a
// ticker that cannot be resolved at all returns an error.
func (o *Orchestrator) FetchUntilSatisfied(ctx context.Context, symbol string, opts Options) (*models.MultiQueryFetchResult, error) {
	opts = opts.withDefaults()

	rec, err := o.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", symbol, err)
	}

	batches := query.Expand(rec)

	var (
		accumulated []models.Article
		relevant    []models.Article
		queriesUsed []string
		sources     = newStringSet()
		total       int
	)

	for _, b := range batches {
		fetched := o.fetchBatch(ctx, b.Queries)

		for i, articles := range fetched {
			if len(articles) == 0 {
				continue
			}
			queriesUsed = append(queriesUsed, b.Queries[i].Query)
			total += len(articles)
			for _, a := range articles {
				if a.Source != "" {
					sources.add(a.Source)
				}
			}
			accumulated = append(accumulated, articles...)
		}

		unique := dedupe.Deduplicate(accumulated)
		relevant = relevance.Filter(unique, rec, opts.MinRelevance)

		o.logger.Debug().
			Str("symbol", rec.Symbol).
			Int("priority", b.Priority).
			Int("fetched", total).
			Int("relevant", len(relevant)).
			Msg("batch complete")

		if len(relevant) >= opts.TargetArticles {
			break
		}
	}

	unique := dedupe.Deduplicate(accumulated)
	relevant = relevance.Filter(unique, rec, opts.MinRelevance)

	rate := 0.0
	if len(unique) > 0 {
		rate = float64(len(relevant)) / float64(len(unique))
	}

	success := len(relevant) >= opts.MinArticles
	result := &models.MultiQueryFetchResult{
		Articles:      relevant,
		TotalFetched:  total,
		RelevantCount: len(relevant),
		QueriesUsed:   queriesUsed,
		SourcesUsed:   sources.list(),
		RelevanceRate: rate,
		Success:       success,
		Message:       buildMessage(rec.Symbol, len(relevant), opts),
	}
	return result, nil
}

// FetchWithEscalation retries FetchUntilSatisfied down a threshold schedule
// until a run succeeds, returning the last result otherwise. An explicit
// bounded loop, so termination does not depend on recursion depth.
func (o *Orchestrator) FetchWithEscalation(ctx context.Context, symbol string, opts Options, schedule []float64) (*models.MultiQueryFetchResult, error) {
	if len(schedule) == 0 {
		schedule = DefaultEscalation
	}

	var last *models.MultiQueryFetchResult
	for _, threshold := range schedule {
		opts.MinRelevance = threshold
		result, err := o.FetchUntilSatisfied(ctx, symbol, opts)
		if err != nil {
			return nil, err
		}
		if result.Success {
			return result, nil
		}
		o.logger.Info().
			Str("symbol", symbol).
			Str("threshold", fmt.Sprintf("%.2f", threshold)).
			Int("relevant", result.RelevantCount).
			Msg("insufficient articles, relaxing relevance threshold")
		last = result
	}
	return last, nil
}

// fetchBatch issues every query in a batch concurrently and gathers results
// into an index-aligned slice, keeping the merge deterministic. A failed
// query contributes zero articles.
func (o *Orchestrator) fetchBatch(ctx context.Context, queries []models.ExpandedQuery) [][]models.Article {
	results := make([][]models.Article, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			articles, err := o.source.FetchArticles(gctx, q.Query)
			if err != nil {
				o.logger.Warn().Str("query", q.Query).Err(err).Msg("query fetch failed, skipping")
				return nil
			}
			results[i] = articles
			return nil
		})
	}
	g.Wait()

	return results
}

func buildMessage(symbol string, relevantCount int, opts Options) string {
	switch {
	case relevantCount >= opts.TargetArticles:
		return fmt.Sprintf("found %d relevant articles for %s, target reached", relevantCount, symbol)
	case relevantCount >= opts.MinArticles:
		return fmt.Sprintf("found %d relevant articles for %s, minimum met but below target of %d", relevantCount, symbol, opts.TargetArticles)
	default:
		return fmt.Sprintf("insufficient relevant articles for %s: found %d, need at least %d", symbol, relevantCount, opts.MinArticles)
	}
}

type stringSet struct {
	seen  map[string]bool
	items []string
}

func newStringSet() *stringSet { return &stringSet{seen: make(map[string]bool)} }

func (s *stringSet) add(item string) {
	key := strings.ToLower(item)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, item)
}

func (s *stringSet) list() []string { return s.items }
