// Package analyzer exposes the two top-level operations: analyzing a ticker
// from a supplied article set, and the full fetch-then-analyze pipeline.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/seenimoa/tickersense/internal/common"
	"github.com/seenimoa/tickersense/internal/dedupe"
	"github.com/seenimoa/tickersense/internal/orchestrator"
	"github.com/seenimoa/tickersense/internal/quality"
	"github.com/seenimoa/tickersense/internal/relevance"
	"github.com/seenimoa/tickersense/internal/sentiment"
	"github.com/seenimoa/tickersense/internal/ticker"
	"github.com/seenimoa/tickersense/pkg/models"
)

// Analyzer wires the resolver, orchestrator, quality gate, and sentiment
// engine into the caller-facing entrypoints.
type Analyzer struct {
	resolver *ticker.Resolver
	orch     *orchestrator.Orchestrator
	engine   *sentiment.Engine
	logger   arbor.ILogger

	// Threshold applied when the caller supplies its own articles.
	threshold float64

	// Escalation schedule used on fetching paths. Empty means the
	// orchestrator default.
	schedule []float64
}

// New creates an analyzer. threshold <= 0 uses the default relevance cutoff;
// a nil schedule uses the default escalation schedule.
func New(resolver *ticker.Resolver, orch *orchestrator.Orchestrator, engine *sentiment.Engine, threshold float64, schedule []float64) *Analyzer {
	if threshold <= 0 {
		threshold = relevance.DefaultThreshold
	}
	return &Analyzer{
		resolver:  resolver,
		orch:      orch,
		engine:    engine,
		logger:    common.GetLogger(),
		threshold: threshold,
		schedule:  schedule,
	}
}

// AnalyzeTicker computes sentiment for a symbol. When articles are supplied
// the fetch loop is skipped entirely and the supplied set is deduplicated
// and relevance-filtered directly; otherwise the orchestrator fetches with
// threshold escalation first.
func (a *Analyzer) AnalyzeTicker(ctx context.Context, symbol string, articles []models.Article) (*models.DetailedSentimentResult, error) {
	rec, err := a.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %w", symbol, err)
	}

	var relevant []models.Article
	if articles != nil {
		unique := dedupe.Deduplicate(articles)
		relevant = relevance.Filter(unique, rec, a.threshold)
	} else {
		fetch, err := a.orch.FetchWithEscalation(ctx, symbol, orchestrator.Options{MinRelevance: a.threshold}, a.schedule)
		if err != nil {
			return nil, err
		}
		relevant = fetch.Articles
	}

	dataQuality := quality.Assess(relevant)
	if dataQuality == models.DataQualityInsufficient {
		a.logger.Info().
			Str("symbol", rec.Symbol).
			Int("relevant", len(relevant)).
			Msg("insufficient evidence, skipping sentiment computation")
		return sentiment.InsufficientResult(), nil
	}

	return a.engine.Analyze(ctx, rec.Symbol, relevant, dataQuality), nil
}

// FetchAndAnalyze runs the full pipeline: orchestrated fetch with threshold
// escalation, then quality gating and sentiment on the fetched set.
func (a *Analyzer) FetchAndAnalyze(ctx context.Context, symbol string, opts orchestrator.Options) (*models.TickerSentiment, error) {
	rec, err := a.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %w", symbol, err)
	}

	fetch, err := a.orch.FetchWithEscalation(ctx, symbol, opts, a.schedule)
	if err != nil {
		return nil, err
	}

	result := &models.TickerSentiment{
		Symbol:    rec.Symbol,
		Fetch:     fetch,
		Timestamp: time.Now(),
	}

	dataQuality := quality.Assess(fetch.Articles)
	if dataQuality == models.DataQualityInsufficient {
		result.Sentiment = sentiment.InsufficientResult()
		return result, nil
	}

	result.Sentiment = a.engine.Analyze(ctx, rec.Symbol, fetch.Articles, dataQuality)
	return result, nil
}
