package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/seenimoa/tickersense/internal/datasource"
	"github.com/seenimoa/tickersense/internal/ticker"
	"github.com/seenimoa/tickersense/pkg/models"
)

type stubLookup struct{}

func (s *stubLookup) LookupCompany(ctx context.Context, symbol string) (*datasource.CompanyProfile, error) {
	return &datasource.CompanyProfile{ShortName: "Apple Inc.", LongName: "Apple Inc."}, nil
}

// stubSource serves canned responses per query and records every query it
// receives. Queries without an entry return no articles.
type stubSource struct {
	mu        sync.Mutex
	responses map[string][]models.Article
	errors    map[string]error
	queries   []string
}

func newStubSource() *stubSource {
	return &stubSource{
		responses: make(map[string][]models.Article),
		errors:    make(map[string]error),
	}
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchArticles(ctx context.Context, query string) ([]models.Article, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	if err := s.errors[query]; err != nil {
		return nil, err
	}
	return s.responses[query], nil
}

func (s *stubSource) seen(query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.queries {
		if q == query {
			return true
		}
	}
	return false
}

func relevantArticles(n int) []models.Article {
	titles := []string{
		"AAPL beats quarterly earnings expectations",
		"AAPL launches new product line",
		"AAPL faces regulatory scrutiny in Europe",
		"AAPL expands cloud services partnership",
		"AAPL raises dividend payout again",
		"AAPL supplier reports strong demand",
	}
	articles := make([]models.Article, n)
	for i := range articles {
		articles[i] = models.Article{
			Title:  titles[i%len(titles)],
			URL:    "https://news.example.com/aapl-" + string(rune('a'+i)),
			Source: "Stub Wire",
		}
	}
	return articles
}

func TestFetchStopsAtTarget(t *testing.T) {
	source := newStubSource()
	source.responses["AAPL"] = relevantArticles(5)

	orch := New(ticker.NewResolver(&stubLookup{}), source)
	result, err := orch.FetchUntilSatisfied(context.Background(), "AAPL", Options{})
	if err != nil {
		t.Fatalf("FetchUntilSatisfied: %v", err)
	}

	if !result.Success {
		t.Errorf("Success = false, message: %s", result.Message)
	}
	if result.RelevantCount != 5 {
		t.Errorf("RelevantCount = %d, want 5", result.RelevantCount)
	}
	// Target met in the first batch, so no lower-priority queries run.
	for _, q := range []string{"AAPL stock", "AAPL news", "AAPL earnings"} {
		if source.seen(q) {
			t.Errorf("priority-2+ query %q was issued after target met", q)
		}
	}
	if !strings.Contains(result.Message, "target reached") {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestFetchExhaustsAllBatches(t *testing.T) {
	source := newStubSource()

	orch := New(ticker.NewResolver(&stubLookup{}), source)
	result, err := orch.FetchUntilSatisfied(context.Background(), "AAPL", Options{})
	if err != nil {
		t.Fatalf("FetchUntilSatisfied: %v", err)
	}

	if result.Success {
		t.Error("Success = true with zero articles")
	}
	if result.RelevantCount != 0 {
		t.Errorf("RelevantCount = %d, want 0", result.RelevantCount)
	}
	if len(result.QueriesUsed) != 0 {
		t.Errorf("QueriesUsed = %v, want empty (no query yielded articles)", result.QueriesUsed)
	}
	if result.RelevanceRate != 0 {
		t.Errorf("RelevanceRate = %.2f, want 0", result.RelevanceRate)
	}
	// Every batch was tried before giving up.
	for _, q := range []string{"AAPL", "AAPL stock", "AAPL news", "AAPL earnings"} {
		if !source.seen(q) {
			t.Errorf("query %q never issued despite exhaustion", q)
		}
	}
	if !strings.Contains(result.Message, "insufficient relevant articles") {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestFetchQueriesUsedOnlyCountsYieldingQueries(t *testing.T) {
	source := newStubSource()
	// One irrelevant article from a later query; nothing else.
	source.responses["AAPL stock"] = []models.Article{
		{Title: "Markets drift ahead of holiday weekend", URL: "https://news.example.com/drift"},
	}

	orch := New(ticker.NewResolver(&stubLookup{}), source)
	result, err := orch.FetchUntilSatisfied(context.Background(), "AAPL", Options{})
	if err != nil {
		t.Fatalf("FetchUntilSatisfied: %v", err)
	}

	if len(result.QueriesUsed) != 1 || result.QueriesUsed[0] != "AAPL stock" {
		t.Errorf("QueriesUsed = %v, want [AAPL stock]", result.QueriesUsed)
	}
	if result.TotalFetched != 1 {
		t.Errorf("TotalFetched = %d, want 1", result.TotalFetched)
	}
	if result.RelevantCount != 0 {
		t.Errorf("RelevantCount = %d, want 0", result.RelevantCount)
	}
}

func TestFetchToleratesQueryFailure(t *testing.T) {
	source := newStubSource()
	source.errors["AAPL"] = errors.New("connection reset")
	source.responses["Apple Inc."] = relevantArticles(5)

	orch := New(ticker.NewResolver(&stubLookup{}), source)
	result, err := orch.FetchUntilSatisfied(context.Background(), "AAPL", Options{})
	if err != nil {
		t.Fatalf("FetchUntilSatisfied: %v", err)
	}
	if !result.Success {
		t.Errorf("Success = false despite sibling query succeeding: %s", result.Message)
	}
}

func TestFetchResolutionFatal(t *testing.T) {
	orch := New(ticker.NewResolver(&stubLookup{}), newStubSource())
	if _, err := orch.FetchUntilSatisfied(context.Background(), "  $  ", Options{}); err == nil {
		t.Error("expected error for unresolvable symbol")
	}
}

func TestFetchDeduplicatesAcrossBatches(t *testing.T) {
	source := newStubSource()
	shared := models.Article{
		Title: "AAPL beats quarterly earnings expectations",
		URL:   "https://news.example.com/shared",
	}
	source.responses["AAPL"] = []models.Article{shared, relevantArticles(2)[1]}
	source.responses["AAPL stock"] = []models.Article{shared}

	orch := New(ticker.NewResolver(&stubLookup{}), source)
	result, err := orch.FetchUntilSatisfied(context.Background(), "AAPL", Options{TargetArticles: 4})
	if err != nil {
		t.Fatalf("FetchUntilSatisfied: %v", err)
	}
	if result.RelevantCount != 2 {
		t.Errorf("RelevantCount = %d, want 2 (cross-batch duplicate collapsed)", result.RelevantCount)
	}
	if result.TotalFetched != 3 {
		t.Errorf("TotalFetched = %d, want 3 raw articles", result.TotalFetched)
	}
}

func TestFetchWithEscalation(t *testing.T) {
	source := newStubSource()
	// Metadata-only matches score 0.4: below 0.55 and 0.45, above 0.35.
	source.responses["AAPL"] = []models.Article{
		{Title: "Megacap roundup for Monday", URL: "https://news.example.com/m1", Symbols: []string{"AAPL"}},
		{Title: "Tech sector closes mixed", URL: "https://news.example.com/m2", Symbols: []string{"AAPL"}},
		{Title: "Index rebalances announced", URL: "https://news.example.com/m3", Symbols: []string{"AAPL"}},
	}

	orch := New(ticker.NewResolver(&stubLookup{}), source)
	result, err := orch.FetchWithEscalation(context.Background(), "AAPL", Options{}, nil)
	if err != nil {
		t.Fatalf("FetchWithEscalation: %v", err)
	}
	if !result.Success {
		t.Errorf("Success = false after escalation: %s", result.Message)
	}
	if result.RelevantCount != 3 {
		t.Errorf("RelevantCount = %d, want 3", result.RelevantCount)
	}
}

func TestFetchWithEscalationReturnsLastOnFailure(t *testing.T) {
	orch := New(ticker.NewResolver(&stubLookup{}), newStubSource())
	result, err := orch.FetchWithEscalation(context.Background(), "AAPL", Options{}, []float64{0.55, 0.35})
	if err != nil {
		t.Fatalf("FetchWithEscalation: %v", err)
	}
	if result == nil || result.Success {
		t.Fatalf("want last unsuccessful result, got %+v", result)
	}
}
