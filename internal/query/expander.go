// Package query expands a resolved ticker record into prioritized search
// queries. Expansion is a pure function: no I/O, deterministic output for
// identical input.
package query

import (
	"sort"
	"strings"

	"github.com/seenimoa/tickersense/internal/ticker"
	"github.com/seenimoa/tickersense/pkg/models"
	"github.com/seenimoa/tickersense/pkg/utils"
)

// typePrecedence orders query types within a priority tier.
var typePrecedence = map[models.QueryType]int{
	models.QuerySymbol:    0,
	models.QueryCompany:   1,
	models.QueryEvent:     2,
	models.QueryProduct:   3,
	models.QueryExecutive: 4,
	models.QueryIndustry:  5,
}

// Expand produces the prioritized, deduplicated query batches for a ticker.
// Batches are ordered ascending by priority (1 first); order within a batch
// is stable by type precedence.
func Expand(rec *models.TickerRecord) []models.QueryBatch {
	var queries []models.ExpandedQuery

	add := func(q string, priority int, qt models.QueryType) {
		q = utils.CleanQuery(q)
		if q == "" {
			return
		}
		queries = append(queries, models.ExpandedQuery{Query: q, Priority: priority, Type: qt})
	}

	// Priority 1: the symbol itself and the display name.
	add(rec.Symbol, 1, models.QuerySymbol)
	if name := rec.DisplayName(); name != rec.Symbol {
		add(name, 1, models.QueryCompany)
	}

	// Priority 2: stock-qualified forms.
	add(rec.Symbol+" stock", 2, models.QuerySymbol)
	if rec.ShortName != "" {
		add(rec.ShortName+" stock", 2, models.QueryCompany)
	}

	// Priority 3: news and earnings.
	add(rec.Symbol+" news", 3, models.QuerySymbol)
	add(rec.Symbol+" earnings", 3, models.QueryEvent)
	if rec.ShortName != "" {
		add(rec.ShortName+" earnings", 3, models.QueryEvent)
	}

	// Priority 4: curated product/executive keywords. By convention the
	// first three table entries are products, the remainder executives.
	for i, kw := range ticker.CuratedKeywords(rec.Symbol) {
		qt := models.QueryProduct
		if i >= 3 {
			qt = models.QueryExecutive
		}
		add(kw, 4, qt)
	}

	return batch(dedupe(queries))
}

// dedupe collapses case-insensitive duplicate query strings, keeping the
// first (highest-priority, then type-precedence) occurrence.
func dedupe(queries []models.ExpandedQuery) []models.ExpandedQuery {
	sort.SliceStable(queries, func(i, j int) bool {
		if queries[i].Priority != queries[j].Priority {
			return queries[i].Priority < queries[j].Priority
		}
		return typePrecedence[queries[i].Type] < typePrecedence[queries[j].Type]
	})

	seen := make(map[string]bool, len(queries))
	out := queries[:0]
	for _, q := range queries {
		key := strings.ToLower(q.Query)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}

// batch groups a priority-sorted query list into per-priority batches.
func batch(queries []models.ExpandedQuery) []models.QueryBatch {
	var batches []models.QueryBatch
	for _, q := range queries {
		if n := len(batches); n == 0 || batches[n-1].Priority != q.Priority {
			batches = append(batches, models.QueryBatch{Priority: q.Priority})
		}
		last := &batches[len(batches)-1]
		last.Queries = append(last.Queries, q)
	}
	return batches
}
