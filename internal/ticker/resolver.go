// Package ticker resolves stock symbols to canonical company records with
// display names and matching aliases. Records are cached for process
// lifetime; a failed company lookup degrades to a minimal record rather
// than failing the pipeline.
package ticker

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/seenimoa/tickersense/internal/common"
	"github.com/seenimoa/tickersense/internal/datasource"
	"github.com/seenimoa/tickersense/pkg/models"
	"github.com/seenimoa/tickersense/pkg/utils"
)

// ErrInvalidSymbol is returned when the symbol is empty after normalization.
// This is the only fatal resolution outcome.
var ErrInvalidSymbol = fmt.Errorf("invalid ticker symbol")

// Resolver maps ticker symbols to TickerRecords.
type Resolver struct {
	lookup datasource.CompanyLookup
	cache  *datasource.Cache
	logger arbor.ILogger
}

// NewResolver creates a resolver backed by the given company lookup.
// The record cache never expires within the process lifetime; company
// names and aliases are near-static. Call Clear to reset (tests).
func NewResolver(lookup datasource.CompanyLookup) *Resolver {
	return &Resolver{
		lookup: lookup,
		cache:  datasource.NewCache(0),
		logger: common.GetLogger(),
	}
}

// Resolve returns the canonical record for a symbol. The record is cached on
// first resolution; later calls return the cached value unchanged. A failed
// company lookup logs a warning and yields a degraded record built from the
// symbol and the static alias table alone; downstream relevance filtering
// always has something to match against.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (*models.TickerRecord, error) {
	symbol = utils.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}

	if cached, ok := r.cache.Get(symbol); ok {
		return cached.(*models.TickerRecord), nil
	}

	var profile *datasource.CompanyProfile
	if r.lookup != nil {
		p, err := r.lookup.LookupCompany(ctx, symbol)
		if err != nil {
			// Degraded mode: resolution failures must not cascade into
			// false "no relevant articles" results.
			r.logger.Warn().Str("symbol", symbol).Err(err).
				Msg("company lookup failed, resolving in degraded mode")
		} else {
			profile = p
		}
	}

	record := buildRecord(symbol, profile)
	r.cache.Set(symbol, record)
	return record, nil
}

// Clear resets the record cache.
func (r *Resolver) Clear() {
	r.cache.Flush()
}

// buildRecord assembles a TickerRecord and its alias set.
//
// Aliases start with the symbol, add short/long names verbatim plus their
// corporate-suffix-cleaned forms, and union in the curated keyword table.
// The curated table is local static data, so it applies in degraded mode too.
func buildRecord(symbol string, profile *datasource.CompanyProfile) *models.TickerRecord {
	record := &models.TickerRecord{
		Symbol: symbol,
		Name:   symbol,
	}

	aliases := newAliasSet()
	aliases.add(symbol)

	if profile != nil {
		record.ShortName = profile.ShortName
		record.LongName = profile.LongName
		if profile.LongName != "" {
			record.Name = profile.LongName
		} else if profile.ShortName != "" {
			record.Name = profile.ShortName
		}

		for _, name := range []string{profile.ShortName, profile.LongName} {
			if name == "" {
				continue
			}
			aliases.add(name)
			if cleaned := CleanCompanyName(name); cleaned != "" {
				aliases.add(cleaned)
			}
		}
	}

	for _, kw := range CuratedKeywords(symbol) {
		aliases.add(kw)
	}

	record.Aliases = aliases.list()
	return record
}
