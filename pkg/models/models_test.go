package models

import (
	"testing"
	"time"
)

func TestArticleCombinedText(t *testing.T) {
	a := Article{Title: "Apple beats estimates", Description: "Revenue up 8%."}
	if got := a.CombinedText(); got != "Apple beats estimates Revenue up 8%." {
		t.Errorf("CombinedText: got %q", got)
	}
	b := Article{Title: "Apple beats estimates"}
	if got := b.CombinedText(); got != "Apple beats estimates" {
		t.Errorf("CombinedText without description: got %q", got)
	}
}

func TestArticleHasSymbol(t *testing.T) {
	a := Article{Symbols: []string{"AAPL", "msft"}}
	if !a.HasSymbol("aapl") {
		t.Error("expected case-insensitive symbol match for aapl")
	}
	if !a.HasSymbol("MSFT") {
		t.Error("expected case-insensitive symbol match for MSFT")
	}
	if a.HasSymbol("GOOG") {
		t.Error("unexpected match for GOOG")
	}
}

func TestSortArticlesByDate(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	articles := []Article{
		{Title: "oldest", PublishedAt: base.Add(-48 * time.Hour)},
		{Title: "newest", PublishedAt: base},
		{Title: "middle", PublishedAt: base.Add(-24 * time.Hour)},
	}
	SortArticlesByDate(articles)
	want := []string{"newest", "middle", "oldest"}
	for i, w := range want {
		if articles[i].Title != w {
			t.Errorf("position %d: got %q, want %q", i, articles[i].Title, w)
		}
	}
}

func TestTickerRecordHasAlias(t *testing.T) {
	r := &TickerRecord{Symbol: "AAPL", Aliases: []string{"Apple", "Apple Inc."}}
	if !r.HasAlias("apple") {
		t.Error("expected case-insensitive alias match")
	}
	if r.HasAlias("Microsoft") {
		t.Error("unexpected alias match")
	}
}

func TestTickerRecordDisplayName(t *testing.T) {
	tests := []struct {
		name string
		rec  TickerRecord
		want string
	}{
		{"long name wins", TickerRecord{Name: "Apple", ShortName: "Apple Inc", LongName: "Apple Inc."}, "Apple Inc."},
		{"short name next", TickerRecord{Name: "Apple", ShortName: "Apple Inc"}, "Apple Inc"},
		{"falls back to name", TickerRecord{Name: "Apple"}, "Apple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.DisplayName(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
