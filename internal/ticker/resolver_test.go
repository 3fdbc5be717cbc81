package ticker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/seenimoa/tickersense/internal/datasource"
)

type stubLookup struct {
	profile *datasource.CompanyProfile
	err     error
	calls   int
}

func (s *stubLookup) LookupCompany(_ context.Context, _ string) (*datasource.CompanyProfile, error) {
	s.calls++
	return s.profile, s.err
}

func TestCleanCompanyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Apple Inc.", "Apple"},
		{"Apple Inc", "Apple"},
		{"Microsoft Corporation", "Microsoft"},
		{"Example Co Ltd", "Example"},
		{"Tesla, Inc.", "Tesla"},
		{"Alphabet Inc. Holdings", "Alphabet"}, // suffixes strip repeatedly from the end
		{"Plain Name", "Plain Name"},
		{"Inc.", ""},
	}
	for _, tt := range tests {
		if got := CleanCompanyName(tt.in); got != tt.want {
			t.Errorf("CleanCompanyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveBuildsAliases(t *testing.T) {
	lookup := &stubLookup{profile: &datasource.CompanyProfile{
		ShortName: "Apple",
		LongName:  "Apple Inc.",
	}}
	r := NewResolver(lookup)

	rec, err := r.Resolve(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if rec.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", rec.Symbol)
	}
	if rec.Name != "Apple Inc." {
		t.Errorf("name = %q, want Apple Inc.", rec.Name)
	}
	for _, want := range []string{"AAPL", "Apple", "Apple Inc.", "iPhone", "Tim Cook"} {
		if !rec.HasAlias(want) {
			t.Errorf("missing alias %q in %v", want, rec.Aliases)
		}
	}
	// Case-insensitive dedup: "Apple" (short name) and cleaned "Apple Inc." → one entry.
	count := 0
	for _, a := range rec.Aliases {
		if strings.EqualFold(a, "apple") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("alias %q appears %d times, want 1", "apple", count)
	}
}

func TestResolveCaches(t *testing.T) {
	lookup := &stubLookup{profile: &datasource.CompanyProfile{ShortName: "Apple"}}
	r := NewResolver(lookup)

	first, _ := r.Resolve(context.Background(), "AAPL")
	second, _ := r.Resolve(context.Background(), " aapl ")
	if lookup.calls != 1 {
		t.Errorf("lookup called %d times, want 1", lookup.calls)
	}
	if first != second {
		t.Error("expected identical cached record")
	}

	r.Clear()
	r.Resolve(context.Background(), "AAPL")
	if lookup.calls != 2 {
		t.Errorf("lookup called %d times after Clear, want 2", lookup.calls)
	}
}

func TestResolveAliasIdempotence(t *testing.T) {
	lookup := &stubLookup{profile: &datasource.CompanyProfile{
		ShortName: "Apple",
		LongName:  "Apple Inc.",
	}}
	r := NewResolver(lookup)

	a, _ := r.Resolve(context.Background(), "AAPL")
	r.Clear()
	b, _ := r.Resolve(context.Background(), "AAPL")

	setA := make(map[string]bool)
	for _, al := range a.Aliases {
		setA[strings.ToLower(al)] = true
	}
	setB := make(map[string]bool)
	for _, al := range b.Aliases {
		setB[strings.ToLower(al)] = true
	}
	if len(setA) != len(setB) {
		t.Fatalf("alias sets differ: %v vs %v", a.Aliases, b.Aliases)
	}
	for k := range setA {
		if !setB[k] {
			t.Errorf("alias %q missing on second resolution", k)
		}
	}
}

func TestResolveDegradedMode(t *testing.T) {
	lookup := &stubLookup{err: errors.New("quote service down")}
	r := NewResolver(lookup)

	rec, err := r.Resolve(context.Background(), "ZZZT")
	if err != nil {
		t.Fatalf("expected degraded record, got error: %v", err)
	}
	if rec.Symbol != "ZZZT" || rec.Name != "ZZZT" {
		t.Errorf("degraded record = %+v", rec)
	}
	if !rec.HasAlias("ZZZT") {
		t.Error("degraded record must alias its own symbol")
	}
}

func TestResolveDegradedKeepsCuratedAliases(t *testing.T) {
	lookup := &stubLookup{err: errors.New("down")}
	r := NewResolver(lookup)

	rec, _ := r.Resolve(context.Background(), "TSLA")
	if !rec.HasAlias("Elon Musk") {
		t.Errorf("curated aliases should survive degraded mode: %v", rec.Aliases)
	}
}

func TestResolveInvalidSymbol(t *testing.T) {
	r := NewResolver(&stubLookup{})
	if _, err := r.Resolve(context.Background(), "  $  "); err == nil {
		t.Fatal("expected error for empty symbol")
	}
}

func TestCuratedKeywordsUnknownSymbol(t *testing.T) {
	if kw := CuratedKeywords("UNKNOWN1"); kw != nil {
		t.Errorf("expected nil for unknown symbol, got %v", kw)
	}
}
