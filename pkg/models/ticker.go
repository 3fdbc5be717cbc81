package models

import "strings"

// TickerRecord is the canonical company record for a resolved ticker symbol.
// Immutable once created; the resolver caches it for process lifetime.
type TickerRecord struct {
	Symbol    string   `json:"symbol"` // canonical uppercase
	Name      string   `json:"name"`
	ShortName string   `json:"short_name,omitempty"`
	LongName  string   `json:"long_name,omitempty"`
	Aliases   []string `json:"aliases"` // original casing preserved for display
}

// HasAlias reports whether s matches one of the record's aliases
// (case-insensitive).
func (r *TickerRecord) HasAlias(s string) bool {
	for _, a := range r.Aliases {
		if strings.EqualFold(a, s) {
			return true
		}
	}
	return false
}

// DisplayName returns the best available human-readable company name.
func (r *TickerRecord) DisplayName() string {
	if r.LongName != "" {
		return r.LongName
	}
	if r.ShortName != "" {
		return r.ShortName
	}
	return r.Name
}
