package utils

import "strings"

// NormalizeSymbol normalizes a user-input ticker symbol: trims whitespace,
// uppercases, and strips a leading $ (common in chat and social posts).
func NormalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))
	symbol = strings.TrimPrefix(symbol, "$")
	return symbol
}

// CleanQuery collapses internal whitespace and trims a query string.
// Returns "" for whitespace-only input.
func CleanQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
