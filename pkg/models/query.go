package models

// QueryType classifies what an expanded search query targets.
type QueryType string

const (
	QuerySymbol    QueryType = "symbol"
	QueryCompany   QueryType = "company"
	QueryProduct   QueryType = "product"
	QueryExecutive QueryType = "executive"
	QueryEvent     QueryType = "event"
	QueryIndustry  QueryType = "industry"
)

// ExpandedQuery is a single prioritized search query derived from a ticker.
// Priority 1 is highest; queries are issued batch by batch in priority order.
type ExpandedQuery struct {
	Query    string    `json:"query"`
	Priority int       `json:"priority"` // 1..4
	Type     QueryType `json:"type"`
}

// QueryBatch is a group of queries sharing the same priority.
type QueryBatch struct {
	Priority int             `json:"priority"`
	Queries  []ExpandedQuery `json:"queries"`
}
