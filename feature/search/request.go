package search

import (
	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/query"
)

// DSL is the query portion of an index search.
type DSL struct {
	From           int              `json:"from"`
	Size           int              `json:"size"`
	Query          query.Query      `json:"query,omitempty"`
	Sort           []query.SortItem `json:"sort,omitempty"`
	TrackTotalHits bool             `json:"track_total_hits,omitempty"`
}

// IndexSearchRequest is the body of an index search call.
type IndexSearchRequest struct {
	DSL                DSL      `json:"dsl"`
	Attributes         []string `json:"attributes,omitempty"`
	RelationAttributes []string `json:"relationAttributes,omitempty"`
	SuppressLogs       bool     `json:"suppressLogs,omitempty"`
}

// IndexSearchResponse is one page of index search results.
type IndexSearchResponse struct {
	ApproximateCount int64       `json:"approximateCount"`
	Entities         assets.List `json:"entities"`
}
