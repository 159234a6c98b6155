package search

import (
	"slices"

	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/fields"
	"atlan-sdk/feature/query"
)

// DefaultPageSize is used when no page size is set.
const DefaultPageSize = 100

// FluentSearch builds an index search request step by step.
type FluentSearch struct {
	wheres             []query.Query
	whereNots          []query.Query
	whereSomes         []query.Query
	minSomes           int
	pageSize           int
	sorts              []query.SortItem
	attributes         []string
	relationAttributes []string
}

// New starts an empty search.
func New() *FluentSearch {
	return &FluentSearch{pageSize: DefaultPageSize, minSomes: 1}
}

// Where adds a condition every result must match.
func (f *FluentSearch) Where(q query.Query) *FluentSearch {
	f.wheres = append(f.wheres, q)
	return f
}

// WhereNot adds a condition no result may match.
func (f *FluentSearch) WhereNot(q query.Query) *FluentSearch {
	f.whereNots = append(f.whereNots, q)
	return f
}

// WhereSome adds an optional condition; see MinSomes.
func (f *FluentSearch) WhereSome(q query.Query) *FluentSearch {
	f.whereSomes = append(f.whereSomes, q)
	return f
}

// MinSomes sets how many WhereSome conditions a result must match.
func (f *FluentSearch) MinSomes(n int) *FluentSearch {
	f.minSomes = n
	return f
}

// PageSize sets the number of results fetched per page.
func (f *FluentSearch) PageSize(n int) *FluentSearch {
	if n > 0 {
		f.pageSize = n
	}
	return f
}

// Sort adds sort orders, applied in sequence.
func (f *FluentSearch) Sort(items ...query.SortItem) *FluentSearch {
	f.sorts = append(f.sorts, items...)
	return f
}

// IncludeOnResults requests extra attributes on each result.
func (f *FluentSearch) IncludeOnResults(fs ...fields.Field) *FluentSearch {
	for _, field := range fs {
		f.attributes = appendUnique(f.attributes, field.Name())
	}
	return f
}

// IncludeOnRelations requests attributes on related assets of each result.
func (f *FluentSearch) IncludeOnRelations(fs ...fields.Field) *FluentSearch {
	for _, field := range fs {
		f.relationAttributes = appendUnique(f.relationAttributes, field.Name())
	}
	return f
}

// ActiveAssets limits results to active assets.
func (f *FluentSearch) ActiveAssets() *FluentSearch {
	return f.Where(fields.Status.Eq(string(assets.StatusActive), false))
}

// AssetType limits results to one asset type.
func (f *FluentSearch) AssetType(typeName string) *FluentSearch {
	return f.Where(fields.TypeName.Eq(typeName, false))
}

// AssetTypes limits results to any of the given asset types.
func (f *FluentSearch) AssetTypes(typeNames ...string) *FluentSearch {
	return f.Where(fields.TypeName.In(typeNames...))
}

// Query returns the composed boolean query.
func (f *FluentSearch) Query() query.Query {
	q := query.Bool{Filter: f.wheres, MustNot: f.whereNots, Should: f.whereSomes}
	if len(f.whereSomes) > 0 {
		q.MinimumShouldMatch = max(f.minSomes, 1)
	}
	return q
}

// ToRequest builds the first page request. Results are sorted by GUID
// last so that paging is stable.
func (f *FluentSearch) ToRequest() *IndexSearchRequest {
	sorts := slices.Clone(f.sorts)
	guidSort := fields.GUID.Order(query.Ascending)
	if !slices.ContainsFunc(sorts, func(s query.SortItem) bool { return s.Field == guidSort.Field }) {
		sorts = append(sorts, guidSort)
	}
	return &IndexSearchRequest{
		DSL: DSL{
			From:           0,
			Size:           f.pageSize,
			Query:          f.Query(),
			Sort:           sorts,
			TrackTotalHits: true,
		},
		Attributes:         slices.Clone(f.attributes),
		RelationAttributes: slices.Clone(f.relationAttributes),
	}
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
