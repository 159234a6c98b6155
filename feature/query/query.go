package query

import "github.com/goccy/go-json"

// Query is a single clause of the search DSL.
type Query interface {
	json.Marshaler
	// Kind names the clause, e.g. "term" or "bool".
	Kind() string
}

func clause(kind string, body any) ([]byte, error) {
	return json.Marshal(map[string]any{kind: body})
}

// Term matches documents whose field equals the value exactly.
type Term struct {
	Field           string
	Value           any
	CaseInsensitive bool
}

func (Term) Kind() string { return "term" }

func (q Term) MarshalJSON() ([]byte, error) {
	inner := map[string]any{"value": q.Value}
	if q.CaseInsensitive {
		inner["case_insensitive"] = true
	}
	return clause("term", map[string]any{q.Field: inner})
}

// Terms matches documents whose field equals any of the values.
type Terms struct {
	Field  string
	Values []any
}

func (Terms) Kind() string { return "terms" }

func (q Terms) MarshalJSON() ([]byte, error) {
	values := q.Values
	if values == nil {
		values = []any{}
	}
	return clause("terms", map[string]any{q.Field: values})
}

// Prefix matches documents whose field starts with the value.
type Prefix struct {
	Field           string
	Value           string
	CaseInsensitive bool
}

func (Prefix) Kind() string { return "prefix" }

func (q Prefix) MarshalJSON() ([]byte, error) {
	inner := map[string]any{"value": q.Value}
	if q.CaseInsensitive {
		inner["case_insensitive"] = true
	}
	return clause("prefix", map[string]any{q.Field: inner})
}

// Exists matches documents that have any value for the field.
type Exists struct {
	Field string
}

func (Exists) Kind() string { return "exists" }

func (q Exists) MarshalJSON() ([]byte, error) {
	return clause("exists", map[string]any{"field": q.Field})
}

// Match runs a full-text match against an analyzed field.
type Match struct {
	Field    string
	Value    string
	Operator string
}

func (Match) Kind() string { return "match" }

func (q Match) MarshalJSON() ([]byte, error) {
	inner := map[string]any{"query": q.Value}
	if q.Operator != "" {
		inner["operator"] = q.Operator
	}
	return clause("match", map[string]any{q.Field: inner})
}

// Wildcard matches the field against a pattern with * and ?.
type Wildcard struct {
	Field           string
	Value           string
	CaseInsensitive bool
}

func (Wildcard) Kind() string { return "wildcard" }

func (q Wildcard) MarshalJSON() ([]byte, error) {
	inner := map[string]any{"value": q.Value}
	if q.CaseInsensitive {
		inner["case_insensitive"] = true
	}
	return clause("wildcard", map[string]any{q.Field: inner})
}

// Range bounds a field. Nil bounds are omitted.
type Range struct {
	Field string
	Gt    any
	Gte   any
	Lt    any
	Lte   any
}

func (Range) Kind() string { return "range" }

func (q Range) MarshalJSON() ([]byte, error) {
	inner := make(map[string]any, 2)
	for name, v := range map[string]any{"gt": q.Gt, "gte": q.Gte, "lt": q.Lt, "lte": q.Lte} {
		if v != nil {
			inner[name] = v
		}
	}
	return clause("range", map[string]any{q.Field: inner})
}

// Bool combines clauses.
type Bool struct {
	Must               []Query
	Should             []Query
	MustNot            []Query
	Filter             []Query
	MinimumShouldMatch int
}

func (Bool) Kind() string { return "bool" }

func (q Bool) MarshalJSON() ([]byte, error) {
	inner := make(map[string]any, 5)
	for name, clauses := range map[string][]Query{"must": q.Must, "should": q.Should, "must_not": q.MustNot, "filter": q.Filter} {
		if len(clauses) > 0 {
			inner[name] = clauses
		}
	}
	if q.MinimumShouldMatch > 0 {
		inner["minimum_should_match"] = q.MinimumShouldMatch
	}
	return clause("bool", inner)
}

// MatchAll matches every document.
type MatchAll struct{}

func (MatchAll) Kind() string { return "match_all" }

func (MatchAll) MarshalJSON() ([]byte, error) {
	return clause("match_all", map[string]any{})
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortItem orders results by one field.
type SortItem struct {
	Field string
	Order SortOrder
}

func (s SortItem) MarshalJSON() ([]byte, error) {
	order := s.Order
	if order == "" {
		order = Ascending
	}
	return json.Marshal(map[string]any{s.Field: map[string]any{"order": order}})
}
