package fields

import "atlan-sdk/feature/query"

// Field is a searchable attribute.
type Field interface {
	// Name is the attribute name as used on assets.
	Name() string
	// IndexFields lists the index fields backing the attribute.
	IndexFields() []string
}

func anySlice[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// KeywordField is an attribute indexed for exact matching.
type KeywordField struct {
	name    string
	keyword string
}

// NewKeywordField declares an attribute indexed as a keyword.
func NewKeywordField(name, keyword string) KeywordField {
	return KeywordField{name: name, keyword: keyword}
}

func (f KeywordField) Name() string          { return f.name }
func (f KeywordField) IndexFields() []string { return []string{f.keyword} }

// KeywordFieldName returns the keyword index field.
func (f KeywordField) KeywordFieldName() string { return f.keyword }

// Eq matches the exact value.
func (f KeywordField) Eq(value string, caseInsensitive bool) query.Query {
	return query.Term{Field: f.keyword, Value: value, CaseInsensitive: caseInsensitive}
}

// StartsWith matches values beginning with prefix.
func (f KeywordField) StartsWith(prefix string, caseInsensitive bool) query.Query {
	return query.Prefix{Field: f.keyword, Value: prefix, CaseInsensitive: caseInsensitive}
}

// In matches any of the values.
func (f KeywordField) In(values ...string) query.Query {
	return query.Terms{Field: f.keyword, Values: anySlice(values)}
}

// Wildcard matches a pattern with * and ?.
func (f KeywordField) Wildcard(pattern string, caseInsensitive bool) query.Query {
	return query.Wildcard{Field: f.keyword, Value: pattern, CaseInsensitive: caseInsensitive}
}

// HasAnyValue matches assets with any value for the attribute.
func (f KeywordField) HasAnyValue() query.Query {
	return query.Exists{Field: f.keyword}
}

// Order sorts by the attribute.
func (f KeywordField) Order(order query.SortOrder) query.SortItem {
	return query.SortItem{Field: f.keyword, Order: order}
}

// InternalKeywordField is a keyword field whose index name is a system
// field (prefixed with "__").
type InternalKeywordField struct {
	KeywordField
}

// NewInternalKeywordField declares a system keyword field.
func NewInternalKeywordField(name, keyword string) InternalKeywordField {
	return InternalKeywordField{KeywordField: NewKeywordField(name, keyword)}
}

// TextField is an attribute indexed for full-text matching.
type TextField struct {
	name string
	text string
}

// NewTextField declares an attribute indexed as text.
func NewTextField(name, text string) TextField {
	return TextField{name: name, text: text}
}

func (f TextField) Name() string          { return f.name }
func (f TextField) IndexFields() []string { return []string{f.text} }

// TextFieldName returns the text index field.
func (f TextField) TextFieldName() string { return f.text }

// Match runs a full-text match.
func (f TextField) Match(value string) query.Query {
	return query.Match{Field: f.text, Value: value}
}

// KeywordTextField is indexed both as a keyword and as text.
type KeywordTextField struct {
	KeywordField
	text TextField
}

// NewKeywordTextField declares an attribute indexed as keyword and text.
func NewKeywordTextField(name, keyword, text string) KeywordTextField {
	return KeywordTextField{KeywordField: NewKeywordField(name, keyword), text: NewTextField(name, text)}
}

func (f KeywordTextField) IndexFields() []string {
	return []string{f.keyword, f.text.text}
}

// TextFieldName returns the text index field.
func (f KeywordTextField) TextFieldName() string { return f.text.text }

// Match runs a full-text match on the text index.
func (f KeywordTextField) Match(value string) query.Query {
	return f.text.Match(value)
}

// NumericField is a numeric attribute.
type NumericField struct {
	name    string
	numeric string
}

// NewNumericField declares a numeric attribute.
func NewNumericField(name, numeric string) NumericField {
	return NumericField{name: name, numeric: numeric}
}

func (f NumericField) Name() string          { return f.name }
func (f NumericField) IndexFields() []string { return []string{f.numeric} }

// NumericFieldName returns the numeric index field.
func (f NumericField) NumericFieldName() string { return f.numeric }

// Eq matches the exact value.
func (f NumericField) Eq(value any) query.Query {
	return query.Term{Field: f.numeric, Value: value}
}

// Gt matches values strictly greater than v.
func (f NumericField) Gt(v any) query.Query { return query.Range{Field: f.numeric, Gt: v} }

// Gte matches values greater than or equal to v.
func (f NumericField) Gte(v any) query.Query { return query.Range{Field: f.numeric, Gte: v} }

// Lt matches values strictly less than v.
func (f NumericField) Lt(v any) query.Query { return query.Range{Field: f.numeric, Lt: v} }

// Lte matches values less than or equal to v.
func (f NumericField) Lte(v any) query.Query { return query.Range{Field: f.numeric, Lte: v} }

// Between matches values in the closed interval [from, to].
func (f NumericField) Between(from, to any) query.Query {
	return query.Range{Field: f.numeric, Gte: from, Lte: to}
}

// HasAnyValue matches assets with any value for the attribute.
func (f NumericField) HasAnyValue() query.Query {
	return query.Exists{Field: f.numeric}
}

// Order sorts by the attribute.
func (f NumericField) Order(order query.SortOrder) query.SortItem {
	return query.SortItem{Field: f.numeric, Order: order}
}

// BooleanField is a boolean attribute.
type BooleanField struct {
	name  string
	field string
}

// NewBooleanField declares a boolean attribute.
func NewBooleanField(name, field string) BooleanField {
	return BooleanField{name: name, field: field}
}

func (f BooleanField) Name() string          { return f.name }
func (f BooleanField) IndexFields() []string { return []string{f.field} }

// Eq matches the value.
func (f BooleanField) Eq(value bool) query.Query {
	return query.Term{Field: f.field, Value: value}
}

// HasAnyValue matches assets with any value for the attribute.
func (f BooleanField) HasAnyValue() query.Query {
	return query.Exists{Field: f.field}
}

// RelationField is a relationship attribute. Only its presence is indexed.
type RelationField struct {
	name string
}

// NewRelationField declares a relationship attribute.
func NewRelationField(name string) RelationField {
	return RelationField{name: name}
}

func (f RelationField) Name() string          { return f.name }
func (f RelationField) IndexFields() []string { return []string{f.name} }

// HasAnyValue matches assets with at least one related asset.
func (f RelationField) HasAnyValue() query.Query {
	return query.Exists{Field: f.name}
}
