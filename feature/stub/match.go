package stub

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var leafClauses = map[string]bool{
	"term": true, "terms": true, "prefix": true, "wildcard": true, "match": true, "range": true,
}

// resolver returns the value of an index field in a document.
type resolver func(d doc, field string) (any, bool)

// matches evaluates a query clause against a document. A nil clause
// matches everything.
func matches(clause any, d doc, resolve resolver) (bool, error) {
	if clause == nil {
		return true, nil
	}
	q, ok := clause.(map[string]any)
	if !ok || len(q) != 1 {
		return false, badRequest("query clause must be an object with one key")
	}
	for kind, body := range q {
		switch kind {
		case "match_all":
			return true, nil
		case "bool":
			return matchBool(body, d, resolve)
		case "exists":
			field, _ := asDoc(body)["field"].(string)
			v, ok := resolve(d, field)
			return ok && !isEmpty(v), nil
		}

		if !leafClauses[kind] {
			return false, badRequest("unsupported query clause %q", kind)
		}
		field, param, err := fieldParam(kind, body)
		if err != nil {
			return false, err
		}
		v, ok := resolve(d, field)
		if !ok {
			return false, nil
		}
		switch kind {
		case "term":
			value, ci := termValue(param)
			return anyValue(v, func(x any) bool { return equalValues(x, value, ci) }), nil
		case "terms":
			values := asSlice(param)
			return anyValue(v, func(x any) bool {
				for _, want := range values {
					if equalValues(x, want, false) {
						return true
					}
				}
				return false
			}), nil
		case "prefix":
			value, ci := termValue(param)
			want := fmt.Sprint(value)
			return anyValue(v, func(x any) bool {
				s, ok := x.(string)
				if !ok {
					return false
				}
				if ci {
					return strings.HasPrefix(strings.ToLower(s), strings.ToLower(want))
				}
				return strings.HasPrefix(s, want)
			}), nil
		case "wildcard":
			value, ci := termValue(param)
			re, err := wildcardRegexp(fmt.Sprint(value), ci)
			if err != nil {
				return false, badRequest("invalid wildcard: %v", err)
			}
			return anyValue(v, func(x any) bool {
				s, ok := x.(string)
				return ok && re.MatchString(s)
			}), nil
		case "match":
			text := fmt.Sprint(param)
			if m, ok := param.(map[string]any); ok {
				text = fmt.Sprint(m["query"])
			}
			return anyValue(v, func(x any) bool { return matchText(fmt.Sprint(x), text) }), nil
		case "range":
			bounds := asDoc(param)
			return anyValue(v, func(x any) bool { return inRange(x, bounds) }), nil
		default:
			return false, badRequest("unsupported query clause %q", kind)
		}
	}
	return false, nil
}

func matchBool(body any, d doc, resolve resolver) (bool, error) {
	b := asDoc(body)
	for _, key := range []string{"must", "filter"} {
		for _, c := range clauseList(b[key]) {
			ok, err := matches(c, d, resolve)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	for _, c := range clauseList(b["must_not"]) {
		ok, err := matches(c, d, resolve)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}
	shoulds := clauseList(b["should"])
	if len(shoulds) == 0 {
		return true, nil
	}
	required := 0
	if msm, ok := b["minimum_should_match"]; ok {
		required = int(toFloat(msm))
	} else if len(clauseList(b["must"]))+len(clauseList(b["filter"])) == 0 {
		required = 1
	}
	matched := 0
	for _, c := range shoulds {
		ok, err := matches(c, d, resolve)
		if err != nil {
			return false, err
		}
		if ok {
			matched++
		}
	}
	return matched >= required, nil
}

// clauseList accepts a single clause or a list of clauses.
func clauseList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

func asDoc(v any) doc {
	m, _ := v.(map[string]any)
	return m
}

func fieldParam(kind string, body any) (string, any, error) {
	m := asDoc(body)
	if len(m) != 1 {
		return "", nil, badRequest("%s clause must name exactly one field", kind)
	}
	for field, param := range m {
		return field, param, nil
	}
	return "", nil, nil
}

// termValue unpacks {"value": v, "case_insensitive": b} or a bare value.
func termValue(param any) (any, bool) {
	if m, ok := param.(map[string]any); ok {
		ci, _ := m["case_insensitive"].(bool)
		return m["value"], ci
	}
	return param, false
}

// anyValue applies pred to a value or to each element of an array value.
func anyValue(v any, pred func(any) bool) bool {
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if pred(item) {
				return true
			}
		}
		return false
	}
	return pred(v)
}

func equalValues(a, b any, caseInsensitive bool) bool {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		if caseInsensitive {
			return strings.EqualFold(as, bs)
		}
		return as == bs
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func wildcardRegexp(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	expr := regexp.QuoteMeta(pattern)
	expr = strings.ReplaceAll(expr, `\*`, ".*")
	expr = strings.ReplaceAll(expr, `\?`, ".")
	if caseInsensitive {
		expr = "(?i)" + expr
	}
	return regexp.Compile("^" + expr + "$")
}

// matchText reports whether every token of query occurs in text.
func matchText(text, query string) bool {
	text = strings.ToLower(text)
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

func inRange(v any, bounds doc) bool {
	x := toFloat(v)
	for op, bound := range bounds {
		b := toFloat(bound)
		switch op {
		case "gt":
			if !(x > b) {
				return false
			}
		case "gte":
			if !(x >= b) {
				return false
			}
		case "lt":
			if !(x < b) {
				return false
			}
		case "lte":
			if !(x <= b) {
				return false
			}
		}
	}
	return true
}

// sortDocs orders documents by the sort clauses of a search, falling back
// to the document id so that results are deterministic.
func sortDocs(docs []doc, sorts []any, resolve resolver, id func(doc) string) {
	type key struct {
		field string
		desc  bool
	}
	var keys []key
	for _, s := range sorts {
		for field, spec := range asDoc(s) {
			order, _ := asDoc(spec)["order"].(string)
			if order == "" {
				order, _ = spec.(string)
			}
			keys = append(keys, key{field: field, desc: order == "desc"})
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			a, aok := resolve(docs[i], k.field)
			b, bok := resolve(docs[j], k.field)
			if aok != bok {
				return aok
			}
			c := compareValues(a, b)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return id(docs[i]) < id(docs[j])
	})
}

func compareValues(a, b any) int {
	af, aNum := number(a)
	bf, bNum := number(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	}
	return 0, false
}
