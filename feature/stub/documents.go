package stub

import (
	"maps"
	"strings"

	"atlan-sdk/core/utils"
)

// doc is a decoded JSON object.
type doc = map[string]any

// cloneDoc deep-copies a JSON document.
func cloneDoc(d doc) doc {
	if d == nil {
		return nil
	}
	out := make(doc, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneDoc(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func subDoc(d doc, key string) doc {
	m, _ := d[key].(map[string]any)
	return m
}

func str(d doc, key string) string {
	s, _ := d[key].(string)
	return s
}

// lookupPath resolves a dotted path. Keys may themselves contain dots, so
// the longest matching key wins at each level.
func lookupPath(d doc, path string) (any, bool) {
	if d == nil {
		return nil, false
	}
	if v, ok := d[path]; ok {
		return v, true
	}
	for i := len(path) - 1; i > 0; i-- {
		if path[i] != '.' {
			continue
		}
		if sub, ok := d[path[:i]].(map[string]any); ok {
			if v, ok := lookupPath(sub, path[i+1:]); ok {
				return v, true
			}
		}
	}
	return nil, false
}

// stripIndexSuffix removes the .keyword or .text suffix of an index field.
func stripIndexSuffix(field string) string {
	for _, suffix := range []string{".keyword", ".text"} {
		if s, ok := strings.CutSuffix(field, suffix); ok {
			return s
		}
	}
	return field
}

var systemFields = map[string]string{
	"__guid":                  "guid",
	"__typeName":              "typeName",
	"__state":                 "status",
	"__timestamp":             "createTime",
	"__modificationTimestamp": "updateTime",
	"__createdBy":             "createdBy",
	"__modifiedBy":            "updatedBy",
	"__meanings":              "meaningNames",
}

// entityField resolves an index field name against a stored entity.
func entityField(d doc, field string) (any, bool) {
	field = stripIndexSuffix(field)
	if header, ok := systemFields[field]; ok {
		v, ok := d[header]
		return v, ok
	}
	switch field {
	case "__traitNames":
		var names []any
		for _, c := range asSlice(d["classifications"]) {
			if m, ok := c.(map[string]any); ok {
				names = append(names, m["typeName"])
			}
		}
		return names, len(names) > 0
	case "__hasLineage":
		v, ok := subDoc(d, "attributes")["__hasLineage"]
		return v, ok
	}
	v, ok := subDoc(d, "attributes")[field]
	return v, ok
}

// workflowField resolves an index field name against a workflow or run.
func workflowField(d doc, field string) (any, bool) {
	return lookupPath(d, stripIndexSuffix(field))
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func mergeInto(dst, src doc) {
	maps.Copy(dst, src)
}

func toFloat(v any) float64 {
	return utils.ToFloat(v)
}
