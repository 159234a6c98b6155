package workflow

import (
	"regexp"
	"slices"

	"github.com/goccy/go-json"
)

// exact anchors a literal name as a regular expression.
func exact(name string) string {
	return "^" + regexp.QuoteMeta(name) + "$"
}

// hierarchicalFilter turns {"db": ["schema", ...]} into the regex map the
// crawlers expect, {"^db$": ["^schema$", ...]}. An empty schema list means
// every schema of the database.
func hierarchicalFilter(in map[string][]string) (string, error) {
	out := make(map[string][]string, len(in))
	for parent, children := range in {
		list := make([]string, 0, len(children))
		for _, c := range children {
			list = append(list, exact(c))
		}
		slices.Sort(list)
		out[exact(parent)] = list
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// idFilter turns a list of identifiers into {"id": {}, ...}.
func idFilter(ids []string) (string, error) {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
