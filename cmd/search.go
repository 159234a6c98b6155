package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/fields"
	"atlan-sdk/feature/query"
	"atlan-sdk/feature/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the search command
	searchTypes    []string
	searchPrefix   string
	searchWheres   []string
	searchLimit    int
	searchPageSize int
	searchCount    bool
)

var errLimitReached = errors.New("limit reached")

// searchCmd lists active assets matching the given conditions.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the catalog index",
	Long: `Pages through active assets matching every condition and prints
one line per asset: type, qualified name and GUID.

Examples:
  # All tables under a schema
  search --type Table --prefix default/snowflake/1700000000/DB/SCH

  # Certified columns or views named ORDERS
  search --type Column --type View --where name=ORDERS --where certificateStatus=VERIFIED

  # Only count
  search --type Table --count`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringSliceVar(&searchTypes, "type", nil, "Asset type names (repeatable)")
	f.StringVar(&searchPrefix, "prefix", "", "Qualified name prefix")
	f.StringArrayVar(&searchWheres, "where", nil, "attribute=value exact match (repeatable)")
	f.IntVar(&searchLimit, "limit", 0, "Stop after this many results (0 for all)")
	f.IntVar(&searchPageSize, "page-size", search.DefaultPageSize, "Results fetched per request")
	f.BoolVar(&searchCount, "count", false, "Print only the number of matches")

	RootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	fs, err := buildSearch()
	if err != nil {
		return err
	}

	api, err := newAPI(cfg, l)
	if err != nil {
		return err
	}
	svc := search.NewService(api, l)

	if searchCount {
		n, err := svc.Count(ctx, fs)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	}

	printed := 0
	err = svc.Stream(ctx, fs, func(a assets.Asset) error {
		h := a.Header()
		fmt.Printf("%s\t%s\t%s\n", h.TypeName, a.Common().QualifiedName, h.GUID)
		printed++
		if searchLimit > 0 && printed >= searchLimit {
			return errLimitReached
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimitReached) {
		return err
	}
	l.Debug("Search finished", zap.Int("printed", printed))
	return nil
}

func buildSearch() (*search.FluentSearch, error) {
	fs := search.New().ActiveAssets().PageSize(searchPageSize)
	if len(searchTypes) > 0 {
		fs.AssetTypes(searchTypes...)
	}
	if searchPrefix != "" {
		fs.Where(fields.QualifiedName.StartsWith(searchPrefix, false))
	}
	for _, w := range searchWheres {
		q, err := whereClause(w)
		if err != nil {
			return nil, err
		}
		fs.Where(q)
	}
	return fs, nil
}

// whereClause turns attribute=value into an exact match on the attribute's
// keyword index field.
func whereClause(expr string) (query.Query, error) {
	name, value, ok := strings.Cut(expr, "=")
	if !ok || name == "" {
		return nil, fmt.Errorf("invalid condition %q, expected attribute=value", expr)
	}
	f, ok := fields.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown searchable attribute %q", name)
	}
	if kf, ok := f.(interface{ KeywordFieldName() string }); ok {
		return query.Term{Field: kf.KeywordFieldName(), Value: value}, nil
	}
	return query.Term{Field: f.IndexFields()[0], Value: value}, nil
}
