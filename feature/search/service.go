package search

import (
	"context"
	"fmt"

	"atlan-sdk/core/client"
	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/fields"
	"atlan-sdk/feature/query"

	"go.uber.org/zap"
)

// maxIdentitiesPerQuery bounds the clauses in one identity lookup.
const maxIdentitiesPerQuery = 50

// Service executes index searches.
type Service struct {
	api    assets.Caller
	logger *zap.Logger
}

// NewService creates a search service.
func NewService(api assets.Caller, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger}
}

// Search runs one page of an index search.
func (s *Service) Search(ctx context.Context, req *IndexSearchRequest) (*IndexSearchResponse, error) {
	var resp IndexSearchResponse
	if err := s.api.Call(ctx, client.IndexSearch, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}
	return &resp, nil
}

// Count returns the approximate number of assets matching the search.
func (s *Service) Count(ctx context.Context, f *FluentSearch) (int64, error) {
	req := f.ToRequest()
	req.DSL.Size = 1
	resp, err := s.Search(ctx, req)
	if err != nil {
		return 0, err
	}
	return resp.ApproximateCount, nil
}

// Stream pages through every result of the search and calls fn for each
// asset. It stops at the first error returned by fn or the API, or when
// ctx is cancelled.
func (s *Service) Stream(ctx context.Context, f *FluentSearch, fn func(assets.Asset) error) error {
	req := f.ToRequest()
	seen := 0
	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := s.Search(ctx, req)
		if err != nil {
			return err
		}
		for _, a := range resp.Entities {
			if err := fn(a); err != nil {
				return err
			}
		}
		seen += len(resp.Entities)
		s.logger.Debug("Fetched search page",
			zap.Int("page", page),
			zap.Int("results", len(resp.Entities)),
			zap.Int64("approximateCount", resp.ApproximateCount))
		if len(resp.Entities) < req.DSL.Size || int64(seen) >= resp.ApproximateCount {
			return nil
		}
		req.DSL.From += req.DSL.Size
	}
}

// FindByIdentities looks up assets by type and qualified name. The result
// is keyed by Identity.Key(caseInsensitive); identities that do not exist
// are absent. Only active assets are returned.
func (s *Service) FindByIdentities(ctx context.Context, ids []assets.Identity, caseInsensitive bool, attributes ...fields.Field) (map[string]assets.Asset, error) {
	found := make(map[string]assets.Asset, len(ids))
	for start := 0; start < len(ids); start += maxIdentitiesPerQuery {
		end := min(start+maxIdentitiesPerQuery, len(ids))
		f := New().ActiveAssets().PageSize(maxIdentitiesPerQuery * 2).IncludeOnResults(attributes...)
		for _, id := range ids[start:end] {
			f.WhereSome(query.Bool{Filter: []query.Query{
				fields.TypeName.Eq(id.TypeName, false),
				fields.QualifiedName.Eq(id.QualifiedName, caseInsensitive),
			}})
		}
		err := s.Stream(ctx, f, func(a assets.Asset) error {
			found[assets.IdentityOf(a).Key(caseInsensitive)] = a
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to look up %d assets: %w", end-start, err)
		}
	}
	return found, nil
}
