package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"atlan-sdk/core/client"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Caller executes API calls. *client.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, ep client.Endpoint, query url.Values, body any, out any) error
}

// CustomMetadataHandling controls how custom metadata on saved assets is applied.
type CustomMetadataHandling string

const (
	// CustomMetadataIgnore leaves custom metadata on existing assets untouched.
	CustomMetadataIgnore CustomMetadataHandling = "ignore"
	// CustomMetadataMerge replaces only the attributes that are sent.
	CustomMetadataMerge CustomMetadataHandling = "merge"
	// CustomMetadataOverwrite replaces all custom metadata with what is sent.
	CustomMetadataOverwrite CustomMetadataHandling = "overwrite"
)

// ParseCustomMetadataHandling accepts ignore, merge or overwrite in any case.
func ParseCustomMetadataHandling(s string) (CustomMetadataHandling, error) {
	switch h := CustomMetadataHandling(lower(s)); h {
	case CustomMetadataIgnore, CustomMetadataMerge, CustomMetadataOverwrite:
		return h, nil
	case "":
		return CustomMetadataIgnore, nil
	}
	return "", fmt.Errorf("unknown custom metadata handling %q", s)
}

// SaveOptions tune a bulk save.
type SaveOptions struct {
	// ReplaceTags replaces the Atlan tags on existing assets with those sent.
	ReplaceTags    bool
	CustomMetadata CustomMetadataHandling
}

// Query returns the query parameters that carry the options.
func (o SaveOptions) Query() url.Values {
	replaceCM, overwriteCM := false, false
	switch o.CustomMetadata {
	case CustomMetadataMerge:
		replaceCM = true
	case CustomMetadataOverwrite:
		replaceCM, overwriteCM = true, true
	}
	q := url.Values{}
	q.Set("replaceClassifications", strconv.FormatBool(o.ReplaceTags))
	q.Set("replaceBusinessAttributes", strconv.FormatBool(replaceCM))
	q.Set("overwriteBusinessAttributes", strconv.FormatBool(overwriteCM))
	return q
}

// Service performs entity operations against the catalog.
type Service struct {
	api    Caller
	logger *zap.Logger
	lookup singleflight.Group
}

// NewService creates an asset service.
func NewService(api Caller, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger}
}

type bulkRequest struct {
	Entities List `json:"entities"`
}

type entityResponse struct {
	Entity json.RawMessage `json:"entity"`
}

// Save creates or updates assets in one request. Every asset is validated
// first; nothing is sent if any fails.
func (s *Service) Save(ctx context.Context, list []Asset, opts SaveOptions) (*MutationResponse, error) {
	if len(list) == 0 {
		return &MutationResponse{}, nil
	}
	var errs []error
	for _, a := range list {
		if err := Validate(a); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var resp MutationResponse
	if err := s.api.Call(ctx, client.BulkSaveEntities, opts.Query(), bulkRequest{Entities: list}, &resp); err != nil {
		return nil, fmt.Errorf("failed to save %d assets: %w", len(list), err)
	}
	s.logger.Debug("Saved assets",
		zap.Int("sent", len(list)),
		zap.Int("created", len(resp.Created())),
		zap.Int("updated", len(resp.Updated())))
	return &resp, nil
}

// GetByGUID retrieves an asset with all of its attributes and relationships.
func (s *Service) GetByGUID(ctx context.Context, guid string) (Asset, error) {
	if guid == "" {
		return nil, errors.New("guid is required")
	}
	q := url.Values{}
	q.Set("minExtInfo", "false")
	q.Set("ignoreRelationships", "false")
	return s.getEntity(ctx, client.GetEntityByGUID.With(guid), q)
}

// GetByQualifiedName retrieves an asset by type and qualified name.
// Concurrent lookups of the same asset share one request.
func (s *Service) GetByQualifiedName(ctx context.Context, typeName, qualifiedName string) (Asset, error) {
	if typeName == "" || qualifiedName == "" {
		return nil, errors.New("type name and qualified name are required")
	}
	key := Identity{TypeName: typeName, QualifiedName: qualifiedName}.String()
	v, err, shared := s.lookup.Do(key, func() (any, error) {
		q := url.Values{}
		q.Set("attr:qualifiedName", qualifiedName)
		q.Set("minExtInfo", "false")
		q.Set("ignoreRelationships", "false")
		return s.getEntity(ctx, client.GetEntityByUniqueAttribute.With(typeName), q)
	})
	if err != nil {
		return nil, err
	}
	if !shared {
		return v.(Asset), nil
	}
	// Every caller of a shared lookup gets its own copy.
	s.logger.Debug("Shared asset lookup", zap.String("identity", key))
	return clone(v.(Asset))
}

// clone deep-copies an asset through the wire codec.
func clone(a Asset) (Asset, error) {
	data, err := Marshal(a)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (s *Service) getEntity(ctx context.Context, ep client.Endpoint, q url.Values) (Asset, error) {
	var resp entityResponse
	if err := s.api.Call(ctx, ep, q, nil, &resp); err != nil {
		return nil, err
	}
	if isEmptyJSON(resp.Entity) {
		return nil, fmt.Errorf("%s: empty entity in response", ep)
	}
	return Decode(resp.Entity)
}

// Delete soft-deletes (archives) assets by GUID.
func (s *Service) Delete(ctx context.Context, guids ...string) (*MutationResponse, error) {
	return s.delete(ctx, DeleteSoft, guids)
}

// Purge permanently deletes assets by GUID.
func (s *Service) Purge(ctx context.Context, guids ...string) (*MutationResponse, error) {
	return s.delete(ctx, DeletePurge, guids)
}

func (s *Service) delete(ctx context.Context, kind DeleteType, guids []string) (*MutationResponse, error) {
	if len(guids) == 0 {
		return &MutationResponse{}, nil
	}
	q := url.Values{}
	for _, g := range guids {
		q.Add("guid", g)
	}
	q.Set("deleteType", string(kind))
	var resp MutationResponse
	if err := s.api.Call(ctx, client.BulkDeleteEntities, q, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to delete %d assets: %w", len(guids), err)
	}
	s.logger.Info("Deleted assets", zap.String("deleteType", string(kind)), zap.Int("count", len(resp.Deleted())))
	return &resp, nil
}

// Restore re-activates an archived asset. It reports false when the asset
// was already active.
func (s *Service) Restore(ctx context.Context, typeName, qualifiedName string) (bool, error) {
	existing, err := s.GetByQualifiedName(ctx, typeName, qualifiedName)
	if err != nil {
		return false, err
	}
	if existing.Header().Status != StatusDeleted {
		return false, nil
	}
	restored := Trim(existing)
	restored.Header().Status = StatusActive
	if _, err := s.Save(ctx, []Asset{restored}, SaveOptions{}); err != nil {
		return false, fmt.Errorf("failed to restore %s: %w", IdentityOf(existing), err)
	}
	return true, nil
}
