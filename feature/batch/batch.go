package batch

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/fields"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Saver saves assets. *assets.Service satisfies it.
type Saver interface {
	Save(ctx context.Context, list []assets.Asset, opts assets.SaveOptions) (*assets.MutationResponse, error)
}

// Finder looks assets up by identity. *search.Service satisfies it.
type Finder interface {
	FindByIdentities(ctx context.Context, ids []assets.Identity, caseInsensitive bool, attributes ...fields.Field) (map[string]assets.Asset, error)
}

var tableLevelTypes = []string{assets.TypeTable, assets.TypeView, assets.TypeMaterialisedView}

func isTableLevel(a assets.Asset) bool {
	return slices.Contains(tableLevelTypes, a.Header().TypeName)
}

// AssetBatch queues assets and saves them in groups of Options.Size.
// It is safe for concurrent use; adds block while a flush is running.
type AssetBatch struct {
	mu     sync.Mutex
	saver  Saver
	finder Finder
	opts   Options
	logger *zap.Logger
	now    func() time.Time

	queue      []assets.Asset
	created    []assets.Asset
	updated    []assets.Asset
	skipped    []assets.Asset
	failures   []FailedBatch
	numCreated int
	numUpdated int
	guids      map[string]string
	names      map[string]string
}

// New creates a batch. finder may be nil when opts never needs lookups,
// which is the case for full creation without table/view matching.
func New(saver Saver, finder Finder, opts Options, logger *zap.Logger) *AssetBatch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetBatch{
		saver:  saver,
		finder: finder,
		opts:   opts.normalized(),
		logger: logger,
		now:    time.Now,
		guids:  make(map[string]string),
		names:  make(map[string]string),
	}
}

// Options returns the effective options.
func (b *AssetBatch) Options() Options {
	return b.opts
}

// Add validates and queues an asset, flushing when the queue is full. It
// returns the response of that flush, or nil when nothing was saved.
// Assets without a GUID get a placeholder so the assigned GUID can be
// resolved afterwards.
func (b *AssetBatch) Add(ctx context.Context, a assets.Asset) (*assets.MutationResponse, error) {
	if err := assets.Validate(a); err != nil {
		return nil, err
	}
	if a.Header().GUID == "" {
		a.Header().GUID = "-" + uuid.NewString()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, a)
	if len(b.queue) < b.opts.Size {
		return nil, nil
	}
	return b.flush(ctx)
}

// Flush saves everything queued. The queue is empty afterwards whether or
// not the save succeeded. With CaptureFailures a failed save is recorded
// and nil is returned.
func (b *AssetBatch) Flush(ctx context.Context) (*assets.MutationResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flush(ctx)
}

// Len returns the number of queued assets.
func (b *AssetBatch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

func (b *AssetBatch) flush(ctx context.Context) (*assets.MutationResponse, error) {
	if len(b.queue) == 0 {
		return nil, nil
	}
	queued := b.queue
	b.queue = nil

	revised, err := b.resolve(ctx, queued)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %d queued assets: %w", len(queued), err)
	}
	if len(revised) == 0 {
		b.logger.Debug("Nothing to save after lookup", zap.Int("skipped", len(queued)))
		return nil, nil
	}

	resp, err := b.saver.Save(ctx, revised, b.opts.saveOptions())
	if err != nil {
		if !b.opts.CaptureFailures {
			return nil, err
		}
		b.failures = append(b.failures, FailedBatch{Assets: queued, Err: err, FailedAt: b.now()})
		b.logger.Warn("Captured failed batch", zap.Int("assets", len(queued)), zap.Error(err))
		return nil, nil
	}
	b.track(resp, revised)
	return resp, nil
}

// resolve decides which queued assets are sent, looking existing assets up
// when creation is restricted or types may differ.
func (b *AssetBatch) resolve(ctx context.Context, queued []assets.Asset) ([]assets.Asset, error) {
	fuzzy := b.opts.TableViewAgnostic && slices.ContainsFunc(queued, isTableLevel)
	if b.opts.Creation == CreateFull && !fuzzy {
		return queued, nil
	}
	if b.finder == nil {
		return nil, fmt.Errorf("creation handling %q needs a finder", b.opts.Creation)
	}

	ids := make([]assets.Identity, 0, len(queued))
	for _, a := range queued {
		id := assets.IdentityOf(a)
		if fuzzy && isTableLevel(a) {
			for _, t := range tableLevelTypes {
				ids = append(ids, assets.Identity{TypeName: t, QualifiedName: id.QualifiedName})
			}
			continue
		}
		ids = append(ids, id)
	}
	found, err := b.finder.FindByIdentities(ctx, ids, b.opts.CaseInsensitive, fields.QualifiedName, fields.Name)
	if err != nil {
		return nil, err
	}

	ci := b.opts.CaseInsensitive
	revised := make([]assets.Asset, 0, len(queued))
	for _, a := range queued {
		id := assets.IdentityOf(a)
		if match, ok := found[id.Key(ci)]; ok {
			b.names[id.Key(ci)] = assets.QualifiedNameOf(match)
			a.Common().QualifiedName = assets.Ptr(assets.QualifiedNameOf(match))
			revised = append(revised, a)
			continue
		}
		if fuzzy && isTableLevel(a) {
			if match := fuzzyMatch(found, id, ci); match != nil {
				b.names[id.Key(ci)] = assets.QualifiedNameOf(match)
				revised = append(revised, retype(a, match))
				continue
			}
		}
		switch b.opts.Creation {
		case CreateFull:
			revised = append(revised, a)
		case CreatePartial:
			a.Header().MarkIncomplete()
			revised = append(revised, a)
		default:
			b.skipped = append(b.skipped, a)
		}
	}
	return revised, nil
}

func fuzzyMatch(found map[string]assets.Asset, id assets.Identity, ci bool) assets.Asset {
	for _, t := range tableLevelTypes {
		if match, ok := found[assets.Identity{TypeName: t, QualifiedName: id.QualifiedName}.Key(ci)]; ok {
			return match
		}
	}
	return nil
}

// retype copies a onto the type and qualified name of match. Attributes
// specific to the original type are dropped.
func retype(a, match assets.Asset) assets.Asset {
	out := assets.New(match.Header().TypeName)
	header := *a.Header()
	header.TypeName = match.Header().TypeName
	*out.Header() = header
	*out.Common() = *a.Common()
	out.Common().QualifiedName = assets.Ptr(assets.QualifiedNameOf(match))
	return out
}

func (b *AssetBatch) track(resp *assets.MutationResponse, sent []assets.Asset) {
	ci := b.opts.CaseInsensitive
	created, updated := resp.Created(), resp.Updated()
	b.numCreated += len(created)
	b.numUpdated += len(updated)

	changed := make(map[string]struct{}, len(created)+len(updated))
	for _, a := range slices.Concat(created, updated) {
		changed[a.Header().GUID] = struct{}{}
		changed[assets.IdentityOf(a).Key(ci)] = struct{}{}
		b.names[assets.IdentityOf(a).Key(ci)] = assets.QualifiedNameOf(a)
	}
	if b.opts.Track {
		for _, a := range created {
			b.created = append(b.created, assets.Trim(a))
		}
		for _, a := range updated {
			b.updated = append(b.updated, assets.Trim(a))
		}
	}

	for _, a := range sent {
		guid := a.Header().GUID
		assigned, ok := resp.GUIDAssignments[guid]
		if !ok {
			assigned = guid
			if guid != "" && guid[0] != '-' {
				b.guids[guid] = guid
			}
		}
		_, byGUID := changed[assigned]
		_, byIdentity := changed[assets.IdentityOf(a).Key(ci)]
		if !byGUID && !byIdentity {
			b.skipped = append(b.skipped, a)
		}
	}
	maps.Copy(b.guids, resp.GUIDAssignments)
}

// Created returns trimmed copies of the created assets when tracking.
func (b *AssetBatch) Created() []assets.Asset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.created)
}

// Updated returns trimmed copies of the updated assets when tracking.
func (b *AssetBatch) Updated() []assets.Asset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.updated)
}

// Skipped returns the assets that were neither created nor updated:
// missing assets under CreateNone and assets the server left unchanged.
func (b *AssetBatch) Skipped() []assets.Asset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.skipped)
}

// Failures returns the captured failed batches.
func (b *AssetBatch) Failures() []FailedBatch {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.failures)
}

// ResolvedGUIDs maps the GUIDs sent (placeholders included) to the GUIDs
// on the server.
func (b *AssetBatch) ResolvedGUIDs() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.guids)
}

// ResolvedQualifiedNames maps Identity.Key(CaseInsensitive) of each asset
// added or saved to its qualified name on the server.
func (b *AssetBatch) ResolvedQualifiedNames() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.names)
}

// NumCreated counts created assets, tracked or not.
func (b *AssetBatch) NumCreated() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.numCreated
}

// NumUpdated counts updated assets, tracked or not.
func (b *AssetBatch) NumUpdated() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.numUpdated
}
