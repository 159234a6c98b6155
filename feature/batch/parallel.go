package batch

import (
	"context"
	"errors"
	"hash/fnv"
	"maps"
	"strings"
	"sync"

	"atlan-sdk/feature/assets"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ParallelBatch spreads assets over independent AssetBatch shards. Assets
// with the same qualified name, ignoring case, always land in the same
// shard, so one asset is never saved by two shards at once.
type ParallelBatch struct {
	shards []*AssetBatch
	logger *zap.Logger
}

// NewParallel creates a parallel batch with the given number of shards.
func NewParallel(saver Saver, finder Finder, opts Options, shards int, logger *zap.Logger) *ParallelBatch {
	if shards <= 0 {
		shards = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &ParallelBatch{shards: make([]*AssetBatch, shards), logger: logger}
	for i := range p.shards {
		p.shards[i] = New(saver, finder, opts, logger.With(zap.Int("shard", i)))
	}
	return p
}

// Shards returns the number of shards.
func (p *ParallelBatch) Shards() int {
	return len(p.shards)
}

func (p *ParallelBatch) shardFor(a assets.Asset) *AssetBatch {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(assets.QualifiedNameOf(a))))
	return p.shards[h.Sum32()%uint32(len(p.shards))]
}

// Add queues an asset on its shard and returns the response of any flush
// this triggered. It may be called from any goroutine.
func (p *ParallelBatch) Add(ctx context.Context, a assets.Asset) (*assets.MutationResponse, error) {
	return p.shardFor(a).Add(ctx, a)
}

// Flush flushes every shard concurrently and merges their responses. A
// failing shard does not stop the others; the errors of all failed shards
// are joined. Results of the shards that succeeded stay available through
// the accessors.
func (p *ParallelBatch) Flush(ctx context.Context) (*assets.MutationResponse, error) {
	var g errgroup.Group
	g.SetLimit(len(p.shards))

	var mu sync.Mutex
	var errs []error
	merged := &assets.MutationResponse{}
	for _, shard := range p.shards {
		g.Go(func() error {
			resp, err := shard.Flush(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			if resp != nil {
				merged.Merge(resp)
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := errors.Join(errs...); err != nil {
		p.logger.Warn("Parallel flush failed", zap.Int("failedShards", len(errs)), zap.Error(err))
		return nil, err
	}
	if merged.IsEmpty() && len(merged.GUIDAssignments) == 0 {
		return nil, nil
	}
	return merged, nil
}

func collect[T any](p *ParallelBatch, get func(*AssetBatch) []T) []T {
	var out []T
	for _, s := range p.shards {
		out = append(out, get(s)...)
	}
	return out
}

func collectMap(p *ParallelBatch, get func(*AssetBatch) map[string]string) map[string]string {
	out := make(map[string]string)
	for _, s := range p.shards {
		maps.Copy(out, get(s))
	}
	return out
}

// Created returns the created assets of every shard.
func (p *ParallelBatch) Created() []assets.Asset {
	return collect(p, (*AssetBatch).Created)
}

// Updated returns the updated assets of every shard.
func (p *ParallelBatch) Updated() []assets.Asset {
	return collect(p, (*AssetBatch).Updated)
}

// Skipped returns the skipped assets of every shard.
func (p *ParallelBatch) Skipped() []assets.Asset {
	return collect(p, (*AssetBatch).Skipped)
}

// Failures returns the captured failures of every shard.
func (p *ParallelBatch) Failures() []FailedBatch {
	return collect(p, (*AssetBatch).Failures)
}

// ResolvedGUIDs merges the GUID resolutions of every shard.
func (p *ParallelBatch) ResolvedGUIDs() map[string]string {
	return collectMap(p, (*AssetBatch).ResolvedGUIDs)
}

// ResolvedQualifiedNames merges the qualified name resolutions of every shard.
func (p *ParallelBatch) ResolvedQualifiedNames() map[string]string {
	return collectMap(p, (*AssetBatch).ResolvedQualifiedNames)
}

// NumCreated sums the created counts of every shard.
func (p *ParallelBatch) NumCreated() int {
	n := 0
	for _, s := range p.shards {
		n += s.NumCreated()
	}
	return n
}

// NumUpdated sums the updated counts of every shard.
func (p *ParallelBatch) NumUpdated() int {
	n := 0
	for _, s := range p.shards {
		n += s.NumUpdated()
	}
	return n
}
