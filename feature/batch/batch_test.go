package batch_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"atlan-sdk/core/client"
	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/batch"
	"atlan-sdk/feature/search"
	"atlan-sdk/feature/stub/stubtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const schemaQN = "default/snowflake/1700000000/DB/SCH"

type env struct {
	assets *assets.Service
	search *search.Service
}

func newEnv(t *testing.T) env {
	t.Helper()
	srv, _ := stubtest.Start(t)
	api := stubtest.NewClient(t, srv)
	return env{assets: assets.NewService(api, nil), search: search.NewService(api, nil)}
}

func (e env) batch(opts batch.Options) *batch.AssetBatch {
	return batch.New(e.assets, e.search, opts, zap.NewNop())
}

func table(t *testing.T, name string) *assets.Table {
	t.Helper()
	tbl, err := assets.NewTable(name, schemaQN)
	require.NoError(t, err)
	return tbl
}

func (e env) seed(t *testing.T, list ...assets.Asset) {
	t.Helper()
	_, err := e.assets.Save(context.Background(), list, assets.SaveOptions{})
	require.NoError(t, err)
}

func TestAssetBatch_FlushesAtSize(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	opts := batch.DefaultOptions()
	opts.Size = 2
	b := e.batch(opts)

	resp, err := b.Add(ctx, table(t, "A"))
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, 1, b.Len())

	resp, err = b.Add(ctx, table(t, "B"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Len(t, resp.Created(), 2)
	assert.Equal(t, 0, b.Len())

	_, err = b.Add(ctx, table(t, "C"))
	require.NoError(t, err)
	resp, err = b.Flush(ctx)
	require.NoError(t, err)
	assert.Len(t, resp.Created(), 1)

	resp, err = b.Flush(ctx)
	require.NoError(t, err)
	assert.Nil(t, resp, "empty flush is a no-op")

	assert.Equal(t, 3, b.NumCreated())
	assert.Equal(t, 0, b.NumUpdated())
	assert.Len(t, b.Created(), 3)
	assert.Empty(t, b.Skipped())

	guids := b.ResolvedGUIDs()
	assert.Len(t, guids, 3)
	for placeholder, assigned := range guids {
		assert.Equal(t, byte('-'), placeholder[0])
		assert.NotEqual(t, placeholder, assigned)
	}
}

func TestAssetBatch_AddValidates(t *testing.T) {
	e := newEnv(t)
	b := e.batch(batch.DefaultOptions())
	_, err := b.Add(context.Background(), assets.TableUpdater("", "X"))
	var verr *assets.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, b.Len())
}

func TestAssetBatch_UnchangedIsSkipped(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seed(t, table(t, "A"))

	b := e.batch(batch.DefaultOptions())
	_, err := b.Add(ctx, table(t, "A"))
	require.NoError(t, err)
	changed := table(t, "B")
	_, err = b.Add(ctx, changed)
	require.NoError(t, err)
	_, err = b.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, b.NumCreated())
	require.Len(t, b.Skipped(), 1)
	assert.Equal(t, "A", assets.NameOf(b.Skipped()[0]))
}

func TestAssetBatch_CreateNone(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seed(t, table(t, "EXISTS"))

	b := e.batch(batch.DefaultOptions().UpdateOnly())
	update := assets.TableUpdater(schemaQN+"/EXISTS", "EXISTS")
	update.Attributes.Description = assets.Ptr("now documented")
	_, err := b.Add(ctx, update)
	require.NoError(t, err)
	_, err = b.Add(ctx, table(t, "MISSING"))
	require.NoError(t, err)
	_, err = b.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, b.NumCreated())
	assert.Equal(t, 1, b.NumUpdated())
	require.Len(t, b.Skipped(), 1)
	assert.Equal(t, "MISSING", assets.NameOf(b.Skipped()[0]))

	_, err = e.assets.GetByQualifiedName(ctx, assets.TypeTable, schemaQN+"/MISSING")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestAssetBatch_CreatePartial(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	opts := batch.DefaultOptions()
	opts.Creation = batch.CreatePartial
	b := e.batch(opts)

	_, err := b.Add(ctx, table(t, "NEW"))
	require.NoError(t, err)
	_, err = b.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, b.NumCreated())

	got, err := e.assets.GetByQualifiedName(ctx, assets.TypeTable, schemaQN+"/NEW")
	require.NoError(t, err)
	require.NotNil(t, got.Header().IsIncomplete)
	assert.True(t, *got.Header().IsIncomplete)
}

func TestAssetBatch_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.seed(t, table(t, "ORDERS"))

	opts := batch.DefaultOptions().UpdateOnly()
	opts.CaseInsensitive = true
	b := e.batch(opts)

	update := assets.TableUpdater(schemaQN+"/orders", "ORDERS")
	update.Attributes.Description = assets.Ptr("orders placed")
	_, err := b.Add(ctx, update)
	require.NoError(t, err)
	_, err = b.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, b.NumUpdated())
	assert.Empty(t, b.Skipped())
	key := assets.Identity{TypeName: assets.TypeTable, QualifiedName: schemaQN + "/orders"}.Key(true)
	assert.Equal(t, schemaQN+"/ORDERS", b.ResolvedQualifiedNames()[key])
}

func TestAssetBatch_TableViewAgnostic(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	view, err := assets.NewView("V", schemaQN)
	require.NoError(t, err)
	e.seed(t, view)

	opts := batch.DefaultOptions()
	opts.TableViewAgnostic = true
	b := e.batch(opts)

	tbl := table(t, "V")
	tbl.Attributes.Description = assets.Ptr("actually a view")
	_, err = b.Add(ctx, tbl)
	require.NoError(t, err)
	_, err = b.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, b.NumCreated())
	require.Len(t, b.Updated(), 1)
	assert.Equal(t, assets.TypeView, b.Updated()[0].Header().TypeName)

	got, err := e.assets.GetByQualifiedName(ctx, assets.TypeView, schemaQN+"/V")
	require.NoError(t, err)
	assert.Equal(t, "actually a view", *got.Common().Description)
	_, err = e.assets.GetByQualifiedName(ctx, assets.TypeTable, schemaQN+"/V")
	assert.ErrorIs(t, err, client.ErrNotFound)
}

type failingSaver struct{ err error }

func (f failingSaver) Save(context.Context, []assets.Asset, assets.SaveOptions) (*assets.MutationResponse, error) {
	return nil, f.err
}

func TestAssetBatch_Failures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("server unavailable")

	t.Run("Returned", func(t *testing.T) {
		b := batch.New(failingSaver{boom}, nil, batch.DefaultOptions(), nil)
		_, err := b.Add(ctx, table(t, "A"))
		require.NoError(t, err)
		_, err = b.Flush(ctx)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, b.Len())
		assert.Empty(t, b.Failures())
	})

	t.Run("Captured", func(t *testing.T) {
		opts := batch.DefaultOptions()
		opts.CaptureFailures = true
		b := batch.New(failingSaver{boom}, nil, opts, nil)
		_, err := b.Add(ctx, table(t, "A"))
		require.NoError(t, err)
		resp, err := b.Flush(ctx)
		require.NoError(t, err)
		assert.Nil(t, resp)

		failures := b.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, "server unavailable", failures[0].Reason())
		assert.Equal(t, []assets.Identity{{TypeName: assets.TypeTable, QualifiedName: schemaQN + "/A"}}, failures[0].Identities())
		assert.False(t, failures[0].FailedAt.IsZero())
	})

	t.Run("LookupNeedsFinder", func(t *testing.T) {
		b := batch.New(failingSaver{boom}, nil, batch.DefaultOptions().UpdateOnly(), nil)
		_, err := b.Add(ctx, table(t, "A"))
		require.NoError(t, err)
		_, err = b.Flush(ctx)
		assert.ErrorContains(t, err, "needs a finder")
		assert.Equal(t, 0, b.Len())
	})
}

func TestParallelBatch(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	opts := batch.DefaultOptions()
	opts.Size = 5
	p := batch.NewParallel(e.assets, e.search, opts, 4, zap.NewNop())
	assert.Equal(t, 4, p.Shards())

	const workers, perWorker = 4, 10
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tbl, err := assets.NewTable(fmt.Sprintf("T_%d_%d", w, i), schemaQN)
				if err == nil {
					_, err = p.Add(ctx, tbl)
				}
				if err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	_, err := p.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, workers*perWorker, p.NumCreated())
	assert.Len(t, p.Created(), workers*perWorker)
	assert.Len(t, p.ResolvedGUIDs(), workers*perWorker)
	assert.Empty(t, p.Failures())
	assert.Equal(t, 0, p.NumUpdated())

	resp, err := p.Flush(ctx)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestParallelBatch_FlushError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	p := batch.NewParallel(failingSaver{boom}, nil, batch.DefaultOptions(), 2, nil)
	for _, name := range []string{"A", "B", "C"} {
		_, err := p.Add(ctx, table(t, name))
		require.NoError(t, err)
	}
	_, err := p.Flush(ctx)
	assert.ErrorIs(t, err, boom)
}

// rejectingSaver fails any save containing the rejected qualified name.
// Other saves wait until that failure happened and then go through to next,
// so they run while a sibling shard is failing.
type rejectingSaver struct {
	next     batch.Saver
	rejectQN string
	rejected chan struct{}
	err      error

	mu      sync.Mutex
	saved   []string
	refused []string
}

func newRejectingSaver(next batch.Saver, rejectQN string) *rejectingSaver {
	return &rejectingSaver{next: next, rejectQN: rejectQN, rejected: make(chan struct{}), err: errors.New("boom")}
}

func (s *rejectingSaver) Save(ctx context.Context, list []assets.Asset, opts assets.SaveOptions) (*assets.MutationResponse, error) {
	qns := make([]string, len(list))
	for i, a := range list {
		qns[i] = assets.QualifiedNameOf(a)
	}
	if slices.Contains(qns, s.rejectQN) {
		s.mu.Lock()
		s.refused = append(s.refused, qns...)
		s.mu.Unlock()
		close(s.rejected)
		return nil, s.err
	}

	select {
	case <-s.rejected:
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := s.next.Save(ctx, list, opts)
	if err == nil {
		s.mu.Lock()
		s.saved = append(s.saved, qns...)
		s.mu.Unlock()
	}
	return resp, err
}

func addTables(t *testing.T, p *batch.ParallelBatch, names ...string) []string {
	t.Helper()
	qns := make([]string, 0, len(names))
	for _, name := range names {
		tbl := table(t, name)
		_, err := p.Add(context.Background(), tbl)
		require.NoError(t, err)
		qns = append(qns, assets.QualifiedNameOf(tbl))
	}
	return qns
}

var shardNames = []string{"BAD", "G0", "G1", "G2", "G3", "G4", "G5", "G6", "G7", "G8"}

func TestParallelBatch_FailingShardDoesNotStopOthers(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	saver := newRejectingSaver(e.assets, schemaQN+"/BAD")
	p := batch.NewParallel(saver, e.search, batch.DefaultOptions(), 8, zap.NewNop())

	all := addTables(t, p, shardNames...)

	resp, err := p.Flush(ctx)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, saver.err)
	assert.NotErrorIs(t, err, context.Canceled)

	assert.Contains(t, saver.refused, schemaQN+"/BAD")
	assert.NotEmpty(t, saver.saved)
	assert.ElementsMatch(t, all, slices.Concat(saver.saved, saver.refused))
	assert.Equal(t, len(saver.saved), p.NumCreated())

	count, err := e.search.Count(ctx, search.New().AssetType("Table"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(saver.saved)), count)

	resp, err = p.Flush(ctx)
	require.NoError(t, err)
	assert.Nil(t, resp, "queues are empty after a failed flush")
}

func TestParallelBatch_CaptureFailures(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	saver := newRejectingSaver(e.assets, schemaQN+"/BAD")
	opts := batch.DefaultOptions()
	opts.CaptureFailures = true
	p := batch.NewParallel(saver, e.search, opts, 8, zap.NewNop())

	all := addTables(t, p, shardNames...)

	_, err := p.Flush(ctx)
	require.NoError(t, err)

	failures := p.Failures()
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].Err, saver.err)
	var captured []string
	for _, id := range failures[0].Identities() {
		captured = append(captured, id.QualifiedName)
	}
	assert.ElementsMatch(t, saver.refused, captured)
	assert.ElementsMatch(t, all, slices.Concat(saver.saved, captured))
	assert.Equal(t, len(saver.saved), p.NumCreated())
}
