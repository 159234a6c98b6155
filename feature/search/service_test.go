package search_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/fields"
	"atlan-sdk/feature/search"
	"atlan-sdk/feature/stub/stubtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const schemaQN = "default/postgres/1700000000/SALES/PUBLIC"

// seed saves n tables named T00..Tnn and returns a search service.
func seed(t *testing.T, n int) *search.Service {
	t.Helper()
	srv, _ := stubtest.Start(t)
	api := stubtest.NewClient(t, srv)

	list := make([]assets.Asset, 0, n)
	for i := 0; i < n; i++ {
		table, err := assets.NewTable(fmt.Sprintf("T%02d", i), schemaQN)
		require.NoError(t, err)
		table.Attributes.RowCount = assets.Ptr(int64(i * 10))
		list = append(list, table)
	}
	_, err := assets.NewService(api, nil).Save(context.Background(), list, assets.SaveOptions{})
	require.NoError(t, err)
	return search.NewService(api, zap.NewNop())
}

func TestService_SearchAndCount(t *testing.T) {
	ctx := context.Background()
	svc := seed(t, 5)

	f := search.New().AssetType(assets.TypeTable).Where(fields.RowCount.Gte(20))
	count, err := svc.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	resp, err := svc.Search(ctx, f.PageSize(2).ToRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ApproximateCount)
	assert.Len(t, resp.Entities, 2)
	for _, a := range resp.Entities {
		_, ok := a.(*assets.Table)
		assert.True(t, ok)
	}
}

func TestService_Stream(t *testing.T) {
	ctx := context.Background()
	svc := seed(t, 7)

	var names []string
	err := svc.Stream(ctx, search.New().ActiveAssets().PageSize(3).Sort(fields.Name.Order("asc")), func(a assets.Asset) error {
		names = append(names, assets.NameOf(a))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"T00", "T01", "T02", "T03", "T04", "T05", "T06"}, names)

	stop := errors.New("stop")
	calls := 0
	err = svc.Stream(ctx, search.New().PageSize(2), func(assets.Asset) error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, calls)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = svc.Stream(cancelled, search.New(), func(assets.Asset) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_FindByIdentities(t *testing.T) {
	ctx := context.Background()
	svc := seed(t, 3)

	ids := []assets.Identity{
		{TypeName: assets.TypeTable, QualifiedName: schemaQN + "/t01"},
		{TypeName: assets.TypeTable, QualifiedName: schemaQN + "/T02"},
		{TypeName: assets.TypeView, QualifiedName: schemaQN + "/T00"},
		{TypeName: assets.TypeTable, QualifiedName: schemaQN + "/MISSING"},
	}

	found, err := svc.FindByIdentities(ctx, ids, false)
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, ids[1].Key(false))

	found, err = svc.FindByIdentities(ctx, ids, true, fields.RowCount)
	require.NoError(t, err)
	assert.Len(t, found, 2)
	match, ok := found[ids[0].Key(true)]
	require.True(t, ok)
	assert.Equal(t, schemaQN+"/T01", assets.QualifiedNameOf(match))

	found, err = svc.FindByIdentities(ctx, nil, true)
	require.NoError(t, err)
	assert.Empty(t, found)
}
