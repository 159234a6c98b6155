package casemap_test

import (
	"fmt"
	"sync"
	"testing"

	"atlan-sdk/core/casemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_GetIgnoresCase(t *testing.T) {
	m := casemap.New[int]()
	m.Put("QualifiedName", 1)

	v, ok := m.Get("qualifiedname")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = m.Get("QUALIFIEDNAME")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Get("name")
	assert.False(t, ok)
}

func TestMap_PutKeepsLatestCasing(t *testing.T) {
	m := casemap.New[string]()
	m.Put("Name", "a")
	m.Put("NAME", "b")

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"NAME"}, m.Keys())

	key, ok := m.Key("name")
	assert.True(t, ok)
	assert.Equal(t, "NAME", key)

	v, _ := m.Get("Name")
	assert.Equal(t, "b", v)
}

func TestMap_PutIfAbsent(t *testing.T) {
	m := casemap.New[string]()
	assert.True(t, m.PutIfAbsent("owner", "jsmith"))
	assert.False(t, m.PutIfAbsent("OWNER", "other"))

	v, _ := m.Get("owner")
	assert.Equal(t, "jsmith", v)
}

func TestMap_Delete(t *testing.T) {
	m := casemap.New[bool]()
	m.Put("Table", true)

	assert.True(t, m.Delete("TABLE"))
	assert.False(t, m.Delete("table"))
	assert.False(t, m.Has("Table"))
	assert.Equal(t, 0, m.Len())
}

func TestMap_RangeAndToMap(t *testing.T) {
	m := casemap.FromMap(map[string]int{"b": 2, "A": 1, "c": 3})

	var seen []string
	m.Range(func(key string, value int) bool {
		seen = append(seen, key)
		return key != "b"
	})
	assert.Equal(t, []string{"A", "b"}, seen)

	assert.Equal(t, map[string]int{"A": 1, "b": 2, "c": 3}, m.ToMap())
}

func TestMap_Merge(t *testing.T) {
	left := casemap.New[int]()
	left.Put("x", 1)
	right := casemap.New[int]()
	right.Put("X", 10)
	right.Put("y", 2)

	left.Merge(right)
	left.Merge(nil)
	left.Merge(left)

	assert.Equal(t, []string{"X", "y"}, left.Keys())
	v, _ := left.Get("x")
	assert.Equal(t, 10, v)
}

func TestMap_ConcurrentAccess(t *testing.T) {
	m := casemap.New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("Key%d", i%5)
			m.Put(key, i)
			m.Get(key)
			m.Keys()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, m.Len())
}

func TestMap_ZeroValue(t *testing.T) {
	var m casemap.Map[int]
	assert.False(t, m.Has("a"))
	assert.False(t, m.Delete("a"))

	m.Put("Key", 1)
	v, ok := m.Get("KEY")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	var other casemap.Map[int]
	assert.True(t, other.PutIfAbsent("x", 2))

	var merged casemap.Map[int]
	merged.Merge(&m)
	assert.Equal(t, map[string]int{"Key": 1}, merged.ToMap())
}
