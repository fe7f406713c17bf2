package cache

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/TAGKey/pkg/compose"
	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

func testResult() *compose.Result {
	return &compose.Result{
		Samples: []core.Metadata{{Name: "A", SourceFile: "a.csv"}, {Name: "B"}},
		Columns: []compose.Column{
			{
				Composition: composition.ECNC,
				Entries: []compose.Entry{
					{Key: composition.NumberKey(48), Value: compose.Stat{Mean: 0.65, StandardDeviation: 0.07, Count: 2}},
					{Key: composition.NumberKey(46), Value: compose.Stat{Mean: 0.35, StandardDeviation: math.NaN(), Count: 1}},
				},
			},
			{
				Composition: composition.PSC,
				Entries: []compose.Entry{
					{Key: composition.TextKey("OPP"), Value: compose.Stat{Mean: 0.3, Count: 2}},
					{Key: composition.TextKey("LPP"), Value: compose.Stat{Mean: 0.35, Count: 1}},
				},
			},
		},
	}
}

func testCaches(t *testing.T) map[string]Cache {
	t.Helper()
	mem, err := NewMemory(4)
	require.NoError(t, err)
	bdg, err := NewBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		mem.Close()
		bdg.Close()
	})
	return map[string]Cache{"memory": mem, "badger": bdg}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := c.Get(ctx, 42)
			require.NoError(t, err)
			require.False(t, ok)

			want := testResult()
			require.NoError(t, c.Put(ctx, 42, want))

			got, ok, err := c.Get(ctx, 42)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, want.Samples, got.Samples)
			require.Len(t, got.Columns, 2)
			require.Equal(t, composition.PSC, got.Columns[1].Composition)
			require.Equal(t, "OPP", got.Columns[1].Entries[0].Key.String())
			require.True(t, got.Columns[0].Entries[0].Key.IsNumeric())
			require.InDelta(t, 0.65, got.Columns[0].Entries[0].Value.Mean, 1e-12)
			require.True(t, math.IsNaN(got.Columns[0].Entries[1].Value.StandardDeviation))

			_, ok, err = c.Get(ctx, 43)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestCacheCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			require.Error(t, c.Put(ctx, 1, testResult()))
			_, _, err := c.Get(ctx, 1)
			require.Error(t, err)
		})
	}
}

func TestMemoryEviction(t *testing.T) {
	ctx := context.Background()
	mem, err := NewMemory(2)
	require.NoError(t, err)

	for key := uint64(1); key <= 3; key++ {
		require.NoError(t, mem.Put(ctx, key, testResult()))
	}
	require.Equal(t, 2, mem.Len())

	_, ok, err := mem.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok, "oldest entry is evicted")

	_, err = NewMemory(0)
	require.Error(t, err)
}

func TestBadgerPersistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, 7, testResult()))
	require.NoError(t, first.Close())

	second, err := NewBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer second.Close()

	got, ok, err := second.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "A", got.Samples[0].Name)
}
