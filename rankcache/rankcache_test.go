// SPDX-License-Identifier: MIT

package rankcache_test

import (
	"math/big"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactla/rankcache"
)

func exercise(t *testing.T, c rankcache.Cache) {
	t.Helper()
	k1 := rankcache.Key(42, big.NewInt(3), 4)
	k2 := rankcache.Key(42, big.NewInt(3), 5)

	_, ok, err := c.Get(k1)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Put(k1, []int{1, 2, 2, 3}))
	got, ok, err := c.Get(k1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 2, 3}, got)

	_, ok, err = c.Get(k2)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Put(k2, []int{}))
	got, ok, err = c.Get(k2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, got)
}

func TestMemory(t *testing.T) {
	c := rankcache.Memory()
	defer c.Close()
	exercise(t, c)
}

func TestPebbleRoundTripAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	c, err := rankcache.OpenPebble(dir)
	require.NoError(t, err)
	exercise(t, c)
	require.NoError(t, c.Close())

	c, err = rankcache.OpenPebble(dir)
	require.NoError(t, err)
	defer c.Close()
	got, ok, err := c.Get(rankcache.Key(42, big.NewInt(3), 4))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 2, 3}, got)
}

func TestKeyDistinguishesInputs(t *testing.T) {
	a := rankcache.Key(1, big.NewInt(257), 2)
	require.NotEqual(t, a, rankcache.Key(2, big.NewInt(257), 2))
	require.NotEqual(t, a, rankcache.Key(1, big.NewInt(263), 2))
	require.NotEqual(t, a, rankcache.Key(1, big.NewInt(257), 3))
}

func TestPebbleCollector(t *testing.T) {
	c, err := rankcache.OpenPebble(t.TempDir())
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Put(rankcache.Key(1, big.NewInt(2), 1), []int{3}))

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c.Collector()))
	require.Equal(t, 6, testutil.CollectAndCount(c.Collector()))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	require.Contains(t, names, "exactla_rankcache_wal_bytes_in_total")
}
