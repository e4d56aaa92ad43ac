package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCommitStoreCacheWrap(t *testing.T) {
	commit := MemCommitStore()

	k, v := []byte("wallet:1"), []byte("data")
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set(k, v))
	assertGetHas(t, cache, k, v, true)
	assertGetHas(t, commit, k, nil, false)

	// discarded writes never reach the tree
	other := commit.CacheWrap()
	require.NoError(t, other.Set([]byte("nope"), []byte("x")))
	other.Discard()

	require.NoError(t, cache.Write())
	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	assertGetHas(t, commit, k, v, true)
	assertGetHas(t, commit, []byte("nope"), nil, false)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestCommitStoreIterator(t *testing.T) {
	commit := MemCommitStore()
	cache := commit.CacheWrap()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set([]byte(k), []byte(k)))
	}
	require.NoError(t, cache.Write())
	_, err := commit.Commit()
	require.NoError(t, err)

	it, err := commit.Iterator([]byte("b"), nil)
	require.NoError(t, err)
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"b", "c"}, keys)

	it, err = commit.ReverseIterator(nil, []byte("c"))
	require.NoError(t, err)
	keys = nil
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"b", "a"}, keys)
}

func TestCommitStorePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "custody-iavl-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("owner"), []byte("alice")))
	require.NoError(t, cache.Write())
	want, err := commit.Commit()
	require.NoError(t, err)

	// loading the persisted versions keeps the committed state
	require.NoError(t, commit.LoadLatestVersion())
	got, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assertGetHas(t, commit, []byte("owner"), []byte("alice"), true)
}
