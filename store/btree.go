package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/custody/errors"
)

// btreeDegree is the node degree of every cache tree.
const btreeDegree = 2

// MemStore returns an in memory store without persistence, used by tests
// and tools.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, NewNonAtomicBatch(empty), nil)
}

// BTreeCacheable gives any KVStore a CacheWrap method.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, NewNonAtomicBatch(b.KVStore), nil)
}

// BTreeCacheWrap keeps uncommitted writes in a btree on top of a read only
// view of the parent store. Every write is also queued in batch, which
// Write flushes into the parent.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap creates an empty cache over parent. Nested caches share
// free, a nil free list allocates a new one.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(btreeDegree, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap stacks a new cache on this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b), b.free)
}

// Write flushes all cached writes into the parent and empties the cache.
func (b BTreeCacheWrap) Write() error {
	if err := b.batch.Write(); err != nil {
		return errors.Wrap(err, "flush cache")
	}
	b.Discard()
	return nil
}

// Discard drops all cached writes.
func (b BTreeCacheWrap) Discard() {
	b.tree.Clear(true)
	if r, ok := b.batch.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.put(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.put(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) put(e entry) {
	if e.key == nil {
		panic("store: nil key")
	}
	b.tree.ReplaceOrInsert(e)
}

// lookup returns the cached entry of key, if any.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := b.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.lookup(key); ok {
		return e.value, nil
	}
	return b.parent.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.lookup(key); ok {
		return !e.deleted, nil
	}
	return b.parent.Has(key)
}

// Iterator walks [start, end) in ascending order, merging the cache with
// the parent. A nil bound is open.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	under, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergedIterator(b.entries(start, end), under, false), nil
}

// ReverseIterator is Iterator in descending order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	under, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	cached := b.entries(start, end)
	for l, r := 0, len(cached)-1; l < r; l, r = l+1, r-1 {
		cached[l], cached[r] = cached[r], cached[l]
	}
	return newMergedIterator(cached, under, true), nil
}

// entries copies the cached entries within [start, end) in ascending
// order, so later writes do not disturb a running iterator.
func (b BTreeCacheWrap) entries(start, end []byte) []entry {
	var found []entry
	visit := func(i btree.Item) bool {
		found = append(found, i.(entry))
		return true
	}
	lo, hi := entry{key: start}, entry{key: end}
	switch {
	case start != nil && end != nil:
		b.tree.AscendRange(lo, hi, visit)
	case start != nil:
		b.tree.AscendGreaterOrEqual(lo, visit)
	case end != nil:
		b.tree.AscendLessThan(hi, visit)
	default:
		b.tree.Ascend(visit)
	}
	return found
}

// entry is a cached write. A deleted entry hides the key of the parent.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
