package custody

// ReadOnlyKVStore reads from a key value store. A missing key reads as a
// nil value. A nil key is a programming error and panics.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks the keys of [start, end) in ascending order. A nil
	// bound leaves that side open. Writing to the range while an iterator
	// is open is not allowed.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator is Iterator in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes to a key value store. A nil key panics.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the read write store handed to handlers.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator is a cursor over a key range:
//
//	it, err := db.Iterator(start, end)
//	if err != nil {
//		return err
//	}
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		use(it.Key(), it.Value())
//	}
//
// Next, Key and Value panic once Valid returned false. The returned slices
// must not be modified.
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack an uncommitted scratch pad on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap collects writes on top of its parent store, like a savepoint
// in SQL. Write applies them to the parent, Discard drops them. A cache can
// be wrapped again.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent, versioned state of the chain. Reads see
// the last committed version, writes go through a CacheWrap.
type CommitKVStore interface {
	ReadOnlyKVStore
	CacheWrap() KVCacheWrap

	// Commit saves the written state as the next version.
	Commit() (CommitID, error)
	// LoadLatestVersion loads the newest complete version from disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
