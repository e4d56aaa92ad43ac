package store

import (
	custody "github.com/iov-one/custody"
)

// References for all storage types, for shorter names in this package.

type (
	ReadOnlyKVStore  = custody.ReadOnlyKVStore
	SetDeleter       = custody.SetDeleter
	KVStore          = custody.KVStore
	Iterator         = custody.Iterator
	CacheableKVStore = custody.CacheableKVStore
	KVCacheWrap      = custody.KVCacheWrap
	CommitKVStore    = custody.CommitKVStore
	CommitID         = custody.CommitID
	Model            = custody.Model
)

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
}
