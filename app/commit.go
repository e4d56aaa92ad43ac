package app

import (
	"sync"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// CommitStore splits the committed state into two scratch pads, one for
// the transactions of the current block and one for mempool checks. Both
// are replaced after every commit.
type CommitStore struct {
	// mu keeps queries from reading while a block is committed.
	mu        sync.RWMutex
	committed custody.CommitKVStore
	deliver   custody.KVCacheWrap
	check     custody.KVCacheWrap
}

// NewCommitStore loads the latest version of kv.
func NewCommitStore(kv custody.CommitKVStore) (*CommitStore, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cs := &CommitStore{committed: kv}
	cs.reset()
	return cs, nil
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and hash of the last commit.
func (cs *CommitStore) CommitInfo() (custody.CommitID, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.committed.LatestVersion()
}

// Commit persists the deliver state as a new version. Changes only made to
// the check state are dropped.
func (cs *CommitStore) Commit() (custody.CommitID, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.deliver.Write(); err != nil {
		return custody.CommitID{}, errors.Wrap(err, "write block state")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

// ReadCommitted runs fn on the last committed state. Commit waits until fn
// returns.
func (cs *CommitStore) ReadCommitted(fn func(custody.ReadOnlyKVStore) error) error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return fn(cs.committed)
}

func (cs *CommitStore) CheckStore() custody.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() custody.CacheableKVStore {
	return cs.deliver
}

// chainIDKey holds the chain id. The "_cs:" prefix cannot collide with a
// bucket, whose names are lower case letters only.
var chainIDKey = []byte("_cs:chainID")

// loadChainID returns the stored chain id, or "" before genesis.
func loadChainID(kv custody.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID stores the chain id. It can be written only once.
func saveChainID(kv custody.KVStore, chainID string) error {
	if !custody.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch stored, err := loadChainID(kv); {
	case err != nil:
		return err
	case stored != "":
		return errors.Wrapf(errors.ErrUnauthorized, "chain id already set to %s", stored)
	}
	return errors.Wrap(kv.Set(chainIDKey, []byte(chainID)), "save chain id")
}
