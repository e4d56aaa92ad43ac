package utils

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Savepoint runs the rest of the chain on a cache wrap of the store. The
// changes are written only when the transaction succeeds. It is disabled
// until OnCheck or OnDeliver selects the phases it applies to.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ custody.Decorator = Savepoint{}

// NewSavepoint returns a savepoint that applies to no phase.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *custody.CheckResult
	err := RunAtomic(db, func(cache custody.KVStore) (err error) {
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *custody.DeliverResult
	err := RunAtomic(db, func(cache custody.KVStore) (err error) {
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RunAtomic runs fn on a cache wrap of the store. The changes are written
// only if fn succeeds, otherwise none of them is visible in the store.
// Stores that cannot be cache wrapped are used directly.
func RunAtomic(db custody.KVStore, fn func(custody.KVStore) error) error {
	cstore, ok := db.(custody.CacheableKVStore)
	if !ok {
		return fn(db)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
