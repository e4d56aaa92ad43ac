package app

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store/iavl"
)

const greetingKey = "greeting"

// greetingInit stores the greeting option under the raw "greeting" key.
type greetingInit struct {
	called int
}

func (g *greetingInit) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	g.called++
	var value string
	if err := opts.ReadOptions(greetingKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(greetingKey), []byte(value))
}

// rawQuery serves the store content without any key prefix.
type rawQuery struct{}

func (rawQuery) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		v, err := db.Get(data)
		if err != nil || v == nil {
			return nil, err
		}
		return []custody.Model{custody.Pair(data, v)}, nil
	case custody.PrefixQueryMod:
		start, end := orm.PrefixRange(data)
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		return orm.ConsumeIterator(it), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod %q", mod)
	}
}

func newStoreApp(t testing.TB, init custody.Initializer) *StoreApp {
	t.Helper()
	qr := custody.NewQueryRouter()
	qr.Register("/raw", rawQuery{})
	return NewStoreApp("custody", iavl.MemCommitStore(), qr, context.Background()).WithInit(init)
}
