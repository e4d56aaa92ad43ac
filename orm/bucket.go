/*
Package orm provides an easy to use db wrapper

The state space is split into prefixed sections called buckets. Each bucket
stores models of a single type under a primary key prefixed with the bucket
name, and can be queried by key or by key prefix.
*/
package orm

import (
	"fmt"
	"regexp"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// keyspace is the raw, untyped part of a bucket: a name and the key prefix
// derived from it.
type keyspace struct {
	name   string
	prefix []byte
}

var _ custody.QueryHandler = keyspace{}

func newKeyspace(name string) keyspace {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return keyspace{name: name, prefix: []byte(name + ":")}
}

// dbKey returns a freshly allocated prefixed key.
func (k keyspace) dbKey(key []byte) []byte {
	out := make([]byte, 0, len(k.prefix)+len(key))
	out = append(out, k.prefix...)
	return append(out, key...)
}

// register exposes the keyspace under "/"+name, defaulting to the bucket
// name.
func (k keyspace) register(name string, r custody.QueryRouter) {
	if name == "" {
		name = k.name
	}
	r.Register("/"+name, k)
}

// Query returns raw database pairs. Keys are returned with the bucket
// prefix. A key miss is an empty result, not an error.
func (k keyspace) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		key := k.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, nil
		}
		return []custody.Model{custody.Pair(key, value)}, nil
	case custody.PrefixQueryMod:
		return queryPrefix(db, k.dbKey(data))
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
}

func (k keyspace) get(db custody.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(k.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return raw, nil
}

func (k keyspace) set(db custody.KVStore, key, value []byte) error {
	if err := db.Set(k.dbKey(key), value); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (k keyspace) delete(db custody.KVStore, key []byte) error {
	if err := db.Delete(k.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
