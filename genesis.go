package custody

import (
	"encoding/json"

	"github.com/iov-one/custody/errors"
)

// Options is the app_state of the genesis file. Every extension reads its
// own top level key.
type Options map[string]json.RawMessage

// ReadOptions decodes the value under key into obj. A missing key leaves
// obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// InitializerFunc turns a function into an Initializer.
type InitializerFunc func(Options, KVStore) error

func (fn InitializerFunc) FromGenesis(opts Options, kv KVStore) error {
	return fn(opts, kv)
}

// MultiInit runs initializers in order and stops at the first error.
type MultiInit []Initializer

func (m MultiInit) FromGenesis(opts Options, kv KVStore) error {
	for _, ini := range m {
		if err := ini.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
