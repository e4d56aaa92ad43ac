package orm

import (
	"reflect"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Model is implemented by any entity that can be stored using a bucket.
type Model interface {
	custody.Persistent
	Validate() error
	Copy() Model
}

// ModelBucket stores models of a single type under a primary key.
type ModelBucket interface {
	// One loads the model stored under key into dest. ErrNotFound is
	// returned if there is no such entity and ErrType if dest cannot
	// hold the stored type.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// ByPrefix loads all models whose key starts with given prefix, in
	// ascending key order, into the destination that must be a pointer
	// to a slice of models. The keys are returned in the same order.
	ByPrefix(db custody.ReadOnlyKVStore, prefix []byte, dest interface{}) ([][]byte, error)

	// Has returns nil if an entity with given key exists, ErrNotFound
	// otherwise.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// Put validates and saves given model.
	Put(db custody.KVStore, key []byte, m Model) error

	// Delete removes the entity stored under key. ErrNotFound is returned
	// if there is none.
	Delete(db custody.KVStore, key []byte) error

	// Register exposes the raw bucket content to queries. An empty name
	// registers the bucket name.
	Register(name string, r custody.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance that stores models of the
// same type as m. It panics if the name is not a valid bucket name.
func NewModelBucket(name string, m Model) ModelBucket {
	t := reflect.TypeOf(m)
	if t == nil || t.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	return &modelBucket{ks: newKeyspace(name), model: t}
}

type modelBucket struct {
	ks    keyspace
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

// decode returns a new *model filled with raw.
func (mb *modelBucket) decode(raw []byte) (reflect.Value, error) {
	v := reflect.New(mb.model.Elem())
	if err := v.Interface().(Model).Unmarshal(raw); err != nil {
		return reflect.Value{}, errors.Wrapf(err, "parse %s", mb.ks.name)
	}
	return v, nil
}

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := mb.ks.get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	v, err := mb.decode(raw)
	if err != nil {
		return err
	}
	reflect.ValueOf(dest).Elem().Set(v.Elem())
	return nil
}

func (mb *modelBucket) ByPrefix(db custody.ReadOnlyKVStore, prefix []byte, dest interface{}) ([][]byte, error) {
	dst := reflect.ValueOf(dest)
	if dst.Kind() != reflect.Ptr || dst.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", dest)
	}
	sl := dst.Elem()
	elem := sl.Type().Elem()
	var pointers bool
	switch mb.model {
	case elem:
		pointers = true
	case reflect.PtrTo(elem):
	default:
		return nil, errors.Wrapf(errors.ErrType, "%s cannot contain %s", sl.Type(), mb.model)
	}

	pairs, err := queryPrefix(db, mb.ks.dbKey(prefix))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	keys := make([][]byte, 0, len(pairs))
	for _, p := range pairs {
		v, err := mb.decode(p.Value)
		if err != nil {
			return nil, err
		}
		if !pointers {
			v = v.Elem()
		}
		sl = reflect.Append(sl, v)
		keys = append(keys, p.Key[len(mb.ks.prefix):])
	}
	dst.Elem().Set(sl)
	return keys, nil
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.ks.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	}
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T in a bucket of %s", m, mb.model)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	return mb.ks.set(db, key, raw)
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.ks.delete(db, key)
}

func (mb *modelBucket) Register(name string, r custody.QueryRouter) {
	mb.ks.register(name, r)
}
