package store

// SliceIterator walks a slice of pairs in slice order. Calling Next, Key or
// Value on an exhausted iterator panics.
type SliceIterator struct {
	pairs []Model
	pos   int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over pairs, which must be sorted in
// the iteration order.
func NewSliceIterator(pairs []Model) *SliceIterator {
	return &SliceIterator{pairs: pairs}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.pairs)
}

func (s *SliceIterator) Next() {
	s.current()
	s.pos++
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.pairs = nil
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("iterator exhausted")
	}
	return s.pairs[s.pos]
}

// EmptyKVStore holds no data and ignores writes. It is the bottom layer of
// an in memory store.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }

func (EmptyKVStore) Has([]byte) (bool, error) { return false, nil }

func (EmptyKVStore) Set(_, _ []byte) error { return nil }

func (EmptyKVStore) Delete([]byte) error { return nil }

func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a pending write: a set or a delete of a key.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

// Key returns the key the operation is applied to.
func (o Op) Key() []byte { return o.key }

// IsDelete returns true for a delete operation.
func (o Op) IsDelete() bool { return o.del }

// Apply performs the operation on out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch records writes and replays them on Write, in order. A
// failure half way leaves the earlier writes applied, so it may only wrap
// stores that are themselves discarded on failure, like an in memory cache.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch returns an empty batch writing to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, Op{key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{key: key, del: true})
	return nil
}

// Write applies all pending operations and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.Reset()
	return nil
}

// Reset drops all pending operations.
func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}

// ShowOps returns all pending operations, in order.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
