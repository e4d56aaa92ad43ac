package store

import (
	"bytes"
)

// mergedIterator walks the cached entries and the parent iterator side by
// side. On equal keys the cached entry wins, and deleted entries are
// skipped together with the parent value they hide.
//
// The iterator is always positioned on the next pair to return.
type mergedIterator struct {
	cached     []entry
	under      Iterator
	descending bool

	key, value []byte
	valid      bool
}

var _ Iterator = (*mergedIterator)(nil)

func newMergedIterator(cached []entry, under Iterator, descending bool) *mergedIterator {
	it := &mergedIterator{cached: cached, under: under, descending: descending}
	it.advance()
	return it
}

// before reports whether key a comes before key b in iteration order.
func (it *mergedIterator) before(a, b []byte) bool {
	c := bytes.Compare(a, b)
	if it.descending {
		return c > 0
	}
	return c < 0
}

// advance moves to the next visible pair, or invalidates the iterator.
func (it *mergedIterator) advance() {
	for {
		haveCached, haveUnder := len(it.cached) > 0, it.under.Valid()
		if !haveCached && !haveUnder {
			it.key, it.value, it.valid = nil, nil, false
			return
		}

		if !haveCached || (haveUnder && it.before(it.under.Key(), it.cached[0].key)) {
			it.key, it.value, it.valid = it.under.Key(), it.under.Value(), true
			it.under.Next()
			return
		}

		e := it.cached[0]
		it.cached = it.cached[1:]
		if haveUnder && bytes.Equal(it.under.Key(), e.key) {
			it.under.Next()
		}
		if !e.deleted {
			it.key, it.value, it.valid = e.key, e.value, true
			return
		}
	}
}

func (it *mergedIterator) Valid() bool {
	return it.valid
}

// Next panics when the iterator is exhausted.
func (it *mergedIterator) Next() {
	it.mustBeValid()
	it.advance()
}

func (it *mergedIterator) Key() []byte {
	it.mustBeValid()
	return it.key
}

func (it *mergedIterator) Value() []byte {
	it.mustBeValid()
	return it.value
}

func (it *mergedIterator) Close() {
	it.under.Close()
	it.cached = nil
	it.valid = false
}

func (it *mergedIterator) mustBeValid() {
	if !it.valid {
		panic("store: iterator exhausted")
	}
}
