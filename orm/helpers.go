package orm

import (
	custody "github.com/iov-one/custody"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr custody.Iterator) []custody.Model {
	defer itr.Close()

	var res []custody.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, custody.Pair(itr.Key(), itr.Value()))
	}
	return res
}

// PrefixRange turns a prefix into a (start, end) range. The end is
// exclusive. A nil end means there is no upper bound.
func PrefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	start := append([]byte(nil), prefix...)
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}

func queryPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([]custody.Model, error) {
	itr, err := db.Iterator(PrefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr), nil
}
