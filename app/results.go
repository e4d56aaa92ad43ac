package app

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

// ResultSet is the encoding of the Key or the Value field of a query
// response. Entry i of the keys set belongs to entry i of the values set.
type ResultSet struct {
	Results [][]byte
}

// Marshal writes every entry as field 1, in order.
func (r *ResultSet) Marshal() ([]byte, error) {
	return codec.NewBuffer().RepeatedBytes(1, r.Results).Result()
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	var results [][]byte
	err := codec.Decode(raw, func(f codec.Field) error {
		if f.Number != 1 {
			return nil
		}
		b, err := f.Bytes()
		results = append(results, b)
		return err
	})
	r.Results = results
	return err
}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []custody.Model) *ResultSet {
	return project(models, func(m custody.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []custody.Model) *ResultSet {
	return project(models, func(m custody.Model) []byte { return m.Value })
}

func project(models []custody.Model, field func(custody.Model) []byte) *ResultSet {
	out := make([][]byte, 0, len(models))
	for _, m := range models {
		out = append(out, field(m))
	}
	return &ResultSet{Results: out}
}

// JoinResults pairs the decoded keys and values of a query response.
func JoinResults(keys, values *ResultSet) ([]custody.Model, error) {
	if n, m := len(keys.Results), len(values.Results); n != m {
		return nil, errors.Wrapf(errors.ErrState, "%d keys but %d values", n, m)
	}
	models := make([]custody.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = custody.Pair(k, values.Results[i])
	}
	return models, nil
}
