package custody_test

import (
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/weavetest/assert"
)

type staticQuery []custody.Model

func (q staticQuery) Query(custody.ReadOnlyKVStore, string, []byte) ([]custody.Model, error) {
	return q, nil
}

func TestQueryRouter(t *testing.T) {
	wallets := staticQuery{custody.Pair([]byte("1"), []byte("w"))}
	balances := staticQuery{}

	r := custody.NewQueryRouter()
	r.RegisterAll(
		func(r custody.QueryRouter) { r.Register("/wallets", wallets) },
		func(r custody.QueryRouter) { r.Register("/balances", balances) },
	)

	assert.Equal(t, []string{"/balances", "/wallets"}, r.Paths())
	assert.Equal(t, wallets, r.Handler("/wallets"))
	assert.Nil(t, r.Handler("/missing"))

	assert.Panics(t, func() { r.Register("/wallets", balances) })
	assert.Panics(t, func() { r.Register("wallets", balances) })
}
