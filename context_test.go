package custody

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockValuesAreSetOnce(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	_, ok = GetHeader(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { GetChainID(ctx) })

	ctx = WithHeight(ctx, 12)
	ctx = WithChainID(ctx, "custody-test")
	ctx = WithHeader(ctx, abci.Header{Height: 12})

	height, ok := GetHeight(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(12), height)
	assert.Equal(t, "custody-test", GetChainID(ctx))

	assert.Panics(t, func() { WithHeight(ctx, 13) })
	assert.Panics(t, func() { WithChainID(ctx, "custody-other") })
	assert.Panics(t, func() { WithHeader(ctx, abci.Header{Height: 13}) })
	assert.Panics(t, func() { WithChainID(context.Background(), "no;way") })
}

func TestLoggerCanBeReplaced(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	l := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, l)
	assert.Equal(t, l, GetLogger(ctx))

	ctx = WithHeight(ctx, 3)
	withInfo := WithLogInfo(ctx, "wallet", 1)
	assert.NotEqual(t, l, GetLogger(withInfo))
	// other values survive a logger change
	height, _ := GetHeight(withInfo)
	assert.Equal(t, int64(3), height)
}

func TestBlockTime(t *testing.T) {
	_, ok := BlockTime(context.Background())
	assert.False(t, ok)

	_, ok = BlockTime(WithHeader(context.Background(), abci.Header{Height: 1}))
	assert.False(t, ok, "zero time")

	now := time.Date(2019, 5, 1, 12, 0, 0, 0, time.UTC)
	got, ok := BlockTime(WithHeader(context.Background(), abci.Header{Time: now}))
	assert.True(t, ok)
	assert.Equal(t, now, got)
}

func TestIsValidChainID(t *testing.T) {
	valid := []string{"special", "wish-YOU-88", "a_b_c_d", "12345678901234567890"}
	invalid := []string{"", "foo", "invalid;;chars", "123456789012345678901", "with space"}
	for _, id := range valid {
		assert.True(t, IsValidChainID(id), id)
	}
	for _, id := range invalid {
		assert.False(t, IsValidChainID(id), id)
	}
}
