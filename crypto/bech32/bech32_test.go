package bech32

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBech32(t *testing.T) {
	// payload is "test-payload"
	const enc = "tiov1w3jhxapdwpshjmr0v9jqymqq4y"

	hrp, payload, err := Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, "tiov", hrp)
	assert.Equal(t, []byte("test-payload"), payload)

	got, err := Encode("tiov", []byte("test-payload"))
	require.NoError(t, err)
	assert.Equal(t, enc, got)

	for _, bad := range []string{
		"tiov1w3jhxapdwpshjmr0v9jqymqq4z",
		"w3jhxapdwpshjmr0v9jqymqq4y",
		"",
	} {
		_, _, err := Decode(bad)
		assert.True(t, errors.ErrInput.Is(err), "%q: %v", bad, err)
	}
}
