package sigs

import (
	"testing"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerBucket(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	u, err := b.Load(db, pub.Address())
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = b.LoadOrCreate(db, pub)
	require.NoError(t, err)
	require.Equal(t, &UserData{Pubkey: pub}, u)

	// nothing is written until the state is stored
	u, err = b.Load(db, pub.Address())
	require.NoError(t, err)
	assert.Nil(t, u)

	u = &UserData{Pubkey: pub}
	require.NoError(t, u.CheckAndIncrementSequence(0))
	require.NoError(t, u.CheckAndIncrementSequence(1))
	require.NoError(t, b.Store(db, u))

	loaded, err := b.LoadOrCreate(db, pub)
	require.NoError(t, err)
	assert.Equal(t, u, loaded)

	err = b.Store(db, &UserData{Sequence: 3})
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := UserData{Pubkey: crypto.GenPrivKeyEd25519().PublicKey(), Sequence: 4}

	err := u.CheckAndIncrementSequence(5)
	assert.True(t, ErrInvalidSequence.Is(err))
	err = u.CheckAndIncrementSequence(3)
	assert.True(t, ErrInvalidSequence.Is(err))
	assert.Equal(t, int64(4), u.Sequence)

	require.NoError(t, u.CheckAndIncrementSequence(4))
	assert.Equal(t, int64(5), u.Sequence)

	u.Sequence = maxSequenceValue
	err = u.CheckAndIncrementSequence(maxSequenceValue)
	assert.True(t, errors.ErrOverflow.Is(err))
	assert.Equal(t, int64(maxSequenceValue), u.Sequence)
}

func TestUserDataValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	cases := map[string]struct {
		user    UserData
		wantErr *errors.Error
	}{
		"fresh key":    {user: UserData{Pubkey: pub}},
		"used key":     {user: UserData{Pubkey: pub, Sequence: 17}},
		"negative":     {user: UserData{Pubkey: pub, Sequence: -30}, wantErr: ErrInvalidSequence},
		"out of range": {user: UserData{Pubkey: pub, Sequence: maxSequenceValue + 1}, wantErr: errors.ErrOverflow},
		"missing key":  {user: UserData{Sequence: 2}, wantErr: errors.ErrEmpty},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.user.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}
		})
	}
}
