package codec

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Name string
}

func (i *inner) Marshal() ([]byte, error) {
	return NewBuffer().String(1, i.Name).Result()
}

func (i *inner) Unmarshal(raw []byte) error {
	return Decode(raw, func(f Field) error {
		if f.Number != 1 {
			return nil
		}
		var err error
		i.Name, err = f.String()
		return err
	})
}

func TestBufferAndDecode(t *testing.T) {
	raw, err := NewBuffer().
		Uint64(1, 42).
		Int64(2, -7).
		Bool(3, true).
		Bytes(4, []byte("addr")).
		RepeatedBytes(5, [][]byte{[]byte("a"), nil, []byte("c")}).
		Message(6, &inner{Name: "nested"}).
		Uint32(7, 3).
		Result()
	require.NoError(t, err)

	var (
		u      uint64
		i      int64
		b      bool
		bz     []byte
		list   [][]byte
		nested inner
		q      uint32
	)
	err = Decode(raw, func(f Field) error {
		var err error
		switch f.Number {
		case 1:
			u, err = f.Uint64()
		case 2:
			i, err = f.Int64()
		case 3:
			b, err = f.Bool()
		case 4:
			bz, err = f.Bytes()
		case 5:
			var v []byte
			v, err = f.Bytes()
			list = append(list, v)
		case 6:
			err = f.Message(&nested)
		case 7:
			q, err = f.Uint32()
		}
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), u)
	assert.Equal(t, int64(-7), i)
	assert.True(t, b)
	assert.Equal(t, []byte("addr"), bz)
	assert.Equal(t, [][]byte{[]byte("a"), {}, []byte("c")}, list)
	assert.Equal(t, "nested", nested.Name)
	assert.Equal(t, uint32(3), q)
}

func TestZeroValuesAreOmitted(t *testing.T) {
	raw, err := NewBuffer().
		Uint64(1, 0).
		Bool(2, false).
		Bytes(3, nil).
		String(4, "").
		Message(5, nil).
		Result()
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	// Field 9 is encoded using the fixed64 wire type and must be skipped.
	raw := append(proto.EncodeVarint(9<<3|WireFixed64), 1, 2, 3, 4, 5, 6, 7, 8)
	tail, err := (&inner{Name: "known"}).Marshal()
	require.NoError(t, err)
	raw = append(raw, tail...)

	var got inner
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, "known", got.Name)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string][]byte{
		"truncated length delimited": {1<<3 | WireBytes, 10, 'a'},
		"truncated fixed64":          {1<<3 | WireFixed64, 1, 2},
		"unsupported wire type":      {1<<3 | 3},
		"zero field number":          {0},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Decode(raw, func(Field) error { return nil })
			if !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}

func TestFieldTypeMismatch(t *testing.T) {
	raw, err := NewBuffer().String(1, "text").Result()
	require.NoError(t, err)

	err = Decode(raw, func(f Field) error {
		_, err := f.Uint64()
		return err
	})
	assert.True(t, errors.ErrInput.Is(err))
}
