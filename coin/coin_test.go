package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCoin(t *testing.T) {
	ordered := []Coin{
		NewCoin(-4, -4567, "ETH"),
		NewCoin(-4, -2456, "ETH"),
		NewCoin(0, -2, "ETH"),
		{},
		NewCoin(0, 1, "ETH"),
		NewCoin(19, 999999999, "ETH"),
		NewCoin(20, 1234, "ETH"),
	}
	for i, a := range ordered {
		for j, b := range ordered {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			assert.Equal(t, want, a.Compare(b), "compare %s with %s", a, b)
		}
	}
}

func TestParseHumanFormat(t *testing.T) {
	got, err := ParseHumanFormat("  12.05 IOV ")
	require.NoError(t, err)
	assert.Equal(t, NewCoin(12, 50000000, "IOV"), got)

	_, err = ParseHumanFormat("1000000000000000 IOV")
	assert.True(t, errors.ErrOverflow.Is(err))
	_, err = ParseHumanFormat("7")
	assert.True(t, errors.ErrCurrency.Is(err))
	_, err = ParseHumanFormat("seven IOV")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddCoin(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"whole and fractional": {
			a:    NewCoin(10, 0, "ETH"),
			b:    NewCoin(1, 500000000, "ETH"),
			want: NewCoin(11, 500000000, "ETH"),
		},
		"fractional carry": {
			a:    NewCoin(0, 700000000, "ETH"),
			b:    NewCoin(0, 600000000, "ETH"),
			want: NewCoin(1, 300000000, "ETH"),
		},
		"subtract to negative fraction": {
			a:    NewCoin(1, 0, "ETH"),
			b:    NewCoin(-1, -1, "ETH"),
			want: NewCoin(0, -1, "ETH"),
		},
		"zero without ticker is neutral": {
			a:    Coin{},
			b:    NewCoin(3, 0, "ETH"),
			want: NewCoin(3, 0, "ETH"),
		},
		"currency mismatch": {
			a:       NewCoin(1, 0, "ETH"),
			b:       NewCoin(1, 0, "BTC"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(MaxInt, 0, "ETH"),
			b:       NewCoin(1, 0, "ETH"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	balance := NewCoin(10, 0, "ETH")
	got, err := balance.Subtract(NewCoin(1, 0, "ETH"))
	require.NoError(t, err)
	assert.Equal(t, NewCoin(9, 0, "ETH"), got)
	assert.True(t, got.IsPositive())

	got, err = got.Subtract(NewCoin(9, 1, "ETH"))
	require.NoError(t, err)
	assert.False(t, got.IsNonNegative())
}

func TestCoinPredicates(t *testing.T) {
	assert.True(t, Coin{}.IsZero())
	assert.True(t, NewCoin(0, 0, "ETH").IsZero())
	assert.False(t, NewCoin(0, 1, "ETH").IsZero())

	assert.True(t, NewCoin(0, 1, "ETH").IsPositive())
	assert.False(t, NewCoin(0, 0, "ETH").IsPositive())
	assert.False(t, NewCoin(-1, 0, "ETH").IsPositive())

	assert.True(t, NewCoin(0, 0, "ETH").IsNonNegative())
	assert.False(t, NewCoin(0, -1, "ETH").IsNonNegative())

	assert.True(t, NewCoin(2, 0, "ETH").IsGTE(NewCoin(1, 999999999, "ETH")))
	assert.True(t, NewCoin(2, 0, "ETH").IsGTE(NewCoin(2, 0, "ETH")))
	assert.False(t, NewCoin(2, 0, "ETH").IsGTE(NewCoin(2, 1, "ETH")))
	assert.False(t, NewCoin(5, 0, "ETH").IsGTE(NewCoin(1, 0, "BTC")))
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		field   string
		wantErr *errors.Error
	}{
		"valid": {
			coin: NewCoin(1, 5, "ETH"),
		},
		"missing ticker": {
			coin:    NewCoin(1, 0, ""),
			field:   "Ticker",
			wantErr: errors.ErrCurrency,
		},
		"whole overflow": {
			coin:    NewCoin(MaxInt+1, 0, "ETH"),
			field:   "Whole",
			wantErr: errors.ErrOverflow,
		},
		"fractional overflow": {
			coin:    NewCoin(1, FracUnit, "ETH"),
			field:   "Fractional",
			wantErr: errors.ErrOverflow,
		},
		"mismatched sign": {
			coin:    NewCoin(1, -5, "ETH"),
			field:   "Fractional",
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			errs := errors.FieldErrors(err, tc.field)
			require.Len(t, errs, 1)
			assert.True(t, tc.wantErr.Is(errs[0]))
		})
	}
}

func TestCoinSerialization(t *testing.T) {
	c := NewCoin(-7, -123, "ETH")
	raw, err := c.Marshal()
	require.NoError(t, err)

	var got Coin
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, c, got)
}

func TestCoinDeserializationJSON(t *testing.T) {
	cases := map[string]struct {
		serialized string
		wantErr    bool
		wantCoin   Coin
	}{
		"object format": {
			serialized: `{"whole": 1, "fractional": 2, "ticker": "ETH"}`,
			wantCoin:   NewCoin(1, 2, "ETH"),
		},
		"object format, only whole": {
			serialized: `{"whole": 1}`,
			wantCoin:   NewCoin(1, 0, ""),
		},
		"human readable, whole": {
			serialized: `"10 ETH"`,
			wantCoin:   NewCoin(10, 0, "ETH"),
		},
		"human readable, no space": {
			serialized: `"1ETH"`,
			wantCoin:   NewCoin(1, 0, "ETH"),
		},
		"human readable, fractional": {
			serialized: `"1.000000002 ETH"`,
			wantCoin:   NewCoin(1, 2, "ETH"),
		},
		"human readable, short fractional": {
			serialized: `"0.5 ETH"`,
			wantCoin:   NewCoin(0, 500000000, "ETH"),
		},
		"human readable, negative": {
			serialized: `"-4.000000002 ETH"`,
			wantCoin:   NewCoin(-4, -2, "ETH"),
		},
		"zero without ticker": {
			serialized: `"0"`,
			wantCoin:   Coin{},
		},
		"too precise": {
			serialized: `"0.0000000001 ETH"`,
			wantErr:    true,
		},
		"missing whole": {
			serialized: `".5 ETH"`,
			wantErr:    true,
		},
		"missing ticker": {
			serialized: `"1.5"`,
			wantErr:    true,
		},
		"ticker too long": {
			serialized: `"1 ABCDE"`,
			wantErr:    true,
		},
		"double negative": {
			serialized: `"--1 ETH"`,
			wantErr:    true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Coin
			err := json.Unmarshal([]byte(tc.serialized), &got)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCoin, got)
		})
	}
}

func TestCoinString(t *testing.T) {
	cases := map[string]struct {
		c    Coin
		want string
	}{
		"zero coin":               {c: Coin{}, want: "0"},
		"zero coin with a ticker": {c: Coin{Ticker: "ETH"}, want: "0 ETH"},
		"ten":                     {c: NewCoin(10, 0, "ETH"), want: "10 ETH"},
		"minus one":               {c: NewCoin(-1, 0, "ETH"), want: "-1 ETH"},
		"a penny":                 {c: NewCoin(0, FracUnit/100, "ETH"), want: "0.01 ETH"},
		"negative fraction":       {c: NewCoin(0, -2, "ETH"), want: "-0.000000002 ETH"},
		"biggest coin":            {c: NewCoin(MaxInt, MaxFrac, "ETH"), want: "999999999999999.999999999 ETH"},
		"not normalized":          {c: NewCoin(2, 3*FracUnit/2, "ETH"), want: "3.5 ETH"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c.String())

			if tc.c.Ticker == "" {
				return
			}
			raw, err := json.Marshal(tc.c)
			require.NoError(t, err)
			var back Coin
			require.NoError(t, json.Unmarshal(raw, &back))
			n, err := tc.c.normalize()
			require.NoError(t, err)
			assert.Equal(t, n, back)
		})
	}
}
