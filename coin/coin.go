/*
Package coin implements the native value unit moved by the custody wallets.

A Coin is a fixed point number with nine decimal places, kept as a whole and
a fractional part, together with the ticker of the currency it is
denominated in. An application uses exactly one ticker.
*/
package coin

import (
	"regexp"

	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

// IsCC reports whether s is a valid currency ticker.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Value limits. The fractional part counts billionths of the whole.
const (
	MaxInt int64 = 999999999999999
	MinInt       = -MaxInt

	FracUnit int64 = 1000000000
	MaxFrac        = FracUnit - 1
	MinFrac        = -MaxFrac
)

// Coin is an amount of a single currency. Both parts of a normalized coin
// have the same sign.
type Coin struct {
	Whole      int64  `json:"whole,omitempty"`
	Fractional int64  `json:"fractional,omitempty"`
	Ticker     string `json:"ticker,omitempty"`
}

// NewCoin creates a new coin object
func NewCoin(whole, fractional int64, ticker string) Coin {
	return Coin{Whole: whole, Fractional: fractional, Ticker: ticker}
}

// NewCoinp is NewCoin returning a pointer.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

// Add returns the sum of both coins. A zero coin without a ticker adds to
// any currency. Other currency mismatches fail with ErrCurrency, results
// out of range with ErrOverflow.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case c.IsZero() && c.Ticker == "":
		return o, nil
	case o.IsZero() && o.Ticker == "":
		return c, nil
	case !c.SameType(o):
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Ticker, c.Ticker)
	}
	sum := Coin{Whole: c.Whole + o.Whole, Fractional: c.Fractional + o.Fractional, Ticker: c.Ticker}
	return sum.normalize()
}

// Subtract returns c minus o, with the same rules as Add.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the coin with the opposite value.
func (c Coin) Negative() Coin {
	return Coin{Whole: -c.Whole, Fractional: -c.Fractional, Ticker: c.Ticker}
}

// Compare orders two normalized coins by value, ignoring the ticker. It
// returns -1, 0 or 1.
func (c Coin) Compare(o Coin) int {
	if d := sign(c.Whole - o.Whole); d != 0 {
		return d
	}
	return sign(c.Fractional - o.Fractional)
}

func sign(n int64) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsZero returns true if the value is zero, whatever the ticker.
func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

// IsPositive returns true if the value is greater than 0
func (c Coin) IsPositive() bool {
	return c.Compare(Coin{}) > 0
}

// IsNonNegative returns true if the value is 0 or higher
func (c Coin) IsNonNegative() bool {
	return c.Whole >= 0 && c.Fractional >= 0
}

// IsGTE returns true if c is of the same currency and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Compare(o) >= 0
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Validate checks the ticker and the range and sign of both parts.
// Negative values are valid, it is up to the caller to reject them.
func (c Coin) Validate() error {
	var errs error
	if !IsCC(c.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker))
	}
	if c.Whole < MinInt || c.Whole > MaxInt {
		errs = errors.AppendField(errs, "Whole", errors.ErrOverflow)
	}
	if c.Fractional < MinFrac || c.Fractional > MaxFrac {
		errs = errors.AppendField(errs, "Fractional", errors.ErrOverflow)
	}
	if sign(c.Whole)*sign(c.Fractional) < 0 {
		errs = errors.AppendField(errs, "Fractional", errors.Wrap(errors.ErrState, "mismatched sign"))
	}
	return errs
}

// normalize carries the fractional overflow into the whole part and gives
// both parts the same sign.
func (c Coin) normalize() (Coin, error) {
	c.Whole += c.Fractional / FracUnit
	c.Fractional %= FracUnit

	if c.Whole > 0 && c.Fractional < 0 {
		c.Whole--
		c.Fractional += FracUnit
	}
	if c.Whole < 0 && c.Fractional > 0 {
		c.Whole++
		c.Fractional -= FracUnit
	}

	if c.Whole < MinInt || c.Whole > MaxInt {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d whole units", c.Whole)
	}
	return c, nil
}

// Marshal serializes the coin using the protobuf wire format.
func (c *Coin) Marshal() ([]byte, error) {
	return codec.NewBuffer().
		Int64(1, c.Whole).
		Int64(2, c.Fractional).
		String(3, c.Ticker).
		Result()
}

// Unmarshal is the inverse of Marshal.
func (c *Coin) Unmarshal(raw []byte) error {
	*c = Coin{}
	return codec.Decode(raw, func(f codec.Field) (err error) {
		switch f.Number {
		case 1:
			c.Whole, err = f.Int64()
		case 2:
			c.Fractional, err = f.Int64()
		case 3:
			c.Ticker, err = f.String()
		}
		return err
	})
}
