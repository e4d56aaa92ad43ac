package coin

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/custody/errors"
)

// humanRx matches "<whole>[.<fractional>] <ticker>". The ticker may only be
// left out for a zero value.
var humanRx = regexp.MustCompile(`^(-?)(\d+)(?:\.(\d{1,9}))?\s*([A-Z]{3,4})?$`)

// ParseHumanFormat reads a coin written the way String prints it, for
// example "12.5 IOV".
func ParseHumanFormat(s string) (Coin, error) {
	m := humanRx.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin %q", s)
	}
	whole, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || whole > MaxInt {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "whole part of %q", s)
	}
	var frac int64
	if m[3] != "" {
		// right pad to nine digits so "5" reads as half a unit
		frac, err = strconv.ParseInt(m[3]+strings.Repeat("0", 9-len(m[3])), 10, 64)
		if err != nil {
			return Coin{}, errors.Wrapf(errors.ErrInput, "fractional part of %q", s)
		}
	}
	c := Coin{Whole: whole, Fractional: frac, Ticker: m[4]}
	if c.Ticker == "" && !c.IsZero() {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "missing ticker in %q", s)
	}
	if m[1] == "-" {
		c = c.Negative()
	}
	return c, nil
}

// String prints the normalized value with trailing fractional zeros removed,
// followed by the ticker if there is one.
func (c Coin) String() string {
	if n, err := c.normalize(); err == nil {
		c = n
	}
	var sb strings.Builder
	if c.Whole < 0 || c.Fractional < 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.FormatInt(abs(c.Whole), 10))
	if c.Fractional != 0 {
		digits := strconv.FormatInt(abs(c.Fractional)+FracUnit, 10)[1:]
		sb.WriteByte('.')
		sb.WriteString(strings.TrimRight(digits, "0"))
	}
	if c.Ticker != "" {
		sb.WriteByte(' ')
		sb.WriteString(c.Ticker)
	}
	return sb.String()
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// MarshalJSON writes the human readable form.
func (c Coin) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts both the human readable string and the object form
// {"whole": 1, "fractional": 5, "ticker": "IOV"}.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// a defined type drops the methods and avoids recursion
	type object Coin
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return err
	}
	*c = Coin(o)
	return nil
}
