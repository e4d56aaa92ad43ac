package orm

import (
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

// Counter is a minimal model used by the tests of this package.
type Counter struct {
	Count int64
}

var _ Model = (*Counter)(nil)

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func (c *Counter) Copy() Model {
	return &Counter{Count: c.Count}
}

func (c *Counter) Marshal() ([]byte, error) {
	return codec.NewBuffer().Int64(1, c.Count).Result()
}

func (c *Counter) Unmarshal(raw []byte) error {
	*c = Counter{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		if f.Number == 1 {
			c.Count, err = f.Int64()
		}
		return err
	})
}

// Other is a model of a different type, used to test type checks.
type Other struct {
	Counter
}

func (o *Other) Copy() Model {
	return &Other{Counter: o.Counter}
}
