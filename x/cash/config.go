package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/errors"
)

// configKey is where the currency configuration is kept. It is outside of
// the accounts bucket so that it never shows up in a balance query.
var configKey = []byte("_c:cash")

// Configuration declares the currency an application moves.
type Configuration struct {
	Ticker string `json:"ticker"`
}

// Validate ensures the ticker is a valid currency code.
func (c *Configuration) Validate() error {
	if !coin.IsCC(c.Ticker) {
		return errors.Field("Ticker", errors.ErrCurrency, "invalid ticker %q", c.Ticker)
	}
	return nil
}

// Marshal serializes the configuration.
func (c *Configuration) Marshal() ([]byte, error) {
	return codec.NewBuffer().String(1, c.Ticker).Result()
}

// Unmarshal is the inverse of Marshal.
func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Decode(raw, func(f codec.Field) error {
		var err error
		if f.Number == 1 {
			c.Ticker, err = f.String()
		}
		return err
	})
}

// LoadConfiguration returns the stored configuration. An empty configuration
// is returned if none was stored yet.
func LoadConfiguration(db custody.ReadOnlyKVStore) (*Configuration, error) {
	raw, err := db.Get(configKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	var c Configuration
	if raw == nil {
		return &c, nil
	}
	if err := c.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	return &c, nil
}

// SaveConfiguration validates and stores the configuration.
func SaveConfiguration(db custody.KVStore, c *Configuration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	raw, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := db.Set(configKey, raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
