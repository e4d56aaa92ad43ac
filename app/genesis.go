package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/custody/errors"
)

// Genesis is the part of the tendermint genesis file read by the
// application.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

// LoadGenesis reads a tendermint genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshal genesis file: %s", err)
	}
	return gen, nil
}

// LoadGenesis initializes the application state from a genesis file, the
// same way InitChain does.
func (s *StoreApp) LoadGenesis(filePath string) error {
	gen, err := LoadGenesis(filePath)
	if err != nil {
		return err
	}
	return s.initChain(gen.ChainID, gen.AppState)
}
