package server

import (
	"encoding/json"
	"io/ioutil"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/spf13/cobra"
)

// ValidateGenesisCmd checks that a chain can start from each of the given
// genesis files.
func ValidateGenesisCmd(ini custody.Initializer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis file>...",
		Short: "Validate the chain id and app_state of genesis files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			return ValidateGenesis(ini, paths)
		},
	}
}

// ValidateGenesis runs ini on the app_state of every file, each time on a
// fresh in memory store. It stops at the first file that fails.
func ValidateGenesis(ini custody.Initializer, paths []string) error {
	for _, p := range paths {
		if err := validateGenesisFile(ini, p); err != nil {
			return errors.Wrap(err, p)
		}
	}
	return nil
}

type genesisFile struct {
	ChainID  string          `json:"chain_id"`
	AppState custody.Options `json:"app_state"`
}

func validateGenesisFile(ini custody.Initializer, path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read: %s", err)
	}
	var gen genesisFile
	if err := json.Unmarshal(raw, &gen); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode: %s", err)
	}
	if !custody.IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", gen.ChainID)
	}
	if len(gen.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}
	return errors.Wrap(ini.FromGenesis(gen.AppState, store.MemStore()), "app_state")
}
