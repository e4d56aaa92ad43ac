package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/custody/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cfg "github.com/tendermint/tendermint/config"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/privval"
	tmtypes "github.com/tendermint/tendermint/types"
	tmtime "github.com/tendermint/tendermint/types/time"
)

// appStateKey is the genesis field read by the application on InitChain.
const appStateKey = "app_state"

// GenOptions builds the app_state of a new genesis file from the arguments
// of the init command.
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd creates the tendermint configuration, validator key and genesis
// file in the home directory. Existing files are kept, only the app_state
// of the genesis is replaced by the one gen returns. A nil gen leaves the
// app_state out.
func InitCmd(gen GenOptions, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init [ticker] [address] [balance]",
		Short: "Initialize genesis files",
		Args:  cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			home := viper.GetString(FlagHome)
			if home == "" {
				return errors.Wrap(errors.ErrEmpty, "home directory")
			}
			config := cfg.DefaultConfig()
			config.SetRoot(home)
			cfg.EnsureRoot(home)

			pv := loadOrGenValidator(config, logger)
			genFile := config.GenesisFile()
			if err := ensureGenesis(genFile, pv, logger); err != nil {
				return err
			}
			if gen == nil {
				return nil
			}
			state, err := gen(args)
			if err != nil {
				return err
			}
			return setAppState(genFile, state)
		},
	}
}

func loadOrGenValidator(config *cfg.Config, logger log.Logger) *privval.FilePV {
	keyFile := config.PrivValidatorKeyFile()
	action := "Generating private validator"
	if cmn.FileExists(keyFile) {
		action = "Found private validator"
	}
	logger.Info(action, "path", keyFile)
	return privval.LoadOrGenFilePV(keyFile, config.PrivValidatorStateFile())
}

// ensureGenesis writes a genesis with a random chain id and pv as the only
// validator, unless the file exists.
func ensureGenesis(path string, pv *privval.FilePV, logger log.Logger) error {
	if cmn.FileExists(path) {
		logger.Info("Found genesis file", "path", path)
		return nil
	}
	pub := pv.GetPubKey()
	doc := tmtypes.GenesisDoc{
		ChainID:         "custody-chain-" + cmn.RandStr(6),
		GenesisTime:     tmtime.Now(),
		ConsensusParams: tmtypes.DefaultConsensusParams(),
		Validators: []tmtypes.GenesisValidator{
			{Address: pub.Address(), PubKey: pub, Power: 10},
		},
	}
	if err := doc.SaveAs(path); err != nil {
		return errors.Wrap(err, "save genesis")
	}
	logger.Info("Generated genesis file", "path", path)
	return nil
}

// genesisDoc keeps every field of a genesis file as raw json, so the
// tendermint part is written back untouched.
type genesisDoc map[string]json.RawMessage

func setAppState(path string, state json.RawMessage) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var doc genesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode genesis: %s", err)
	}
	doc[appStateKey] = state
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode genesis")
	}
	return ioutil.WriteFile(path, out, 0600)
}
