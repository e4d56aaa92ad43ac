package main

import (
	"fmt"
	"os"
	"path/filepath"

	custody "github.com/iov-one/custody"
	custodyd "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/cmd/custodyd/httpapi"
	"github.com/iov-one/custody/commands/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const envPrefix = "CUSTODYD"

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".custodyd")
	flags := rootCmd.PersistentFlags()
	flags.String(server.FlagHome, defaultHome, "directory to store files under")
	flags.String(server.FlagBind, "tcp://localhost:26658", "address the abci server listens on")
	flags.String(server.FlagHTTPAddr, "", "address the http api listens on, disabled if empty")
	flags.Bool(server.FlagDebug, false, "call stack returned on error")
	flags.String(server.FlagLogLevel, "info", "one of debug, info, error or none")
}

var rootCmd = &cobra.Command{
	Use:           "custodyd",
	Short:         "Multi signature custody wallet node",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		l, err := newLogger()
		if err != nil {
			return err
		}
		logger.Logger = l
		return nil
	},
}

// logger is handed to the commands before the configuration is loaded. The
// configured logger replaces the wrapped one before any command runs.
var logger = &lazyLogger{Logger: log.NewNopLogger()}

// loadConfig binds all flags to viper. Values are taken from flags, then the
// CUSTODYD_* environment, then the optional config.yaml in the home
// directory.
func loadConfig(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("cannot bind flags: %w", err)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(viper.GetString(server.FlagHome))
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("cannot read config: %w", err)
		}
	}
	return nil
}

func newLogger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "custody")
	level, err := log.AllowLevel(viper.GetString(server.FlagLogLevel))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, level), nil
}

type lazyLogger struct {
	log.Logger
}

func main() {
	rootCmd.AddCommand(
		server.InitCmd(custodyd.GenInitOptions, logger),
		server.StartCmd(custodyd.GenerateApp, httpapi.Generate, logger),
		server.ValidateGenesisCmd(custodyd.Initializers(custodyd.Bank())),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(custody.Version())
		},
	}
}
