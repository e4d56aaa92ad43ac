package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/custody/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const shutdownTimeout = 5 * time.Second

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// APIGenerator builds the HTTP handler serving read access to the
// application state.
type APIGenerator func(app abci.Application, logger log.Logger) (http.Handler, error)

// StartCmd runs the ABCI socket server, and the HTTP API if an address for
// it is configured. It blocks until the context is cancelled or an
// interrupt signal is received.
func StartCmd(gen AppGenerator, api APIGenerator, logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return start(ctx, gen, api, logger)
		},
	}
}

func start(ctx context.Context, gen AppGenerator, api APIGenerator, logger log.Logger) error {
	home := viper.GetString(FlagHome)
	addr := viper.GetString(FlagBind)
	debug := viper.GetBool(FlagDebug)

	// Generate the app in the proper dir
	app, err := gen(home, logger, debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start abci server")
	}
	defer svr.Stop()

	httpAddr := viper.GetString(FlagHTTPAddr)
	if api == nil || httpAddr == "" {
		<-ctx.Done()
		return nil
	}

	handler, err := api(app, logger.With("module", "http"))
	if err != nil {
		return errors.Wrap(err, "cannot create http api")
	}
	hs := &http.Server{Addr: httpAddr, Handler: handler}
	failed := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP API", "addr", httpAddr)
		if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return errors.Wrap(err, "http api")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}
