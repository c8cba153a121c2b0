// Package serve implements the "serve" subcommand: it loads configuration,
// builds the symbol store and HTTP server, and runs until the context
// passed to ExecuteContext is canceled.
package serve

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/melatron/hft-service/pkg/config"
	"github.com/melatron/hft-service/pkg/health"
	"github.com/melatron/hft-service/pkg/server"
	"github.com/melatron/hft-service/pkg/symbolstore"
)

var log = logging.Logger("cmd/serve")

var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stats service",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().String("host", "", "bind address (overrides config/env)")
	cobra.CheckErr(viper.BindPFlag("server.host", Cmd.Flags().Lookup("host")))

	Cmd.Flags().Uint("port", 0, "bind port (overrides config/env)")
	cobra.CheckErr(viper.BindPFlag("server.port", Cmd.Flags().Lookup("port")))
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load[config.AppConfig]()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := symbolstore.New(
		symbolstore.WithMaxSymbols(cfg.Engine.MaxSymbols),
		symbolstore.WithInitialTreeCapacity(cfg.Engine.InitialTreeCapacity),
		symbolstore.WithMaxSampleCapacity(cfg.Engine.MaxSampleCapacity),
	)

	checker := health.NewChecker()
	checker.SetReady(true)

	e := server.NewServer(store, checker, cfg.Engine.MaxBatchSize)

	log.Infof("starting on %s", cfg.Server.Addr())
	return server.ListenAndServe(cmd.Context(), cfg.Server.Addr(), e)
}
