package cli

import (
	"context"
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/melatron/hft-service/cmd/cli/serve"
	"github.com/melatron/hft-service/pkg/build"
	"github.com/melatron/hft-service/pkg/config"
)

var log = logging.Logger("cmd")

const shortDescription = `
hft-service is an in-memory, multi-symbol time-series statistics engine.
`

var (
	cfgFile  string
	logLevel string
	rootCmd  = &cobra.Command{
		Use:     "hft-service",
		Short:   shortDescription,
		Long:    fmt.Sprintf("hft-service (Version: %s) — windowed stats over append-only sample logs", build.Version),
		Version: build.Version,
	}
)

// ExecuteContext runs the root command, exiting non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "logging level (trace/debug/info/warn/error)")

	rootCmd.AddCommand(serve.Cmd)
}

func initConfig() {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("APP")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		cobra.CheckErr(viper.ReadInConfig())
	} else {
		viper.SetConfigName("hft-service-config")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		// No config file is perfectly fine; defaults and env vars carry us.
		_ = viper.ReadInConfig()
	}

	viper.SetDefault("server.host", config.DefaultHost)
	viper.SetDefault("server.port", config.DefaultPort)
	viper.SetDefault("log.level", config.DefaultLogLevel)
	viper.SetDefault("engine.max_symbols", 10)
	viper.SetDefault("engine.max_batch_size", config.DefaultMaxBatchSize)
	viper.SetDefault("engine.initial_tree_capacity", 1<<10)
	viper.SetDefault("engine.max_sample_capacity", 100_000_000)
}

func initLogging() {
	if logLevel != "" {
		// zap has no level below debug, so trace maps onto debug.
		if strings.EqualFold(logLevel, "trace") {
			logLevel = "debug"
		}
		ll, err := logging.LevelFromString(logLevel)
		cobra.CheckErr(err)
		logging.SetAllLoggers(ll)
		return
	}
	if lvl := viper.GetString("log.level"); lvl != "" {
		if strings.EqualFold(lvl, "trace") {
			lvl = "debug"
		}
		ll, err := logging.LevelFromString(lvl)
		cobra.CheckErr(err)
		logging.SetAllLoggers(ll)
		return
	}
	logging.SetAllLoggers(logging.LevelInfo)
}
