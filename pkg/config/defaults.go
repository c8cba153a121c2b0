package config

import (
	"github.com/melatron/hft-service/pkg/symbolstore"
)

// Default values bound by cmd/cli before Viper's file and environment
// layers are consulted; a flag or config key left unset falls back to these.
const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = 8080
	DefaultLogLevel = "info"

	DefaultMaxBatchSize = 10_000
)

// Default returns an AppConfig populated entirely with the built-in
// defaults, useful for tests and for writing out a starter config file.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Engine: EngineConfig{
			MaxSymbols:          symbolstore.DefaultMaxSymbols,
			MaxBatchSize:        DefaultMaxBatchSize,
			InitialTreeCapacity: symbolstore.DefaultInitialTreeCapacity,
			MaxSampleCapacity:   symbolstore.DefaultMaxSampleCapacity,
		},
	}
}
