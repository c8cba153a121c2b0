package config

// EngineConfig controls the symbol store's resource and batching policy.
// None of these are required by the wire contract; they exist so an
// operator can tune the engine without a rebuild.
type EngineConfig struct {
	// MaxSymbols caps the number of distinct symbols the store will track.
	MaxSymbols int `mapstructure:"max_symbols" validate:"required,min=1" flag:"max-symbols" toml:"max_symbols"`
	// MaxBatchSize caps the number of values accepted in a single add_batch
	// request; enforced by the service shim, not the store itself.
	MaxBatchSize int `mapstructure:"max_batch_size" validate:"required,min=1" flag:"max-batch-size" toml:"max_batch_size"`
	// InitialTreeCapacity is the number of leaves a symbol's segment tree
	// starts with, before its first doubling.
	InitialTreeCapacity int `mapstructure:"initial_tree_capacity" validate:"required,min=1" flag:"initial-tree-capacity" toml:"initial_tree_capacity"`
	// MaxSampleCapacity is the point past which further samples for a
	// symbol are accepted but silently dropped.
	MaxSampleCapacity int `mapstructure:"max_sample_capacity" validate:"required,min=1" flag:"max-sample-capacity" toml:"max_sample_capacity"`
}

func (e EngineConfig) Validate() error {
	return validateConfig(e)
}
