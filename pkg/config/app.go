package config

// AppConfig is the root configuration object, assembled by Load from
// Viper's merged file/env/flag state.
type AppConfig struct {
	Server ServerConfig `mapstructure:"server" toml:"server"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
	Engine EngineConfig `mapstructure:"engine" toml:"engine"`
}

func (a AppConfig) Validate() error {
	if err := a.Server.Validate(); err != nil {
		return err
	}
	if err := a.Log.Validate(); err != nil {
		return err
	}
	return a.Engine.Validate()
}
