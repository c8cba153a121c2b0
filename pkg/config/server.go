package config

import "fmt"

// ServerConfig controls the HTTP bind address for the stats service.
type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required" flag:"host" toml:"host"`
	Port uint   `mapstructure:"port" validate:"required,min=1,max=65535" flag:"port" toml:"port"`
}

func (s ServerConfig) Validate() error {
	return validateConfig(s)
}

// Addr returns the host:port pair suitable for http.Server.Addr / net.Listen.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
