package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/viper"
)

var log = logging.Logger("config")

var validate = validator.New()

// Validatable is satisfied by every config struct loaded through Load: after
// Viper unmarshals raw TOML/env/flag values into T, Validate checks the
// result is usable before the caller ever sees it.
type Validatable interface {
	Validate() error
}

// Load unmarshals the current Viper state into a zero T, validates it, and
// returns it. Precedence (highest first) was established by the caller
// before Load runs: bound command-line flags, then APP_-prefixed environment
// variables, then the config file (the explicit --config path, or else
// ./hft-service-config.toml in the working directory), then the defaults.
func Load[T Validatable]() (T, error) {
	var out T
	if err := viper.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}

// validateConfig runs struct-tag validation (the `validate:"..."` tags on
// each config type) and turns the first failure into a readable error.
func validateConfig(s any) error {
	if err := validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config field %q failed %q validation (value: %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}
