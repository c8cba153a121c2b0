package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// WriteDefaultFile renders the built-in defaults as TOML and writes them to
// path, refusing to clobber a file that's already there. Neither the CLI
// commands nor the request-serving path call it.
func WriteDefaultFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	out, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	log.Infow("wrote default config", "path", path)
	return nil
}
