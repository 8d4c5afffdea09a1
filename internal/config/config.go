// Package config loads and validates the node's configuration, adapted from
// the teacher library's pkg/config/config.go, plus the cross-field ring
// invariant (internal/chord.Config's Bootstrap vs. its own Addr) that struct
// tags alone can't express.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/chris-alexander-pop/chord-ring/internal/chord"
)

// Load reads configuration from a .env file if present, otherwise from
// environment variables, and validates the populated struct.
func Load[T any](cfg *T) error {
	if err := cleanenv.ReadConfig(".env", cfg); err != nil {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("failed to read env config: %w", err)
		}
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// ValidateRingConfig checks the one invariant struct tags cannot: a node
// can't bootstrap through itself (spec §4.3 assumes bootstrap names a peer
// already on the ring, which by definition excludes this node).
func ValidateRingConfig(cfg chord.Config) error {
	if cfg.Bootstrap != "" && cfg.Bootstrap == cfg.Addr() {
		return fmt.Errorf("config validation failed: bootstrap %q must not be this node's own address", cfg.Bootstrap)
	}
	return nil
}
