package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv applies CMAT_* environment overrides to target. Unset variables
// leave the current values in place.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
