package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the APP_*, SERVER_* and WORKERS_* variables into cfg.
// Unset variables leave their fields at the zero value, which the builder's
// merge treats as "not provided".
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnvironment, err)
	}
	return nil
}
