// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

var contexts = map[string]bool{
	"browser":      true,
	"command line": true,
}

// validate checks that the final merged [StructuredConfig] is usable before
// anything is started.
func (cfg *StructuredConfig) validate() error {
	if !contexts[cfg.App.Context] {
		return fmt.Errorf("%w: unknown context %q", ErrInvalidAppConfigs, cfg.App.Context)
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Server.HTTPAddress != "" {
		var addr NetAddress
		if err := addr.Set(cfg.Server.HTTPAddress); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err)
		}
	}
	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidServerConfigs)
	}

	if cfg.Workers.Watch && cfg.App.ConfigFile == "" {
		return fmt.Errorf("%w: watch needs a config file", ErrInvalidWorkerConfigs)
	}
	if cfg.Workers.WatchDebounce < 0 {
		return fmt.Errorf("%w: negative debounce", ErrInvalidWorkerConfigs)
	}

	return nil
}
