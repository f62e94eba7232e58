// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level launch settings container. It is
// populated by merging defaults, environment variables and command-line
// flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the settings that shape the configuration bootstrap.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP
	// boundary.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background workers.
	Workers Workers `envPrefix:"WORKERS_"`
}

// App holds the settings handed to the bootstrapper.
type App struct {
	// ConfigFile is the application configuration file (.json, .yaml,
	// .yml, .toml or .hcl).
	// Env: APP_CONFIG
	ConfigFile string `env:"CONFIG"`

	// BasePath is the directory application folders live under; it becomes
	// path.base_path. Defaults to the working directory.
	// Env: APP_BASE_PATH
	BasePath string `env:"BASE_PATH"`

	// Context is the execution context used by the run command
	// ("browser" or "command line").
	// Env: APP_CONTEXT
	Context string `env:"CONTEXT"`

	// LogLevel is the level of the process logger. Each configuration may
	// lower or raise it through general.log_level.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Secret, when set, enables decoding of "enc:"-sealed request
	// parameters with a key derived from it.
	// Env: APP_SECRET
	Secret string `env:"SECRET"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// Watch reloads App.ConfigFile whenever it changes on disk.
	// Env: WORKERS_WATCH
	Watch bool `env:"WATCH"`

	// WatchDebounce collapses bursts of file events into one reload.
	// Env: WORKERS_WATCH_DEBOUNCE
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE"`
}

// Defaults returns the built-in settings.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			BasePath: ".",
			Context:  "command line",
			LogLevel: "info",
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Workers: Workers{
			WatchDebounce: 200 * time.Millisecond,
		},
	}
}

// GetStructuredConfig merges, in increasing priority, the defaults, the
// environment and flags (usually the value returned by [BindFlags] after
// parsing), then validates the result. flags may be nil.
func GetStructuredConfig(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(flags).
		build()
}

// BindFlags registers the launch flags on fs and returns the settings they
// write into once fs is parsed.
func BindFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}
	bindFlags(fs, cfg)
	return cfg
}
