package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 8080},
			expected: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr NetAddress
	}{
		{
			name:         "valid localhost",
			input:        "localhost:8080",
			expectedAddr: NetAddress{Host: "localhost", Port: 8080},
		},
		{
			name:         "valid IPv4",
			input:        "127.0.0.1:9090",
			expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090},
		},
		{
			name:         "all interfaces",
			input:        ":8080",
			expectedAddr: NetAddress{Host: "", Port: 8080},
		},
		{
			name:        "missing colon",
			input:       "localhost8080",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "non-numeric port",
			input:       "localhost:abc",
			expectError: true,
			errorMsg:    "invalid syntax",
		},
		{
			name:        "zero port",
			input:       "localhost:0",
			expectError: true,
			errorMsg:    "port number is a positive integer",
		},
		{
			name:        "port out of range",
			input:       "localhost:70000",
			expectError: true,
			errorMsg:    "port number is a positive integer",
		},
		{
			name:        "invalid IP address",
			input:       "invalid.host:8080",
			expectError: true,
			errorMsg:    "incorrect IP-address provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedAddr, *addr)
			}
		})
	}
}

// TestBindFlags parses a fresh flag set for every case.
func TestBindFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"--config", "/etc/demo/app.toml",
				"--base-path", "/srv",
				"--context", "browser",
				"--log-level", "warn",
				"--secret", "s3cret",
				"-a", "127.0.0.1:8081",
				"--request-timeout", "15s",
				"--shutdown-timeout", "2s",
				"--watch",
				"--watch-debounce", "1s",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/etc/demo/app.toml", cfg.App.ConfigFile)
				assert.Equal(t, "/srv", cfg.App.BasePath)
				assert.Equal(t, "browser", cfg.App.Context)
				assert.Equal(t, "warn", cfg.App.LogLevel)
				assert.Equal(t, "s3cret", cfg.App.Secret)
				assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
				assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
				assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
				assert.True(t, cfg.Workers.Watch)
				assert.Equal(t, time.Second, cfg.Workers.WatchDebounce)
			},
		},
		{
			name: "no flags leaves zero values",
			args: nil,
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
		{
			name:    "invalid address",
			args:    []string{"--address", "somewhere:80"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg := BindFlags(fs)

			err := fs.Parse(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}
