// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-app-kernel/internal/config"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
)

// Options configures the root command.
type Options struct {
	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
	// Logger is the process logger. Defaults to a JSON logger on stdout.
	Logger *logger.Logger
	// Build describes the running binary.
	Build BuildInfo
	// Hooks register extra components before the first bootstrap.
	Hooks []CatalogHook
}

type runtimeKey struct{}

type runtimeState struct {
	opts   Options
	flags  *config.StructuredConfig
	kernel *kernel
}

// NewRootCommand builds the appkernel command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewLogger("appkernel")
	}
	rt := &runtimeState{opts: opts}

	root := &cobra.Command{
		Use:           "appkernel",
		Short:         "Configuration bootstrap and component kernel",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.GetStructuredConfig(rt.flags)
			if err != nil {
				return err
			}
			rt.opts.Logger.Debug().Any("config", cfg).Msg("received launch settings")

			k, err := newKernel(cfg, rt.opts.Logger, rt.opts.Hooks...)
			if err != nil {
				return err
			}
			rt.kernel = k
			return nil
		},
	}
	root.SetOut(opts.Out)

	rt.flags = config.BindFlags(root.PersistentFlags())
	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewRunCommand(),
		NewInspectCommand(),
		NewServeCommand(),
		NewVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func getKernel(cmd *cobra.Command) (*kernel, error) {
	rt, err := getRuntime(cmd)
	if err != nil {
		return nil, err
	}
	if rt.kernel == nil {
		return nil, errors.New("kernel not initialized")
	}
	return rt.kernel, nil
}
