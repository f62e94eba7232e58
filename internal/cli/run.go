package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRunCommand bootstraps once with the arguments as parameters and
// prints the application's response.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [key=value ...]",
		Short: "Bootstrap the application once and print its response",
		Example: `  appkernel run -c app.yaml module=reports option=list
  APP_CONTEXT=browser appkernel run -c app.yaml page=2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := getKernel(cmd)
			if err != nil {
				return err
			}

			params, err := parseParameters(args)
			if err != nil {
				return err
			}

			response, err := k.boot.Run(cmd.Context(), k.userConfiguration(params))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), response)
			return err
		},
	}
}
