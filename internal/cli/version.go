package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string `json:"version" yaml:"version"`
	Date    string `json:"date" yaml:"date"`
	Commit  string `json:"commit" yaml:"commit"`
}

// WithDefaults replaces empty fields with "N/A".
func (b BuildInfo) WithDefaults() BuildInfo {
	if b.Version == "" {
		b.Version = "N/A"
	}
	if b.Date == "" {
		b.Date = "N/A"
	}
	if b.Commit == "" {
		b.Commit = "N/A"
	}
	return b
}

func (b BuildInfo) String() string {
	b = b.WithDefaults()
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.Date)
}

func NewVersionCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show appkernel version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			if outputFormat == "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "appkernel %s\n", rt.opts.Build)
				return err
			}
			return render(cmd, outputFormat, rt.opts.Build.WithDefaults())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: json, yaml")

	return cmd
}
