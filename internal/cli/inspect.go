package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewInspectCommand prints the merged configuration tree, or one section
// of it, without running the application.
func NewInspectCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "inspect [section] [key=value ...]",
		Short: "Print the merged configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := getKernel(cmd)
			if err != nil {
				return err
			}

			var section string
			if len(args) > 0 && !isParameter(args[0]) {
				section, args = args[0], args[1:]
			}

			params, err := parseParameters(args)
			if err != nil {
				return err
			}

			conf, err := k.boot.Bootstrap(cmd.Context(), k.userConfiguration(params))
			if err != nil {
				return err
			}

			var out any = conf.Tree().Interface()
			if section != "" {
				v, ok := conf.GetConfig(section)
				if !ok {
					return fmt.Errorf("no section %q", section)
				}
				out = v.Interface()
			}

			return render(cmd, outputFormat, out)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format: yaml, json")

	return cmd
}

func isParameter(arg string) bool {
	_, err := parseParameters([]string{arg})
	return err == nil
}

func render(cmd *cobra.Command, format string, v any) error {
	w := cmd.OutOrStdout()
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml", "":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
