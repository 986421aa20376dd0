/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/config"
	"github.com/jpl-au/outl/internal/ui"
)

var configLocal bool

// configKeys is every settable dotted key, in display order.
var configKeys = []string{
	"author.name",
	"author.email",
	"export.directory",
	"limits.max_name",
	"limits.max_content",
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get and set configuration values",
	Long: `Config reads and writes outl settings. With no arguments it lists
every key; with a key it prints that value; with a key and value it sets
it. Settings live in ~/.outl/config.yaml, or in the repository's
.outl/config.yaml with --local (local values win when both exist).`,
	Args:      cobra.MaximumNArgs(2),
	ValidArgs: configKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := config.ScopeGlobal
		if configLocal {
			scope = config.ScopeLocal
		}

		// Reads use the merged view; writes target one scope's file.
		if len(args) < 2 {
			cfg, err := config.Load()
			if err != nil {
				return PrintJSONError(err)
			}
			if len(args) == 1 {
				value, err := cfg.Get(args[0])
				if err != nil {
					return PrintJSONError(err)
				}
				if JSON() {
					return PrintJSON(map[string]string{args[0]: value})
				}
				fmt.Fprintln(Out(), value)
				return nil
			}

			values := make(map[string]string, len(configKeys))
			for _, key := range configKeys {
				values[key], _ = cfg.Get(key)
			}
			if JSON() {
				return PrintJSON(values)
			}
			for _, key := range configKeys {
				fmt.Fprintf(Out(), "%-20s %s\n", key, values[key])
			}
			return nil
		}

		cfg, err := config.LoadScope(scope)
		if err != nil {
			return PrintJSONError(err)
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return PrintJSONError(err)
		}
		if err := cfg.Validate(); err != nil {
			return PrintJSONError(err)
		}
		if err := cfg.SaveScope(scope); err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]string{args[0]: args[1]})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("%s = %s", args[0], args[1])))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configLocal, "local", false, "use the repository's .outl/config.yaml")
	rootCmd.AddCommand(configCmd)
}
