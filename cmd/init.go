/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/log"
	"github.com/jpl-au/outl/internal/repo"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise a new outl repository in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := repo.Init(Force(), "")
		log.Event("repo:init", "init").Author(Author()).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}
		if JSON() {
			return PrintJSON(map[string]string{"status": "initialised", "dir": repo.Dir})
		}
		fmt.Fprintf(Out(), "Initialised empty outl repository in %s/\n", repo.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
