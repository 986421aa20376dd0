/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show repository counts and check ordering health",
	Long: `Stats reports entity counts across the repository and verifies that
every sibling group's sort order is a contiguous run starting at 1. Gaps
indicate a bug or an interrupted write and are listed per parent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stats, err := env.store.Stats(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		gaps, err := env.store.CheckRanks(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"counts": stats, "rank_gaps": gaps})
		}

		fmt.Fprintf(Out(), "Projects:    %d\n", stats.Projects)
		fmt.Fprintf(Out(), "Headings:    %d\n", stats.Headings)
		fmt.Fprintf(Out(), "Subheadings: %d\n", stats.Subheadings)
		fmt.Fprintf(Out(), "Sentences:   %d\n", stats.Sentences)

		if len(gaps) == 0 {
			fmt.Fprintln(Out(), ui.Success("sort order is dense in every sibling group"))
			return nil
		}
		fmt.Fprintln(Out(), ui.Error(fmt.Sprintf("%d sort order gaps found:", len(gaps))))
		for _, g := range gaps {
			fmt.Fprintf(Out(), "  %s parent=%d expected rank %d, found %d\n", g.Table, g.ParentID, g.Want, g.Got)
		}
		return fmt.Errorf("sort order check failed")
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
