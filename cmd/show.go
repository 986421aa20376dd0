/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/ui"
)

var showIDs bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active project's outline",
	Long: `Show prints the active project as a numbered outline. Headings carry
their display key ([a], [b], ...), subheadings their composed key ([a1]),
and every sentence its flattened line number. Pass --ids to include entity
ids, which the copy and move commands take as arguments.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}

		tree, err := env.store.OrderedContent(cmd.Context(), p.ID)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(tree)
		}

		if len(tree.Headings) == 0 {
			fmt.Fprintf(Out(), "%s\n\n(no headings yet, use 'outl edit' and 'ha <name>' to create one)\n", tree.Name)
			return nil
		}
		fmt.Fprint(Out(), ui.Outline(tree, ui.RenderOptions{
			Collapsed: env.session.Collapsed,
			ShowIDs:   showIDs,
		}))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showIDs, "ids", false, "include entity ids in the outline")
	rootCmd.AddCommand(showCmd)
}
