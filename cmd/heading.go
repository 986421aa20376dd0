/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// heading.go exposes heading operations as plain subcommands for
// scripting, mirroring the interactive editor's h/ch/cp/mh/dh commands.
// Headings are addressed by their display key as shown by 'outl show'.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/log"
	"github.com/jpl-au/outl/internal/outline"
	"github.com/jpl-au/outl/internal/store"
	"github.com/jpl-au/outl/internal/ui"
	"github.com/jpl-au/outl/internal/validate"
)

var (
	headingBefore    string
	headingToProject string
)

// resolveHeading maps a display key to its heading within a project.
func resolveHeading(ctx context.Context, projectID int64, key string) (store.Heading, error) {
	m, err := outline.BuildKeyMap(ctx, env.store, projectID)
	if err != nil {
		return store.Heading{}, err
	}
	h, ok := m.Heading(key)
	if !ok {
		return store.Heading{}, fmt.Errorf("heading [%s] doesn't exist", key)
	}
	return h, nil
}

var headingCmd = &cobra.Command{
	Use:   "heading",
	Short: "Manage headings without the interactive editor",
}

var headingAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Append a heading to the active project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		if err := validate.Name(args[0], env.cfg.MaxName()); err != nil {
			return PrintJSONError(err)
		}

		h, err := env.store.CreateHeading(cmd.Context(), p.ID, args[0])
		log.Event("heading:add", "create").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		key := outline.HeadingKey(h.SortOrder - 1)
		if JSON() {
			return PrintJSON(map[string]any{"id": h.ID, "key": key, "name": h.Name})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Created heading [%s] %s", key, h.Name)))
		return nil
	},
}

var headingRenameCmd = &cobra.Command{
	Use:   "rename <key> <name>",
	Short: "Rename a heading",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		if err := validate.Name(args[1], env.cfg.MaxName()); err != nil {
			return PrintJSONError(err)
		}
		h, err := resolveHeading(cmd.Context(), p.ID, args[0])
		if err != nil {
			return PrintJSONError(err)
		}

		err = env.store.RenameHeading(cmd.Context(), h.ID, args[1])
		log.Event("heading:rename", "rename").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"id": h.ID, "name": args[1]})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Renamed heading [%s] to %s", args[0], args[1])))
		return nil
	},
}

var headingRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete a heading and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		h, err := resolveHeading(cmd.Context(), p.ID, args[0])
		if err != nil {
			return PrintJSONError(err)
		}
		if !Force() {
			return PrintJSONError(fmt.Errorf("deleting [%s] %s removes all its subheadings and sentences; re-run with --force", args[0], h.Name))
		}

		err = env.store.DeleteHeading(cmd.Context(), h.ID)
		log.Event("heading:rm", "delete").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]string{"deleted": h.Name})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Deleted heading %q", h.Name)))
		return nil
	},
}

var headingCopyCmd = &cobra.Command{
	Use:   "copy <key>",
	Short: "Copy a heading before a sibling or into another project",
	Long: `Copy duplicates a heading with all its subheadings and sentences.
With --before the copy lands immediately before the named sibling in
this project; with --to-project it is appended to another project.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		h, err := resolveHeading(cmd.Context(), p.ID, args[0])
		if err != nil {
			return PrintJSONError(err)
		}

		switch {
		case headingBefore != "" && headingToProject != "":
			return PrintJSONError(fmt.Errorf("--before and --to-project are mutually exclusive"))

		case headingBefore != "":
			before, err := resolveHeading(cmd.Context(), p.ID, headingBefore)
			if err != nil {
				return PrintJSONError(err)
			}
			copied, err := env.store.CopyHeadingBefore(cmd.Context(), h.ID, before.ID)
			log.Event("heading:copy", "copy-before").Author(Author()).Project(p.Name).Write(err)
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]any{"id": copied.ID, "name": copied.Name})
			}
			fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Copied %q before [%s]", h.Name, headingBefore)))
			return nil

		case headingToProject != "":
			target, err := env.store.ProjectByName(cmd.Context(), headingToProject)
			if err != nil {
				return PrintJSONError(fmt.Errorf("no project named %q", headingToProject))
			}
			copied, err := env.store.CopyHeadingToProject(cmd.Context(), h.ID, target.ID)
			log.Event("heading:copy", "copy-to-project").Author(Author()).Project(p.Name).Write(err)
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]any{"id": copied.ID, "name": copied.Name, "project": target.Name})
			}
			fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Copied %q to project %q", h.Name, target.Name)))
			return nil

		default:
			return PrintJSONError(fmt.Errorf("specify --before <key> or --to-project <name>"))
		}
	},
}

var headingRank int

var headingMoveCmd = &cobra.Command{
	Use:   "move <key>",
	Short: "Move a heading to another project or position",
	Long: `Move relocates a heading. With --to-project the heading and its whole
subtree are appended to another project. With --rank it moves to that
position among its current siblings; out-of-range ranks clamp to the
nearest end.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		h, err := resolveHeading(cmd.Context(), p.ID, args[0])
		if err != nil {
			return PrintJSONError(err)
		}

		switch {
		case headingToProject != "":
			target, err := env.store.ProjectByName(cmd.Context(), headingToProject)
			if err != nil {
				return PrintJSONError(fmt.Errorf("no project named %q", headingToProject))
			}
			err = env.svc.MoveHeading(cmd.Context(), h.ID, target.ID)
			log.Event("heading:move", "move").Author(Author()).Project(p.Name).Write(err)
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]any{"id": h.ID, "project": target.Name})
			}
			fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Moved %q to project %q", h.Name, target.Name)))
			return nil

		case headingRank > 0:
			err = env.store.MoveHeading(cmd.Context(), h.ID, p.ID, headingRank)
			log.Event("heading:move", "reorder").Author(Author()).Project(p.Name).Write(err)
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]any{"id": h.ID, "rank": headingRank})
			}
			fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Moved %q to position %d", h.Name, headingRank)))
			return nil

		default:
			return PrintJSONError(fmt.Errorf("specify --to-project <name> or --rank <n>"))
		}
	},
}

func init() {
	headingCopyCmd.Flags().StringVar(&headingBefore, "before", "", "sibling key to place the copy before")
	headingCopyCmd.Flags().StringVar(&headingToProject, "to-project", "", "project to copy into")
	headingMoveCmd.Flags().StringVar(&headingToProject, "to-project", "", "project to move into")
	headingMoveCmd.Flags().IntVar(&headingRank, "rank", 0, "new position among siblings")
	headingCmd.AddCommand(headingAddCmd, headingRenameCmd, headingRmCmd, headingCopyCmd, headingMoveCmd)
	rootCmd.AddCommand(headingCmd)
}
