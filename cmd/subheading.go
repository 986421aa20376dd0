/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// subheading.go exposes subheading operations as plain subcommands,
// addressed by composed keys (a1, b2) as shown by 'outl show'.

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

var subToHeading string

// resolveSubheading maps a composed display key to its subheading.
func resolveSubheading(ctx context.Context, projectID int64, key string) (store.Subheading, error) {
	m, err := outline.BuildKeyMap(ctx, env.store, projectID)
	if err != nil {
		return store.Subheading{}, err
	}
	sub, ok := m.Subheading(key)
	if !ok {
		return store.Subheading{}, fmt.Errorf("subheading [%s] doesn't exist", key)
	}
	return sub, nil
}

var subCmd = &cobra.Command{
	Use:     "sub",
	Aliases: []string{"subheading"},
	Short:   "Manage subheadings without the interactive editor",
}

var subAddCmd = &cobra.Command{
	Use:   "add <heading-key> <name>",
	Short: "Append a subheading to a heading",
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

		sub, err := env.store.CreateSubheading(cmd.Context(), h.ID, args[1])
		log.Event("sub:add", "create").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		key := outline.SubheadingKey(args[0], sub.SortOrder)
		if JSON() {
			return PrintJSON(map[string]any{"id": sub.ID, "key": key, "name": sub.Name})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Created subheading [%s] %s", key, sub.Name)))
		return nil
	},
}

var subRenameCmd = &cobra.Command{
	Use:   "rename <key> <name>",
	Short: "Rename a subheading",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		if err := validate.SubheadingName(args[1], env.cfg.MaxName()); err != nil {
			return PrintJSONError(err)
		}
		sub, err := resolveSubheading(cmd.Context(), p.ID, args[0])
		if err != nil {
			return PrintJSONError(err)
		}

		err = env.store.RenameSubheading(cmd.Context(), sub.ID, args[1])
		log.Event("sub:rename", "rename").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"id": sub.ID, "name": args[1]})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Renamed subheading [%s] to %s", args[0], args[1])))
		return nil
	},
}

var subMoveCmd = &cobra.Command{
	Use:   "move <key>",
	Short: "Move a subheading to another heading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		if subToHeading == "" {
			return PrintJSONError(fmt.Errorf("specify --to-heading <key>"))
		}
		sub, err := resolveSubheading(cmd.Context(), p.ID, args[0])
		if err != nil {
			return PrintJSONError(err)
		}
		target, err := resolveHeading(cmd.Context(), p.ID, subToHeading)
		if err != nil {
			return PrintJSONError(err)
		}

		err = env.svc.MoveSubheading(cmd.Context(), sub.ID, target.ID)
		log.Event("sub:move", "move").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"id": sub.ID, "heading": target.Name})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Moved subheading [%s] under %q", args[0], target.Name)))
		return nil
	},
}

func init() {
	subMoveCmd.Flags().StringVar(&subToHeading, "to-heading", "", "heading key to move under")
	subCmd.AddCommand(subAddCmd, subRenameCmd, subMoveCmd)
	rootCmd.AddCommand(subCmd)
}
