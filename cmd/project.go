/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// project.go implements project lifecycle commands. Projects order by
// recent activity in listings; the session's active project is the one
// outline commands target by default.

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/log"
	"github.com/jpl-au/outl/internal/store"
	"github.com/jpl-au/outl/internal/ui"
	"github.com/jpl-au/outl/internal/validate"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage outline projects",
}

var projectNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a project and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validate.Name(name, env.cfg.MaxName()); err != nil {
			return PrintJSONError(err)
		}

		p, err := env.store.CreateProject(cmd.Context(), name)
		log.Event("project:new", "create").Author(Author()).Project(name).Write(err)
		if errors.Is(err, store.ErrNameTaken) {
			return PrintJSONError(fmt.Errorf("project %q already exists", name))
		}
		if err != nil {
			return PrintJSONError(err)
		}

		env.session.SetActive(p.ID, p.Name)
		if err := env.session.Save(); err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"id": p.ID, "name": p.Name})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Created project %q (now active)", p.Name)))
		return nil
	},
}

var projectLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List projects, most recently active first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		projects, err := env.store.ListProjects(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			type item struct {
				ID        int64  `json:"id"`
				Name      string `json:"name"`
				UpdatedAt int64  `json:"updated_at"`
				Active    bool   `json:"active"`
			}
			items := make([]item, len(projects))
			for i, p := range projects {
				items[i] = item{p.ID, p.Name, p.UpdatedAt, p.ID == env.session.ActiveProjectID}
			}
			return PrintJSON(items)
		}

		if len(projects) == 0 {
			fmt.Fprintln(Out(), "No projects yet. Create one with 'outl project new <name>'.")
			return nil
		}
		fmt.Fprint(Out(), ui.ProjectList(projects, env.session.ActiveProjectID))
		return nil
	},
}

var projectUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a project the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := env.store.ProjectByName(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return PrintJSONError(fmt.Errorf("no project named %q", args[0]))
		}
		if err != nil {
			return PrintJSONError(err)
		}

		env.session.SetActive(p.ID, p.Name)
		if err := env.session.Save(); err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"id": p.ID, "name": p.Name})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Active project: %s", p.Name)))
		return nil
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a project and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := env.store.ProjectByName(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return PrintJSONError(fmt.Errorf("no project named %q", args[0]))
		}
		if err != nil {
			return PrintJSONError(err)
		}

		if !Force() {
			return PrintJSONError(fmt.Errorf("deleting %q removes all its headings and sentences; re-run with --force", p.Name))
		}

		err = env.store.DeleteProject(cmd.Context(), p.ID)
		log.Event("project:rm", "delete").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if env.session.ActiveProjectID == p.ID {
			env.session.ClearActive()
			if err := env.session.Save(); err != nil {
				return PrintJSONError(err)
			}
		}

		if JSON() {
			return PrintJSON(map[string]string{"deleted": p.Name})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Deleted project %q", p.Name)))
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectNewCmd, projectLsCmd, projectUseCmd, projectRmCmd)
	rootCmd.AddCommand(projectCmd)
}
