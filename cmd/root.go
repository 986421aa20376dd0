/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: PersistentPreRunE handles store initialisation lazily - only
// commands that need the store trigger repository discovery. This enables
// bootstrap commands (init, config) to work without a repository existing.
// The noStoreCommands map controls which commands skip initialisation.

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/config"
	"github.com/jpl-au/outl/internal/log"
	"github.com/jpl-au/outl/internal/outline"
	"github.com/jpl-au/outl/internal/repo"
	"github.com/jpl-au/outl/internal/state"
	"github.com/jpl-au/outl/internal/store"
)

// noStoreCommands work without a repository.
var noStoreCommands = map[string]bool{
	"init":       true,
	"config":     true,
	"help":       true,
	"completion": true,
	"version":    true,
	"guide":      true,
}

// env is the shared command environment, populated by PersistentPreRunE
// for commands that need the store.
var env struct {
	store   *store.SQLiteStore
	svc     *outline.Service
	session *state.State
	cfg     *config.Config
}

var rootCmd = &cobra.Command{
	Use:   "outl",
	Short: "Terminal outline editor for hierarchical writing projects",
	Long: `A terminal-based outline editor: projects contain ordered headings,
headings contain ordered subheadings, subheadings contain ordered
sentences. Build and reorganise outlines with short commands, then
export them to text or markdown.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		if !noStoreCommands[topLevelCmdName(cmd)] {
			if err := openEnv(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return err
			}
		}
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "outl project new", returns "project".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// openEnv discovers the repository and opens the store, service, session
// and config. Idempotent so tests can run multiple commands per process.
func openEnv() error {
	if env.store != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, err := discoverDB()
	if err != nil {
		return err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return err
	}

	outlDir := filepath.Dir(dbPath)
	session, err := state.Load(outlDir)
	if err != nil {
		s.Close()
		return err
	}

	log.SetRepo(outlDir)

	env.store = s
	env.svc = outline.New(s)
	env.session = session
	env.cfg = cfg
	return nil
}

// discoverDB locates the outlines database. OUTL_DIR points at an
// explicit .outl directory, skipping discovery; otherwise walk up from
// the working directory.
func discoverDB() (string, error) {
	if dir := os.Getenv("OUTL_DIR"); dir != "" {
		dbPath := filepath.Join(dir, repo.DBFile)
		if _, err := os.Stat(dbPath); err != nil {
			return "", repo.ErrNotInitialised
		}
		return dbPath, nil
	}
	return repo.Discover()
}

// closeEnv releases the store. Used between test runs and at exit.
func closeEnv() {
	if env.store != nil {
		env.store.Close()
		env.store = nil
		env.svc = nil
		env.session = nil
		env.cfg = nil
	}
}

// activeProject resolves the project commands operate on: the --project
// flag or OUTL_PROJECT override first, then the session's active project.
func activeProject(ctx context.Context) (*store.Project, error) {
	if name := Project(); name != "" {
		return env.store.ProjectByName(ctx, name)
	}
	id, err := env.session.Active()
	if err != nil {
		return nil, err
	}
	p, err := env.store.ProjectByID(ctx, id)
	if err != nil {
		// The active project was deleted out from under the session.
		env.session.ClearActive()
		_ = env.session.Save()
		return nil, state.ErrNoActiveProject
	}
	return p, nil
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and ensures the store is
// closed before exit. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	err := rootCmd.Execute()
	closeEnv()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
