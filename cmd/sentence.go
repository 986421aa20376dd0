/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// sentence.go exposes sentence operations as plain subcommands.
// Sentences are addressed by their flattened line number; copy and move
// targets by subheading key.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/diff"
	"github.com/jpl-au/outl/internal/log"
	"github.com/jpl-au/outl/internal/outline"
	"github.com/jpl-au/outl/internal/ui"
	"github.com/jpl-au/outl/internal/validate"
)

var sentenceTo string

func parseLine(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid line number %q", arg)
	}
	return n, nil
}

var sentenceCmd = &cobra.Command{
	Use:     "sentence",
	Aliases: []string{"line"},
	Short:   "Manage sentences without the interactive editor",
}

var sentenceAddCmd = &cobra.Command{
	Use:   "add <heading-or-sub-key> <text>",
	Short: "Append a sentence under a heading or subheading",
	Long: `Add appends a sentence. Given a subheading key (a1) it lands there;
given a heading key (a) it attaches directly to the heading through its
unnamed subheading, created on demand.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		if err := validate.Content(args[1], env.cfg.MaxContent()); err != nil {
			return PrintJSONError(err)
		}

		m, err := outline.BuildKeyMap(cmd.Context(), env.store, p.ID)
		if err != nil {
			return PrintJSONError(err)
		}

		var sel outline.Selection
		if sub, ok := m.Subheading(args[0]); ok {
			h, err := env.store.HeadingByID(cmd.Context(), sub.HeadingID)
			if err != nil {
				return PrintJSONError(err)
			}
			sel.SelectSubheading(*h, sub)
		} else if h, ok := m.Heading(args[0]); ok {
			sel.SelectHeading(h)
		} else {
			return PrintJSONError(fmt.Errorf("no heading or subheading [%s]", args[0]))
		}

		s, err := env.svc.AddSentence(cmd.Context(), &sel, args[1])
		log.Event("sentence:add", "create").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"id": s.ID})
		}
		fmt.Fprintln(Out(), ui.Success("Sentence added"))
		return nil
	},
}

var sentenceInsertCmd = &cobra.Command{
	Use:   "insert <line#> <text>",
	Short: "Insert a sentence before a line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		line, err := parseLine(args[0])
		if err != nil {
			return PrintJSONError(err)
		}
		if err := validate.Content(args[1], env.cfg.MaxContent()); err != nil {
			return PrintJSONError(err)
		}

		s, err := env.store.InsertSentenceBefore(cmd.Context(), p.ID, line, args[1])
		log.Event("sentence:insert", "create").Author(Author()).Project(p.Name).Line(line).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"id": s.ID, "line": line})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Inserted before line %d", line)))
		return nil
	},
}

var sentenceEditCmd = &cobra.Command{
	Use:   "edit <line#> <text>",
	Short: "Replace a sentence's text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		line, err := parseLine(args[0])
		if err != nil {
			return PrintJSONError(err)
		}
		if err := validate.Content(args[1], env.cfg.MaxContent()); err != nil {
			return PrintJSONError(err)
		}

		l, err := env.store.SentenceAtLine(cmd.Context(), p.ID, line)
		if err != nil {
			return PrintJSONError(err)
		}

		err = env.store.UpdateSentence(cmd.Context(), l.SentenceID, args[1])
		log.Event("sentence:edit", "update").Author(Author()).Project(p.Name).Line(line).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		d := diff.Compute(l.Content, args[1], fmt.Sprintf("line %d", line), fmt.Sprintf("line %d (edited)", line))
		if JSON() {
			return PrintJSON(map[string]any{"id": l.SentenceID, "diff": d.Diff})
		}
		if d.Changed() {
			fmt.Fprint(Out(), d.Format(ui.IsInteractive()))
		}
		return nil
	},
}

var sentenceRmCmd = &cobra.Command{
	Use:   "rm <line#>",
	Short: "Delete a sentence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		line, err := parseLine(args[0])
		if err != nil {
			return PrintJSONError(err)
		}

		l, err := env.store.SentenceAtLine(cmd.Context(), p.ID, line)
		if err != nil {
			return PrintJSONError(err)
		}
		err = env.store.DeleteSentence(cmd.Context(), l.SentenceID)
		log.Event("sentence:rm", "delete").Author(Author()).Project(p.Name).Line(line).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"deleted": l.SentenceID})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Line %d deleted", line)))
		return nil
	},
}

var sentenceCopyCmd = &cobra.Command{
	Use:   "copy <line#>",
	Short: "Copy a sentence to a subheading",
	Args:  cobra.ExactArgs(1),
	RunE:  sentenceTransfer(false),
}

var sentenceMoveCmd = &cobra.Command{
	Use:   "move <line#>",
	Short: "Move a sentence to a subheading",
	Args:  cobra.ExactArgs(1),
	RunE:  sentenceTransfer(true),
}

// sentenceTransfer builds the shared copy/move handler. The target
// subheading key is required; moves compact the source group.
func sentenceTransfer(move bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		if sentenceTo == "" {
			return PrintJSONError(fmt.Errorf("specify --to <subheading-key>"))
		}
		line, err := parseLine(args[0])
		if err != nil {
			return PrintJSONError(err)
		}

		l, err := env.store.SentenceAtLine(cmd.Context(), p.ID, line)
		if err != nil {
			return PrintJSONError(err)
		}
		target, err := resolveSubheading(cmd.Context(), p.ID, sentenceTo)
		if err != nil {
			return PrintJSONError(err)
		}

		verb := "copy"
		if move {
			verb = "move"
			err = env.store.MoveSentence(cmd.Context(), l.SentenceID, target.ID)
		} else {
			_, err = env.store.CopySentence(cmd.Context(), l.SentenceID, target.ID)
		}
		log.Event("sentence:"+verb, verb).Author(Author()).Project(p.Name).Line(line).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]any{"line": line, "target": sentenceTo})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Line %d %sd to [%s]", line, verb, sentenceTo)))
		return nil
	}
}

func init() {
	sentenceCopyCmd.Flags().StringVar(&sentenceTo, "to", "", "target subheading key")
	sentenceMoveCmd.Flags().StringVar(&sentenceTo, "to", "", "target subheading key")
	sentenceCmd.AddCommand(sentenceAddCmd, sentenceInsertCmd, sentenceEditCmd, sentenceRmCmd, sentenceCopyCmd, sentenceMoveCmd)
	rootCmd.AddCommand(sentenceCmd)
}
