/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/diff"
	"github.com/jpl-au/outl/internal/exporter"
	"github.com/jpl-au/outl/internal/log"
	"github.com/jpl-au/outl/internal/store"
	"github.com/jpl-au/outl/internal/ui"
)

var (
	exportFormat  string
	exportPreview bool
	exportDiff    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active project to a file",
	Long: `Export writes the active project under the configured export
directory, in a dated, versioned folder per project:

  <export-dir>/<project-slug>/<yyyy-mm-dd>-v<N>/<project-slug>.<ext>

Formats: text (plain text with underlined headings) and markdown.
With --preview the rendered markdown is printed to the terminal instead
of written to disk. With --diff nothing is written either; the current
outline is compared against the most recent export in the same format.`,
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

		if exportPreview {
			rendered, err := exporter.Preview(tree)
			if err != nil {
				return PrintJSONError(err)
			}
			fmt.Fprint(Out(), rendered)
			return nil
		}

		var format exporter.Format
		switch exportFormat {
		case "text":
			format = exporter.FormatText
		case "markdown", "md":
			format = exporter.FormatMarkdown
		default:
			return PrintJSONError(fmt.Errorf("unknown format %q (text, markdown)", exportFormat))
		}

		if exportDiff {
			return exportAgainstPrevious(cmd, p.Name, tree, format)
		}

		res, err := exporter.Export(tree, env.cfg.ExportDir(), format)
		log.Event("export", exportFormat).Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(map[string]string{"path": res.Path})
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Exported %q to %s", p.Name, res.Path)))
		return nil
	},
}

// exportAgainstPrevious diffs the current outline against the most recent
// export in the same format without writing anything.
func exportAgainstPrevious(cmd *cobra.Command, projectName string, tree *store.ProjectTree, format exporter.Format) error {
	prev, err := exporter.Latest(env.cfg.ExportDir(), projectName, format)
	if err != nil {
		return PrintJSONError(err)
	}
	old, err := os.ReadFile(prev)
	if err != nil {
		return PrintJSONError(fmt.Errorf("read previous export: %w", err))
	}

	current := exporter.Text(tree)
	if format == exporter.FormatMarkdown {
		current = exporter.Markdown(tree)
	}

	d := diff.Compute(string(old), current, prev, "current outline")
	if !d.Changed() {
		fmt.Fprintln(Out(), "No changes since", prev)
		return nil
	}
	if JSON() {
		return PrintJSON(map[string]string{"previous": prev, "diff": d.Diff})
	}
	fmt.Fprint(Out(), d.Format(ui.IsInteractive()))
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "text", "export format (text, markdown)")
	exportCmd.Flags().BoolVar(&exportPreview, "preview", false, "render markdown to the terminal instead of a file")
	exportCmd.Flags().BoolVar(&exportDiff, "diff", false, "diff the outline against the most recent export")
	exportCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"text", "markdown"}, cobra.ShellCompDirectiveNoFileComp))
	rootCmd.AddCommand(exportCmd)
}
