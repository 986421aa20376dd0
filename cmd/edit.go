/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// edit.go runs the interactive outline editor: a render/prompt loop that
// reads short commands from the command bar and dispatches them through
// the outline service. The same loop also accepts piped input, which is
// how the command tests drive it.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/outl/internal/diff"
	"github.com/jpl-au/outl/internal/editor"
	"github.com/jpl-au/outl/internal/log"
	"github.com/jpl-au/outl/internal/outline"
	"github.com/jpl-au/outl/internal/store"
	"github.com/jpl-au/outl/internal/ui"
	"github.com/jpl-au/outl/internal/validate"
)

var collapseRe = regexp.MustCompile(`^@([a-z]|#\d+)$`)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the active project's outline interactively",
	Long: `Edit opens the command bar over the active project. Commands:

  ha <name>        create or rename heading a (keys claimed in order)
  ha               select heading a
  ha1 <name>       create or rename subheading 1 of heading a
  + <text>         append a sentence to the current selection
  i <line#> <text> insert a sentence before the given line
  e <line#>        edit a sentence in the inline editor
  d <line#>        delete a sentence
  cs/ms <id> <id>  copy/move a sentence to a subheading
  ch <id> <id>     copy a heading before another in this project
  cp/mh <id> <id>  copy/move a heading to another project
  msh <id> <id>    move a subheading to another heading
  dh <id>          delete a heading
  @a               collapse or expand heading a
  h / l            previous / next page
  ?                this list
  q                quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := activeProject(cmd.Context())
		if err != nil {
			return PrintJSONError(err)
		}
		return runEditLoop(cmd, p)
	},
}

func runEditLoop(cmd *cobra.Command, p *store.Project) error {
	ctx := cmd.Context()
	interactive := ui.IsInteractive()
	in := bufio.NewScanner(cmd.InOrStdin())
	var sel outline.Selection
	page := 0

	for {
		tree, err := env.store.OrderedContent(ctx, p.ID)
		if err != nil {
			return err
		}
		rendered := ui.Outline(tree, ui.RenderOptions{Collapsed: env.session.Collapsed})
		pager := ui.NewPager(rendered, ui.TerminalHeight())
		if page >= pager.PageCount() {
			page = pager.PageCount() - 1
		}
		for pager.Current() <= page {
			pager.Next()
		}

		if interactive {
			fmt.Fprint(Out(), "\033[2J\033[H")
		}
		fmt.Fprintln(Out(), pager.Page())
		if pager.PageCount() > 1 {
			fmt.Fprintln(Out(), ui.Muted.Render(fmt.Sprintf("page %d/%d (h/l to page)", pager.Current(), pager.PageCount())))
		}
		fmt.Fprintf(Out(), "\n%s> ", selectionLabel(&sel))

		if !in.Scan() {
			break
		}
		input := strings.TrimSpace(in.Text())
		if input == "" {
			continue
		}

		switch input {
		case "q":
			fmt.Fprintln(Out(), "Goodbye!")
			return in.Err()
		case "h":
			if pager.Prev() {
				page = pager.Current() - 1
			}
			continue
		case "l":
			if pager.Next() {
				page = pager.Current() - 1
			}
			continue
		case "?":
			fmt.Fprintln(Out(), cmd.Long)
			waitForEnter(in, interactive)
			continue
		}

		if m := collapseRe.FindStringSubmatch(strings.ToLower(input)); m != nil {
			if err := toggleCollapse(ctx, p.ID, m[1]); err != nil {
				printEditError(in, interactive, err)
			}
			continue
		}

		if err := dispatch(ctx, p, input, &sel, interactive); err != nil {
			printEditError(in, interactive, err)
		}
	}
	return in.Err()
}

// dispatch parses one command-bar entry and applies it.
func dispatch(ctx context.Context, p *store.Project, input string, sel *outline.Selection, interactive bool) error {
	c, err := outline.Parse(input)
	if err != nil {
		return err
	}

	switch c.Kind {
	case outline.KindHeading:
		if c.Name != "" {
			if err := validate.Name(c.Name, env.cfg.MaxName()); err != nil {
				return err
			}
		}
		action, err := env.svc.HeadingCommand(ctx, p.ID, c.HeadingKey, c.Name, sel)
		log.Event("edit:heading", "h"+c.HeadingKey).Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return err
		}
		announce(action, "heading", c.HeadingKey, sel.HeadingName)
		return nil

	case outline.KindSubheading:
		if c.Name != "" {
			if err := validate.SubheadingName(c.Name, env.cfg.MaxName()); err != nil {
				return err
			}
		}
		action, err := env.svc.SubheadingCommand(ctx, p.ID, c.HeadingKey, c.SubIndex, c.Name, sel)
		log.Event("edit:subheading", fmt.Sprintf("h%s%d", c.HeadingKey, c.SubIndex)).Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return err
		}
		announce(action, "subheading", fmt.Sprintf("%s%d", c.HeadingKey, c.SubIndex), sel.SubheadingName)
		return nil

	case outline.KindAddSentence:
		if err := validate.Content(c.Text, env.cfg.MaxContent()); err != nil {
			return err
		}
		_, err := env.svc.AddSentence(ctx, sel, c.Text)
		log.Event("edit:sentence", "add").Author(Author()).Project(p.Name).Write(err)
		return err

	case outline.KindInsert:
		if err := validate.Content(c.Text, env.cfg.MaxContent()); err != nil {
			return err
		}
		_, err := env.svc.InsertBefore(ctx, p.ID, c.Line, c.Text)
		log.Event("edit:sentence", "insert").Author(Author()).Project(p.Name).Line(c.Line).Write(err)
		return err

	case outline.KindEdit:
		return editLine(ctx, p, c.Line, interactive)

	case outline.KindDelete:
		err := env.svc.DeleteLine(ctx, p.ID, c.Line, sel)
		log.Event("edit:sentence", "delete").Author(Author()).Project(p.Name).Line(c.Line).Write(err)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Line %d deleted", c.Line)))
		return nil

	case outline.KindCopySentence:
		_, err := env.svc.CopySentence(ctx, c.ID, c.TargetID)
		log.Event("edit:sentence", "copy").Author(Author()).Project(p.Name).Write(err)
		return err

	case outline.KindMoveSentence:
		err := env.svc.MoveSentence(ctx, c.ID, c.TargetID)
		log.Event("edit:sentence", "move").Author(Author()).Project(p.Name).Write(err)
		return err

	case outline.KindCopyHeading:
		_, err := env.svc.CopyHeadingBefore(ctx, c.ID, c.TargetID)
		log.Event("edit:heading", "copy").Author(Author()).Project(p.Name).Write(err)
		return err

	case outline.KindCopyHeadingToProject:
		_, err := env.svc.CopyHeadingToProject(ctx, c.ID, c.TargetID)
		log.Event("edit:heading", "copy-to-project").Author(Author()).Project(p.Name).Write(err)
		return err

	case outline.KindMoveHeading:
		err := env.svc.MoveHeading(ctx, c.ID, c.TargetID)
		log.Event("edit:heading", "move").Author(Author()).Project(p.Name).Write(err)
		return err

	case outline.KindMoveSubheading:
		err := env.svc.MoveSubheading(ctx, c.ID, c.TargetID)
		log.Event("edit:subheading", "move").Author(Author()).Project(p.Name).Write(err)
		return err

	case outline.KindDeleteHeading:
		err := env.svc.DeleteHeading(ctx, c.ID)
		log.Event("edit:heading", "delete").Author(Author()).Project(p.Name).Write(err)
		if err != nil {
			return err
		}
		if sel.HeadingID == c.ID {
			*sel = outline.Selection{}
		}
		return nil
	}
	return fmt.Errorf("unknown command %q", input)
}

// editLine runs the inline editor over a sentence and shows a diff of the
// change before persisting it.
func editLine(ctx context.Context, p *store.Project, line int, interactive bool) error {
	l, err := env.svc.LineAt(ctx, p.ID, line)
	if err != nil {
		return err
	}
	if !interactive {
		return fmt.Errorf("e %d needs an interactive terminal", line)
	}

	edited, err := editor.Edit(l.Content)
	if err == editor.ErrCancelled {
		return nil
	}
	if err != nil {
		return err
	}
	if edited == l.Content {
		return nil
	}
	if err := validate.Content(edited, env.cfg.MaxContent()); err != nil {
		return err
	}

	d := diff.Compute(l.Content, edited, fmt.Sprintf("line %d", line), fmt.Sprintf("line %d (edited)", line))
	if d.Changed() {
		fmt.Fprint(Out(), d.Format(interactive))
	}

	err = env.svc.EditLine(ctx, p.ID, line, edited)
	log.Event("edit:sentence", "update").Author(Author()).Project(p.Name).Line(line).Write(err)
	return err
}

// toggleCollapse flips a heading's collapsed state, addressed by display
// key. Collapse state persists in the session file, so 'outl show' honours
// it too.
func toggleCollapse(ctx context.Context, projectID int64, key string) error {
	m, err := outline.BuildKeyMap(ctx, env.store, projectID)
	if err != nil {
		return err
	}
	h, ok := m.Heading(key)
	if !ok {
		return fmt.Errorf("heading [%s] doesn't exist", key)
	}

	if env.session.ToggleCollapsed(h.ID) {
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Heading [%s] collapsed", key)))
	} else {
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Heading [%s] expanded", key)))
	}
	return env.session.Save()
}

func announce(action outline.Action, entity, key, name string) {
	switch action {
	case outline.Created:
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Created %s [%s] %s", entity, key, name)))
	case outline.Renamed:
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Renamed %s [%s] to %s", entity, key, name)))
	case outline.Selected:
		fmt.Fprintln(Out(), ui.Success(fmt.Sprintf("Selected %s [%s] %s", entity, key, name)))
	}
}

// selectionLabel names the current selection for the prompt.
func selectionLabel(sel *outline.Selection) string {
	switch {
	case sel.SubheadingName != "":
		return sel.HeadingName + " / " + sel.SubheadingName
	case sel.HeadingID != 0:
		return sel.HeadingName
	default:
		return "(no selection)"
	}
}

func printEditError(in *bufio.Scanner, interactive bool, err error) {
	fmt.Fprintln(Out(), ui.Error(err.Error()))
	waitForEnter(in, interactive)
}

// waitForEnter keeps an error or help screen visible until the user
// acknowledges it. Skipped for piped input.
func waitForEnter(in *bufio.Scanner, interactive bool) {
	if !interactive {
		return
	}
	fmt.Fprint(Out(), ui.Muted.Render("press enter to continue"))
	in.Scan()
}

func init() {
	rootCmd.AddCommand(editCmd)
}
