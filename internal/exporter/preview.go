// preview.go renders the markdown export in the terminal before anything
// touches the filesystem, so `export --preview` can show what a formatted
// document will look like.

package exporter

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jpl-au/outl/internal/store"
)

// Preview renders the project's markdown export for terminal display.
func Preview(tree *store.ProjectTree) (string, error) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	out, err := r.Render(Markdown(tree))
	if err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return out, nil
}
