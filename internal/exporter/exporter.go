// Package exporter writes a project's outline to the filesystem as plain
// text or markdown. Exports are versioned: each run writes into a fresh
// <export-dir>/<project-slug>/<yyyy-mm-dd>-vN/ directory, so earlier
// exports are never overwritten.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/jpl-au/outl/internal/store"
)

// Format selects the export output format.
type Format int

const (
	FormatText Format = iota
	FormatMarkdown
)

// Result contains the outcome of an export operation.
type Result struct {
	Dir  string // versioned directory created for this export
	Path string // file that was written
}

// Export renders the tree and writes it into a fresh versioned directory
// under baseDir.
func Export(tree *store.ProjectTree, baseDir string, format Format) (Result, error) {
	var result Result

	dir, err := versionedDir(baseDir, tree.Name, time.Now())
	if err != nil {
		return result, err
	}

	name := slug.Make(tree.Name)
	var content, ext string
	switch format {
	case FormatMarkdown:
		content = Markdown(tree)
		ext = ".md"
	default:
		content = Text(tree)
		ext = ".txt"
	}

	path := filepath.Join(dir, name+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return result, fmt.Errorf("write export: %w", err)
	}

	result.Dir = dir
	result.Path = path
	return result, nil
}

// ErrNoPrevious is returned by Latest when the project has never been
// exported in the requested format.
var ErrNoPrevious = fmt.Errorf("no previous export")

// Latest returns the path of the most recent export of the project in the
// given format, or ErrNoPrevious. Versioned directory names sort
// lexicographically by date then version, so the last entry that contains
// the expected file wins.
func Latest(baseDir, projectName string, format Format) (string, error) {
	name := slug.Make(projectName)
	ext := ".txt"
	if format == FormatMarkdown {
		ext = ".md"
	}

	projectDir := filepath.Join(baseDir, name)
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoPrevious
		}
		return "", fmt.Errorf("read export directory: %w", err)
	}

	// Same-date versions sort v1 < v10 < v2 lexicographically; compare
	// parsed versions instead of trusting the name order.
	best := ""
	bestDate, bestVersion := "", 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		var version int
		dash := strings.LastIndex(e.Name(), "-v")
		if dash < 0 {
			continue
		}
		if _, err := fmt.Sscanf(e.Name()[dash:], "-v%d", &version); err != nil {
			continue
		}
		date := e.Name()[:dash]
		path := filepath.Join(projectDir, e.Name(), name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if date > bestDate || (date == bestDate && version > bestVersion) {
			best, bestDate, bestVersion = path, date, version
		}
	}
	if best == "" {
		return "", ErrNoPrevious
	}
	return best, nil
}

// versionedDir creates and returns <baseDir>/<slug>/<yyyy-mm-dd>-vN with
// the lowest N that does not yet exist.
func versionedDir(baseDir, projectName string, now time.Time) (string, error) {
	projectDir := filepath.Join(baseDir, slug.Make(projectName))
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	date := now.Format("2006-01-02")
	for version := 1; ; version++ {
		dir := filepath.Join(projectDir, fmt.Sprintf("%s-v%d", date, version))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return "", fmt.Errorf("create versioned directory: %w", err)
			}
			return dir, nil
		}
	}
}

// Text renders the outline as plain text: the project name underlined
// with '=', headings underlined with '-', subheading names indented, and
// sentences indented beneath them.
func Text(tree *store.ProjectTree) string {
	var b strings.Builder

	b.WriteString(tree.Name + "\n")
	b.WriteString(strings.Repeat("=", len(tree.Name)) + "\n\n")

	for _, h := range tree.Headings {
		b.WriteString(h.Name + "\n")
		b.WriteString(strings.Repeat("-", len(h.Name)) + "\n\n")

		for _, sub := range h.Subheadings {
			if sub.Name != "" {
				b.WriteString("  " + sub.Name + "\n\n")
			}
			for _, sentence := range sub.Sentences {
				b.WriteString("    " + sentence + "\n\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Markdown renders the outline with the project as an H1, headings as H2,
// subheadings as H3, and each sentence as its own paragraph.
func Markdown(tree *store.ProjectTree) string {
	var b strings.Builder

	b.WriteString("# " + tree.Name + "\n\n")
	for _, h := range tree.Headings {
		b.WriteString("## " + h.Name + "\n\n")
		for _, sub := range h.Subheadings {
			if sub.Name != "" {
				b.WriteString("### " + sub.Name + "\n\n")
			}
			for _, sentence := range sub.Sentences {
				b.WriteString(sentence + "\n\n")
			}
		}
	}
	return b.String()
}
