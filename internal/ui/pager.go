// pager.go implements the h/l paging used by the interactive editor when
// an outline outgrows the terminal. Paging operates on rendered lines, so
// styling never splits across a page boundary.

package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Pager splits rendered output into fixed-height pages.
type Pager struct {
	lines  []string
	height int
	page   int
}

// NewPager wraps rendered content for paging at the given height. Height
// values below 1 disable paging by placing everything on one page.
func NewPager(content string, height int) *Pager {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if height < 1 {
		height = len(lines)
	}
	return &Pager{lines: lines, height: height}
}

// PageCount reports the number of pages.
func (p *Pager) PageCount() int {
	if len(p.lines) == 0 {
		return 1
	}
	return (len(p.lines) + p.height - 1) / p.height
}

// Page returns the current page's content.
func (p *Pager) Page() string {
	start := p.page * p.height
	if start >= len(p.lines) {
		return ""
	}
	end := start + p.height
	if end > len(p.lines) {
		end = len(p.lines)
	}
	return strings.Join(p.lines[start:end], "\n")
}

// Current returns the 1-based current page number.
func (p *Pager) Current() int {
	return p.page + 1
}

// Next advances a page, reporting whether the page changed.
func (p *Pager) Next() bool {
	if p.page+1 >= p.PageCount() {
		return false
	}
	p.page++
	return true
}

// Prev steps back a page, reporting whether the page changed.
func (p *Pager) Prev() bool {
	if p.page == 0 {
		return false
	}
	p.page--
	return true
}

// TerminalHeight returns the usable page height for the current terminal,
// reserving rows for the command bar. Falls back to 24 rows when stdout is
// not a terminal.
func TerminalHeight() int {
	const reserved = 4
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return 24 - reserved
	}
	_, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || h <= reserved {
		return 24 - reserved
	}
	return h - reserved
}

// IsInteractive reports whether stdin and stdout are both terminals, the
// precondition for the interactive editor and the inline sentence editor.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
