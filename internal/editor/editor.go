// editor.go owns the terminal side of the inline editor: raw mode, key
// reads, and single-line redraws. Raw mode is restored on every exit path
// including cancellation.

package editor

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user abandons the edit with 'q' in
// normal mode or Ctrl-C.
var ErrCancelled = fmt.Errorf("edit cancelled")

// Edit runs the modal editor over initial text and returns the submitted
// result. The terminal is switched to raw mode for the duration.
func Edit(initial string) (string, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	buf := NewBuffer(initial)
	in := bufio.NewReader(os.Stdin)

	redraw(buf)
	for {
		key, _, err := in.ReadRune()
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}

		switch buf.Handle(key) {
		case Submit:
			fmt.Print("\r\n")
			return buf.String(), nil
		case Cancel:
			fmt.Print("\r\n")
			return "", ErrCancelled
		}
		redraw(buf)
	}
}

// redraw repaints the edit line in place. The cursor is positioned by
// printing the prefix, saving nothing: one line, no escape bookkeeping.
func redraw(b *Buffer) {
	mode := "NORMAL"
	if b.Mode() == Insert {
		mode = "INSERT"
	}
	fmt.Printf("\r\033[K[%s] %s", mode, b.String())
	// Park the terminal cursor over the buffer cursor.
	tail := len([]rune(b.String())) - b.Cursor()
	if tail > 0 {
		fmt.Printf("\033[%dD", tail)
	}
}
