// Package editor implements the modal single-line editor used for
// sentence text. It has two modes in the vim tradition: normal mode for
// movement and deletion, insert mode for typing. The editing state machine
// lives here, free of terminal I/O, so it can be driven directly in tests;
// editor.go owns the raw-mode terminal loop.
package editor

// Mode is the editor's input mode.
type Mode int

const (
	Normal Mode = iota
	Insert
)

// Buffer is a single line of text under modal editing. Cursor is a rune
// index into the content.
type Buffer struct {
	runes  []rune
	cursor int
	mode   Mode
}

// NewBuffer starts an editing session over the given text in normal mode
// with the cursor at the start.
func NewBuffer(text string) *Buffer {
	return &Buffer{runes: []rune(text)}
}

// String returns the current text.
func (b *Buffer) String() string { return string(b.runes) }

// Mode returns the current input mode.
func (b *Buffer) Mode() Mode { return b.mode }

// Cursor returns the cursor's rune index.
func (b *Buffer) Cursor() int { return b.cursor }

// Status describes what a keypress did.
type Status int

const (
	Continue Status = iota
	Submit
	Cancel
)

// Key codes handled specially.
const (
	keyEscape    = 0x1b
	keyEnter     = '\r'
	keyNewline   = '\n'
	keyBackspace = 0x7f
	keyCtrlC     = 0x03
)

// Handle processes one keypress and reports whether editing continues,
// submits, or cancels. Enter always submits; Escape drops insert mode
// back to normal and submits from normal mode; 'q' in normal mode and
// Ctrl-C anywhere cancel.
func (b *Buffer) Handle(key rune) Status {
	switch key {
	case keyCtrlC:
		return Cancel
	case keyEnter, keyNewline:
		return Submit
	case keyEscape:
		if b.mode == Normal {
			return Submit
		}
		b.mode = Normal
		if b.cursor > 0 && b.cursor == len(b.runes) {
			b.cursor--
		}
		return Continue
	}

	if b.mode == Insert {
		b.insertKey(key)
		return Continue
	}
	return b.normalKey(key)
}

func (b *Buffer) insertKey(key rune) {
	if key == keyBackspace {
		if b.cursor > 0 {
			b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
			b.cursor--
		}
		return
	}
	if key < 0x20 {
		return // ignore other control characters
	}
	b.runes = append(b.runes[:b.cursor], append([]rune{key}, b.runes[b.cursor:]...)...)
	b.cursor++
}

func (b *Buffer) normalKey(key rune) Status {
	switch key {
	case 'q':
		return Cancel
	case 'h':
		if b.cursor > 0 {
			b.cursor--
		}
	case 'l':
		if b.cursor < len(b.runes)-1 {
			b.cursor++
		}
	case '0':
		b.cursor = 0
	case '$':
		if len(b.runes) > 0 {
			b.cursor = len(b.runes) - 1
		}
	case 'i':
		b.mode = Insert
	case 'a':
		b.mode = Insert
		if b.cursor < len(b.runes) {
			b.cursor++
		}
	case 'A':
		b.mode = Insert
		b.cursor = len(b.runes)
	case 'I':
		b.mode = Insert
		b.cursor = 0
	case 'x':
		if len(b.runes) > 0 && b.cursor < len(b.runes) {
			b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
			if b.cursor > 0 && b.cursor == len(b.runes) {
				b.cursor--
			}
		}
	case 'd':
		b.deleteWord()
	case 'D':
		b.runes = b.runes[:b.cursor]
		if b.cursor > 0 {
			b.cursor--
		}
	case 'w':
		b.cursor = b.nextWord()
	case 'b':
		b.cursor = b.prevWord()
	}
	return Continue
}

// deleteWord removes from the cursor through the next space, taking the
// space with it.
func (b *Buffer) deleteWord() {
	if b.cursor >= len(b.runes) {
		return
	}
	end := b.cursor
	for end < len(b.runes) && b.runes[end] != ' ' {
		end++
	}
	if end < len(b.runes) {
		end++
	}
	b.runes = append(b.runes[:b.cursor], b.runes[end:]...)
	if b.cursor > 0 && b.cursor >= len(b.runes) {
		b.cursor = len(b.runes) - 1
	}
}

func (b *Buffer) nextWord() int {
	i := b.cursor
	for i < len(b.runes) && b.runes[i] != ' ' {
		i++
	}
	for i < len(b.runes) && b.runes[i] == ' ' {
		i++
	}
	if i >= len(b.runes) && len(b.runes) > 0 {
		return len(b.runes) - 1
	}
	return i
}

func (b *Buffer) prevWord() int {
	i := b.cursor
	for i > 0 && (i >= len(b.runes) || b.runes[i-1] == ' ') {
		i--
	}
	for i > 0 && b.runes[i-1] != ' ' {
		i--
	}
	return i
}
