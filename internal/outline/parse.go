// parse.go turns raw command-bar input into structured commands. Parsing
// is purely lexical; id and key resolution happens in the Service so
// malformed input never touches storage.

package outline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCommand reports unparsable input. The message carries the
// usage hint shown to the user.
var ErrInvalidCommand = errors.New("invalid command")

// Kind identifies a parsed command.
type Kind int

const (
	KindHeading Kind = iota
	KindSubheading
	KindAddSentence
	KindInsert
	KindEdit
	KindDelete
	KindCopySentence
	KindMoveSentence
	KindCopyHeading
	KindCopyHeadingToProject
	KindMoveHeading
	KindMoveSubheading
	KindDeleteHeading
)

// Command is one parsed command-bar entry.
type Command struct {
	Kind Kind

	// Heading/subheading addressing.
	HeadingKey string
	SubIndex   int
	Name       string

	// Line-addressed commands.
	Line int
	Text string

	// Id-addressed copy/move commands.
	ID       int64
	TargetID int64
}

var headingRe = regexp.MustCompile(`^[hH]([a-zA-Z])(\d*)\s*(.*)$`)

// Parse interprets one line of command-bar input.
func Parse(input string) (*Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidCommand)
	}

	if strings.HasPrefix(input, "+") {
		text := strings.TrimSpace(input[1:])
		if text == "" {
			return nil, fmt.Errorf("%w: sentence text required, example: + This is my sentence", ErrInvalidCommand)
		}
		return &Command{Kind: KindAddSentence, Text: text}, nil
	}

	fields := strings.Fields(input)
	verb := strings.ToLower(fields[0])
	rest := fields[1:]

	switch verb {
	case "i":
		if len(rest) < 2 {
			return nil, fmt.Errorf("%w: usage: i <line#> <text>", ErrInvalidCommand)
		}
		line, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid line number %q", ErrInvalidCommand, rest[0])
		}
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input[1:]), rest[0]))
		return &Command{Kind: KindInsert, Line: line, Text: text}, nil
	case "e", "d":
		if len(rest) != 1 {
			return nil, fmt.Errorf("%w: usage: %s <line#>", ErrInvalidCommand, verb)
		}
		line, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid line number %q", ErrInvalidCommand, rest[0])
		}
		kind := KindEdit
		if verb == "d" {
			kind = KindDelete
		}
		return &Command{Kind: kind, Line: line}, nil
	case "cs", "ms", "ch", "cp", "mh", "msh":
		if len(rest) != 2 {
			return nil, fmt.Errorf("%w: usage: %s <id> <target_id>", ErrInvalidCommand, verb)
		}
		id, err1 := strconv.ParseInt(rest[0], 10, 64)
		target, err2 := strconv.ParseInt(rest[1], 10, 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: %s takes two numeric ids", ErrInvalidCommand, verb)
		}
		kinds := map[string]Kind{
			"cs":  KindCopySentence,
			"ms":  KindMoveSentence,
			"ch":  KindCopyHeading,
			"cp":  KindCopyHeadingToProject,
			"mh":  KindMoveHeading,
			"msh": KindMoveSubheading,
		}
		return &Command{Kind: kinds[verb], ID: id, TargetID: target}, nil
	case "dh":
		if len(rest) != 1 {
			return nil, fmt.Errorf("%w: usage: dh <heading_id>", ErrInvalidCommand)
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid heading id %q", ErrInvalidCommand, rest[0])
		}
		return &Command{Kind: KindDeleteHeading, ID: id}, nil
	}

	if m := headingRe.FindStringSubmatch(input); m != nil {
		cmd := &Command{HeadingKey: strings.ToLower(m[1]), Name: strings.TrimSpace(m[3])}
		if m[2] == "" {
			cmd.Kind = KindHeading
			return cmd, nil
		}
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: invalid subheading index %q", ErrInvalidCommand, m[2])
		}
		cmd.Kind = KindSubheading
		cmd.SubIndex = n
		return cmd, nil
	}

	return nil, fmt.Errorf("%w: unknown command %q", ErrInvalidCommand, verb)
}
