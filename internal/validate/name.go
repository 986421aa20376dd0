// Package validate provides input validation at the boundary between user
// input and the storage layer.
//
// Validation is minimal by design. We reject clearly dangerous inputs
// (null bytes, control characters, excessive sizes) but avoid restrictive
// rules that would limit legitimate outline content.
package validate

import (
	"fmt"
	"strings"
)

// Name validates a project or heading name.
//
// Validation rules:
//   - Empty names rejected (Subheading is the one level that allows the
//     empty name, and it bypasses this check deliberately)
//   - Null bytes and newlines rejected (names render on a single line)
//   - Max length enforced if maxLen > 0 (0 means no limit)
func Name(name string, maxLen int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: null byte in name", ErrInvalidName)
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: newline in name", ErrInvalidName)
	}
	if maxLen > 0 && len(name) > maxLen {
		return ErrNameTooLong
	}
	return nil
}

// SubheadingName validates a subheading name. The empty string is the
// blank sentinel and is always allowed.
func SubheadingName(name string, maxLen int) error {
	if name == "" {
		return nil
	}
	return Name(name, maxLen)
}
