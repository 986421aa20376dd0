// Package outline translates the short command vocabulary of the editor
// into repository calls. It owns key assignment (headings addressed as
// 'a'..'z' then '#26', subheadings as 'a1', 'a2') and the sequential
// creation policy: new keys must be claimed in order, so the next heading
// after 'a' is always 'b'.
package outline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jpl-au/outl/internal/store"
)

// HeadingKey maps a zero-based heading position to its display key:
// 'a'..'z' for the first 26, then '#26', '#27' and so on.
func HeadingKey(index int) string {
	if index >= 0 && index < 26 {
		return string(rune('a' + index))
	}
	return fmt.Sprintf("#%d", index)
}

// SubheadingKey composes a subheading's display key from its heading's key
// and its 1-based position, e.g. "a" + 2 -> "a2".
func SubheadingKey(headingKey string, subIndex int) string {
	return fmt.Sprintf("%s%d", headingKey, subIndex)
}

// ParseHeadingKey converts a display key back to a zero-based index.
// Accepts the letter form and the '#n' overflow form.
func ParseHeadingKey(key string) (int, error) {
	if len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' {
		return int(key[0] - 'a'), nil
	}
	if len(key) > 1 && key[0] == '#' {
		n, err := strconv.Atoi(key[1:])
		if err != nil || n < 26 {
			return 0, fmt.Errorf("invalid heading key %q", key)
		}
		return n, nil
	}
	return 0, fmt.Errorf("invalid heading key %q", key)
}

// KeyMap is the per-render mapping from display keys to entities. It is
// rebuilt after every mutation; keys are positional and shift whenever
// siblings reorder.
type KeyMap struct {
	headings    map[string]store.Heading
	subheadings map[string]store.Subheading
	// subCounts tracks subheadings per heading key for sequence checks.
	subCounts map[string]int
	order     []string
}

// BuildKeyMap assigns keys to every heading and subheading of a project in
// display order.
func BuildKeyMap(ctx context.Context, st store.Store, projectID int64) (*KeyMap, error) {
	headings, err := st.ListHeadings(ctx, projectID)
	if err != nil {
		return nil, err
	}

	m := &KeyMap{
		headings:    make(map[string]store.Heading, len(headings)),
		subheadings: make(map[string]store.Subheading),
		subCounts:   make(map[string]int, len(headings)),
	}
	for i, h := range headings {
		key := HeadingKey(i)
		m.headings[key] = h
		m.order = append(m.order, key)

		subs, err := st.ListSubheadings(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		m.subCounts[key] = len(subs)
		for j, sub := range subs {
			m.subheadings[SubheadingKey(key, j+1)] = sub
		}
	}
	return m, nil
}

// Heading looks up a heading by its key.
func (m *KeyMap) Heading(key string) (store.Heading, bool) {
	h, ok := m.headings[key]
	return h, ok
}

// Subheading looks up a subheading by its composed key.
func (m *KeyMap) Subheading(key string) (store.Subheading, bool) {
	sub, ok := m.subheadings[key]
	return sub, ok
}

// HeadingKeys returns every assigned heading key in display order.
func (m *KeyMap) HeadingKeys() []string {
	return m.order
}

// NextHeadingKey is the only key a new heading may be created under.
func (m *KeyMap) NextHeadingKey() string {
	return HeadingKey(len(m.headings))
}

// NextSubIndex is the only index a new subheading of the given heading may
// be created under.
func (m *KeyMap) NextSubIndex(headingKey string) int {
	return m.subCounts[headingKey] + 1
}

// KeyOf returns the display key currently assigned to a heading id, or ""
// when the id is not in the map.
func (m *KeyMap) KeyOf(headingID int64) string {
	for _, key := range m.order {
		if m.headings[key].ID == headingID {
			return key
		}
	}
	return ""
}
