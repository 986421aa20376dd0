package validate_test

import (
	"strings"
	"testing"

	"github.com/jpl-au/outl/internal/validate"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.NoError(t, validate.Name("Chapter One", 0))
	assert.NoError(t, validate.Name("Chapter One", 256))

	assert.ErrorIs(t, validate.Name("", 0), validate.ErrInvalidName)
	assert.ErrorIs(t, validate.Name("   ", 0), validate.ErrInvalidName)
	assert.ErrorIs(t, validate.Name("bad\x00name", 0), validate.ErrInvalidName)
	assert.ErrorIs(t, validate.Name("two\nlines", 0), validate.ErrInvalidName)
	assert.ErrorIs(t, validate.Name(strings.Repeat("x", 300), 256), validate.ErrNameTooLong)
}

func TestSubheadingName(t *testing.T) {
	// Blank sentinel is always legal.
	assert.NoError(t, validate.SubheadingName("", 10))
	assert.NoError(t, validate.SubheadingName("Background", 256))
	assert.ErrorIs(t, validate.SubheadingName("bad\nname", 0), validate.ErrInvalidName)
}

func TestContent(t *testing.T) {
	assert.NoError(t, validate.Content("", 0))
	assert.NoError(t, validate.Content("any text at all", 0))
	assert.NoError(t, validate.Content("short", 10))
	assert.ErrorIs(t, validate.Content(strings.Repeat("x", 11), 10), validate.ErrContentTooLarge)
}
