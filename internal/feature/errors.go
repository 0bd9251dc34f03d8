package feature

import (
	"errors"
	"fmt"
)

// ParseError reports a descriptor that could not be converted to a Record.
type ParseError struct {
	// Descriptor is the input as given.
	Descriptor string

	// Offset is where parsing stopped, or -1. It counts runes of the
	// normalized descriptor: surrounding space trimmed, NFD decomposed and
	// tie bars removed. It can differ from a rune offset into Descriptor.
	Offset int

	// Reason is a human-readable description.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse %q: %s at rune %d", e.Descriptor, e.Reason, e.Offset)
	}
	return fmt.Sprintf("parse %q: %s", e.Descriptor, e.Reason)
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// TableError reports an invalid glyph table.
type TableError struct {
	Field   string
	Message string
	Pos     string
}

func (e *TableError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
