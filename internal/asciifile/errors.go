package asciifile

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrAlreadyOpen    = errors.New("file already opened")
	ErrNotReadable    = errors.New("file not readable")
	ErrNotWritable    = errors.New("file not writable")
	ErrMalformedFile  = errors.New("malformed file")
	ErrInvalidMode    = errors.New("invalid file mode")
	ErrInvalidName    = errors.New("invalid object name")
	ErrObjectNotFound = errors.New("object not found")
	ErrKindMismatch   = errors.New("object kind mismatch")
)

// MalformedFileError describes a grammar violation found while parsing.
// It matches ErrMalformedFile with errors.Is.
type MalformedFileError struct {
	File   string // File name, empty when parsing a bare stream
	Line   int    // 1-based line of the offending event, 0 if unknown
	Block  string // Name of the enclosing block, if any
	Reason string
	Err    error // Underlying cause (lexer or decode error), may be nil
}

// Error implements the error interface.
func (e *MalformedFileError) Error() string {
	msg := e.Reason
	if e.Block != "" {
		msg = fmt.Sprintf("block %q: %s", e.Block, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	default:
		return msg
	}
}

// Is reports ErrMalformedFile as a match.
func (e *MalformedFileError) Is(target error) bool {
	return target == ErrMalformedFile
}

// Unwrap returns the underlying cause.
func (e *MalformedFileError) Unwrap() error {
	return e.Err
}
